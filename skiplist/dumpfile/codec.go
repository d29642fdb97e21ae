package dumpfile

import (
	"fmt"
	"strconv"
)

// Text 描述一個型別與其文字表示之間的轉換
type Text[T any] struct {
	Encode func(T) string
	Decode func(string) (T, error)
}

var (
	Int = Text[int]{
		Encode: strconv.Itoa,
		Decode: strconv.Atoi,
	}
	Int64 = Text[int64]{
		Encode: func(v int64) string { return strconv.FormatInt(v, 10) },
		Decode: func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
	}
	Float64 = Text[float64]{
		Encode: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		Decode: func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	}
	String = Text[string]{
		Encode: func(s string) string { return s },
		Decode: func(s string) (string, error) { return s, nil },
	}
)

// Codec 組合 key 與 value 的文字轉換，改變 key 型別時只需要換 Codec
type Codec[K, V any] struct {
	Key   Text[K]
	Value Text[V]
}

func NewCodec[K, V any](key Text[K], value Text[V]) *Codec[K, V] {
	return &Codec[K, V]{Key: key, Value: value}
}

// Append 編碼一筆紀錄並附加到 buf
func (c *Codec[K, V]) Append(f Format, buf []byte, key K, value V) ([]byte, error) {
	return f.AppendRecord(buf, c.Key.Encode(key), c.Value.Encode(value))
}

// Check 回報 key 與 value 編碼後能否以 f 寫出
func (c *Codec[K, V]) Check(f Format, key K, value V) error {
	return f.Check(c.Key.Encode(key), c.Value.Encode(value))
}

// Decode 將一行切出的文字轉回 key 與 value
func (c *Codec[K, V]) Decode(keyText, valueText string) (K, V, error) {
	var (
		key   K
		value V
	)
	key, err := c.Key.Decode(keyText)
	if err != nil {
		return key, value, fmt.Errorf("decode key %q: %w", keyText, err)
	}
	value, err = c.Value.Decode(valueText)
	if err != nil {
		return key, value, fmt.Errorf("decode value %q: %w", valueText, err)
	}
	return key, value, nil
}
