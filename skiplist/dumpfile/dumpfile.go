// Package dumpfile 定義 skip list 的落地檔案格式。
//
// 檔案為純文字，每行一筆 `key<delim>value\n`，只以第一個分隔符號切割，
// 沒有 header、版本、checksum 或筆數。每次 dump 都整份覆寫。
//
// 限制：key 的文字內不能出現分隔符號，key 與 value 都不能含有換行，
// 也不能是空字串（讀回時會被當成損壞的行略過）。這類紀錄以 ErrUnrepresentable
// 回報，dump 時略過並計數，不會寫出一筆讀回來意義不同的資料。
package dumpfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultDelimiter = ":"
	DefaultPath      = "store/dumpFile"

	maxLineSize = 16 << 20
)

var (
	ErrUnrepresentable = errors.New("dumpfile: record cannot be represented")
)

// Stats 統計一次 load 的結果
type Stats struct {
	Loaded     int // 成功插入
	Duplicates int // key 已存在而被丟棄
	Skipped    int // 格式錯誤或無法解碼
}

func (s Stats) String() string {
	return fmt.Sprintf("loaded=%d duplicates=%d skipped=%d", s.Loaded, s.Duplicates, s.Skipped)
}

// WriteStats 統計一次 dump 的結果
type WriteStats struct {
	Written int
	Skipped int // 無法表示而未寫出
}

func (s WriteStats) String() string {
	return fmt.Sprintf("written=%d skipped=%d", s.Written, s.Skipped)
}

// Format 描述一行紀錄的切割方式，空的 Delimiter 代表 DefaultDelimiter
type Format struct {
	Delimiter string
}

func (f Format) delim() string {
	if f.Delimiter == "" {
		return DefaultDelimiter
	}
	return f.Delimiter
}

// Check 判斷一筆紀錄寫出後能否原樣讀回
func (f Format) Check(key, value string) error {
	d := f.delim()
	switch {
	case key == "" || value == "":
		return fmt.Errorf("%w: empty field in %q%s%q", ErrUnrepresentable, key, d, value)
	case strings.Contains(key, d):
		return fmt.Errorf("%w: key %q contains delimiter %q", ErrUnrepresentable, key, d)
	case strings.ContainsAny(key, "\r\n"), strings.ContainsAny(value, "\r\n"):
		return fmt.Errorf("%w: line break in %q%s%q", ErrUnrepresentable, key, d, value)
	}
	return nil
}

// AppendRecord 將一筆紀錄附加到 buf，無法表示時 buf 不變
func (f Format) AppendRecord(buf []byte, key, value string) ([]byte, error) {
	if err := f.Check(key, value); err != nil {
		return buf, err
	}
	d := f.delim()
	buf = append(buf, key...)
	buf = append(buf, d...)
	buf = append(buf, value...)
	buf = append(buf, '\n')
	return buf, nil
}

// ParseLine 以第一個分隔符號切割一行，缺少分隔符號或任一側為空時 ok 為 false
func (f Format) ParseLine(line string) (key, value string, ok bool) {
	d := f.delim()
	idx := strings.Index(line, d)
	if idx < 0 {
		return "", "", false
	}
	key, value = line[:idx], line[idx+len(d):]
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// Read 逐行讀取 r，格式正確的行交給 fn，回傳被略過的行數
func (f Format) Read(r io.Reader, fn func(key, value string)) (skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		key, value, ok := f.ParseLine(sc.Text())
		if !ok {
			skipped++
			continue
		}
		fn(key, value)
	}
	if err := sc.Err(); err != nil {
		return skipped, fmt.Errorf("dumpfile: read: %w", err)
	}
	return skipped, nil
}

// WriteFile 以 data 整份取代 path 的內容，必要時建立上層目錄
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dumpfile: create dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dumpfile: write %s: %w", path, err)
	}
	return nil
}

// ReadFile 讀取 path 並逐行呼叫 fn
func (f Format) ReadFile(path string, fn func(key, value string)) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("dumpfile: open %s: %w", path, err)
	}
	defer file.Close()
	return f.Read(file, fn)
}
