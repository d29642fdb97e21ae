package datastream

import "math/rand"

// KeyGenerator 依某個分布產生 key (0 ~ n-1)
type KeyGenerator interface {
	Next() int
	Entropy() float64
}

// OperationType 表示操作種類
type OperationType uint8

const (
	OpSearch OperationType = iota
	OpInsert
	OpDelete
)

func (t OperationType) String() string {
	switch t {
	case OpSearch:
		return "Search"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Operation 表示一筆操作
type Operation struct {
	Type OperationType
	Key  int
}

// GenerateOps 以 gen 產生 k 筆操作。
// 規則：
//   - key 第一次出現時輸出 Insert
//   - 已出現過且目前存在時，deleteRatio 的機率輸出 Delete，其餘 90% Search、10% Insert
//   - 已被刪除的 key 再次出現時輸出 Insert
func GenerateOps(gen KeyGenerator, k int, deleteRatio float64, seed int64) []Operation {
	rng := rand.New(rand.NewSource(seed))
	present := make(map[int]bool)
	ops := make([]Operation, 0, k)

	for i := 0; i < k; i++ {
		key := gen.Next()
		var op OperationType
		switch {
		case !present[key]:
			op = OpInsert
			present[key] = true
		case rng.Float64() < deleteRatio:
			op = OpDelete
			present[key] = false
		case rng.Float64() < 0.90:
			op = OpSearch
		default:
			op = OpInsert
		}
		ops = append(ops, Operation{Type: op, Key: key})
	}
	return ops
}

// SequenceModel 以既有的 Operation 序列提供順序重播
type SequenceModel struct {
	ops []Operation
	pos int
}

// NewSequenceModelFromOps 由外部供給的操作序列建立模型
func NewSequenceModelFromOps(ops []Operation) *SequenceModel {
	cp := make([]Operation, len(ops))
	copy(cp, ops)
	return &SequenceModel{ops: cp}
}

// Next 回傳下一筆操作，若結束則回傳零值與 false
func (m *SequenceModel) Next() (Operation, bool) {
	if m.pos >= len(m.ops) {
		return Operation{}, false
	}
	op := m.ops[m.pos]
	m.pos++
	return op, true
}

// Len 回傳序列總長度
func (m *SequenceModel) Len() int { return len(m.ops) }

// Reset 游標重置到起點
func (m *SequenceModel) Reset() { m.pos = 0 }
