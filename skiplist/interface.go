package skiplist

import "github.com/emirpasic/gods/utils"

// Comparator 定義 key 的全序關係，回傳負數、0、正數分別代表 a < b、a == b、a > b
type Comparator[K any] func(a, b K) int

// FromUntyped 將 gods 的 utils.Comparator 包裝成帶型別的 Comparator
func FromUntyped[K any](c utils.Comparator) Comparator[K] {
	return func(a, b K) int {
		return c(a, b)
	}
}

// InsertResult 表示 Insert 的結果
type InsertResult uint8

const (
	Inserted InsertResult = iota
	AlreadyExists
)

func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "Inserted"
	case AlreadyExists:
		return "AlreadyExists"
	default:
		return "Unknown"
	}
}

// DeleteResult 表示 Delete 的結果
type DeleteResult uint8

const (
	Deleted DeleteResult = iota
	NotFound
)

func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "Deleted"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

type Index[K, V any] interface {
	Insert(key K, value V) InsertResult
	Search(key K) (V, bool)
	Delete(key K) DeleteResult
	Size() int
}

// Inspectable 提供分析功能的介面
type Inspectable[K, V any] interface {
	// GetMaxStats 獲取節點數和目前最高層級
	GetMaxStats() (size int, level int)
	// WalkLevel 依 key 升冪走訪某一層，fn 回傳 false 時停止
	WalkLevel(level int, fn func(key K, value V, height int) bool)
}
