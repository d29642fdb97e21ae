package basic

import (
	"cmp"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/Hakuto4838/skipkv/skiplist/arena"
	"github.com/Hakuto4838/skipkv/skiplist/dumpfile"
)

// SkipList 是以 arena handle 串接的 skip list。
// Insert、Delete、Close 取得寫入鎖；Search、Dump 與各種走訪取得讀取鎖。
type SkipList[K, V any] struct {
	mu sync.RWMutex

	nodes    *arena.Arena[K, V]
	head     arena.Handle
	level    int // 目前最高的有效層
	maxLevel int
	size     int
	update   []arena.Handle // 每層的前驅節點，只在持有寫入鎖時使用

	compare skiplist.Comparator[K]
	codec   *dumpfile.Codec[K, V]
	format  dumpfile.Format
	path    string
	rand    *levelGen
	log     *slog.Logger
}

func New[K, V any](compare skiplist.Comparator[K], codec *dumpfile.Codec[K, V], opt *Options) (*SkipList[K, V], error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if opt.MaxLevel < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxLevel, opt.MaxLevel)
	}
	if compare == nil {
		return nil, ErrNilComparator
	}

	sl := &SkipList[K, V]{
		nodes:    arena.New[K, V](64),
		maxLevel: opt.MaxLevel,
		update:   make([]arena.Handle, opt.MaxLevel+1),
		compare:  compare,
		codec:    codec,
		format:   dumpfile.Format{Delimiter: opt.Delimiter},
		path:     opt.dumpPath(),
		rand:     newLevelGen(opt.Seed),
		log:      opt.logger(),
	}
	sl.head = sl.newHead()
	return sl, nil
}

// NewOrdered 使用 cmp.Compare 作為排序
func NewOrdered[K cmp.Ordered, V any](codec *dumpfile.Codec[K, V], opt *Options) (*SkipList[K, V], error) {
	return New[K, V](cmp.Compare[K], codec, opt)
}

func (sl *SkipList[K, V]) newHead() arena.Handle {
	var (
		k K
		v V
	)
	return sl.nodes.Alloc(k, v, sl.maxLevel)
}

// descend 從目前最高層往下找，停在每層最後一個 key < target 的節點。
// update 不為 nil 時記錄每層的前驅。回傳第 0 層的下一個節點。
func (sl *SkipList[K, V]) descend(key K, update []arena.Handle) arena.Handle {
	cur := sl.head
	for h := sl.level; h >= 0; h-- {
		for {
			next := sl.nodes.Next(cur, h)
			if next == arena.Nil || sl.compare(sl.nodes.Key(next), key) >= 0 {
				break
			}
			cur = next
		}
		if update != nil {
			update[h] = cur
		}
	}
	return sl.nodes.Next(cur, 0)
}

func (sl *SkipList[K, V]) matches(nd arena.Handle, key K) bool {
	return nd != arena.Nil && sl.compare(sl.nodes.Key(nd), key) == 0
}

// Insert 插入 key；key 已存在時回傳 AlreadyExists 且不更新 value
func (sl *SkipList[K, V]) Insert(key K, value V) skiplist.InsertResult {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	update := sl.update
	if sl.matches(sl.descend(key, update), key) {
		sl.log.Debug("key exists", "key", key)
		return skiplist.AlreadyExists
	}

	lvl := sl.rand.next(sl.maxLevel)
	if lvl > sl.level {
		for i := sl.level + 1; i <= lvl; i++ {
			update[i] = sl.head
		}
		sl.level = lvl
	}

	nd := sl.nodes.Alloc(key, value, lvl)
	for i := lvl; i >= 0; i-- {
		sl.nodes.SetNext(nd, i, sl.nodes.Next(update[i], i))
		sl.nodes.SetNext(update[i], i, nd)
	}
	sl.size++

	sl.log.Debug("inserted", "key", key, "level", lvl)
	return skiplist.Inserted
}

// Search 取得 key 對應的 value
func (sl *SkipList[K, V]) Search(key K) (V, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	nd := sl.descend(key, nil)
	if sl.matches(nd, key) {
		return sl.nodes.Value(nd), true
	}
	var zero V
	return zero, false
}

// Contains 判斷 key 是否存在
func (sl *SkipList[K, V]) Contains(key K) bool {
	_, ok := sl.Search(key)
	return ok
}

// Delete 刪除 key
func (sl *SkipList[K, V]) Delete(key K) skiplist.DeleteResult {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	update := sl.update
	target := sl.descend(key, update)
	if !sl.matches(target, key) {
		return skiplist.NotFound
	}

	// 由下往上拆除，目標的 tower 不一定涵蓋所有有效層
	for i := 0; i <= sl.level; i++ {
		if sl.nodes.Next(update[i], i) != target {
			break
		}
		sl.nodes.SetNext(update[i], i, sl.nodes.Next(target, i))
	}

	for sl.level > 0 && sl.nodes.Next(sl.head, sl.level) == arena.Nil {
		sl.level--
	}

	sl.nodes.Free(target)
	sl.size--

	sl.log.Debug("deleted", "key", key)
	return skiplist.Deleted
}

func (sl *SkipList[K, V]) Size() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.size
}

func (sl *SkipList[K, V]) MaxLevel() int {
	return sl.maxLevel
}

// Close 釋放所有節點，之後的 list 為空但仍可使用
func (sl *SkipList[K, V]) Close() {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.nodes.Reset()
	sl.head = sl.newHead()
	sl.level = 0
	sl.size = 0
}

// GetMaxStats 實現 skiplist.Inspectable
func (sl *SkipList[K, V]) GetMaxStats() (int, int) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.size, sl.level
}

// WalkLevel 實現 skiplist.Inspectable
func (sl *SkipList[K, V]) WalkLevel(level int, fn func(key K, value V, height int) bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	sl.walkLevel(level, fn)
}

func (sl *SkipList[K, V]) walkLevel(level int, fn func(key K, value V, height int) bool) {
	if level < 0 || level > sl.level {
		return
	}
	for nd := sl.nodes.Next(sl.head, level); nd != arena.Nil; nd = sl.nodes.Next(nd, level) {
		if !fn(sl.nodes.Key(nd), sl.nodes.Value(nd), sl.nodes.Level(nd)) {
			return
		}
	}
}
