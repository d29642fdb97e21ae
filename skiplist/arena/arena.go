package arena

import "fmt"

// Handle 是節點在 arena 中的位置，forward 連結皆以 Handle 表示
type Handle int32

// Nil 代表沒有下一個節點
const Nil Handle = -1

type tower[K, V any] struct {
	key     K
	value   V
	forward []Handle
	used    bool
}

// Arena 以 slice 保存所有節點，刪除時把位置放回 free list 供之後重用
type Arena[K, V any] struct {
	nodes []tower[K, V]
	free  []Handle
	live  int
}

func New[K, V any](capacity int) *Arena[K, V] {
	return &Arena[K, V]{
		nodes: make([]tower[K, V], 0, capacity),
	}
}

// Alloc 建立一個高度為 level 的節點，所有 forward 初始為 Nil
func (a *Arena[K, V]) Alloc(key K, value V, level int) Handle {
	if level < 0 {
		panic(fmt.Sprintf("arena: negative level %d", level))
	}
	fwd := make([]Handle, level+1)
	for i := range fwd {
		fwd[i] = Nil
	}

	a.live++
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[h] = tower[K, V]{key: key, value: value, forward: fwd, used: true}
		return h
	}
	a.nodes = append(a.nodes, tower[K, V]{key: key, value: value, forward: fwd, used: true})
	return Handle(len(a.nodes) - 1)
}

// Free 回收節點；之後再存取該 Handle 會 panic
func (a *Arena[K, V]) Free(h Handle) {
	nd := a.node(h)
	*nd = tower[K, V]{}
	a.free = append(a.free, h)
	a.live--
}

// Reset 釋放所有節點
func (a *Arena[K, V]) Reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
	a.free = a.free[:0]
	a.live = 0
}

// Len 回傳目前存活的節點數
func (a *Arena[K, V]) Len() int {
	return a.live
}

func (a *Arena[K, V]) Key(h Handle) K {
	return a.node(h).key
}

func (a *Arena[K, V]) Value(h Handle) V {
	return a.node(h).value
}

func (a *Arena[K, V]) SetValue(h Handle, value V) {
	a.node(h).value = value
}

// Level 回傳節點所在的最高層 (0-based)
func (a *Arena[K, V]) Level(h Handle) int {
	return len(a.node(h).forward) - 1
}

// Next 回傳節點在第 level 層的下一個節點
// 呼叫端需保證 0 <= level <= Level(h)
func (a *Arena[K, V]) Next(h Handle, level int) Handle {
	return a.node(h).forward[level]
}

func (a *Arena[K, V]) SetNext(h Handle, level int, next Handle) {
	a.node(h).forward[level] = next
}

func (a *Arena[K, V]) node(h Handle) *tower[K, V] {
	if h < 0 || int(h) >= len(a.nodes) || !a.nodes[h].used {
		panic(fmt.Sprintf("arena: invalid handle %d", h))
	}
	return &a.nodes[h]
}
