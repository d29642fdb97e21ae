// Package kvstore 是建立在 skip list 之上的小型嵌入式 key-value store。
// 開啟時可從落地檔載入內容，讀取經過 LRU 快取，Sync 與 Close 會整份 dump。
package kvstore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/Hakuto4838/skipkv/skiplist/basic"
	"github.com/Hakuto4838/skipkv/skiplist/dumpfile"
)

var (
	ErrClosed = errors.New("kvstore: store is closed")
)

type Options struct {
	// Index configures the underlying skip list. Nil uses basic.DefaultOptions().
	Index *basic.Options

	// CacheSize is the number of entries kept in the read cache.
	// Zero or negative disables the cache. Default value is 1024.
	CacheSize int

	// LoadOnOpen loads Index.DumpPath when the store is opened.
	// A missing file is treated as an empty store.
	LoadOnOpen bool
}

func DefaultOptions() *Options {
	return &Options{
		Index:      basic.DefaultOptions(),
		CacheSize:  1024,
		LoadOnOpen: true,
	}
}

// Store 的 Put/Delete 取得寫入鎖，讓快取回填不會覆蓋剛刪除的 key
type Store[K comparable, V any] struct {
	mu     sync.RWMutex
	index  *basic.SkipList[K, V]
	cache  *lru.Cache
	closed bool
	log    *slog.Logger
}

func Open[K comparable, V any](compare skiplist.Comparator[K], codec *dumpfile.Codec[K, V], opt *Options) (*Store[K, V], error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	if codec == nil {
		return nil, fmt.Errorf("kvstore: open: %w", basic.ErrNoCodec)
	}
	idxOpt := opt.Index
	if idxOpt == nil {
		idxOpt = basic.DefaultOptions()
	}

	index, err := basic.New(compare, codec, idxOpt)
	if err != nil {
		return nil, err
	}
	s := &Store[K, V]{index: index, log: idxOpt.Logger}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opt.CacheSize > 0 {
		s.cache, err = lru.New(opt.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("kvstore: cache: %w", err)
		}
	}

	if opt.LoadOnOpen {
		stats, err := index.Load()
		switch {
		case errors.Is(err, os.ErrNotExist):
			s.log.Info("no dump file, starting empty")
		case err != nil:
			return nil, fmt.Errorf("kvstore: open: %w", err)
		case stats.Skipped > 0:
			s.log.Warn("dump file had unreadable lines", "stats", stats.String())
		}
	}
	return s, nil
}

// Put 只在 key 不存在時寫入，回傳是否寫入；已存在的值不會被覆蓋。
// 無法寫入落地檔的紀錄直接拒絕。
func (s *Store[K, V]) Put(key K, value V) (bool, error) {
	if err := s.index.CheckRecord(key, value); err != nil {
		return false, fmt.Errorf("kvstore: put: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	return s.index.Insert(key, value) == skiplist.Inserted, nil
}

func (s *Store[K, V]) Get(key K) (V, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	if s.closed {
		return zero, false, ErrClosed
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(V), true, nil
		}
	}
	v, ok := s.index.Search(key)
	if ok && s.cache != nil {
		s.cache.Add(key, v)
	}
	return v, ok, nil
}

func (s *Store[K, V]) Delete(key K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if s.cache != nil {
		s.cache.Remove(key)
	}
	return s.index.Delete(key) == skiplist.Deleted, nil
}

func (s *Store[K, V]) Len() int {
	return s.index.Size()
}

// Sync 將目前內容整份寫入落地檔
func (s *Store[K, V]) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.index.Dump()
	return err
}

// Close dump 後釋放所有節點；寫檔失敗時 store 仍保持開啟
func (s *Store[K, V]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, err := s.index.Dump(); err != nil {
		return err
	}
	s.index.Close()
	if s.cache != nil {
		s.cache.Purge()
	}
	s.closed = true
	return nil
}
