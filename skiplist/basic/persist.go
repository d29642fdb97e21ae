package basic

import (
	"fmt"
	"io"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/Hakuto4838/skipkv/skiplist/analyTool"
	"github.com/Hakuto4838/skipkv/skiplist/arena"
	"github.com/Hakuto4838/skipkv/skiplist/dumpfile"
)

// encode 依 key 升冪把第 0 層序列化，無法表示的紀錄略過並計數
func (sl *SkipList[K, V]) encode() ([]byte, dumpfile.WriteStats) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	var (
		buf   []byte
		err   error
		stats dumpfile.WriteStats
	)
	for nd := sl.nodes.Next(sl.head, 0); nd != arena.Nil; nd = sl.nodes.Next(nd, 0) {
		buf, err = sl.codec.Append(sl.format, buf, sl.nodes.Key(nd), sl.nodes.Value(nd))
		if err != nil {
			stats.Skipped++
			sl.log.Warn("skip record on dump", "err", err)
			continue
		}
		stats.Written++
	}
	return buf, stats
}

// Dump 以目前內容整份覆寫 DumpPath；只有寫檔失敗才回傳錯誤
func (sl *SkipList[K, V]) Dump() (dumpfile.WriteStats, error) {
	if sl.codec == nil {
		return dumpfile.WriteStats{}, ErrNoCodec
	}
	buf, stats := sl.encode()
	if err := dumpfile.WriteFile(sl.path, buf); err != nil {
		return stats, err
	}
	sl.log.Info("dump finished", "path", sl.path, "stats", stats.String())
	return stats, nil
}

// DumpTo 與 Dump 產生相同內容，但寫到 w
func (sl *SkipList[K, V]) DumpTo(w io.Writer) (dumpfile.WriteStats, error) {
	if sl.codec == nil {
		return dumpfile.WriteStats{}, ErrNoCodec
	}
	buf, stats := sl.encode()
	if _, err := w.Write(buf); err != nil {
		return stats, fmt.Errorf("skiplist: dump: %w", err)
	}
	return stats, nil
}

// CheckRecord 回報 key 與 value 能否被 Dump 寫出並原樣讀回
func (sl *SkipList[K, V]) CheckRecord(key K, value V) error {
	if sl.codec == nil {
		return ErrNoCodec
	}
	return sl.codec.Check(sl.format, key, value)
}

// Load 讀取 DumpPath 並逐筆 Insert，格式錯誤的行會被略過
func (sl *SkipList[K, V]) Load() (dumpfile.Stats, error) {
	var stats dumpfile.Stats
	if sl.codec == nil {
		return stats, ErrNoCodec
	}
	skipped, err := sl.format.ReadFile(sl.path, sl.loadRecord(&stats))
	stats.Skipped += skipped
	if err != nil {
		return stats, err
	}
	sl.log.Info("load finished", "path", sl.path, "stats", stats.String())
	return stats, nil
}

// LoadFrom 與 Load 相同，但從 r 讀取
func (sl *SkipList[K, V]) LoadFrom(r io.Reader) (dumpfile.Stats, error) {
	var stats dumpfile.Stats
	if sl.codec == nil {
		return stats, ErrNoCodec
	}
	skipped, err := sl.format.Read(r, sl.loadRecord(&stats))
	stats.Skipped += skipped
	return stats, err
}

func (sl *SkipList[K, V]) loadRecord(stats *dumpfile.Stats) func(keyText, valueText string) {
	return func(keyText, valueText string) {
		key, value, err := sl.codec.Decode(keyText, valueText)
		if err != nil {
			stats.Skipped++
			sl.log.Warn("skip record", "err", err)
			return
		}
		if sl.Insert(key, value) == skiplist.AlreadyExists {
			stats.Duplicates++
			return
		}
		stats.Loaded++
	}
}

// Display 逐層列出所有節點，只供檢查用
func (sl *SkipList[K, V]) Display(w io.Writer) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	analyTool.PrintSkipList[K, V](w, heldView[K, V]{sl}, sl.level, 0)
}

// heldView 給已持有讀取鎖的呼叫端使用
type heldView[K, V any] struct {
	sl *SkipList[K, V]
}

func (v heldView[K, V]) GetMaxStats() (int, int) {
	return v.sl.size, v.sl.level
}

func (v heldView[K, V]) WalkLevel(level int, fn func(key K, value V, height int) bool) {
	v.sl.walkLevel(level, fn)
}
