package analyTool

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// cellWidth 是表格中每格最多的顯示寬度
const cellWidth = 20

type nodeInfo[K, V any] struct {
	key    K
	value  V
	height int
}

// collect 依序取得第 0 層的前 maxNodes 個節點，maxNodes <= 0 代表全部
func collect[K, V any](sl skiplist.Inspectable[K, V], maxNodes int) []nodeInfo[K, V] {
	var out []nodeInfo[K, V]
	sl.WalkLevel(0, func(key K, value V, height int) bool {
		out = append(out, nodeInfo[K, V]{key, value, height})
		return maxNodes <= 0 || len(out) < maxNodes
	})
	return out
}

func cell(s string) string {
	return runewidth.Truncate(s, cellWidth, "…")
}

// PrintSkipList 以表格打印 skip list 的結構，每層一列，由最高層往下
func PrintSkipList[K, V any](w io.Writer, sl skiplist.Inspectable[K, V], maxLevel, maxNodes int) {
	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)

	nodes := collect(sl, maxNodes)
	if len(nodes) == 0 {
		fmt.Fprintln(w, "Skip list 為空")
		return
	}

	header := make([]string, len(nodes)+1)
	header[0] = "Level"
	for i := range nodes {
		header[i+1] = fmt.Sprintf("#%d", i)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	for lv := maxLevel; lv >= 0; lv-- {
		row := make([]string, len(nodes)+1)
		row[0] = fmt.Sprintf("level %d", lv)
		for i, nd := range nodes {
			if nd.height >= lv {
				row[i+1] = cell(fmt.Sprintf("%v:%v", nd.key, nd.value))
			}
		}
		table.Append(row)
	}
	table.Render()
}

// PrintSkipListToCSV 將 skip list 的結構輸出到 CSV，只輸出 key
func PrintSkipListToCSV[K, V any](sl skiplist.Inspectable[K, V], maxLevel, maxNodes int, writer *csv.Writer) error {
	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)

	nodes := collect(sl, maxNodes)
	for lv := maxLevel; lv >= 0; lv-- {
		row := make([]string, len(nodes)+1)
		row[0] = fmt.Sprintf("level %d", lv)
		for i, nd := range nodes {
			if nd.height >= lv {
				row[i+1] = fmt.Sprintf("%v", nd.key)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CountLevel 計算每層的節點數量，index 為層級
func CountLevel[K, V any](sl skiplist.Inspectable[K, V]) []int {
	_, level := sl.GetMaxStats()
	counts := make([]int, level+1)
	sl.WalkLevel(0, func(_ K, _ V, height int) bool {
		// 該節點存在於 level 0 到 height 的所有層
		for i := 0; i <= height && i < len(counts); i++ {
			counts[i]++
		}
		return true
	})
	return counts
}

// PrintLevelCounts 打印 CountLevel 的結果與期望值 n/2^i
func PrintLevelCounts(w io.Writer, counts []int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Nodes", "Expected"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	total := 0
	if len(counts) > 0 {
		total = counts[0]
	}
	for i := len(counts) - 1; i >= 0; i-- {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", counts[i]),
			fmt.Sprintf("%.1f", float64(total)/float64(uint64(1)<<uint(i))),
		})
	}
	table.Render()
}

var ErrBrokenStruct = errors.New("broken skip list structure")

// CheckStruct 檢查 skip list 的結構是否正確：
// 每層 key 嚴格遞增、第 i 層的節點高度 >= i 且數量等於第 0 層中高度 >= i 的節點數、
// 目前最高層非空（除非整個 list 為空）、節點數等於 size
func CheckStruct[K, V any](sl skiplist.Inspectable[K, V], compare skiplist.Comparator[K]) error {
	size, level := sl.GetMaxStats()
	counts := CountLevel(sl)

	for lv := 0; lv <= level; lv++ {
		var (
			prev  K
			n     int
			fault error
		)
		sl.WalkLevel(lv, func(key K, _ V, height int) bool {
			if n > 0 && compare(prev, key) >= 0 {
				fault = fmt.Errorf("%w: level %d: key %v not after %v", ErrBrokenStruct, lv, key, prev)
				return false
			}
			if height < lv {
				fault = fmt.Errorf("%w: level %d: key %v has height %d", ErrBrokenStruct, lv, key, height)
				return false
			}
			prev = key
			n++
			return true
		})
		if fault != nil {
			return fault
		}
		if n != counts[lv] {
			return fmt.Errorf("%w: level %d has %d nodes, level 0 has %d towers reaching it",
				ErrBrokenStruct, lv, n, counts[lv])
		}
	}

	if counts[0] != size {
		return fmt.Errorf("%w: size %d but level 0 has %d nodes", ErrBrokenStruct, size, counts[0])
	}
	if level > 0 && counts[level] == 0 {
		return fmt.Errorf("%w: top level %d is empty", ErrBrokenStruct, level)
	}
	tooHigh := 0
	sl.WalkLevel(0, func(_ K, _ V, height int) bool {
		if height > level {
			tooHigh++
		}
		return true
	})
	if tooHigh > 0 {
		return fmt.Errorf("%w: %d nodes above current level %d", ErrBrokenStruct, tooHigh, level)
	}
	return nil
}
