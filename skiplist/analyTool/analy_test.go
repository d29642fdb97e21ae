package analyTool_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/Hakuto4838/skipkv/skiplist/analyTool"
	"github.com/Hakuto4838/skipkv/skiplist/basic"
)

// fakeList 以固定的層資料模擬 Inspectable
type fakeList struct {
	level  int
	keys   []int
	height []int
}

func (f fakeList) GetMaxStats() (int, int) { return len(f.keys), f.level }

func (f fakeList) WalkLevel(level int, fn func(key int, value string, height int) bool) {
	for i, k := range f.keys {
		if f.height[i] >= level && !fn(k, "v", f.height[i]) {
			return
		}
	}
}

func TestCheckStructDetectsDisorder(t *testing.T) {
	cmp := func(a, b int) int { return a - b }

	ok := fakeList{level: 1, keys: []int{1, 2, 3}, height: []int{0, 1, 0}}
	if err := analyTool.CheckStruct[int, string](ok, cmp); err != nil {
		t.Errorf("CheckStruct(valid) = %v", err)
	}

	bad := fakeList{level: 0, keys: []int{1, 3, 2}, height: []int{0, 0, 0}}
	if err := analyTool.CheckStruct[int, string](bad, cmp); !errors.Is(err, analyTool.ErrBrokenStruct) {
		t.Errorf("CheckStruct(disorder) = %v, want ErrBrokenStruct", err)
	}

	emptyTop := fakeList{level: 2, keys: []int{1, 2}, height: []int{1, 0}}
	if err := analyTool.CheckStruct[int, string](emptyTop, cmp); !errors.Is(err, analyTool.ErrBrokenStruct) {
		t.Errorf("CheckStruct(empty top) = %v, want ErrBrokenStruct", err)
	}

	tooHigh := fakeList{level: 0, keys: []int{1}, height: []int{3}}
	if err := analyTool.CheckStruct[int, string](tooHigh, cmp); !errors.Is(err, analyTool.ErrBrokenStruct) {
		t.Errorf("CheckStruct(too high) = %v, want ErrBrokenStruct", err)
	}
}

func TestCountLevel(t *testing.T) {
	f := fakeList{level: 2, keys: []int{1, 2, 3, 4}, height: []int{2, 0, 1, 0}}
	got := analyTool.CountLevel[int, string](f)
	want := []int{4, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("CountLevel = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountLevel = %v, want %v", got, want)
			break
		}
	}

	var buf bytes.Buffer
	analyTool.PrintLevelCounts(&buf, got)
	if !strings.Contains(buf.String(), "EXPECTED") {
		t.Errorf("PrintLevelCounts output:\n%s", buf.String())
	}
}

func TestPrintSkipList(t *testing.T) {
	sl, err := basic.NewOrdered[int, string](nil, &basic.Options{MaxLevel: 5, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 20; i++ {
		sl.Insert(i, strings.Repeat("x", i))
	}

	var buf bytes.Buffer
	analyTool.PrintSkipList[int, string](&buf, sl, 3, 5)
	out := buf.String()
	if !strings.Contains(out, "1:x") || !strings.Contains(out, "5:xxxxx") {
		t.Errorf("PrintSkipList output missing first nodes:\n%s", out)
	}
	if strings.Contains(out, "6:") {
		t.Errorf("PrintSkipList printed beyond maxNodes:\n%s", out)
	}
	if strings.Contains(out, "level 4") {
		t.Errorf("PrintSkipList printed beyond maxLevel:\n%s", out)
	}

	buf.Reset()
	analyTool.PrintSkipList[int, string](&buf, sl, 0, 0)
	if !strings.Contains(buf.String(), "20:") || !strings.Contains(buf.String(), "…") {
		t.Errorf("long cells were not truncated:\n%s", buf.String())
	}
}

func TestPrintSkipListToCSV(t *testing.T) {
	f := fakeList{level: 1, keys: []int{1, 2}, height: []int{1, 0}}
	var buf bytes.Buffer
	if err := analyTool.PrintSkipListToCSV[int, string](f, 5, 0, csv.NewWriter(&buf)); err != nil {
		t.Fatal(err)
	}
	want := "level 1,1,\nlevel 0,1,2\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

var _ skiplist.Inspectable[int, string] = fakeList{}
