package main

import (
	"cmp"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Hakuto4838/skipkv/datastream"
	"github.com/Hakuto4838/skipkv/skiplist/analyTool"
	"github.com/Hakuto4838/skipkv/skiplist/basic"
)

func main() {
	var n int
	var k int
	var a float64
	var b float64
	var seed int64
	var dist string
	var levels string
	var runs int
	var deleteRatio float64
	var csvOut string

	flag.IntVar(&n, "n", 10000, "number of distinct keys")
	flag.IntVar(&k, "k", 200000, "number of operations to generate")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 0.0, "Zipf parameter b")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators and level randomness")
	flag.StringVar(&dist, "dist", "zipf", "key distribution: zipf or uniform")
	flag.StringVar(&levels, "levels", "4,8,16", "comma list of max levels to benchmark")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.Float64Var(&deleteRatio, "delete", 0.05, "ratio of delete operations on present keys")
	flag.StringVar(&csvOut, "csv", "", "write the structure of the last run as CSV to this path")
	flag.Parse()

	if n <= 0 || k < 0 || runs <= 0 {
		log.Fatalf("invalid -n, -k or -runs: n=%d k=%d runs=%d", n, k, runs)
	}
	maxLevels, err := parseLevels(levels)
	if err != nil {
		log.Fatalf("parse -levels: %v", err)
	}

	var gen datastream.KeyGenerator
	switch dist {
	case "zipf":
		gen = datastream.NewZipfDataGenerator(n, a, b, seed)
	case "uniform":
		gen = datastream.NewUniformDataGenerator(n, seed)
	default:
		log.Fatalf("unknown -dist: %s", dist)
	}
	model := datastream.NewSequenceModelFromOps(datastream.GenerateOps(gen, k, deleteRatio, seed))

	fmt.Printf("ops: %d, keys: %d, dist: %s, entropy: %.6f\n", model.Len(), n, dist, gen.Entropy())
	fmt.Println(strings.Repeat("=", 80))

	rows := make([][]string, 0, len(maxLevels))
	var last *basic.SkipList[int, int]
	for _, lv := range maxLevels {
		fmt.Printf("benchmarking max level %d...\n", lv)
		stats, sl := benchmarkLevel(model, lv, runs, seed)
		last = sl
		size, height := sl.GetMaxStats()
		rows = append(rows, []string{
			strconv.Itoa(sl.MaxLevel()),
			strconv.Itoa(runs),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			fmt.Sprintf("%.2f", float64(model.Len())/(stats.avgMs/1000.0)),
			strconv.Itoa(size),
			strconv.Itoa(height),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"MaxLevel", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "Size", "Height"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	if last == nil {
		return
	}
	fmt.Println()
	analyTool.PrintLevelCounts(os.Stdout, analyTool.CountLevel[int, int](last))
	if err := analyTool.CheckStruct[int, int](last, cmp.Compare[int]); err != nil {
		log.Fatalf("structure check: %v", err)
	}

	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			log.Fatalf("create %s: %v", csvOut, err)
		}
		defer f.Close()
		_, height := last.GetMaxStats()
		if err := analyTool.PrintSkipListToCSV[int, int](last, height, 200, csv.NewWriter(f)); err != nil {
			log.Fatalf("write %s: %v", csvOut, err)
		}
	}
}

type benchStats struct {
	avgMs float64
	minMs float64
	maxMs float64
}

// benchmarkLevel 重複執行 runs 次，回傳時間統計與最後一次的 skip list
func benchmarkLevel(model *datastream.SequenceModel, maxLevel, runs int, seed int64) (benchStats, *basic.SkipList[int, int]) {
	durations := make([]float64, 0, runs)
	var sl *basic.SkipList[int, int]
	for i := 0; i < runs; i++ {
		var err error
		sl, err = basic.NewOrdered[int, int](nil, &basic.Options{MaxLevel: maxLevel, Seed: uint64(seed) + uint64(i)})
		if err != nil {
			log.Fatalf("create skip list: %v", err)
		}
		elapsed := runOpsAndTime(sl, model)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
	}
	sort.Float64s(durations)
	sum := 0.0
	for _, v := range durations {
		sum += v
	}
	return benchStats{
		avgMs: sum / float64(len(durations)),
		minMs: durations[0],
		maxMs: durations[len(durations)-1],
	}, sl
}

// runOpsAndTime 從頭重播 model 中的操作並計時
func runOpsAndTime(sl *basic.SkipList[int, int], model *datastream.SequenceModel) time.Duration {
	model.Reset()
	start := time.Now()
	for op, ok := model.Next(); ok; op, ok = model.Next() {
		switch op.Type {
		case datastream.OpSearch:
			sl.Search(op.Key)
		case datastream.OpInsert:
			sl.Insert(op.Key, op.Key)
		case datastream.OpDelete:
			sl.Delete(op.Key)
		}
	}
	return time.Since(start)
}

func parseLevels(s string) ([]int, error) {
	var out []int
	seen := map[int]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lv, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if lv < 0 {
			return nil, fmt.Errorf("negative level %d", lv)
		}
		if !seen[lv] {
			out = append(out, lv)
			seen[lv] = true
		}
	}
	if len(out) == 0 {
		return []int{basic.DefaultMaxLevel}, nil
	}
	return out, nil
}
