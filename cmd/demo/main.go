package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/emirpasic/gods/utils"

	"github.com/Hakuto4838/skipkv/skiplist"
	"github.com/Hakuto4838/skipkv/skiplist/basic"
	"github.com/Hakuto4838/skipkv/skiplist/dumpfile"
)

func main() {
	var maxLevel int
	var dumpPath string
	var verbose bool

	flag.IntVar(&maxLevel, "max-level", 6, "highest level index of the skip list")
	flag.StringVar(&dumpPath, "dump", dumpfile.DefaultPath, "dump file path")
	flag.BoolVar(&verbose, "v", false, "log every operation to stderr")
	flag.Parse()

	opt := basic.DefaultOptions()
	opt.MaxLevel = maxLevel
	opt.DumpPath = dumpPath
	if verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if err := run(opt); err != nil {
		log.Fatal(err)
	}
}

func run(opt *basic.Options) error {
	// key 用 int，換成其他型別時只需要換 comparator 與 codec
	codec := dumpfile.NewCodec(dumpfile.Int, dumpfile.String)
	sl, err := basic.New(skiplist.FromUntyped[int](utils.IntComparator), codec, opt)
	if err != nil {
		return fmt.Errorf("create skip list: %w", err)
	}
	defer sl.Close()

	fmt.Println("先往跳表中插入數據")
	for _, kv := range []struct {
		k int
		v string
	}{{1, "霍"}, {3, "博岩"}, {7, "是"}, {8, "河北"}, {9, "省"}, {19, "保定市"}, {19, "的"}} {
		fmt.Printf("insert %d:%s -> %v\n", kv.k, kv.v, sl.Insert(kv.k, kv.v))
	}

	fmt.Printf("skipList size: %d\n", sl.Size())

	stats, err := sl.Dump()
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	fmt.Printf("dumped to %s: %v\n", opt.DumpPath, stats)

	for _, k := range []int{9, 18} {
		if !sl.Contains(k) {
			fmt.Printf("key %d not found\n", k)
			continue
		}
		v, _ := sl.Search(k)
		fmt.Printf("found key %d, value %s\n", k, v)
	}

	sl.Display(os.Stdout)

	for _, k := range []int{3, 7} {
		fmt.Printf("delete %d -> %v\n", k, sl.Delete(k))
	}
	fmt.Printf("skipList size: %d\n", sl.Size())

	if _, err := sl.Dump(); err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	reloaded, err := basic.New(skiplist.FromUntyped[int](utils.IntComparator), codec, opt)
	if err != nil {
		return fmt.Errorf("create skip list: %w", err)
	}
	defer reloaded.Close()

	loaded, err := reloaded.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fmt.Printf("reloaded from %s: %v\n", opt.DumpPath, loaded)
	reloaded.Display(os.Stdout)
	return nil
}
