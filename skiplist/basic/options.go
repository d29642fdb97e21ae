package basic

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Hakuto4838/skipkv/skiplist/dumpfile"
)

var (
	ErrInvalidMaxLevel = errors.New("skiplist: max level must be >= 0")
	ErrNilComparator   = errors.New("skiplist: nil comparator")
	ErrNoCodec         = errors.New("skiplist: no codec configured for dump/load")
)

const DefaultMaxLevel = 16

type Options struct {
	// MaxLevel caps both node levels and the list height (0-based).
	// It is fixed for the lifetime of the list.
	MaxLevel int

	// DumpPath is the file Dump replaces and Load reads.
	// Default value is "store/dumpFile".
	DumpPath string

	// Delimiter separates key and value on each dumped line. Only the first
	// occurrence splits a line on load. Default value is ":".
	Delimiter string

	// Seed for the level generator. Zero means seeded from the clock.
	Seed uint64

	// Logger receives operation logs. Nil discards them.
	Logger *slog.Logger
}

func DefaultOptions() *Options {
	return &Options{
		MaxLevel:  DefaultMaxLevel,
		DumpPath:  dumpfile.DefaultPath,
		Delimiter: dumpfile.DefaultDelimiter,
	}
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *Options) dumpPath() string {
	if o.DumpPath == "" {
		return dumpfile.DefaultPath
	}
	return o.DumpPath
}
