package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultPNGSize = 480

type options struct {
	workers    int
	db         string
	noDB       bool
	board      bool
	pngDir     string
	pngSize    int
	logLevel   string
	cpuprofile string
}

// parseOptions reads flags from args. PGNKIT_WORKERS, PGNKIT_DB and
// CPUPROFILE fill in for flags that are not given.
func parseOptions(args []string, getenv func(string) string, stderr io.Writer) (options, []string, error) {
	var opts options

	workers := 0
	if v := getenv("PGNKIT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, nil, fmt.Errorf("PGNKIT_WORKERS=%q: not a worker count", v)
		}
		workers = n
	}

	fs := flag.NewFlagSet("pgnkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pgnkit [flags] file-or-dir...")
		fs.PrintDefaults()
	}
	fs.IntVar(&opts.workers, "workers", workers, "parse workers (0 = one per CPU)")
	fs.StringVar(&opts.db, "db", getenv("PGNKIT_DB"), "archive directory (default: user data dir)")
	fs.BoolVar(&opts.noDB, "no-db", false, "do not archive games")
	fs.BoolVar(&opts.board, "board", false, "print the final board of every game")
	fs.StringVar(&opts.pngDir, "png", "", "write the final board of every game as PNG into `dir`")
	fs.IntVar(&opts.pngSize, "png-size", defaultPNGSize, "PNG edge length in pixels")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.cpuprofile, "cpuprofile", getenv("CPUPROFILE"), "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if opts.workers < 0 {
		return opts, nil, fmt.Errorf("-workers %d: must not be negative", opts.workers)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return opts, nil, flag.ErrHelp
	}
	return opts, fs.Args(), nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(lvl)
	logConfig.Encoding = "console"
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return logConfig.Build()
}
