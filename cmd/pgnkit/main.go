// Command pgnkit parses game record files, archives the games and reports
// how much of each transcript could be read.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/hailam/pgnkit/internal/batch"
	"github.com/hailam/pgnkit/internal/loader"
	"github.com/hailam/pgnkit/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pgnkit:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, inputs, err := parseOptions(args, os.Getenv, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", zap.String("file", opts.cpuprofile))
	}

	paths, err := loader.Files(inputs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no game files found")
	}

	if opts.pngDir != "" {
		if err := os.MkdirAll(opts.pngDir, 0755); err != nil {
			return err
		}
	}

	sink := &gameSink{
		out:     stdout,
		logger:  logger,
		board:   opts.board,
		pngDir:  opts.pngDir,
		pngSize: opts.pngSize,
	}
	if !opts.noDB {
		archive, err := storage.Open(opts.db, logger)
		if err != nil {
			return err
		}
		defer archive.Close()
		sink.archive = archive
	}

	runner := &batch.Runner{Workers: opts.workers, Logger: logger, Sink: sink}
	report, err := runner.Run(ctx, paths)
	fmt.Fprint(stdout, report.Summary())
	if err != nil {
		return err
	}

	if sink.archive != nil {
		stats, err := sink.archive.LoadStats()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "archive: %s new, %s games total, %.2f%% of moves unparseable\n",
			humanize.Comma(int64(sink.added)), humanize.Comma(int64(stats.Games)), stats.BadMoveRate())
	}
	return nil
}
