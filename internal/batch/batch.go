// Package batch parses many game files concurrently.
package batch

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/pgnkit/internal/board"
	"github.com/hailam/pgnkit/internal/loader"
	"github.com/hailam/pgnkit/internal/pgn"
)

// Item is one transcript after parsing. Err is set when the transcript
// could not be parsed at all; ReplayErr when its moves could not all be
// placed on the board.
type Item struct {
	Path      string
	Index     int
	Raw       string
	Game      *pgn.Game
	Final     board.Snapshot
	Err       error
	ReplayErr error
}

// Sink receives every parsed item. Accept is called from a single
// goroutine.
type Sink interface {
	Accept(item Item) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(item Item) error

func (f SinkFunc) Accept(item Item) error { return f(item) }

// Runner parses game files with a pool of workers.
type Runner struct {
	Workers int
	Logger  *zap.Logger
	Sink    Sink
}

// job is one transcript to parse, or a file that could not be read.
type job struct {
	path  string
	index int
	raw   string
	err   error
}

// Run parses every game in paths. Bad transcripts and unreadable files are
// logged and counted; only cancellation or a Sink error stops the run.
func (r *Runner) Run(ctx context.Context, paths []string) (Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Info("batch started", zap.Int("files", len(paths)), zap.Int("workers", workers))

	report := newReport()
	g, ctx := errgroup.WithContext(ctx)

	var jobs = make(chan job, 128)
	var items = make(chan Item, 128)

	// Only workers send on items, so items closes once they are all done.
	var files int
	g.Go(func() error {
		defer close(jobs)
		return r.load(ctx, logger, paths, jobs, &files)
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return parseGames(ctx, jobs, items)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(items)
		return nil
	})

	g.Go(func() error {
		return r.collect(ctx, logger, items, &report)
	})

	err := g.Wait()
	report.Files = files
	logger.Info("batch finished",
		zap.Int("games", report.Games),
		zap.Int("bad_moves", report.BadMoves),
		zap.Int("failed", report.Failed),
		zap.Error(err))
	return report, err
}

func (r *Runner) load(ctx context.Context, logger *zap.Logger, paths []string, jobs chan<- job, files *int) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		*files++

		text, err := loader.ReadFile(path)
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{path: path, err: err}:
			}
			continue
		}

		raws, err := pgn.SplitAll(strings.NewReader(text))
		if err != nil {
			logger.Warn("split failed", zap.String("path", path), zap.Error(err))
		}
		logger.Debug("file loaded", zap.String("path", path), zap.Int("games", len(raws)))

		for i, raw := range raws {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{path: path, index: i + 1, raw: raw}:
			}
		}
	}
	return nil
}

func parseGames(ctx context.Context, jobs <-chan job, items chan<- Item) error {
	for j := range jobs {
		item := Item{Path: j.path, Index: j.index, Raw: j.raw, Err: j.err}
		if item.Err == nil {
			item.Game, item.Err = pgn.Parse(j.raw)
		}
		if item.Err == nil {
			item.Final, item.ReplayErr = item.Game.Final()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case items <- item:
		}
	}
	return nil
}

func (r *Runner) collect(ctx context.Context, logger *zap.Logger, items <-chan Item, report *Report) error {
	for item := range items {
		if item.Err != nil {
			report.Failed++
			logger.Warn("game skipped",
				zap.String("path", item.Path),
				zap.Int("game", item.Index),
				zap.Error(item.Err))
			continue
		}
		report.add(item)

		if item.ReplayErr != nil {
			logger.Debug("replay stopped",
				zap.String("path", item.Path),
				zap.Int("game", item.Index),
				zap.Error(item.ReplayErr))
		}
		for _, me := range item.Game.Errors {
			logger.Debug("unparseable move",
				zap.String("path", item.Path),
				zap.Int("game", item.Index),
				zap.Error(me))
		}

		if r.Sink != nil {
			if err := r.Sink.Accept(item); err != nil {
				return err
			}
		}
	}
	return ctx.Err()
}
