package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hailam/pgnkit/internal/batch"
	"github.com/hailam/pgnkit/internal/pgn"
	"github.com/hailam/pgnkit/internal/render"
	"github.com/hailam/pgnkit/internal/storage"
)

// gameSink archives, prints and draws each parsed game.
type gameSink struct {
	out     io.Writer
	logger  *zap.Logger
	archive *storage.Archive
	board   bool
	pngDir  string
	pngSize int

	added int
}

var _ batch.Sink = (*gameSink)(nil)

func (s *gameSink) Accept(item batch.Item) error {
	if s.archive != nil {
		_, added, err := s.archive.Put(item.Raw, item.Game)
		if err != nil {
			return fmt.Errorf("archive %s game %d: %w", item.Path, item.Index, err)
		}
		if added {
			s.added++
		}
	}

	if s.board {
		fmt.Fprintf(s.out, "%s #%d: %s\n", filepath.Base(item.Path), item.Index, title(item.Game))
		if item.ReplayErr != nil {
			fmt.Fprintf(s.out, "  (replay stopped: %v)\n", item.ReplayErr)
		}
		fmt.Fprintln(s.out, render.Text(item.Final))
	}

	if s.pngDir != "" {
		name := pngName(item.Path, item.Index)
		if err := s.writePNG(name, item); err != nil {
			// A failed image does not invalidate the parse.
			s.logger.Warn("png not written", zap.String("file", name), zap.Error(err))
		}
	}
	return nil
}

func (s *gameSink) writePNG(name string, item batch.Item) error {
	f, err := os.Create(filepath.Join(s.pngDir, name))
	if err != nil {
		return err
	}
	if err := render.PNG(f, item.Final, s.pngSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pngName(path string, index int) string {
	base := filepath.Base(path)
	if i := strings.Index(strings.ToLower(base), ".pgn"); i > 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s-%04d.png", base, index)
}

func title(g *pgn.Game) string {
	white, _ := g.Tag(pgn.TagWhite)
	black, _ := g.Tag(pgn.TagBlack)
	if white == "" {
		white = "?"
	}
	if black == "" {
		black = "?"
	}
	return fmt.Sprintf("%s - %s %s", white, black, g.Result.Marker())
}
