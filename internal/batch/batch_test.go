package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/pgnkit/internal/board"
	"github.com/hailam/pgnkit/internal/pgn"
)

const (
	twoGames = `[Event "Scholar"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0

[Event "Fool"]

1. f3 e5 2. g4 Qh4# 0-1
`
	badGames = `[Event "Broken"]

1. e4 Zz9 2. Nf3 1/2-1/2

[Event "Bad tag]
1. d4 *
`
)

func writeGames(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGames(t, dir, "a.pgn", twoGames),
		writeGames(t, dir, "b.pgn", badGames),
		filepath.Join(dir, "missing.pgn"),
	}

	var items []Item
	r := &Runner{
		Workers: 3,
		Logger:  zap.NewNop(),
		Sink: SinkFunc(func(item Item) error {
			items = append(items, item)
			return nil
		}),
	}

	report, err := r.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Games != 3 {
		t.Errorf("Games = %d, want 3", report.Games)
	}
	if report.Failed != 2 {
		t.Errorf("Failed = %d, want 2 (bad tag and missing file)", report.Failed)
	}
	if report.BadMoves != 1 {
		t.Errorf("BadMoves = %d, want 1", report.BadMoves)
	}
	if report.Files != 3 {
		t.Errorf("Files = %d, want 3", report.Files)
	}
	if report.Moves != 7+4+2 {
		t.Errorf("Moves = %d, want 13", report.Moves)
	}
	if report.Results[pgn.WhiteWins] != 1 || report.Results[pgn.BlackWins] != 1 || report.Results[pgn.Draw] != 1 {
		t.Errorf("Results = %v", report.Results)
	}

	if len(items) != 3 {
		t.Fatalf("sink got %d items, want 3", len(items))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Path != items[j].Path {
			return items[i].Path < items[j].Path
		}
		return items[i].Index < items[j].Index
	})
	if items[0].Final.PieceAt(board.F7) != board.WhiteQueen {
		t.Errorf("scholar's mate final board:\n%s", items[0].Final)
	}
	if items[1].Final.PieceAt(board.H4) != board.BlackQueen {
		t.Errorf("fool's mate final board:\n%s", items[1].Final)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeGames(t, dir, "a.pgn", twoGames)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Workers: 2}
	if _, err := r.Run(ctx, paths); !errors.Is(err, context.Canceled) {
		t.Errorf("Run on a cancelled context = %v", err)
	}
}

func TestRunSinkError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeGames(t, dir, "a.pgn", twoGames)}

	stop := errors.New("sink full")
	r := &Runner{Sink: SinkFunc(func(Item) error { return stop })}
	if _, err := r.Run(context.Background(), paths); !errors.Is(err, stop) {
		t.Errorf("Run = %v, want the sink error", err)
	}
}

func TestReportString(t *testing.T) {
	r := Report{Games: 12345, BadMoves: 2}
	if got, want := r.String(), "12,345 games parsed, 2 moves unparseable"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	r.Failed = 1
	if got, want := r.String(), "12,345 games parsed, 2 moves unparseable, 1 failed"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRunSinkErrorWhileLoading(t *testing.T) {
	dir := t.TempDir()
	var many strings.Builder
	for i := 0; i < 200; i++ {
		many.WriteString(twoGames)
	}
	paths := []string{writeGames(t, dir, "many.pgn", many.String())}
	for i := 0; i < 50; i++ {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("missing-%d.pgn", i)))
	}

	stop := errors.New("archive write failed")
	for round := 0; round < 20; round++ {
		r := &Runner{
			Workers: 1,
			Sink: SinkFunc(func(Item) error {
				time.Sleep(time.Millisecond)
				return stop
			}),
		}
		if _, err := r.Run(context.Background(), paths); !errors.Is(err, stop) {
			t.Fatalf("round %d: Run = %v, want the sink error", round, err)
		}
	}
}

func TestRunCountsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGames(t, dir, "empty.pgn", ""),
		writeGames(t, dir, "a.pgn", twoGames),
		filepath.Join(dir, "missing.pgn"),
	}

	report, err := (&Runner{Workers: 2}).Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	if report.Files != 3 || report.Games != 2 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
}
