package storage

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/hailam/pgnkit/internal/pgn"
)

const foolsMate = `[Event "Fool"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func mustParse(t *testing.T, text string) *pgn.Game {
	t.Helper()
	g, err := pgn.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestArchivePutGet(t *testing.T) {
	a := openTestArchive(t)
	g := mustParse(t, foolsMate)

	key, added, err := a.Put(foolsMate, g)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !added || key != Key(foolsMate) {
		t.Errorf("Put = %x, %v", key, added)
	}

	rec, err := a.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := []string{"f3", "e5", "g4", "Qh4#"}; !reflect.DeepEqual(rec.Moves, want) {
		t.Errorf("Moves = %v, want %v", rec.Moves, want)
	}
	if rec.Result != "0-1" || rec.Tags["Event"] != "Fool" || rec.Raw != foolsMate {
		t.Errorf("record = %+v", rec)
	}

	if _, err := a.Get(key + 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestArchiveStats(t *testing.T) {
	a := openTestArchive(t)

	stats, err := a.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Games != 0 || stats.BadMoveRate() != 0 {
		t.Errorf("fresh stats = %+v", stats)
	}

	broken := "1. e4 Zz9 2. Nf3 1/2-1/2"
	for _, text := range []string{foolsMate, broken, foolsMate} {
		if _, _, err := a.Put(text, mustParse(t, text)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := a.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2 (duplicates are skipped)", n)
	}

	stats, err = a.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Games != 2 || stats.Moves != 6 || stats.BadMoves != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Results["0-1"] != 1 || stats.Results["1/2-1/2"] != 1 {
		t.Errorf("Results = %v", stats.Results)
	}

	if err := a.RecordGame(mustParse(t, foolsMate)); err != nil {
		t.Fatal(err)
	}
	stats, _ = a.LoadStats()
	if stats.Games != 3 {
		t.Errorf("Games after RecordGame = %d, want 3", stats.Games)
	}
}

func TestBadMoveRate(t *testing.T) {
	stats := &ParseStats{Moves: 9, BadMoves: 1}
	if rate := stats.BadMoveRate(); rate != 10 {
		t.Errorf("Expected 10%% bad moves, got %.2f%%", rate)
	}
}

func TestArchiveReopen(t *testing.T) {
	dir := t.TempDir()
	a, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	key, _, err := a.Put(foolsMate, mustParse(t, foolsMate))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if _, err := b.Get(key); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("DataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory: %v", err)
	}
}
