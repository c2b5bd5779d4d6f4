package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/hailam/pgnkit/internal/board"
	"github.com/hailam/pgnkit/internal/pgn"
)

// Storage keys
const (
	gamePrefix = "game/"
	keyStats   = "stats"
)

// ErrNotFound is returned by Get for a key that was never stored.
var ErrNotFound = errors.New("game not found")

// GameRecord is the archived form of a parsed game.
type GameRecord struct {
	Key      uint64            `json:"key"`
	Tags     map[string]string `json:"tags"`
	Moves    []string          `json:"moves"`
	Result   string            `json:"result"`
	Errors   []string          `json:"errors,omitempty"`
	Raw      string            `json:"raw"`
	Archived time.Time         `json:"archived"`
}

// ParseStats accumulates over every game ever archived.
type ParseStats struct {
	Games    int            `json:"games"`
	Moves    int            `json:"moves"`
	BadMoves int            `json:"bad_moves"`
	Results  map[string]int `json:"results"`
	LastRun  time.Time      `json:"last_run"`
}

// NewParseStats returns empty statistics.
func NewParseStats() *ParseStats {
	return &ParseStats{Results: make(map[string]int)}
}

// BadMoveRate returns the share of unparseable moves as a percentage (0-100).
func (s *ParseStats) BadMoveRate() float64 {
	total := s.Moves + s.BadMoves
	if total == 0 {
		return 0
	}
	return float64(s.BadMoves) / float64(total) * 100
}

// Key returns the archive key of a raw transcript.
func Key(raw string) uint64 {
	return xxhash.Sum64String(raw)
}

func gameKey(key uint64) []byte {
	return []byte(fmt.Sprintf("%s%016x", gamePrefix, key))
}

// Archive wraps BadgerDB. Values are zstd-compressed JSON.
type Archive struct {
	db     *badger.DB
	logger *zap.Logger
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// Open opens the archive in dir, or in DatabaseDir when dir is empty.
func Open(dir string, logger *zap.Logger) (*Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}
	logger.Debug("opening archive", zap.String("dir", dir))

	opts := badger.DefaultOptions(dir)
	opts.Logger = newBadgerLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", dir, err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Archive{db: db, logger: logger, enc: enc, dec: dec}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	a.dec.Close()
	if err := a.enc.Close(); err != nil {
		a.logger.Warn("zstd encoder close", zap.Error(err))
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func newRecord(raw string, g *pgn.Game) *GameRecord {
	rec := &GameRecord{
		Key:      Key(raw),
		Tags:     g.Tags,
		Moves:    board.MovesToSAN(g.Moves),
		Result:   g.Result.Marker(),
		Raw:      raw,
		Archived: time.Now(),
	}
	for _, e := range g.Errors {
		rec.Errors = append(rec.Errors, e.Error())
	}
	return rec
}

// Put archives a game under the hash of its raw transcript and folds it
// into the statistics. A transcript already in the archive is left alone
// and Put reports false.
func (a *Archive) Put(raw string, g *pgn.Game) (uint64, bool, error) {
	rec := newRecord(raw, g)
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, false, err
	}
	value := a.enc.EncodeAll(data, nil)
	key := gameKey(rec.Key)

	added := false
	err = a.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		if err := txn.Set(key, value); err != nil {
			return err
		}

		stats, err := loadStats(txn, a.dec)
		if err != nil {
			return err
		}
		stats.record(g)
		added = true
		return saveStats(txn, a.enc, stats)
	})
	if err != nil {
		return 0, false, err
	}
	return rec.Key, added, nil
}

// Get loads an archived game.
func (a *Archive) Get(key uint64) (*GameRecord, error) {
	var rec GameRecord
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return a.decodeInto(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Count returns the number of archived games.
func (a *Archive) Count() (int, error) {
	n := 0
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// LoadStats loads the statistics, returns empty stats if none were saved
func (a *Archive) LoadStats() (*ParseStats, error) {
	var stats *ParseStats
	err := a.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn, a.dec)
		return err
	})
	return stats, err
}

// RecordGame folds a game into the statistics without archiving it.
func (a *Archive) RecordGame(g *pgn.Game) error {
	return a.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn, a.dec)
		if err != nil {
			return err
		}
		stats.record(g)
		return saveStats(txn, a.enc, stats)
	})
}

func (s *ParseStats) record(g *pgn.Game) {
	s.Games++
	s.Moves += len(g.Moves)
	s.BadMoves += len(g.Errors)
	s.Results[g.Result.Marker()]++
	s.LastRun = time.Now()
}

func loadStats(txn *badger.Txn, dec *zstd.Decoder) (*ParseStats, error) {
	stats := NewParseStats()
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		data, err := dec.DecodeAll(val, nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, stats)
	})
	if stats.Results == nil {
		stats.Results = make(map[string]int)
	}
	return stats, err
}

func saveStats(txn *badger.Txn, enc *zstd.Encoder, stats *ParseStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return txn.Set([]byte(keyStats), enc.EncodeAll(data, nil))
}

func (a *Archive) decodeInto(val []byte, v interface{}) error {
	data, err := a.dec.DecodeAll(val, nil)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	return json.Unmarshal(data, v)
}
