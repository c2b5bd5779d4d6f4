// Package pgn parses tagged game records into typed moves, tags and a
// result. Parsing is pure: a call keeps no state between transcripts and
// may run concurrently with others.
package pgn

import (
	"go.uber.org/multierr"

	"github.com/hailam/pgnkit/internal/board"
)

// Result is the outcome of a game. The zero value is Unknown.
type Result uint8

const (
	Unknown Result = iota
	WhiteWins
	BlackWins
	Draw
)

// Result markers as they appear in move text and the Result tag.
const (
	MarkerWhiteWins = "1-0"
	MarkerBlackWins = "0-1"
	MarkerDraw      = "1/2-1/2"
	MarkerUnknown   = "*"
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "WhiteWins"
	case BlackWins:
		return "BlackWins"
	case Draw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// Marker returns the PGN token for the result.
func (r Result) Marker() string {
	switch r {
	case WhiteWins:
		return MarkerWhiteWins
	case BlackWins:
		return MarkerBlackWins
	case Draw:
		return MarkerDraw
	default:
		return MarkerUnknown
	}
}

// Turn is one move-number record. Black is empty when the game stops
// after White's move.
type Turn struct {
	Number int
	White  string
	Black  string
}

// Game is the parsed form of one transcript.
type Game struct {
	Tags   map[string]string
	Moves  []board.Move
	Turns  []Turn
	Result Result

	// Errors holds one entry per token that could not be parsed. The
	// token is left out of Moves.
	Errors []*MoveError
}

// Tag returns the value of a tag and whether it was present.
func (g *Game) Tag(key string) (string, bool) {
	v, ok := g.Tags[key]
	return v, ok
}

// Err combines every per-move error, or returns nil if all tokens parsed.
func (g *Game) Err() error {
	var err error
	for _, e := range g.Errors {
		err = multierr.Append(err, e)
	}
	return err
}
