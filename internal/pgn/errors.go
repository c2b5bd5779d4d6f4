package pgn

import (
	"errors"
	"fmt"

	"github.com/hailam/pgnkit/internal/board"
)

var (
	// ErrMalformedTag is returned when a tag line has no quoted value.
	ErrMalformedTag = errors.New("malformed tag line")

	// ErrNoGame is returned when a transcript holds no tags, moves or result.
	ErrNoGame = errors.New("no game found")
)

// TagError is the hard error for a malformed tag line.
type TagError struct {
	Line int
	Text string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, ErrMalformedTag, e.Text)
}

func (e *TagError) Unwrap() error {
	return ErrMalformedTag
}

// MoveError is the recoverable error for one move token.
type MoveError struct {
	Number int
	Side   board.Color
	Token  string
	Err    error
}

func (e *MoveError) Error() string {
	dots := "."
	if e.Side == board.Black {
		dots = "..."
	}
	return fmt.Sprintf("move %d%s %s: %v", e.Number, dots, e.Token, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ReplayError reports the ply at which a replay stopped.
type ReplayError struct {
	Ply  int
	Move board.Move
	Err  error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("replay ply %d (%s): %v", e.Ply, e.Move, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}
