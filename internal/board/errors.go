package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSAN is returned for a token that does not follow the SAN grammar.
	ErrInvalidSAN = errors.New("invalid SAN")

	// ErrUnknownPiece is returned for a piece letter outside KQRBNP.
	ErrUnknownPiece = errors.New("unknown piece letter")

	// ErrNoDestination is returned when a token does not end in a square.
	ErrNoDestination = errors.New("missing destination square")

	// ErrNoOrigin is returned by Apply when no piece can make the move.
	ErrNoOrigin = errors.New("no piece can make the move")

	// ErrAmbiguous is returned by Apply when several pieces can make the move.
	ErrAmbiguous = errors.New("move is ambiguous")
)

// SANError records a token that could not be parsed or applied.
type SANError struct {
	Token string
	Err   error
}

func (e *SANError) Error() string {
	return fmt.Sprintf("%q: %v", e.Token, e.Err)
}

func (e *SANError) Unwrap() error {
	return e.Err
}
