package pgn

import (
	"fmt"

	"github.com/hailam/pgnkit/internal/board"
)

// StartPosition returns the board the game begins from: the FEN tag when
// present, otherwise the standard start.
func (g *Game) StartPosition() (board.Snapshot, error) {
	fen, ok := g.Tags[TagFEN]
	if !ok {
		return board.StartSnapshot(), nil
	}
	s, _, err := board.ParseFEN(fen)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("FEN tag: %w", err)
	}
	return s, nil
}

// Replay applies the moves in order and returns the board before the
// first move and after every move, so len(result) == len(Moves)+1 on
// success. It stops at the first move that cannot be placed and returns
// the boards so far with a *ReplayError. The game is not modified.
func (g *Game) Replay() ([]board.Snapshot, error) {
	start, err := g.StartPosition()
	if err != nil {
		return nil, &ReplayError{Ply: 0, Err: err}
	}

	boards := make([]board.Snapshot, 1, len(g.Moves)+1)
	boards[0] = start

	cur := start
	for i, m := range g.Moves {
		if err := cur.Apply(m); err != nil {
			return boards, &ReplayError{Ply: i + 1, Move: m, Err: err}
		}
		boards = append(boards, cur)
	}
	return boards, nil
}

// Final returns the board after the last move that could be replayed.
func (g *Game) Final() (board.Snapshot, error) {
	boards, err := g.Replay()
	if len(boards) == 0 {
		return board.Snapshot{}, err
	}
	return boards[len(boards)-1], err
}
