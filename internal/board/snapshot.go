package board

import "fmt"

// Snapshot is an 8x8 grid of optional pieces. It is a plain value: copying
// it gives an independent board, so concurrent replays never share one.
// The zero value is an empty board.
type Snapshot struct {
	// cells holds piece+1, with 0 for an empty square.
	cells [64]uint8
}

// NewSnapshot returns an empty board.
func NewSnapshot() Snapshot {
	return Snapshot{}
}

// StartSnapshot returns the standard starting position.
func StartSnapshot() Snapshot {
	s, _, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return s
}

// WithPieces returns a board holding exactly the given pieces.
func WithPieces(pieces map[Square]Piece) Snapshot {
	s := NewSnapshot()
	for sq, p := range pieces {
		s.Set(sq, p)
	}
	return s
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (s *Snapshot) PieceAt(sq Square) Piece {
	if !sq.IsValid() || s.cells[sq] == 0 {
		return NoPiece
	}
	return Piece(s.cells[sq] - 1)
}

// IsEmpty returns true if the square is empty.
func (s *Snapshot) IsEmpty(sq Square) bool {
	return s.PieceAt(sq) == NoPiece
}

// Set places p on sq. NoPiece clears the square.
func (s *Snapshot) Set(sq Square, p Piece) {
	if !sq.IsValid() {
		return
	}
	if p >= NoPiece {
		s.cells[sq] = 0
		return
	}
	s.cells[sq] = uint8(p) + 1
}

// Occupied returns every occupied square.
func (s *Snapshot) Occupied() Bitboard {
	var bb Bitboard
	for sq, c := range s.cells {
		if c != 0 {
			bb |= SquareBB(Square(sq))
		}
	}
	return bb
}

// Pieces returns the squares holding p.
func (s *Snapshot) Pieces(p Piece) Bitboard {
	var bb Bitboard
	if p >= NoPiece {
		return ^s.Occupied()
	}
	for sq, c := range s.cells {
		if c == uint8(p)+1 {
			bb |= SquareBB(Square(sq))
		}
	}
	return bb
}

// Apply plays m onto the board. The origin is found from the move's hint
// and piece geometry; rules beyond that are not checked. On error the board
// is left unchanged.
func (s *Snapshot) Apply(m Move) error {
	if m.Kind == KindCastle {
		return s.applyCastle(m)
	}

	from, err := s.Resolve(m)
	if err != nil {
		return err
	}

	// A pawn that moves diagonally onto an empty square takes en passant,
	// which needs an enemy pawn beside it.
	passed := NoSquare
	if m.Piece == Pawn && from.File() != m.To.File() && s.IsEmpty(m.To) {
		passed = NewSquare(from.Rank(), m.To.File())
		if s.PieceAt(passed) != NewPiece(Pawn, m.Side.Other()) {
			return &SANError{Token: m.String(), Err: fmt.Errorf("%w: nothing to take on %s", ErrNoOrigin, m.To)}
		}
	}

	moving := s.PieceAt(from)
	s.Set(from, NoPiece)
	if passed != NoSquare {
		s.Set(passed, NoPiece)
	}

	if m.Kind == KindPromotion {
		moving = NewPiece(m.Promotion, m.Side)
	}
	s.Set(m.To, moving)
	return nil
}

func (s *Snapshot) applyCastle(m Move) error {
	back := Rank1
	if m.Side == Black {
		back = Rank8
	}
	king := NewPiece(King, m.Side)
	rook := NewPiece(Rook, m.Side)

	kingFrom := NewSquare(back, FileE)
	kingTo, rookFrom, rookTo := NewSquare(back, FileG), NewSquare(back, FileH), NewSquare(back, FileF)
	if m.Castle == Queenside {
		kingTo, rookFrom, rookTo = NewSquare(back, FileC), NewSquare(back, FileA), NewSquare(back, FileD)
	}

	if s.PieceAt(kingFrom) != king || s.PieceAt(rookFrom) != rook {
		return &SANError{Token: m.String(), Err: fmt.Errorf("%w: no king and rook to castle %s", ErrNoOrigin, m.Castle)}
	}
	if Between(kingFrom, rookFrom)&s.Occupied() != 0 {
		return &SANError{Token: m.String(), Err: fmt.Errorf("%w: castling path is blocked", ErrNoOrigin)}
	}

	s.Set(kingFrom, NoPiece)
	s.Set(rookFrom, NoPiece)
	s.Set(kingTo, king)
	s.Set(rookTo, rook)
	return nil
}

// String returns a compact diagram of the board, rank 8 first.
func (s Snapshot) String() string {
	var out []byte
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			p := s.PieceAt(NewSquare(RankFromIndex(r), FileFromIndex(f)))
			if p == NoPiece {
				out = append(out, '.')
			} else {
				out = append(out, p.String()...)
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
