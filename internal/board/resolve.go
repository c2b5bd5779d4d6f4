package board

import "fmt"

// Resolve finds the square the moving piece of m starts from. It reads the
// board and never changes it.
//
// Candidates are the side's pieces of the right type that can reach the
// destination geometrically and agree with the origin hint. When that
// leaves more than one, pieces pinned to their own king are dropped, since
// SAN never disambiguates against a pinned piece.
func (s *Snapshot) Resolve(m Move) (Square, error) {
	if m.Kind == KindCastle {
		return NoSquare, &SANError{Token: m.String(), Err: fmt.Errorf("%w: castling has no single origin", ErrInvalidSAN)}
	}
	if !m.To.IsValid() {
		return NoSquare, &SANError{Token: m.String(), Err: ErrNoDestination}
	}

	candidates := s.reachers(m) & s.Pieces(NewPiece(m.Piece, m.Side))
	if m.Origin.File.IsValid() {
		candidates &= FileMask(m.Origin.File)
	}
	if m.Origin.Rank.IsValid() {
		candidates &= RankMask(m.Origin.Rank)
	}

	if candidates.PopCount() > 1 {
		var free Bitboard
		for bb := candidates; bb != 0; {
			from := bb.PopLSB()
			if !s.pinned(from, m.To, m.Side) {
				free |= SquareBB(from)
			}
		}
		if free != 0 {
			candidates = free
		}
	}

	switch candidates.PopCount() {
	case 0:
		return NoSquare, &SANError{Token: m.String(), Err: ErrNoOrigin}
	case 1:
		return candidates.LSB(), nil
	default:
		return NoSquare, &SANError{
			Token: m.String(),
			Err:   fmt.Errorf("%w: candidates %v", ErrAmbiguous, candidates.Squares()),
		}
	}
}

// reachers returns the squares from which a piece of m's type and side
// could move to m.To on this board.
func (s *Snapshot) reachers(m Move) Bitboard {
	occ := s.Occupied()
	to := m.To

	switch m.Piece {
	case Knight:
		return KnightAttacks(to)
	case Bishop:
		return BishopAttacks(to, occ)
	case Rook:
		return RookAttacks(to, occ)
	case Queen:
		return QueenAttacks(to, occ)
	case King:
		return KingAttacks(to)
	case Pawn:
		if m.IsCapture() {
			// Squares a pawn of m.Side attacks to from are those an
			// enemy pawn on to would attack.
			return PawnAttacks(to, m.Side.Other())
		}
		dir := 1
		if m.Side == Black {
			dir = -1
		}
		one := to.Offset(0, -dir)
		if one == NoSquare {
			return 0
		}
		if !s.IsEmpty(one) {
			return SquareBB(one)
		}
		double := Rank4
		if m.Side == Black {
			double = Rank5
		}
		if to.Rank() == double {
			return SquareBB(one.Offset(0, -dir))
		}
	}
	return 0
}

// pinned reports whether moving the piece on from to to would uncover an
// attack on the king of side along a line.
func (s *Snapshot) pinned(from, to Square, side Color) bool {
	king := s.Pieces(NewPiece(King, side)).LSB()
	if king == NoSquare || king == from {
		return false
	}

	occ := (s.Occupied() &^ SquareBB(from)) | SquareBB(to)
	them := side.Other()
	notCaptured := ^SquareBB(to)

	diagonal := (s.Pieces(NewPiece(Bishop, them)) | s.Pieces(NewPiece(Queen, them))) & notCaptured
	straight := (s.Pieces(NewPiece(Rook, them)) | s.Pieces(NewPiece(Queen, them))) & notCaptured

	return BishopAttacks(king, occ)&diagonal != 0 || RookAttacks(king, occ)&straight != 0
}
