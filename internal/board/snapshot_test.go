package board

import (
	"errors"
	"testing"
)

func mustSAN(t *testing.T, san string, side Color) Move {
	t.Helper()
	m, err := ParseSAN(san, side)
	if err != nil {
		t.Fatalf("ParseSAN(%q): %v", san, err)
	}
	return m
}

func play(t *testing.T, s *Snapshot, moves ...string) {
	t.Helper()
	side := White
	for _, san := range moves {
		if err := s.Apply(mustSAN(t, san, side)); err != nil {
			t.Fatalf("Apply(%q): %v", san, err)
		}
		side = side.Other()
	}
}

func TestEmptySnapshot(t *testing.T) {
	var s Snapshot
	if !s.IsEmpty(A1) || !s.IsEmpty(H8) {
		t.Error("zero Snapshot should be empty")
	}
	if s.Occupied() != 0 {
		t.Errorf("Occupied() = %x", uint64(s.Occupied()))
	}
}

func TestWithPieces(t *testing.T) {
	s := WithPieces(map[Square]Piece{A1: WhitePawn})
	if s.PieceAt(A1) != WhitePawn {
		t.Errorf("PieceAt(A1) = %v", s.PieceAt(A1))
	}
	if s.Occupied().PopCount() != 1 {
		t.Errorf("expected one piece, got %d", s.Occupied().PopCount())
	}
}

func TestStartSnapshot(t *testing.T) {
	s := StartSnapshot()
	if s.PieceAt(E1) != WhiteKing || s.PieceAt(D8) != BlackQueen || s.PieceAt(G1) != WhiteKnight {
		t.Errorf("unexpected start position:\n%s", s)
	}
	if s.Occupied().PopCount() != 32 {
		t.Errorf("start position has %d pieces", s.Occupied().PopCount())
	}
}

func TestApplyOpening(t *testing.T) {
	s := StartSnapshot()
	play(t, &s, "e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6", "O-O", "Be7")

	want := map[Square]Piece{
		E4: WhitePawn, E5: BlackPawn, F3: WhiteKnight, C6: BlackKnight,
		A4: WhiteBishop, A6: BlackPawn, F6: BlackKnight, G1: WhiteKing,
		F1: WhiteRook, E7: BlackBishop,
	}
	for sq, p := range want {
		if got := s.PieceAt(sq); got != p {
			t.Errorf("%v: got %v, want %v", sq, got, p)
		}
	}
	for _, sq := range []Square{E2, E1, H1, G8, B5} {
		if !s.IsEmpty(sq) {
			t.Errorf("%v should be empty, has %v", sq, s.PieceAt(sq))
		}
	}
}

func TestApplyQueensideCastle(t *testing.T) {
	s, _, err := ParseFEN("r3k3/8/8/8/8/8/8/4K3 b q - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(mustSAN(t, "O-O-O", Black)); err != nil {
		t.Fatal(err)
	}
	if s.PieceAt(C8) != BlackKing || s.PieceAt(D8) != BlackRook || !s.IsEmpty(A8) || !s.IsEmpty(E8) {
		t.Errorf("bad castle:\n%s", s)
	}
}

func TestApplyCastleBlocked(t *testing.T) {
	s := StartSnapshot()
	err := s.Apply(mustSAN(t, "O-O", White))
	if !errors.Is(err, ErrNoOrigin) {
		t.Fatalf("expected ErrNoOrigin, got %v", err)
	}
	if s != StartSnapshot() {
		t.Error("failed castle must not change the board")
	}
}

func TestApplyEnPassant(t *testing.T) {
	s := StartSnapshot()
	play(t, &s, "e4", "a6", "e5", "d5", "exd6 e.p.")
	if s.PieceAt(D6) != WhitePawn {
		t.Errorf("d6 = %v", s.PieceAt(D6))
	}
	if !s.IsEmpty(D5) || !s.IsEmpty(E5) {
		t.Errorf("captured pawn not removed:\n%s", s)
	}
}

func TestApplyEnPassantNeedsEnemyPawn(t *testing.T) {
	tests := []struct {
		name   string
		beside Piece
	}{
		{"knight", BlackKnight},
		{"own pawn", WhitePawn},
		{"empty", NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := WithPieces(map[Square]Piece{E5: WhitePawn, D5: tt.beside})
			before := s

			err := s.Apply(mustSAN(t, "exd6", White))
			if !errors.Is(err, ErrNoOrigin) {
				t.Errorf("Apply(exd6) error = %v, want ErrNoOrigin", err)
			}
			if s != before {
				t.Errorf("board changed after a failed move:\n%s", s)
			}
		})
	}
}

func TestApplyPromotion(t *testing.T) {
	s, _, err := ParseFEN("1r5k/P7/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(mustSAN(t, "axb8=N", White)); err != nil {
		t.Fatal(err)
	}
	if s.PieceAt(B8) != WhiteKnight || !s.IsEmpty(A7) {
		t.Errorf("bad promotion:\n%s", s)
	}
}

func TestResolveDisambiguation(t *testing.T) {
	s, _, err := ParseFEN("3r1r1k/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Resolve(mustSAN(t, "Re8", Black))
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("Re8 should be ambiguous, got %v", err)
	}

	from, err := s.Resolve(mustSAN(t, "Rde8", Black))
	if err != nil || from != D8 {
		t.Errorf("Rde8 resolved to %v, %v", from, err)
	}
	from, err = s.Resolve(mustSAN(t, "Rfe8", Black))
	if err != nil || from != F8 {
		t.Errorf("Rfe8 resolved to %v, %v", from, err)
	}
}

func TestResolveSkipsPinnedPiece(t *testing.T) {
	// The knight on e2 is pinned by the rook on e8, so Nc3 must be the b1 knight.
	s, _, err := ParseFEN("4r2k/8/8/8/8/8/4N3/1N2K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	from, err := s.Resolve(mustSAN(t, "Nc3", White))
	if err != nil || from != B1 {
		t.Errorf("Nc3 resolved to %v, %v", from, err)
	}
}

func TestResolveNoOrigin(t *testing.T) {
	s := StartSnapshot()
	_, err := s.Resolve(mustSAN(t, "Qh5", White))
	if !errors.Is(err, ErrNoOrigin) {
		t.Errorf("Qh5 from the start should have no origin, got %v", err)
	}
	_, err = s.Resolve(mustSAN(t, "e5", White))
	if !errors.Is(err, ErrNoOrigin) {
		t.Errorf("e5 from the start should have no origin, got %v", err)
	}
}

func TestFEN(t *testing.T) {
	s := StartSnapshot()
	if got := s.FEN(White); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1" {
		t.Errorf("FEN() = %q", got)
	}

	play(t, &s, "e4")
	if got := s.Placement(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR" {
		t.Errorf("Placement() = %q", got)
	}

	for _, bad := range []string{"", "8/8/8", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w", "8/8/8/8/8/8/8/8 x"} {
		if _, _, err := ParseFEN(bad); err == nil {
			t.Errorf("ParseFEN(%q) should fail", bad)
		}
	}
}
