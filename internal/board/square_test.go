package board

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			rank, file := RankFromIndex(r), FileFromIndex(f)
			sq := NewSquare(rank, file)
			if sq.Rank() != rank {
				t.Errorf("NewSquare(%v, %v).Rank() = %v", rank, file, sq.Rank())
			}
			if sq.File() != file {
				t.Errorf("NewSquare(%v, %v).File() = %v", rank, file, sq.File())
			}
			if sq.Index() != r*8+f {
				t.Errorf("NewSquare(%v, %v).Index() = %d, want %d", rank, file, sq.Index(), r*8+f)
			}
		}
	}
}

func TestSquareIndex(t *testing.T) {
	for i := 0; i < 64; i++ {
		if got := SquareFromIndex(i).Index(); got != i {
			t.Errorf("SquareFromIndex(%d).Index() = %d", i, got)
		}
	}
	if SquareFromIndex(64) != NoSquare || SquareFromIndex(-1) != NoSquare {
		t.Error("out of range indices should give NoSquare")
	}
	if Square(32).Rank() != Rank5 || Square(32).File() != FileA {
		t.Errorf("Square(32) = %v, want a5", Square(32))
	}
}

func TestIndexMasking(t *testing.T) {
	// Only the low 3 bits select the file or rank.
	tests := []struct {
		in   int
		file File
		rank Rank
	}{
		{0, FileA, Rank1},
		{7, FileH, Rank8},
		{8, FileA, Rank1},
		{13, FileF, Rank6},
		{255, FileH, Rank8},
		{-1, FileH, Rank8},
	}
	for _, tt := range tests {
		if got := FileFromIndex(tt.in); got != tt.file {
			t.Errorf("FileFromIndex(%d) = %v, want %v", tt.in, got, tt.file)
		}
		if got := RankFromIndex(tt.in); got != tt.rank {
			t.Errorf("RankFromIndex(%d) = %v, want %v", tt.in, got, tt.rank)
		}
	}
	for i := 0; i < 8; i++ {
		if FileFromIndex(i).Index() != i || RankFromIndex(i).Index() != i {
			t.Errorf("index %d does not round-trip", i)
		}
	}
}

func TestParseCoordinates(t *testing.T) {
	if f, ok := ParseFile("e"); !ok || f != FileE {
		t.Errorf("ParseFile(e) = %v, %v", f, ok)
	}
	if f, ok := ParseFile("C"); !ok || f != FileC {
		t.Errorf("ParseFile(C) = %v, %v", f, ok)
	}
	for _, s := range []string{"", "i", "ab", "1", " "} {
		if _, ok := ParseFile(s); ok {
			t.Errorf("ParseFile(%q) should not parse", s)
		}
	}

	if r, ok := ParseRank("8"); !ok || r != Rank8 {
		t.Errorf("ParseRank(8) = %v, %v", r, ok)
	}
	for _, s := range []string{"", "0", "9", "12", "a"} {
		if _, ok := ParseRank(s); ok {
			t.Errorf("ParseRank(%q) should not parse", s)
		}
	}

	sq, err := ParseSquare("e4")
	if err != nil || sq != E4 {
		t.Errorf("ParseSquare(e4) = %v, %v", sq, err)
	}
	if _, err := ParseSquare("z9"); err == nil {
		t.Error("ParseSquare(z9) should fail")
	}
}

func TestCoordinate(t *testing.T) {
	f, r := H8.Coordinate()
	if f != 7 || r != 7 {
		t.Errorf("H8.Coordinate() = (%d, %d)", f, r)
	}
	f, r = C2.Coordinate()
	if f != 2 || r != 1 {
		t.Errorf("C2.Coordinate() = (%d, %d)", f, r)
	}
	if E4.String() != "e4" || NoSquare.String() != "-" {
		t.Errorf("String: %s %s", E4, NoSquare)
	}
}

func TestOffset(t *testing.T) {
	if E4.Offset(1, 1) != F5 {
		t.Errorf("E4.Offset(1,1) = %v", E4.Offset(1, 1))
	}
	if H1.Offset(1, 0) != NoSquare || A8.Offset(0, 1) != NoSquare {
		t.Error("offsets off the board should give NoSquare")
	}
}
