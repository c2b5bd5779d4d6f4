// Package board implements the coordinate, piece and move model of a chess
// game record, together with a SAN parser and a board snapshot used to replay
// parsed moves.
package board

import "fmt"

// File is a board column, FileA through FileH.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	NoFile File = 8
)

// Rank is a board row, Rank1 through Rank8.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	NoRank Rank = 8
)

var (
	allFiles = [8]File{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}
	allRanks = [8]Rank{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}
)

// ParseFile accepts a single file letter, upper or lower case.
// ok is false for anything else; that is not an error.
func ParseFile(s string) (File, bool) {
	if len(s) != 1 {
		return NoFile, false
	}
	return fileFromByte(s[0])
}

func fileFromByte(c byte) (File, bool) {
	switch {
	case c >= 'a' && c <= 'h':
		return allFiles[c-'a'], true
	case c >= 'A' && c <= 'H':
		return allFiles[c-'A'], true
	}
	return NoFile, false
}

// FileFromIndex maps 0-7 to a file. Only the low 3 bits of i are used, so
// every input maps to a valid file.
func FileFromIndex(i int) File {
	return allFiles[i&7]
}

// Index returns 0 for FileA through 7 for FileH.
func (f File) Index() int {
	return int(f)
}

// IsValid reports whether f is one of FileA..FileH.
func (f File) IsValid() bool {
	return f < NoFile
}

func (f File) String() string {
	if !f.IsValid() {
		return "-"
	}
	return string(rune('a' + f))
}

// ParseRank accepts a single rank digit 1-8.
func ParseRank(s string) (Rank, bool) {
	if len(s) != 1 {
		return NoRank, false
	}
	return rankFromByte(s[0])
}

func rankFromByte(c byte) (Rank, bool) {
	if c >= '1' && c <= '8' {
		return allRanks[c-'1'], true
	}
	return NoRank, false
}

// RankFromIndex maps 0-7 to a rank. Only the low 3 bits of i are used.
func RankFromIndex(i int) Rank {
	return allRanks[i&7]
}

// Index returns 0 for Rank1 through 7 for Rank8.
func (r Rank) Index() int {
	return int(r)
}

// IsValid reports whether r is one of Rank1..Rank8.
func (r Rank) IsValid() bool {
	return r < NoRank
}

func (r Rank) String() string {
	if !r.IsValid() {
		return "-"
	}
	return string(rune('1' + r))
}

// Square represents a square on the chess board (0-63).
// The rank occupies the high 3 bits and the file the low 3 bits:
// A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare packs a rank and file into a square.
func NewSquare(r Rank, f File) Square {
	return Square(r&7)<<3 | Square(f&7)
}

// SquareFromIndex returns the square with the given 0-63 index, or NoSquare.
func SquareFromIndex(i int) Square {
	if i < 0 || i > 63 {
		return NoSquare
	}
	return Square(i)
}

// File returns the column of the square.
func (sq Square) File() File {
	return FileFromIndex(int(sq))
}

// Rank returns the row of the square.
func (sq Square) Rank() Rank {
	return RankFromIndex(int(sq) >> 3)
}

// Index returns the flat 0-63 index.
func (sq Square) Index() int {
	return int(sq)
}

// Coordinate returns (file, rank) as signed indices for geometric use.
func (sq Square) Coordinate() (int8, int8) {
	return int8(sq.File()), int8(sq.Rank())
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	f, okf := fileFromByte(s[0])
	r, okr := rankFromByte(s[1])
	if !okf || !okr {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return NewSquare(r, f), nil
}

// Offset returns the square df files and dr ranks away, or NoSquare if that
// leaves the board.
func (sq Square) Offset(df, dr int) Square {
	f := int(sq.File()) + df
	r := int(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return Square(r*8 + f)
}
