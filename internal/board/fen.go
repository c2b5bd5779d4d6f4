package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN reads the piece placement and side-to-move fields of a FEN
// string. Castling rights, en passant and clocks are accepted but not kept;
// replay does not need them.
func ParseFEN(fen string) (Snapshot, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return Snapshot{}, NoColor, fmt.Errorf("invalid FEN: empty")
	}

	s, err := parsePiecePlacement(parts[0])
	if err != nil {
		return Snapshot{}, NoColor, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			side = White
		case "b":
			side = Black
		default:
			return Snapshot{}, NoColor, fmt.Errorf("invalid side to move: %s", parts[1])
		}
	}

	return s, side, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement string) (Snapshot, error) {
	var s Snapshot

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return s, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := RankFromIndex(7 - i) // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return s, fmt.Errorf("too many squares in rank %s", rank)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return s, fmt.Errorf("invalid piece character: %c", c)
			}
			s.Set(NewSquare(rank, FileFromIndex(file)), piece)
			file++
		}

		if file != 8 {
			return s, fmt.Errorf("invalid number of squares in rank %s: got %d", rank, file)
		}
	}

	return s, nil
}

// Placement returns the piece placement field of the board's FEN.
func (s *Snapshot) Placement() string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			piece := s.PieceAt(NewSquare(RankFromIndex(r), FileFromIndex(f)))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// FEN returns placement and side to move. The remaining fields are written
// as "- - 0 1" since a snapshot does not track them.
func (s *Snapshot) FEN(side Color) string {
	stm := "w"
	if side == Black {
		stm = "b"
	}
	return s.Placement() + " " + stm + " - - 0 1"
}
