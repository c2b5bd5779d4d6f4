// Package render draws board snapshots as text diagrams and PNG images.
package render

import (
	"strings"

	"github.com/hailam/pgnkit/internal/board"
)

// Text returns an 8x8 diagram with White at the bottom, rank numbers on the
// left and file letters underneath. Empty squares are dots.
func Text(s board.Snapshot) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		rank := board.Rank(r)
		sb.WriteString(rank.String())
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			p := s.PieceAt(board.NewSquare(rank, board.File(f)))
			if p == board.NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
