package board

import (
	"strings"
)

// ParseSAN parses one SAN token played by side into a Move.
//
// Only the text is consulted: no board is needed and none is changed. A
// missing piece letter means a pawn. Errors are *SANError values wrapping
// ErrInvalidSAN, ErrUnknownPiece or ErrNoDestination.
func ParseSAN(token string, side Color) (Move, error) {
	fail := func(err error) (Move, error) {
		return Move{}, &SANError{Token: token, Err: err}
	}

	m := Move{
		Side:      side,
		Origin:    NoOrigin,
		To:        NoSquare,
		Promotion: NoPieceType,
	}

	s, annotation, enPassant := stripSuffixes(strings.TrimSpace(token))
	m.Annotation = annotation
	if s == "" {
		return fail(ErrInvalidSAN)
	}

	// Castling
	switch s {
	case "O-O", "0-0":
		m.Castle = Kingside
	case "O-O-O", "0-0-0":
		m.Castle = Queenside
	}
	if m.Castle != NoCastle {
		if enPassant {
			return fail(ErrInvalidSAN)
		}
		m.Piece = King
		m.Kind = KindCastle
		return m, nil
	}

	// Promotion, with or without '='
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx != len(s)-2 {
			return fail(ErrInvalidSAN)
		}
		pt, ok := PieceTypeFromLetter(s[idx+1])
		if !ok {
			return fail(ErrUnknownPiece)
		}
		m.Promotion = pt
		s = s[:idx]
	} else if n := len(s); n >= 3 && isUpper(s[n-1]) && isRankChar(s[n-2]) {
		pt, ok := PieceTypeFromLetter(s[n-1])
		if !ok {
			return fail(ErrUnknownPiece)
		}
		m.Promotion = pt
		s = s[:n-1]
	}
	if m.Promotion != NoPieceType && (m.Promotion == Pawn || m.Promotion == King) {
		return fail(ErrInvalidSAN)
	}

	// Capture marker, which must sit right before the destination
	if idx := strings.IndexByte(s, 'x'); idx >= 0 {
		if idx != len(s)-3 {
			return fail(ErrInvalidSAN)
		}
		m.Capture = true
		s = s[:idx] + s[idx+1:]
	}

	// Destination square
	if len(s) < 2 {
		return fail(ErrNoDestination)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil || !isFileChar(s[len(s)-2]) {
		return fail(ErrNoDestination)
	}
	m.To = dest
	s = s[:len(s)-2]

	// Piece letter
	m.Piece = Pawn
	if len(s) > 0 && isUpper(s[0]) {
		pt, ok := PieceTypeFromLetter(s[0])
		if !ok {
			return fail(ErrUnknownPiece)
		}
		m.Piece = pt
		s = s[1:]
	}

	// Disambiguation: an optional file followed by an optional rank
	if len(s) > 2 {
		return fail(ErrInvalidSAN)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isFileChar(c) && !m.Origin.File.IsValid() && !m.Origin.Rank.IsValid():
			m.Origin.File, _ = fileFromByte(c)
		case isRankChar(c) && !m.Origin.Rank.IsValid():
			m.Origin.Rank, _ = rankFromByte(c)
		default:
			return fail(ErrInvalidSAN)
		}
	}

	switch {
	case m.Promotion != NoPieceType:
		if m.Piece != Pawn || enPassant {
			return fail(ErrInvalidSAN)
		}
		m.Kind = KindPromotion
	case enPassant:
		if m.Piece != Pawn || !m.Capture {
			return fail(ErrInvalidSAN)
		}
		m.Kind = KindEnPassant
	case m.Capture:
		m.Kind = KindCapture
	default:
		m.Kind = KindMove
	}
	return m, nil
}

// stripSuffixes removes trailing check, mate, en passant and annotation
// glyph markers in any order.
func stripSuffixes(s string) (core string, a Annotation, enPassant bool) {
	for {
		switch {
		case strings.HasSuffix(s, "#"):
			a = Checkmate
			s = s[:len(s)-1]
		case strings.HasSuffix(s, "+"):
			if a == NoAnnotation {
				a = Check
			}
			s = s[:len(s)-1]
		case strings.HasSuffix(s, "!"), strings.HasSuffix(s, "?"):
			s = s[:len(s)-1]
		case strings.HasSuffix(s, "e.p."):
			enPassant = true
			s = s[:len(s)-4]
		case strings.HasSuffix(s, "e.p"):
			enPassant = true
			s = s[:len(s)-3]
		default:
			return s, a, enPassant
		}
		s = strings.TrimRight(s, " ")
	}
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isFileChar(c byte) bool {
	return c >= 'a' && c <= 'h'
}

func isRankChar(c byte) bool {
	return c >= '1' && c <= '8'
}

// MovesToSAN formats a slice of moves as SAN tokens.
func MovesToSAN(moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = m.String()
	}
	return result
}
