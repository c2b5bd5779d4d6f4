package pgn

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hailam/pgnkit/internal/board"
)

// moveNumber matches "12", "12.", "12..." and "12.e4".
var moveNumber = regexp.MustCompile(`^(\d+)(?:(\.+)(.*))?$`)

// halfMove is one move token with the number and side it belongs to.
type halfMove struct {
	number int
	side   board.Color
	token  string
}

// stripLineComment cuts a ';' comment from a move text line. inBrace tells
// whether the line starts inside a {...} comment; the returned flag says
// whether it ends inside one.
func stripLineComment(line string, inBrace bool) (string, bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			inBrace = true
		case '}':
			inBrace = false
		case ';':
			if !inBrace {
				return line[:i], false
			}
		}
	}
	return line, inBrace
}

// tokenize splits move text on whitespace, dropping {...} comments and
// (...) variations, which may nest.
func tokenize(text string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inBrace bool
		depth   int
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range text {
		switch {
		case inBrace:
			if r == '}' {
				inBrace = false
			}
		case r == '{':
			flush()
			inBrace = true
		case r == '(':
			flush()
			depth++
		case r == ')':
			flush()
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func isResultToken(tok string) bool {
	switch tok {
	case MarkerWhiteWins, MarkerBlackWins, MarkerDraw, MarkerUnknown, "½-½":
		return true
	}
	return false
}

func isEnPassantToken(tok string) bool {
	return tok == "e.p." || tok == "e.p"
}

// splitHalfMoves walks the tokens, tracking move numbers and the side to
// move. Numbers and sides follow the "N." and "N..." markers when present
// and otherwise alternate, starting from number and side.
func splitHalfMoves(tokens []string, number int, side board.Color) []halfMove {
	var halves []halfMove

	for _, tok := range tokens {
		if strings.HasPrefix(tok, "$") || isResultToken(tok) {
			continue
		}

		if m := moveNumber.FindStringSubmatch(tok); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				number = n
			}
			side = board.White
			if len(m[2]) > 1 {
				side = board.Black
			}
			if m[3] == "" {
				continue
			}
			tok = m[3]
		}

		if isEnPassantToken(tok) && len(halves) > 0 {
			halves[len(halves)-1].token += " " + tok
			continue
		}

		halves = append(halves, halfMove{number: number, side: side, token: tok})
		if side == board.Black {
			number++
		}
		side = side.Other()
	}

	return halves
}

// groupTurns folds half-moves into move-number records.
func groupTurns(halves []halfMove) []Turn {
	var turns []Turn
	for _, h := range halves {
		if h.side == board.White {
			turns = append(turns, Turn{Number: h.number, White: h.token})
			continue
		}
		if n := len(turns); n > 0 && turns[n-1].Number == h.number && turns[n-1].Black == "" {
			turns[n-1].Black = h.token
			continue
		}
		turns = append(turns, Turn{Number: h.number, Black: h.token})
	}
	return turns
}

// findResult returns the last whole-token result marker in text. Tag
// values count; {...} and ';' comments do not.
func findResult(text string) (Result, bool) {
	fields := strings.FieldsFunc(dropComments(text), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`"[]{}()`, r)
	})

	for i := len(fields) - 1; i >= 0; i-- {
		switch fields[i] {
		case MarkerWhiteWins:
			return WhiteWins, true
		case MarkerBlackWins:
			return BlackWins, true
		case MarkerDraw, "½-½":
			return Draw, true
		}
	}
	return Unknown, false
}

// dropComments blanks out {...} comments and ';' comments running to the
// end of the line. Braces and semicolons inside quoted tag values are kept.
func dropComments(text string) string {
	var (
		sb      strings.Builder
		inBrace bool
		inLine  bool
		inQuote bool
	)
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			inLine, inQuote = false, false
		case inBrace:
			if r == '}' {
				inBrace = false
			}
			r = ' '
		case inLine:
			r = ' '
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case r == '"':
			inQuote = true
		case r == '{':
			inBrace = true
			r = ' '
		case r == ';':
			inLine = true
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
