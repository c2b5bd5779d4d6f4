package pgn

import (
	"strings"
)

// Seven Tag Roster names.
const (
	TagEvent  = "Event"
	TagSite   = "Site"
	TagDate   = "Date"
	TagRound  = "Round"
	TagWhite  = "White"
	TagBlack  = "Black"
	TagResult = "Result"

	// TagFEN holds the starting position of a game set up from a diagram.
	TagFEN = "FEN"
)

// isTagLine reports whether a trimmed line is a header line.
func isTagLine(line string) bool {
	return strings.HasPrefix(line, "[")
}

// parseTagLine splits `[Key "Value"]` into key and value. The key is
// everything up to the first quote; the value is the first quoted string,
// with \" and \\ unescaped.
func parseTagLine(line string) (key, value string, ok bool) {
	inner := strings.TrimPrefix(strings.TrimSpace(line), "[")

	q := strings.IndexByte(inner, '"')
	if q < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(inner[:q])
	if key == "" {
		return "", "", false
	}

	var sb strings.Builder
	rest := inner[q+1:]
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '\\' && i+1 < len(rest) && (rest[i+1] == '"' || rest[i+1] == '\\'):
			sb.WriteByte(rest[i+1])
			i++
		case c == '"':
			return key, sb.String(), true
		default:
			sb.WriteByte(c)
		}
	}
	return "", "", false
}
