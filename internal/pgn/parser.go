package pgn

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/hailam/pgnkit/internal/board"
)

// parser holds the state of one Parse call. A new one is made per
// transcript and dropped afterwards.
type parser struct {
	text     string
	tags     map[string]string
	movetext strings.Builder
}

// Parse reads one transcript.
//
// A malformed tag line fails the whole transcript with a *TagError. A move
// token that is not valid SAN does not: it is recorded in Game.Errors and
// parsing carries on with the next token. A missing result marker gives
// Unknown.
func Parse(text string) (*Game, error) {
	p := &parser{
		text: text,
		tags: make(map[string]string),
	}

	if err := p.scanLines(); err != nil {
		return nil, err
	}

	game := &Game{Tags: p.tags}

	number, side := p.start()
	halves := splitHalfMoves(tokenize(p.movetext.String()), number, side)
	game.Turns = groupTurns(halves)

	for _, h := range halves {
		m, err := board.ParseSAN(h.token, h.side)
		if err != nil {
			game.Errors = append(game.Errors, &MoveError{
				Number: h.number,
				Side:   h.side,
				Token:  h.token,
				Err:    err,
			})
			continue
		}
		game.Moves = append(game.Moves, m)
	}

	result, found := findResult(text)
	game.Result = result

	if !found && len(p.tags) == 0 && len(halves) == 0 {
		return nil, ErrNoGame
	}
	return game, nil
}

// scanLines sorts lines into tags and move text.
func (p *parser) scanLines() error {
	scanner := bufio.NewScanner(strings.NewReader(p.text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		lineNo  int
		inBrace bool
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "%") && !inBrace:
			// Escape line, ignored.
			continue
		case isTagLine(line) && !inBrace:
			key, value, ok := parseTagLine(line)
			if !ok {
				return &TagError{Line: lineNo, Text: line}
			}
			p.tags[key] = value
		default:
			line, inBrace = stripLineComment(line, inBrace)
			if p.movetext.Len() > 0 {
				p.movetext.WriteByte(' ')
			}
			p.movetext.WriteString(line)
		}
	}
	return scanner.Err()
}

// start returns the number and side of the first move, taken from the FEN
// tag when the game was set up from a position.
func (p *parser) start() (int, board.Color) {
	fen, ok := p.tags[TagFEN]
	if !ok {
		return 1, board.White
	}
	fields := strings.Fields(fen)

	side := board.White
	if len(fields) > 1 && fields[1] == "b" {
		side = board.Black
	}
	number := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return number, side
}
