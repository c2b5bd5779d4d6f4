package pgn

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Split reads a stream holding any number of games and sends each game's
// transcript to out. A game ends where a tag line follows move text, or
// where a second Event tag starts. Lines inside a {...} comment are move
// text even when they begin with '['.
func Split(ctx context.Context, r io.Reader, out chan<- string) error {
	var (
		sb           = &strings.Builder{}
		seenMoveText bool
		seenEvent    bool
		inBrace      bool
	)

	emit := func() error {
		if strings.TrimSpace(sb.String()) == "" {
			sb.Reset()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sb.String():
		}
		sb = &strings.Builder{}
		seenMoveText, seenEvent = false, false
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if isTagLine(trimmed) && !inBrace {
			isEvent := strings.HasPrefix(trimmed, "[Event ")
			if seenMoveText || (isEvent && seenEvent) {
				if err := emit(); err != nil {
					return err
				}
			}
			if isEvent {
				seenEvent = true
			}
		} else if trimmed != "" && (inBrace || !strings.HasPrefix(trimmed, "%")) {
			seenMoveText = true
			_, inBrace = stripLineComment(trimmed, inBrace)
		}

		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return emit()
}

// SplitAll collects every transcript in r.
func SplitAll(r io.Reader) ([]string, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		errc <- Split(context.Background(), r, out)
	}()

	var games []string
	for g := range out {
		games = append(games, g)
	}
	return games, <-errc
}
