package batch

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hailam/pgnkit/internal/pgn"
)

// Report sums up a batch run.
type Report struct {
	Files        int
	Games        int
	Moves        int
	BadMoves     int
	Failed       int
	ReplayFailed int
	Results      map[pgn.Result]int
}

func newReport() Report {
	return Report{Results: make(map[pgn.Result]int)}
}

func (r *Report) add(item Item) {
	r.Games++
	r.Moves += len(item.Game.Moves)
	r.BadMoves += len(item.Game.Errors)
	r.Results[item.Game.Result]++
	if item.ReplayErr != nil {
		r.ReplayFailed++
	}
}

func (r Report) String() string {
	s := fmt.Sprintf("%s games parsed, %s moves unparseable",
		humanize.Comma(int64(r.Games)), humanize.Comma(int64(r.BadMoves)))
	if r.Failed > 0 {
		s += fmt.Sprintf(", %s failed", humanize.Comma(int64(r.Failed)))
	}
	return s
}

// Summary is the multi-line form printed at the end of a run.
func (r Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", r)
	fmt.Fprintf(&sb, "  files:   %s\n", humanize.Comma(int64(r.Files)))
	fmt.Fprintf(&sb, "  moves:   %s\n", humanize.Comma(int64(r.Moves)))
	if r.ReplayFailed > 0 {
		fmt.Fprintf(&sb, "  replay stopped early in %s games\n", humanize.Comma(int64(r.ReplayFailed)))
	}
	for _, res := range []pgn.Result{pgn.WhiteWins, pgn.BlackWins, pgn.Draw, pgn.Unknown} {
		if n := r.Results[res]; n > 0 {
			fmt.Fprintf(&sb, "  %-8s %s (%s)\n", res.Marker(), humanize.Comma(int64(n)),
				humanize.FtoaWithDigits(100*float64(n)/float64(r.Games), 1)+"%")
		}
	}
	return sb.String()
}
