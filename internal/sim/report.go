package sim

import (
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Report aggregates a simulation run.
type Report struct {
	Options Options
	Results []GameResult
	Elapsed time.Duration

	MeanScore   float64
	StdDevScore float64
	MedianScore float64
	P90Score    float64
	MaxScore    int

	MeanMoves float64
	MeanCombo float64 // mean of each game's best combo
	MaxCombo  int

	Cascades    int
	Reverted    int
	Seeds       int
	Shuffles    int
	Regenerated int
	GameOvers   int
	Stuck       int
}

// Summarize computes the aggregate statistics of results.
func Summarize(opts Options, results []GameResult, elapsed time.Duration) *Report {
	r := &Report{Options: opts, Results: results, Elapsed: elapsed}
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	combos := make([]float64, len(results))
	for i, g := range results {
		scores[i] = float64(g.Score)
		moves[i] = float64(g.Moves)
		combos[i] = float64(g.MaxCombo)

		r.MaxScore = max(r.MaxScore, g.Score)
		r.MaxCombo = max(r.MaxCombo, g.MaxCombo)
		r.Cascades += g.Cascades
		r.Reverted += g.Reverted
		r.Seeds += g.Seeds
		r.Shuffles += g.Shuffles
		if g.Regenerated {
			r.Regenerated++
		}
		if g.GameOver {
			r.GameOvers++
		}
		if g.Stuck {
			r.Stuck++
		}
	}

	if len(scores) > 1 {
		r.MeanScore, r.StdDevScore = stat.MeanStdDev(scores, nil)
	} else {
		r.MeanScore = scores[0]
	}
	r.MeanMoves = stat.Mean(moves, nil)
	r.MeanCombo = stat.Mean(combos, nil)

	sort.Float64s(scores)
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	r.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return r
}

// Table renders the report as a two-column text table.
func (r *Report) Table() string {
	p := message.NewPrinter(language.English)
	opts := r.Options

	keys := []string{
		"Games", "Workers", "Board", "Seed",
		"Mean Score", "Std Dev", "Median", "P90", "Max Score",
		"Mean Moves", "Mean Combo", "Max Combo", "Cascades",
		"Seeded Hints", "Shuffles", "Regenerated", "Timed Out", "Stuck",
		"Elapsed", "Games/sec",
	}
	vals := map[string]string{
		"Games":        p.Sprintf("%d", len(r.Results)),
		"Workers":      p.Sprintf("%d", max(opts.Workers, 1)),
		"Board":        p.Sprintf("%s level %d", opts.Shape, opts.Level),
		"Seed":         p.Sprintf("%d", opts.Seed),
		"Mean Score":   p.Sprintf("%.1f", r.MeanScore),
		"Std Dev":      p.Sprintf("%.1f", r.StdDevScore),
		"Median":       p.Sprintf("%.0f", r.MedianScore),
		"P90":          p.Sprintf("%.0f", r.P90Score),
		"Max Score":    p.Sprintf("%d", r.MaxScore),
		"Mean Moves":   p.Sprintf("%.1f", r.MeanMoves),
		"Mean Combo":   p.Sprintf("%.2f", r.MeanCombo),
		"Max Combo":    p.Sprintf("%d", r.MaxCombo),
		"Cascades":     p.Sprintf("%d", r.Cascades),
		"Seeded Hints": p.Sprintf("%d", r.Seeds),
		"Shuffles":     p.Sprintf("%d", r.Shuffles),
		"Regenerated":  p.Sprintf("%d", r.Regenerated),
		"Timed Out":    p.Sprintf("%d", r.GameOvers),
		"Stuck":        p.Sprintf("%d", r.Stuck),
		"Elapsed":      r.Elapsed.Round(time.Millisecond).String(),
		"Games/sec":    p.Sprintf("%.1f", gamesPerSecond(len(r.Results), r.Elapsed)),
	}
	return formatTable("Match-3 Simulation", keys, vals)
}

func gamesPerSecond(games int, d time.Duration) float64 {
	sec := d.Seconds()
	if sec <= 0 {
		return 0
	}
	return float64(games) / sec
}

// formatTable lays out keys and values in a boxed table, padding by display
// width so wide runes stay aligned.
func formatTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2
	inner := keyW + 1 + valW
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		valW += tw - inner
		inner = tw
	}

	var sb strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	left := (inner - runewidth.StringWidth(title)) / 2
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(inner-left-runewidth.StringWidth(title)) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		sb.WriteString("| " + k + blank(keyW-2-runewidth.StringWidth(k)))
		sb.WriteString(" | " + v + blank(valW-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
