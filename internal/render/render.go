// Package render formats analysis outcomes for the terminal. The core
// packages return data only; everything human-readable lives here.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/store"
)

var scenarioTitles = map[string]string{
	mahjong.LabelDamaRon:     "Ron (closed, no riichi)",
	mahjong.LabelTsumo:       "Tsumo (self-draw)",
	mahjong.LabelRiichiRon:   "Riichi ron",
	mahjong.LabelRiichiTsumo: "Riichi tsumo",
}

// ScenarioTitle returns the human title for a scenario label.
func ScenarioTitle(label string) string {
	if t, ok := scenarioTitles[label]; ok {
		return t
	}
	return label
}

// ValidateOnly checks a --only filter value. Empty means all scenarios.
func ValidateOnly(only string) error {
	if only == "" || slices.Contains(mahjong.ScenarioLabels(), only) {
		return nil
	}
	return fmt.Errorf("unknown scenario %q (want one of %s)", only, strings.Join(mahjong.ScenarioLabels(), ", "))
}

// Tiles renders tiles as glyphs followed by their canonical form.
func Tiles(tiles []mahjong.Tile) string {
	sorted := mahjong.SortTiles(tiles)
	glyphs := make([]string, len(sorted))
	for i, t := range sorted {
		glyphs[i] = t.Glyph()
	}
	return TileStyle.Render(strings.Join(glyphs, " ")) + "  " + ValueStyle.Render(string(mahjong.Canonicalize(tiles)))
}

// Points formats the total with the cost level, e.g. "8000 (mangan)".
func Points(res mahjong.ScoreResult) string {
	s := fmt.Sprintf("%d", res.TotalPoints)
	if res.Level != "" {
		s += " (" + res.Level + ")"
	}
	return s
}

// Score renders one complete-hand verdict.
func Score(res mahjong.ScoreResult) string {
	var b strings.Builder

	if !res.Valid {
		reason := res.Reason
		if reason == "" {
			reason = "no valid yaku"
		}
		b.WriteString(MutedStyle.Render("Not a winning hand: " + reason))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Points:"), PointsStyle.Render(Points(res)))
	fmt.Fprintf(&b, "%s %d han %d fu\n", LabelStyle.Render("Value: "), res.Han, res.Fu)
	for _, y := range res.Yaku {
		fmt.Fprintf(&b, "  %s %s\n", ValueStyle.Render(y.Name), MutedStyle.Render(fmt.Sprintf("%d han", y.Han)))
	}
	if len(res.FuBreakdown) > 0 {
		b.WriteString(LabelStyle.Render("Fu:"))
		b.WriteString("\n")
		for _, f := range res.FuBreakdown {
			fmt.Fprintf(&b, "  %s\n", MutedStyle.Render(f))
		}
	}
	return b.String()
}

// Candidates renders a ranked candidate list as an aligned table.
func Candidates(cands []mahjong.Candidate) string {
	if len(cands) == 0 {
		return MutedStyle.Render("  no winning tiles") + "\n"
	}

	rows := make([][]string, len(cands))
	for i, c := range cands {
		names := make([]string, len(c.Result.Yaku))
		for j, y := range c.Result.Yaku {
			names[j] = y.Name
		}
		rows[i] = []string{
			c.Tile.Glyph() + " " + c.Tile.String(),
			Points(c.Result),
			fmt.Sprintf("%dh %dfu", c.Result.Han, c.Result.Fu),
			strings.Join(names, ", "),
		}
	}

	widths := columnWidths(rows)
	styles := []func(...string) string{TileStyle.Render, PointsStyle.Render, ValueStyle.Render, MutedStyle.Render}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString("  ")
		for j, cell := range row {
			if j < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[j]+2)
			}
			b.WriteString(styles[j](cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// Outcome writes a full analysis. only restricts a tenpai outcome to
// one scenario label; empty shows all four.
func Outcome(w io.Writer, out analyzer.Outcome, only string) error {
	if err := ValidateOnly(only); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Hand:"), Tiles(out.Hand.Tiles()))
	if len(out.Dora) > 0 {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Dora indicators:"), Tiles(out.Dora))
	}
	fmt.Fprintf(&b, "%s seat %s, round %s\n", LabelStyle.Render("Winds:"), out.Scenario.SeatWind, out.Scenario.RoundWind)
	b.WriteString("\n")

	switch out.Kind {
	case analyzer.KindComplete:
		title := "Complete hand"
		if out.WinTile != nil {
			title += fmt.Sprintf(", winning on %s %s (%s)", out.WinTile.Glyph(), out.WinTile, out.WinTile.Name())
		}
		b.WriteString(TitleStyle.Render(title))
		fmt.Fprintf(&b, " %s\n", MutedStyle.Render("["+out.Scenario.Label()+"]"))
		if out.Score != nil {
			b.WriteString(Score(*out.Score))
		}
	case analyzer.KindTenpai:
		b.WriteString(TitleStyle.Render("Tenpai"))
		b.WriteString("\n")
		for _, sr := range out.Scenarios {
			if only != "" && sr.Label != only {
				continue
			}
			b.WriteString("\n")
			b.WriteString(ScenarioStyle.Render(ScenarioTitle(sr.Label)))
			b.WriteString(" " + MutedStyle.Render("["+sr.Label+"]"))
			b.WriteString("\n")
			b.WriteString(Candidates(sr.Candidates))
		}
	case analyzer.KindNotReady:
		b.WriteString(TitleStyle.Render("Not ready"))
		fmt.Fprintf(&b, ": %d shanten\n", out.Shanten)
	default:
		return fmt.Errorf("cannot render outcome of kind %s", out.Kind)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Scenarios lists the canonical scenarios derived from base.
func Scenarios(w io.Writer, base mahjong.Scenario) error {
	var b strings.Builder
	for _, sc := range mahjong.CanonicalScenarios(base) {
		fmt.Fprintf(&b, "%s  %s  self-draw=%t riichi=%t seat=%s round=%s\n",
			ScenarioStyle.Render(runewidth.FillRight(sc.Label(), 13)),
			runewidth.FillRight(ScenarioTitle(sc.Label()), 24),
			sc.SelfDraw, sc.Riichi, sc.SeatWind, sc.RoundWind)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// History lists stored analyses.
func History(w io.Writer, records []store.Record) error {
	if len(records) == 0 {
		_, err := io.WriteString(w, MutedStyle.Render("No analyses recorded yet.")+"\n")
		return err
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		detail := ""
		switch r.Kind {
		case analyzer.KindNotReady.String():
			detail = fmt.Sprintf("%d shanten", r.Shanten)
		case analyzer.KindTenpai.String():
			detail = fmt.Sprintf("%d waits", r.Waits)
		}
		rows[i] = []string{
			fmt.Sprintf("#%d", r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Kind,
			r.Canonical,
			detail,
		}
	}

	widths := columnWidths(rows)
	var b strings.Builder
	for _, row := range rows {
		for j, cell := range row {
			if j < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[j]+2)
			}
			if j == 0 {
				cell = LabelStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
