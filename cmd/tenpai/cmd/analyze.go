package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/clipboard"
	"github.com/f3rmion/tenpai/internal/config"
	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/render"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze <tiles>...",
	Aliases: []string{"a"},
	Short:   "Analyze a 13- or 14-tile hand",
	Long: `Analyze a hand.

With 14 tiles the complete hand is valued once. The winning tile is the
last tile unless --win names another tile of the hand; --tsumo and
--riichi describe how it was won.

With 13 tiles the hand is checked for tenpai. A ready hand is searched
for every winning tile under the four scenarios (ron, tsumo, riichi ron,
riichi tsumo); otherwise the shanten number is printed.

Example:
  tenpai analyze 234m456p678s11z55z
  tenpai analyze 2m 3m 4m 4p 5p 6p 6s 7s 8s 5z 5z 5z 1z 1z --win 5z --tsumo
  tenpai analyze 234m456p678s11z55z --dora 4z --only riichi-ron`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addScenarioFlags(analyzeCmd)
	analyzeCmd.Flags().String("win", "", "winning tile of a 14-tile hand (default: last tile)")
	analyzeCmd.Flags().StringSlice("dora", nil, "dora indicator tiles")
	analyzeCmd.Flags().Bool("tsumo", false, "the winning tile was self-drawn (14-tile hands)")
	analyzeCmd.Flags().Bool("riichi", false, "riichi was declared (14-tile hands)")
	analyzeCmd.Flags().String("only", "", "show a single scenario: dama-ron, tsumo, riichi-ron or riichi-tsumo")
	analyzeCmd.Flags().Bool("json", false, "print the outcome as JSON")
	analyzeCmd.Flags().Bool("copy", false, "copy the canonical hand to the clipboard")
}

// addScenarioFlags registers the wind overrides shared by several commands.
func addScenarioFlags(c *cobra.Command) {
	c.Flags().String("seat", "", "seat wind (east, south, west, north)")
	c.Flags().String("round", "", "round wind (east, south, west, north)")
}

// scenarioFromFlags builds the base scenario from config and wind flags.
func scenarioFromFlags(c *cobra.Command, cfg *config.Config) (mahjong.Scenario, error) {
	sc, err := cfg.Scenario()
	if err != nil {
		return mahjong.Scenario{}, err
	}

	if seat, _ := c.Flags().GetString("seat"); seat != "" {
		w, err := mahjong.ParseWind(seat)
		if err != nil {
			return mahjong.Scenario{}, fmt.Errorf("--seat: %w", err)
		}
		sc = sc.WithSeatWind(w)
	}
	if round, _ := c.Flags().GetString("round"); round != "" {
		w, err := mahjong.ParseWind(round)
		if err != nil {
			return mahjong.Scenario{}, fmt.Errorf("--round: %w", err)
		}
		sc = sc.WithRoundWind(w)
	}
	return sc, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	win, _ := cmd.Flags().GetString("win")
	dora, _ := cmd.Flags().GetStringSlice("dora")
	tsumo, _ := cmd.Flags().GetBool("tsumo")
	riichi, _ := cmd.Flags().GetBool("riichi")
	only, _ := cmd.Flags().GetString("only")
	asJSON, _ := cmd.Flags().GetBool("json")
	copyHand, _ := cmd.Flags().GetBool("copy")

	if err := render.ValidateOnly(only); err != nil {
		return err
	}
	if copyHand && !clipboard.Available() {
		fmt.Fprintln(os.Stderr, "Warning: no clipboard available, ignoring --copy")
		copyHand = false
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base, err := scenarioFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	a, err := newAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	req := analyzer.Request{
		Tiles:    args,
		WinTile:  win,
		Dora:     dora,
		Scenario: base.WithSelfDraw(tsumo).WithRiichi(riichi),
	}

	ctx := cmd.Context()
	out, err := a.Analyze(ctx, req)
	if err != nil {
		return err
	}

	history, err := openHistory(cfg)
	if err != nil {
		logger.Printf("history disabled: %v", err)
	}
	if history != nil {
		defer history.Close()
		recordOutcome(ctx, history, logger, req, out)
	}

	if err := writeOutcome(cmd.OutOrStdout(), out, only, asJSON); err != nil {
		return err
	}

	if copyHand {
		if err := clipboard.Write(string(out.Canonical)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Copied %s to clipboard\n", out.Canonical)
		}
	}

	return nil
}

func writeOutcome(w io.Writer, out analyzer.Outcome, only string, asJSON bool) error {
	if !asJSON {
		return render.Outcome(w, out, only)
	}

	if only != "" {
		filtered := out.Scenarios[:0:0]
		for _, sr := range out.Scenarios {
			if sr.Label == only {
				filtered = append(filtered, sr)
			}
		}
		out.Scenarios = filtered
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
