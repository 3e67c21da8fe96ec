package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for analyzing hands.

Controls:
  Enter    Analyze the hand
  Tab      Switch between hand and dora input
  Ctrl+S   Next seat wind
  Ctrl+N   Next round wind
  Ctrl+T   Toggle tsumo
  Ctrl+R   Toggle riichi
  Ctrl+F   Cycle scenario filter
  Ctrl+Y   Copy canonical hand
  Esc      Quit`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base, err := cfg.Scenario()
	if err != nil {
		return err
	}

	logger := newLogger()
	a, err := newAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	history, err := openHistory(cfg)
	if err != nil {
		logger.Printf("history disabled: %v", err)
	}
	if history != nil {
		defer history.Close()
	}

	ctx := cmd.Context()
	app := tui.NewApp(ctx, a, base, tui.Options{
		Record: func(req analyzer.Request, out analyzer.Outcome) {
			recordOutcome(ctx, history, logger, req, out)
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
