package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/render"
	"github.com/f3rmion/tenpai/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analyses",
	Long: `List analyses recorded in the history database, newest first.

Example:
  tenpai history --limit 5
  tenpai history show 12`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().Int("limit", 20, "number of entries to list")
	historyShowCmd.Flags().Bool("json", false, "print the stored outcome as JSON")
	historyShowCmd.Flags().String("only", "", "show a single scenario")
}

// openHistoryForReading opens the database even when recording is off.
func openHistoryForReading() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.HistoryPath(getConfigDir()))
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openHistoryForReading()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return render.History(cmd.OutOrStdout(), records)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	only, _ := cmd.Flags().GetString("only")

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q", args[0])
	}

	s, err := openHistoryForReading()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	var out analyzer.Outcome
	if err := json.Unmarshal(rec.Payload, &out); err != nil {
		return fmt.Errorf("decoding history entry #%d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s\n\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	return writeOutcome(cmd.OutOrStdout(), out, only, asJSON)
}
