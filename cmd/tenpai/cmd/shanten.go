package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/mahjong"
)

var shantenCmd = &cobra.Command{
	Use:   "shanten <tiles>...",
	Short: "Print the shanten number of a hand",
	Long: `Ask the scoring oracle how far a 13-tile hand is from tenpai.
0 means the hand is ready.

Example:
  tenpai shanten 147m258p369s1234z`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShanten,
}

func init() {
	rootCmd.AddCommand(shantenCmd)
}

func runShanten(cmd *cobra.Command, args []string) error {
	hand, err := mahjong.ParseHand(args)
	if err != nil {
		return err
	}
	if hand.Kind() != mahjong.ConcealedThirteen {
		return fmt.Errorf("%w: shanten needs %d tiles, got %d", mahjong.ErrInvalidHandLength, mahjong.ConcealedSize, hand.Len())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	o, err := newOracle(cfg)
	if err != nil {
		return err
	}

	n, err := o.Shanten(cmd.Context(), hand.Counts())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", hand.Canonical(), n)
	return nil
}
