package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tenpai configuration",
	Long: `Write a commented config.yaml to your config directory.

Edit it to point oracle.url at your scoring service and to set the table
winds. Every key can also be set through TENPAI_* environment variables,
e.g. TENPAI_ORACLE_URL or TENPAI_RULES_SEAT_WIND.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// the template must stay loadable
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	fmt.Printf("Created %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Set oracle.url to your scoring service")
	fmt.Println("  2. Run 'tenpai analyze 234m456p678s11z55z' to test a hand")
	fmt.Println("  3. Run 'tenpai' for the interactive UI")

	return nil
}

const configTemplate = `# tenpai configuration
#
# Precedence: command-line flags > TENPAI_* environment variables
# (also read from ./.env) > this file > built-in defaults.

rules:
  # Seat and round wind for every analysis: east, south, west or north.
  seat_wind: east
  round_wind: east

oracle:
  # Scoring service exposing POST /hand_value and POST /shanten.
  url: http://127.0.0.1:8000
  # Optional separate service for /shanten.
  # shanten_url: http://127.0.0.1:8001
  # Deadline for each oracle call. A call that times out is an error,
  # never "not a win", and is not retried.
  timeout: 5s

search:
  # Concurrent oracle calls while searching winning tiles.
  workers: 8

cache:
  # In-memory answers kept per run. 0 disables caching.
  size: 4096

history:
  # Record every analysis in a local SQLite database.
  enabled: true
  # Defaults to history.db in the config directory.
  # path: /path/to/history.db
`
