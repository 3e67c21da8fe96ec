// Package cmd contains all CLI commands for the tenpai tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/config"
	"github.com/f3rmion/tenpai/internal/oracle"
	"github.com/f3rmion/tenpai/internal/oracle/cache"
	"github.com/f3rmion/tenpai/internal/oracle/remote"
	"github.com/f3rmion/tenpai/internal/store"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tenpai",
	Short: "Riichi mahjong hand analysis",
	Long: `tenpai analyzes riichi mahjong hands with an external scoring oracle.

Given 14 tiles it values the complete hand. Given 13 tiles it checks
whether the hand is ready and, if so, lists every winning tile with its
score under four scenarios: ron, tsumo, riichi ron and riichi tsumo.

Tiles are written as rank + suit: 1m-9m, 1p-9p, 1s-9s, 1z-7z
(1z-4z are the winds, 5z-7z the dragons). Compact blocks such as
234m456p678s11z55z are accepted too.

Running 'tenpai' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupting the process abandons any running analysis.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/tenpai)")
	pf.Bool("verbose", false, "verbose output")
	pf.String("oracle-url", "", "scoring oracle base URL")
	pf.Int("workers", 0, "concurrent oracle calls during the tenpai search")
	pf.Bool("no-history", false, "do not record analyses in the history database")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("oracle.url", pf.Lookup("oracle-url"))
	viper.BindPFlag("search.workers", pf.Lookup("workers"))
	viper.BindPFlag("no_history", pf.Lookup("no-history"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	// a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("TENPAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and applies env and flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(getConfigDir(), config.FileName))
	if err != nil {
		return nil, err
	}

	// file values become viper defaults so flags and TENPAI_* win
	viper.SetDefault("rules.seat_wind", cfg.Rules.SeatWind)
	viper.SetDefault("rules.round_wind", cfg.Rules.RoundWind)
	viper.SetDefault("oracle.url", cfg.Oracle.URL)
	viper.SetDefault("oracle.shanten_url", cfg.Oracle.ShantenURL)
	viper.SetDefault("oracle.timeout", cfg.Oracle.Timeout)
	viper.SetDefault("search.workers", cfg.Search.Workers)
	viper.SetDefault("cache.size", cfg.Cache.Size)
	viper.SetDefault("history.enabled", cfg.History.Enabled)
	viper.SetDefault("history.path", cfg.History.Path)

	cfg.Rules.SeatWind = viper.GetString("rules.seat_wind")
	cfg.Rules.RoundWind = viper.GetString("rules.round_wind")
	cfg.Oracle.URL = viper.GetString("oracle.url")
	cfg.Oracle.ShantenURL = viper.GetString("oracle.shanten_url")
	cfg.Oracle.Timeout = viper.GetString("oracle.timeout")
	cfg.Search.Workers = viper.GetInt("search.workers")
	cfg.Cache.Size = viper.GetInt("cache.size")
	cfg.History.Enabled = viper.GetBool("history.enabled") && !viper.GetBool("no_history")
	cfg.History.Path = viper.GetString("history.path")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	if viper.GetBool("verbose") {
		return log.New(os.Stderr, "tenpai: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// newOracle builds the remote oracle, memoized when cache.size > 0.
func newOracle(cfg *config.Config) (oracle.Oracle, error) {
	timeout, err := cfg.OracleTimeout()
	if err != nil {
		return nil, err
	}

	client, err := remote.NewClient(cfg.Oracle.URL,
		remote.WithTimeout(timeout),
		remote.WithShantenURL(cfg.Oracle.ShantenURL),
	)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Size == 0 {
		return client, nil
	}
	cached, err := cache.New(client, cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("creating oracle cache: %w", err)
	}
	return cached, nil
}

func newAnalyzer(cfg *config.Config, logger *log.Logger) (*analyzer.Analyzer, error) {
	o, err := newOracle(cfg)
	if err != nil {
		return nil, err
	}
	return analyzer.New(o,
		analyzer.WithWorkers(cfg.Search.Workers),
		analyzer.WithLogger(logger),
	), nil
}

// openHistory opens the history database, or returns nil when history
// is disabled.
func openHistory(cfg *config.Config) (*store.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return store.Open(cfg.HistoryPath(getConfigDir()))
}

// recordOutcome stores one analysis. History is best effort: failures
// are logged, never returned.
func recordOutcome(ctx context.Context, s *store.Store, logger *log.Logger, req analyzer.Request, out analyzer.Outcome) {
	if s == nil {
		return
	}

	payload, err := json.Marshal(out)
	if err != nil {
		logger.Printf("encoding history entry: %v", err)
		return
	}

	waits := make(map[string]bool)
	for _, sr := range out.Scenarios {
		for _, t := range sr.Waits() {
			waits[t.String()] = true
		}
	}

	id, err := s.Save(ctx, store.Record{
		Input:     req.Tiles,
		Canonical: string(out.Canonical),
		Kind:      out.Kind.String(),
		Shanten:   out.Shanten,
		Waits:     len(waits),
		Payload:   payload,
	})
	if err != nil {
		logger.Printf("saving history: %v", err)
		return
	}
	logger.Printf("saved analysis #%d", id)
}
