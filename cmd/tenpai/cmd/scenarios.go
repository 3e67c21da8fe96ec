package cmd

import (
	"github.com/spf13/cobra"

	"github.com/f3rmion/tenpai/internal/render"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the four scenarios a tenpai search evaluates",
	Long: `List the canonical scenarios with the configured winds. These are
the values accepted by 'tenpai analyze --only'.`,
	Args: cobra.NoArgs,
	RunE: runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	addScenarioFlags(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	base, err := scenarioFromFlags(cmd, cfg)
	if err != nil {
		return err
	}
	return render.Scenarios(cmd.OutOrStdout(), base)
}
