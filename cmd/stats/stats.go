package stats

import (
	"github.com/spf13/cobra"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/auth"
	"github.com/dfir-analyzer/dfirctl/internal/render"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/logger"
)

var AppConfig *config.Config

// StatsCmd represents the stats command.
var StatsCmd = &cobra.Command{
	Use:                   "stats",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Show scan statistics from the analyzer",
	RunE:                  runStatsCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runStatsCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-stats")

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	stats, err := client.Stats(cmd.Context())
	if err != nil {
		logger.Error("failed to fetch stats", "error", err)
		return err
	}

	render.StatsSummary(cmd.OutOrStdout(), stats)
	return nil
}
