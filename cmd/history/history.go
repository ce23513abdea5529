package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/auth"
	"github.com/dfir-analyzer/dfirctl/internal/render"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/logger"
)

// RunOptionsHistory holds the arguments for the history command.
type RunOptionsHistory struct {
	Limit int
}

var (
	AppConfig      *config.Config
	historyOptions RunOptionsHistory
)

// HistoryCmd represents the history command.
var HistoryCmd = &cobra.Command{
	Use:                   "history [--limit/-n N]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "List past scans, newest first",
	RunE:                  runHistoryCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runHistoryCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-history")

	if err := validateHistoryArgs(&historyOptions); err != nil {
		logger.Error("invalid history arguments", "error", err)
		return err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	entries, err := client.History(cmd.Context(), historyOptions.Limit)
	if err != nil {
		logger.Error("failed to fetch history", "error", err)
		return err
	}

	render.History(cmd.OutOrStdout(), entries)
	return nil
}

// validateHistoryArgs validates the arguments provided to the history command.
func validateHistoryArgs(options *RunOptionsHistory) error {
	if options.Limit <= 0 {
		return fmt.Errorf("the 'limit' flag must be a positive integer")
	}
	return nil
}

// Initialize flags for the history command.
func init() {
	HistoryCmd.Flags().IntVarP(&historyOptions.Limit, "limit", "n", 20, "Maximum number of past scans to list.")
}
