package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	authcmd "github.com/dfir-analyzer/dfirctl/cmd/auth"
	exportcmd "github.com/dfir-analyzer/dfirctl/cmd/export"
	"github.com/dfir-analyzer/dfirctl/cmd/history"
	"github.com/dfir-analyzer/dfirctl/cmd/scan"
	"github.com/dfir-analyzer/dfirctl/cmd/stats"
	"github.com/dfir-analyzer/dfirctl/cmd/urlscan"
	"github.com/dfir-analyzer/dfirctl/cmd/version"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "dfirctl [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Dfirctl is a client for the DFIR Analyzer service.",
		Long: `Dfirctl talks to a DFIR Analyzer backend: it uploads files for risk
scoring, submits URLs for threat-intelligence analysis, and exports the
results as CSV, JSON, PDF, or SARIF reports.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(authcmd.AuthCmd)
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(urlscan.URLScanCmd)
	rootCmd.AddCommand(stats.StatsCmd)
	rootCmd.AddCommand(history.HistoryCmd)
	rootCmd.AddCommand(exportcmd.ExportCmd)
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("failed to initialize config file - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	version.Init(AppConfig)
	authcmd.Init(AppConfig)
	scan.Init(AppConfig)
	urlscan.Init(AppConfig)
	stats.Init(AppConfig)
	history.Init(AppConfig)
	exportcmd.Init(AppConfig)
}
