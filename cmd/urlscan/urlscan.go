package urlscan

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/auth"
	"github.com/dfir-analyzer/dfirctl/internal/export"
	"github.com/dfir-analyzer/dfirctl/internal/render"
	"github.com/dfir-analyzer/dfirctl/internal/session"
	"github.com/dfir-analyzer/dfirctl/pkg/shared"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/files"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/logger"
)

// RunOptionsURLScan holds the arguments for the urlscan command.
type RunOptionsURLScan struct {
	OutputPath string
	Report     string
	ReportDir  string
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	urlscanOptions      RunOptionsURLScan
	exampleURLScanUsage = `  # Analyze a URL for phishing and malware signals
  dfirctl urlscan https://login.example-bank.com.evil.tld/verify

  # Save the raw analysis result as JSON
  dfirctl urlscan https://example.com --output /path/to/result.json

  # Write a SARIF report with one result per signal
  dfirctl urlscan https://example.com --report sarif`
)

// URLScanCmd represents the urlscan command.
var URLScanCmd = &cobra.Command{
	Use:                   "urlscan [--output/-o PATH] [--report pdf|sarif] [--report-dir PATH] URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleURLScanUsage,
	Short:                 "Submit a URL for threat-intelligence analysis",
	RunE:                  runURLScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runURLScanCommand executes the urlscan command.
func runURLScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-urlscan")

	if err := validateURLScanArgs(&urlscanOptions, args); err != nil {
		logger.Error("invalid urlscan arguments", "error", err)
		return err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	sess := session.NewURLSession(client, logger)
	result, err := sess.Submit(cmd.Context(), args[0])
	if err != nil {
		logger.Error("url analysis failed", "url", args[0], "error", err)
		return err
	}

	render.URLResult(cmd.OutOrStdout(), result)

	if urlscanOptions.OutputPath != "" {
		outputPath, err := writeResultJSON(urlscanOptions.OutputPath, result)
		if err != nil {
			logger.Error("failed to write result file", "error", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nResult saved to %s\n", outputPath)
	}

	if urlscanOptions.Report != "" {
		reportPath, err := writeReport(result)
		if err != nil {
			logger.Error("report export failed", "format", urlscanOptions.Report, "error", err)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", reportPath)
	}

	logger.Info("urlscan command completed successfully")
	return nil
}

// writeResultJSON saves the raw result, resolving directory targets to a
// generated file name.
func writeResultJSON(path string, result *api.URLAnalysisResult) (string, error) {
	name := export.SanitizeFilename(result.Profile.Host) + "_result.json"
	fullPath, folder, err := files.DetermineFileFullPath(path, name)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return fullPath, files.WriteJSONFile(fullPath, data)
}

// writeReport produces the requested local report in the report directory.
func writeReport(result *api.URLAnalysisResult) (string, error) {
	dir := urlscanOptions.ReportDir
	if dir == "" {
		dir = config.GetResultsFolder(AppConfig)
	}
	if err := files.CreateFolderIfNotExists(dir); err != nil {
		return "", err
	}

	base := export.SanitizeFilename(result.Profile.Host)
	if base == "report" && result.URL != "" {
		base = export.SanitizeFilename(result.URL)
	}

	switch urlscanOptions.Report {
	case "pdf":
		path := filepath.Join(dir, base+"_report.pdf")
		var body strings.Builder
		render.URLResult(&body, result)
		if err := export.WritePDF(path, "DFIR Analyzer URL Report", body.String()); err != nil {
			return "", err
		}
		return path, nil
	case "sarif":
		path := filepath.Join(dir, base+".sarif")
		report, err := export.BuildURLReport(result)
		if err != nil {
			return "", err
		}
		if err := export.WriteSARIF(path, report); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", urlscanOptions.Report)
	}
}

// Initialize flags for the urlscan command.
func init() {
	URLScanCmd.Flags().StringVarP(&urlscanOptions.OutputPath, "output", "o", "", "Path to save the raw analysis result as JSON.")
	URLScanCmd.Flags().StringVar(&urlscanOptions.Report, "report", "", "Local report format to generate after the scan (pdf or sarif).")
	URLScanCmd.Flags().StringVar(&urlscanOptions.ReportDir, "report-dir", "", "Directory for generated reports. Defaults to the results folder.")
	URLScanCmd.Flags().BoolP("help", "h", false, "Show help for the urlscan command.")
}
