package scan

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

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	OutputPath string
	Report     string
	ReportDir  string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	scanOptions        RunOptionsScan
	exampleScanUsage   = `  # Upload a file for risk scoring
  dfirctl scan /path/to/invoice.pdf

  # Upload a RAW disk image for filesystem triage
  dfirctl scan /path/to/evidence.dd

  # Save the raw analysis result as JSON
  dfirctl scan /path/to/invoice.pdf --output /path/to/result.json

  # Write a PDF report next to the results
  dfirctl scan /path/to/invoice.pdf --report pdf`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--output/-o PATH] [--report pdf|sarif] [--report-dir PATH] FILE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Upload a file to the analyzer and render its risk assessment",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	file, err := session.FileFromPath(args[0])
	if err != nil {
		logger.Error("cannot stage file", "path", args[0], "error", err)
		return err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	sess := session.New(client, logger)
	if err := sess.SelectFile(file); err != nil {
		return err
	}

	result, err := sess.Submit(cmd.Context())
	if err != nil {
		logger.Error("scan failed", "file", file.Name, "error", err)
		return err
	}

	render.FileResult(cmd.OutOrStdout(), result, file.Size)
	reportDigest(cmd, sess)

	if scanOptions.OutputPath != "" {
		outputPath, err := writeResultJSON(scanOptions.OutputPath, result)
		if err != nil {
			logger.Error("failed to write result file", "error", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nResult saved to %s\n", outputPath)
	}

	if scanOptions.Report != "" {
		reportPath, err := writeReport(sess, result)
		if err != nil {
			// Export failures are surfaced but never fatal to the scan.
			logger.Error("report export failed", "format", scanOptions.Report, "error", err)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", reportPath)
	}

	logger.Info("scan command completed successfully")
	return nil
}

// reportDigest prints the local digest verification outcome.
func reportDigest(cmd *cobra.Command, sess *session.Session) {
	matched, checked := sess.DigestMatch()
	if !checked {
		return
	}
	if matched {
		fmt.Fprintf(cmd.OutOrStdout(), "Digest check:    local SHA-256 matches the server\n")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Digest check:    MISMATCH - local %s\n", sess.LocalSHA256())
	}
}

// writeResultJSON saves the raw result, resolving directory targets to a
// generated file name.
func writeResultJSON(path string, result *api.AnalysisResult) (string, error) {
	name := export.SanitizeFilename(result.OriginalFilename) + "_result.json"
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
func writeReport(sess *session.Session, result *api.AnalysisResult) (string, error) {
	dir := scanOptions.ReportDir
	if dir == "" {
		dir = config.GetResultsFolder(AppConfig)
	}
	if err := files.CreateFolderIfNotExists(dir); err != nil {
		return "", err
	}

	base := export.SanitizeFilename(result.OriginalFilename)

	switch scanOptions.Report {
	case "pdf":
		path := filepath.Join(dir, base+"_report.pdf")
		var body strings.Builder
		render.FileResult(&body, result, 0)
		if err := export.WritePDF(path, "DFIR Analyzer Report", body.String()); err != nil {
			return "", err
		}
		return path, nil
	case "sarif":
		path := filepath.Join(dir, base+".sarif")
		report, err := export.BuildFileReport(result)
		if err != nil {
			return "", err
		}
		if err := export.WriteSARIF(path, report); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", scanOptions.Report)
	}
}

// Initialize flags for the scan command.
func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "Path to save the raw analysis result as JSON.")
	ScanCmd.Flags().StringVar(&scanOptions.Report, "report", "", "Local report format to generate after the scan (pdf or sarif).")
	ScanCmd.Flags().StringVar(&scanOptions.ReportDir, "report-dir", "", "Directory for generated reports. Defaults to the results folder.")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
