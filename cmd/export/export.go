package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/auth"
	"github.com/dfir-analyzer/dfirctl/internal/export"
	"github.com/dfir-analyzer/dfirctl/internal/render"
	"github.com/dfir-analyzer/dfirctl/pkg/shared"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/files"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/logger"
)

// RunOptionsExport holds the arguments for the export command.
type RunOptionsExport struct {
	Format     string
	SHA256     string
	InputPath  string
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	exportOptions      RunOptionsExport
	exampleExportUsage = `  # Download the CSV report for a previously scanned file
  dfirctl export --format csv --sha256 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08

  # Download the JSON report to an explicit path
  dfirctl export --format json --sha256 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08 -o /tmp/report.json

  # Build a PDF report from a result saved with 'scan --output'
  dfirctl export --format pdf --input /tmp/invoice_pdf_result.json

  # Build a SARIF report from a saved URL scan result
  dfirctl export --format sarif --input /tmp/phish_example_result.json`
)

// ExportCmd represents the export command. CSV and JSON come from the server
// by content hash; PDF and SARIF are built locally from a saved result file.
var ExportCmd = &cobra.Command{
	Use:                   "export --format/-f csv|json|pdf|sarif [--sha256 HEX] [--input/-i PATH] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExportUsage,
	Short:                 "Export an analysis result as CSV, JSON, PDF, or SARIF",
	RunE:                  runExportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runExportCommand executes the export command.
func runExportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-export")

	if err := validateExportArgs(&exportOptions); err != nil {
		logger.Error("invalid export arguments", "error", err)
		return err
	}

	var destPath string
	var err error
	switch exportOptions.Format {
	case "csv", "json":
		destPath, err = runDownload(cmd)
	default:
		destPath, err = runLocalReport()
	}
	if err != nil {
		logger.Error("export failed", "format", exportOptions.Format, "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", destPath)
	return nil
}

// runDownload fetches the server-generated report by content hash.
func runDownload(cmd *cobra.Command) (string, error) {
	logger := logger.NewLogger(AppConfig, "core-export")

	destPath := exportOptions.OutputPath
	if destPath == "" {
		name := fmt.Sprintf("%s.%s", exportOptions.SHA256, exportOptions.Format)
		destPath = filepath.Join(config.GetResultsFolder(AppConfig), name)
	}
	if err := files.CreateFolderIfNotExists(filepath.Dir(destPath)); err != nil {
		return "", err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	downloader := export.NewDownloader(AppConfig, logger, store)

	format := export.Format(exportOptions.Format)
	if err := downloader.Download(cmd.Context(), format, exportOptions.SHA256, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// runLocalReport builds a PDF or SARIF report from a saved result file.
func runLocalReport() (string, error) {
	fileResult, urlResult, err := loadSavedResult(exportOptions.InputPath)
	if err != nil {
		return "", err
	}

	var base, body string
	if urlResult != nil {
		base = export.SanitizeFilename(urlResult.Profile.Host)
		if base == "report" && urlResult.URL != "" {
			base = export.SanitizeFilename(urlResult.URL)
		}
		var panel strings.Builder
		render.URLResult(&panel, urlResult)
		body = panel.String()
	} else {
		base = export.SanitizeFilename(fileResult.OriginalFilename)
		var panel strings.Builder
		render.FileResult(&panel, fileResult, 0)
		body = panel.String()
	}

	dir := config.GetResultsFolder(AppConfig)
	destPath := exportOptions.OutputPath
	if exportOptions.Format == "pdf" {
		if destPath == "" {
			destPath = filepath.Join(dir, base+"_report.pdf")
		}
		if err := files.CreateFolderIfNotExists(filepath.Dir(destPath)); err != nil {
			return "", err
		}
		return destPath, export.WritePDF(destPath, "DFIR Analyzer Report", body)
	}

	if destPath == "" {
		destPath = filepath.Join(dir, base+".sarif")
	}
	if err := files.CreateFolderIfNotExists(filepath.Dir(destPath)); err != nil {
		return "", err
	}

	if urlResult != nil {
		report, err := export.BuildURLReport(urlResult)
		if err != nil {
			return "", err
		}
		return destPath, export.WriteSARIF(destPath, report)
	}

	report, err := export.BuildFileReport(fileResult)
	if err != nil {
		return "", err
	}
	return destPath, export.WriteSARIF(destPath, report)
}

// loadSavedResult reads a result file written by 'scan --output' or
// 'urlscan --output'. URL results are recognized by their url field.
func loadSavedResult(path string) (*api.AnalysisResult, *api.URLAnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read result file %q: %w", path, err)
	}

	var probe struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("corrupt result file %q: %w", path, err)
	}

	if probe.URL != "" {
		var result api.URLAnalysisResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, nil, fmt.Errorf("corrupt result file %q: %w", path, err)
		}
		return nil, &result, nil
	}

	var result api.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, nil, fmt.Errorf("corrupt result file %q: %w", path, err)
	}
	return &result, nil, nil
}

// Initialize flags for the export command.
func init() {
	ExportCmd.Flags().StringVarP(&exportOptions.Format, "format", "f", "", "Report format (csv, json, pdf, or sarif).")
	ExportCmd.Flags().StringVar(&exportOptions.SHA256, "sha256", "", "SHA-256 content hash of the scanned file (csv/json).")
	ExportCmd.Flags().StringVarP(&exportOptions.InputPath, "input", "i", "", "Saved result file to build the report from (pdf/sarif).")
	ExportCmd.Flags().StringVarP(&exportOptions.OutputPath, "output", "o", "", "Path for the generated report. Defaults to the results folder.")
	ExportCmd.Flags().BoolP("help", "h", false, "Show help for the export command.")
}
