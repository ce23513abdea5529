package export

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/render"
)

const (
	toolName = "dfir-analyzer"
	toolURI  = "https://github.com/dfir-analyzer/dfirctl"
)

// BuildURLReport converts a URL analysis into a SARIF run, one result per
// signal.
func BuildURLReport(result *api.URLAnalysisResult) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, signal := range result.Signals {
		rule := run.AddRule(signal.Type).
			WithDescription(signal.Description).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(signal.Severity),
			})

		message := signal.Description
		if signal.Evidence != "" {
			message = fmt.Sprintf("%s (evidence: %s)", message, signal.Evidence)
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(result.URL)),
		)

		sarifResult := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(toSarifLevel(signal.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(sarifResult)
	}
	report.AddRun(run)

	return report, nil
}

// BuildFileReport converts a file analysis into a SARIF run with a single
// risk-score result.
func BuildFileReport(result *api.AnalysisResult) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	band := render.RiskBand(result.RiskScore)
	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	rule := run.AddRule("file-risk-score").
		WithDescription("Aggregated file risk score from the analyzer").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{
			Level: toSarifLevel(string(band)),
		})

	location := sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(result.OriginalFilename)),
	)

	message := fmt.Sprintf("Risk score %d/100 (%s). %s",
		result.RiskScore, band, render.Recommendation(result.RiskScore))
	sarifResult := sarif.NewRuleResult(rule.ID).
		WithMessage(sarif.NewTextMessage(message)).
		WithLevel(toSarifLevel(string(band))).
		WithLocations([]*sarif.Location{location})
	run.AddResult(sarifResult)
	report.AddRun(run)

	return report, nil
}

// WriteSARIF writes the report to path in pretty-printed form.
func WriteSARIF(path string, report *sarif.Report) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create SARIF file %q: %w", path, err)
	}
	defer file.Close()

	if err := report.PrettyWrite(file); err != nil {
		return fmt.Errorf("failed to write SARIF file %q: %w", path, err)
	}
	return nil
}

func toSarifLevel(severity string) string {
	switch severity {
	case "high":
		return "error"
	case "medium":
		return "warning"
	default:
		return "note"
	}
}
