package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfir-analyzer/dfirctl/internal/api"
)

func TestBuildURLReport(t *testing.T) {
	result := &api.URLAnalysisResult{
		URL:          "https://phish.example",
		RiskScore:    82,
		RiskCategory: "phishing",
		Signals: []api.Signal{
			{Type: "suspicious-tld", Severity: "medium", Description: "TLD is frequently abused"},
			{Type: "homoglyph-host", Severity: "high", Description: "Host mimics a known brand", Evidence: "paypa1.com"},
		},
	}

	report, err := BuildURLReport(result)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, "dfir-analyzer", run.Tool.Driver.Name)
	require.Len(t, run.Results, 2)

	assert.Equal(t, "suspicious-tld", *run.Results[0].RuleID)
	assert.Equal(t, "warning", *run.Results[0].Level)
	assert.Equal(t, "homoglyph-host", *run.Results[1].RuleID)
	assert.Equal(t, "error", *run.Results[1].Level)
	assert.Contains(t, *run.Results[1].Message.Text, "paypa1.com")

	loc := run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation
	assert.Equal(t, "https://phish.example", *loc.URI)
}

func TestBuildURLReportNoSignals(t *testing.T) {
	report, err := BuildURLReport(&api.URLAnalysisResult{URL: "https://example.com"})
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}

func TestBuildFileReport(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		wantLevel string
	}{
		{"Low score maps to note", 20, "note"},
		{"Medium score maps to warning", 65, "warning"},
		{"High score maps to error", 90, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := BuildFileReport(&api.AnalysisResult{
				OriginalFilename: "report.pdf",
				RiskScore:        tt.score,
			})
			require.NoError(t, err)
			require.Len(t, report.Runs, 1)
			require.Len(t, report.Runs[0].Results, 1)

			sarifResult := report.Runs[0].Results[0]
			assert.Equal(t, "file-risk-score", *sarifResult.RuleID)
			assert.Equal(t, tt.wantLevel, *sarifResult.Level)

			loc := sarifResult.Locations[0].PhysicalLocation.ArtifactLocation
			assert.Equal(t, "report.pdf", *loc.URI)
		})
	}
}
