package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dfir-analyzer/dfirctl/internal/api"
)

// FileResult writes the human-readable summary of a file analysis.
func FileResult(w io.Writer, result *api.AnalysisResult, sizeBytes int64) {
	fmt.Fprintf(w, "File:            %s\n", result.OriginalFilename)
	if sizeBytes > 0 {
		fmt.Fprintf(w, "Size:            %s\n", FormatBytes(float64(sizeBytes)))
	}

	if result.Image != nil {
		ImageSummary(w, result.Image)
		return
	}

	fmt.Fprintf(w, "SHA-256:         %s\n", result.SHA256)
	if result.StoredReference != "" {
		fmt.Fprintf(w, "Stored as:       %s\n", result.StoredReference)
	}
	fmt.Fprintf(w, "Risk score:      %d/100 (%s)\n", result.RiskScore, RiskBand(result.RiskScore))
	fmt.Fprintf(w, "Recommendation:  %s\n", Recommendation(result.RiskScore))

	if len(result.Timeline) > 0 {
		fmt.Fprintf(w, "\nTimeline (%d entries):\n", len(result.Timeline))
		series := TimelineSeries(result.Timeline)
		for i, label := range series.Labels {
			fmt.Fprintf(w, "  %s  %s  %s\n", label, FormatBytes(series.Values[i]), result.Timeline[i].Path)
		}
	}
}

// ImageSummary writes the summary of a RAW disk image analysis.
func ImageSummary(w io.Writer, image *api.ImageSummary) {
	fmt.Fprintf(w, "Files found:     %d\n", image.NumFiles)

	if len(image.TopFiles) > 0 {
		fmt.Fprintf(w, "\nLargest files:\n")
		for _, f := range image.TopFiles {
			fmt.Fprintf(w, "  %-12s %s  %s\n", FormatBytes(float64(f.Size)), f.SHA256, f.Name)
		}
	}

	if len(image.Suspicious) > 0 {
		fmt.Fprintf(w, "\nSuspicious files:\n")
		for _, name := range image.Suspicious {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}

// URLResult writes the human-readable summary of a URL analysis.
func URLResult(w io.Writer, result *api.URLAnalysisResult) {
	fmt.Fprintf(w, "URL:             %s\n", result.URL)
	fmt.Fprintf(w, "Risk score:      %d/100 (%s)\n", result.RiskScore, RiskBand(result.RiskScore))
	fmt.Fprintf(w, "Category:        %s\n", result.RiskCategory)
	fmt.Fprintf(w, "Recommendation:  %s\n", Recommendation(result.RiskScore))

	p := result.Profile
	fmt.Fprintf(w, "\nProfile:\n")
	fmt.Fprintf(w, "  Scheme:        %s\n", p.Scheme)
	fmt.Fprintf(w, "  Host:          %s\n", p.Host)
	fmt.Fprintf(w, "  TLD:           %s\n", p.TLD)
	fmt.Fprintf(w, "  Length:        %d\n", p.URLLength)
	fmt.Fprintf(w, "  Entropy:       %.2f\n", p.Entropy)
	fmt.Fprintf(w, "  Subdomains:    %d\n", p.SubdomainCount)
	if cert := p.Certificate; cert != nil {
		fmt.Fprintf(w, "  Certificate:   issuer=%s self-signed=%t", cert.Issuer, cert.IsSelfSigned)
		if cert.DaysUntilExpiry != nil {
			fmt.Fprintf(w, " expires-in=%dd", *cert.DaysUntilExpiry)
		}
		fmt.Fprintln(w)
	}

	if len(result.Signals) > 0 {
		fmt.Fprintf(w, "\nSignals:\n")
		for _, s := range result.Signals {
			fmt.Fprintf(w, "  [%-6s] %s: %s\n", strings.ToUpper(s.Severity), s.Type, s.Description)
			if s.Evidence != "" {
				fmt.Fprintf(w, "           evidence: %s\n", s.Evidence)
			}
			if s.Remediation != "" {
				fmt.Fprintf(w, "           remediation: %s\n", s.Remediation)
			}
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		for _, r := range result.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}

// StatsSummary writes the dashboard aggregates with simple text bars for the
// categorical series.
func StatsSummary(w io.Writer, stats *api.Stats) {
	fmt.Fprintf(w, "Total scans:     %d\n", stats.TotalScans)
	fmt.Fprintf(w, "Average risk:    %.1f\n", stats.AvgRisk)
	fmt.Fprintf(w, "High risk:       %d\n", stats.HighRisk)

	if len(stats.Types) > 0 {
		fmt.Fprintf(w, "\nBy type:\n")
		writeBars(w, TypeSeries(stats))
	}
	if len(stats.Times) > 0 {
		fmt.Fprintf(w, "\nOver time:\n")
		writeBars(w, TimeSeries(stats))
	}
}

// History writes the past-scans listing.
func History(w io.Writer, entries []api.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scans recorded yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %3d/100 (%-6s)  %s  %s\n",
			e.ScannedAt, e.RiskScore, RiskBand(e.RiskScore), e.SHA256, e.Filename)
	}
}

func writeBars(w io.Writer, s Series) {
	max := 0.0
	for _, v := range s.Values {
		if v > max {
			max = v
		}
	}
	for i, label := range s.Labels {
		width := 0
		if max > 0 {
			width = int(s.Values[i] / max * 40)
		}
		fmt.Fprintf(w, "  %-20s %s %d\n", label, strings.Repeat("#", width), int(s.Values[i]))
	}
}
