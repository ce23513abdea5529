// Package render holds the pure presentation mapping: risk bands,
// recommendation text, byte formatting, and chart-ready series. Both the file
// and URL flows go through the same band function; the thresholds live here
// and nowhere else.
package render

import (
	"fmt"
	"math"
)

// Band is the coarse three-level risk classification.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// RiskBand maps a 0-100 risk score onto a band. Boundaries: 40 is still low,
// 70 is still medium.
func RiskBand(score int) Band {
	switch {
	case score <= 40:
		return BandLow
	case score <= 70:
		return BandMedium
	default:
		return BandHigh
	}
}

const (
	recommendationLow    = "Low risk. No immediate action required."
	recommendationMedium = "Medium risk. Review the artifact manually before trusting it."
	recommendationHigh   = "High risk. Quarantine the artifact and start an incident investigation."
)

// Recommendation returns the fixed guidance text for the score's band.
func Recommendation(score int) string {
	switch RiskBand(score) {
	case BandLow:
		return recommendationLow
	case BandMedium:
		return recommendationMedium
	default:
		return recommendationHigh
	}
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with base-1024 scaling and two decimals.
// Zero yields "0 Bytes"; NaN, infinities, and negative input yield "-" instead
// of propagating garbage into the output.
func FormatBytes(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return "-"
	}
	if n == 0 {
		return "0 Bytes"
	}

	exp := int(math.Floor(math.Log(n) / math.Log(1024)))
	if exp < 0 {
		exp = 0
	}
	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}

	value := n / math.Pow(1024, float64(exp))
	if exp == 0 {
		return fmt.Sprintf("%.0f %s", value, byteUnits[exp])
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[exp])
}
