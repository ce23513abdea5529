package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskBand(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  Band
	}{
		{"Zero score", 0, BandLow},
		{"Upper low boundary", 40, BandLow},
		{"Just above low", 41, BandMedium},
		{"Mid medium", 65, BandMedium},
		{"Upper medium boundary", 70, BandMedium},
		{"Just above medium", 71, BandHigh},
		{"Maximum score", 100, BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskBand(tt.score))
		})
	}
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, "Low risk. No immediate action required.", Recommendation(40))
	assert.Equal(t, "Medium risk. Review the artifact manually before trusting it.", Recommendation(41))
	assert.Equal(t, "Medium risk. Review the artifact manually before trusting it.", Recommendation(70))
	assert.Equal(t, "High risk. Quarantine the artifact and start an incident investigation.", Recommendation(71))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"Zero bytes", 0, "0 Bytes"},
		{"Sub-kilobyte", 512, "512 Bytes"},
		{"Exactly one kilobyte", 1024, "1.00 KB"},
		{"One and a half kilobytes", 1536, "1.50 KB"},
		{"Two kilobytes", 2048, "2.00 KB"},
		{"Megabytes", 5 * 1024 * 1024, "5.00 MB"},
		{"Gigabytes", 3.5 * 1024 * 1024 * 1024, "3.50 GB"},
		{"Terabytes", 2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
		{"Beyond the largest unit", 1024 * 1024 * 1024 * 1024 * 1024, "1024.00 TB"},
		{"Negative input", -1, "-"},
		{"NaN input", math.NaN(), "-"},
		{"Positive infinity", math.Inf(1), "-"},
		{"Negative infinity", math.Inf(-1), "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.input))
		})
	}
}
