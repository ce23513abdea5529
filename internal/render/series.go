package render

import (
	"time"

	"github.com/dfir-analyzer/dfirctl/internal/api"
)

// Series is a chart-ready pairing of labels and values.
type Series struct {
	Labels []string
	Values []float64
}

// TypeSeries maps the stats type breakdown into a series.
func TypeSeries(stats *api.Stats) Series {
	return labelCountSeries(stats.Types)
}

// TimeSeries maps the stats scan-over-time breakdown into a series.
func TimeSeries(stats *api.Stats) Series {
	return labelCountSeries(stats.Times)
}

func labelCountSeries(points []api.LabelCount) Series {
	s := Series{
		Labels: make([]string, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		s.Labels = append(s.Labels, p.Label)
		s.Values = append(s.Values, float64(p.Count))
	}
	return s
}

// TimelineSeries maps filesystem timeline entries into a size-over-time
// series, labeled by modification time.
func TimelineSeries(timeline []api.TimelineEntry) Series {
	s := Series{
		Labels: make([]string, 0, len(timeline)),
		Values: make([]float64, 0, len(timeline)),
	}
	for _, entry := range timeline {
		label := time.Unix(entry.ModifiedAt, 0).UTC().Format("2006-01-02 15:04")
		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, float64(entry.SizeBytes))
	}
	return s
}
