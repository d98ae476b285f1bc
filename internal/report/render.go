package report

import (
	"fmt"
	"strings"
	"time"

	"oeesim/internal/oee"
)

// Thresholds tune the status interpretation and the per-metric
// improvement hints in rendered reports.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64

	AvailabilityHint float64
	PerformanceHint  float64
	QualityHint      float64
}

// DefaultThresholds returns the stock interpretation cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Excellent:        0.85,
		Good:             0.70,
		Fair:             0.60,
		AvailabilityHint: 0.90,
		PerformanceHint:  0.95,
		QualityHint:      0.99,
	}
}

func (t Thresholds) status(oeeValue float64) string {
	switch {
	case oeeValue >= t.Excellent:
		return "EXCELLENT - World-class simulation efficiency"
	case oeeValue >= t.Good:
		return "GOOD - Typical simulation performance"
	case oeeValue >= t.Fair:
		return "FAIR - Room for optimization"
	default:
		return "POOR - Significant optimization needed"
	}
}

func (t Thresholds) hints(availability, performance, quality float64) []string {
	var hints []string
	if availability < t.AvailabilityHint {
		hints = append(hints, "Availability: reduce system downtime and improve resource allocation")
	}
	if performance < t.PerformanceHint {
		hints = append(hints, "Performance: optimize algorithms and cycle times")
	}
	if quality < t.QualityHint {
		hints = append(hints, "Quality: improve model validation and error handling")
	}
	return hints
}

// RenderRecord formats a single computed record as a text report with
// status interpretation and improvement hints.
func RenderRecord(rec oee.Record, th Thresholds) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OEE REPORT - %s\n", rec.ModelName)
	fmt.Fprintf(&sb, "Generated: %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Availability: %.2f%%\n", rec.Availability*100)
	fmt.Fprintf(&sb, "Performance:  %.2f%%\n", rec.Performance*100)
	fmt.Fprintf(&sb, "Quality:      %.2f%%\n", rec.Quality*100)
	sb.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&sb, "OEE:          %.2f%%\n\n", rec.OEE*100)
	fmt.Fprintf(&sb, "Status: %s\n", th.status(rec.OEE))
	if rec.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", rec.Notes)
	}
	if hints := th.hints(rec.Availability, rec.Performance, rec.Quality); len(hints) > 0 {
		sb.WriteString("\nAreas for Improvement:\n")
		for _, h := range hints {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}
	return sb.String()
}

// RenderSummary formats an aggregated summary as a text report. Empty
// summaries render a no-data notice instead of statistics.
func RenderSummary(s Summary, window time.Duration, th Thresholds) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OEE SUMMARY - %s\n", s.ModelName)
	if window > 0 {
		fmt.Fprintf(&sb, "Window: last %s\n", window)
	}
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	if s.Count == 0 {
		sb.WriteString("No simulation runs recorded for this filter.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Simulation runs: %d\n\n", s.Count)
	fmt.Fprintf(&sb, "Average Availability: %.2f%%\n", s.AvgAvailability*100)
	fmt.Fprintf(&sb, "Average Performance:  %.2f%%\n", s.AvgPerformance*100)
	fmt.Fprintf(&sb, "Average Quality:      %.2f%%\n", s.AvgQuality*100)
	sb.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&sb, "Average OEE:          %.2f%%\n", s.AvgOEE*100)
	fmt.Fprintf(&sb, "Best OEE:  %.2f%% (%s)\n", s.MaxOEE.OEE*100, s.MaxOEE.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Worst OEE: %.2f%% (%s)\n", s.MinOEE.OEE*100, s.MinOEE.Timestamp.Format("2006-01-02 15:04"))
	if s.Trend != "" {
		fmt.Fprintf(&sb, "Trend: %s\n", s.Trend)
	}
	fmt.Fprintf(&sb, "\nStatus: %s\n", th.status(s.AvgOEE))
	if hints := th.hints(s.AvgAvailability, s.AvgPerformance, s.AvgQuality); len(hints) > 0 {
		sb.WriteString("\nAreas for Improvement:\n")
		for _, h := range hints {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}
	return sb.String()
}
