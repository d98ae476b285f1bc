// Aggregation of stored OEE records into summary statistics
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"oeesim/internal/oee"
)

// ErrInvalidFilter reports a malformed aggregation request.
var ErrInvalidFilter = errors.New("invalid filter")

// ModelAll is the sentinel model filter matching every model.
const ModelAll = "all"

// DefaultTrendDeadband is the minimum absolute OEE difference between
// the two halves of a window before a trend is reported.
const DefaultTrendDeadband = 0.01

// Trend describes the OEE direction across a summarized window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendFlat      Trend = "flat"
)

// Filter selects the records fed into a summary.
type Filter struct {
	// ModelName matches records by model; ModelAll disables the check.
	// An empty string is rejected as ambiguous.
	ModelName string
	// Window bounds the summary to [now-Window, now]. Zero means
	// unbounded; negative is rejected.
	Window time.Duration
	// Now anchors the window. Zero value means time.Now().
	Now time.Time
}

// Extremum is an OEE extremum with the timestamp it occurred at.
type Extremum struct {
	OEE       float64   `json:"oee"`
	Timestamp time.Time `json:"ts"`
}

// Summary holds aggregate statistics over a filtered record set.
// When Count is zero the averages and extrema are undefined and the
// callers must treat the summary as empty rather than as an error.
type Summary struct {
	ModelName       string   `json:"model_name"`
	Count           int      `json:"count"`
	AvgAvailability float64  `json:"avg_availability"`
	AvgPerformance  float64  `json:"avg_performance"`
	AvgQuality      float64  `json:"avg_quality"`
	AvgOEE          float64  `json:"avg_oee"`
	MinOEE          Extremum `json:"min_oee"`
	MaxOEE          Extremum `json:"max_oee"`
	Trend           Trend    `json:"trend,omitempty"`
}

// Aggregator summarizes record sets. The zero value uses
// DefaultTrendDeadband.
type Aggregator struct {
	TrendDeadband float64
}

// Summarize filters records by f and computes count, per-metric means,
// OEE extrema, and the trend direction. An empty filtered set yields
// Summary{Count: 0} with a nil error.
func (a *Aggregator) Summarize(records []oee.Record, f Filter) (Summary, error) {
	if f.ModelName == "" {
		return Summary{}, fmt.Errorf("%w: model_name must not be empty (use %q for all models)", ErrInvalidFilter, ModelAll)
	}
	if f.Window < 0 {
		return Summary{}, fmt.Errorf("%w: time window must not be negative", ErrInvalidFilter)
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	var cutoff time.Time
	if f.Window > 0 {
		cutoff = now.Add(-f.Window)
	}

	var matched []oee.Record
	for _, r := range records {
		if f.ModelName != ModelAll && r.ModelName != f.ModelName {
			continue
		}
		if !cutoff.IsZero() && (r.Timestamp.Before(cutoff) || r.Timestamp.After(now)) {
			continue
		}
		matched = append(matched, r)
	}

	s := Summary{ModelName: f.ModelName, Count: len(matched)}
	if len(matched) == 0 {
		return s, nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})

	s.MinOEE = Extremum{OEE: matched[0].OEE, Timestamp: matched[0].Timestamp}
	s.MaxOEE = s.MinOEE
	for _, r := range matched {
		s.AvgAvailability += r.Availability
		s.AvgPerformance += r.Performance
		s.AvgQuality += r.Quality
		s.AvgOEE += r.OEE
		if r.OEE < s.MinOEE.OEE {
			s.MinOEE = Extremum{OEE: r.OEE, Timestamp: r.Timestamp}
		}
		if r.OEE > s.MaxOEE.OEE {
			s.MaxOEE = Extremum{OEE: r.OEE, Timestamp: r.Timestamp}
		}
	}
	n := float64(len(matched))
	s.AvgAvailability /= n
	s.AvgPerformance /= n
	s.AvgQuality /= n
	s.AvgOEE /= n
	s.Trend = a.trend(matched)

	return s, nil
}

// trend compares mean OEE of the older half against the newer half of
// a time-ordered record set. Differences inside the dead-band read as
// flat so noise is not flagged as a trend.
func (a *Aggregator) trend(ordered []oee.Record) Trend {
	if len(ordered) < 2 {
		return ""
	}
	deadband := a.TrendDeadband
	if deadband <= 0 {
		deadband = DefaultTrendDeadband
	}
	mid := len(ordered) / 2
	first := meanOEE(ordered[:mid])
	second := meanOEE(ordered[mid:])
	switch {
	case second-first > deadband:
		return TrendImproving
	case first-second > deadband:
		return TrendDeclining
	default:
		return TrendFlat
	}
}

func meanOEE(records []oee.Record) float64 {
	var sum float64
	for _, r := range records {
		sum += r.OEE
	}
	return sum / float64(len(records))
}
