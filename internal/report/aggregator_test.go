package report

import (
	"errors"
	"math"
	"testing"
	"time"

	"oeesim/internal/oee"
)

func mkRecord(model string, ts time.Time, a, p, q float64) oee.Record {
	return oee.Record{
		ModelName:    model,
		Timestamp:    ts,
		Availability: a,
		Performance:  p,
		Quality:      q,
		OEE:          a * p * q,
	}
}

func TestSummarize_Empty(t *testing.T) {
	var agg Aggregator
	s, err := agg.Summarize(nil, Filter{ModelName: ModelAll, Window: 24 * time.Hour})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 0 {
		t.Fatalf("count = %d, want 0", s.Count)
	}
	if s.Trend != "" {
		t.Fatalf("trend = %q, want empty", s.Trend)
	}
}

func TestSummarize_SingleRecord(t *testing.T) {
	now := time.Unix(1000000, 0).UTC()
	rec := mkRecord("m1", now.Add(-time.Hour), 0.875, 0.8, 0.9)

	var agg Aggregator
	s, err := agg.Summarize([]oee.Record{rec}, Filter{ModelName: "m1", Window: 24 * time.Hour, Now: now})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 1 {
		t.Fatalf("count = %d, want 1", s.Count)
	}
	if s.AvgAvailability != rec.Availability || s.AvgPerformance != rec.Performance ||
		s.AvgQuality != rec.Quality || s.AvgOEE != rec.OEE {
		t.Fatalf("averages differ from single record: %+v", s)
	}
	if s.MinOEE.OEE != rec.OEE || s.MaxOEE.OEE != rec.OEE {
		t.Fatalf("extrema differ from single record: %+v", s)
	}
	if !s.MinOEE.Timestamp.Equal(rec.Timestamp) {
		t.Fatalf("extremum timestamp = %v, want %v", s.MinOEE.Timestamp, rec.Timestamp)
	}
}

func TestSummarize_FiltersModelAndWindow(t *testing.T) {
	now := time.Unix(1000000, 0).UTC()
	records := []oee.Record{
		mkRecord("m1", now.Add(-time.Hour), 0.9, 0.9, 0.9),
		mkRecord("m2", now.Add(-time.Hour), 0.5, 0.5, 0.5),     // other model
		mkRecord("m1", now.Add(-48*time.Hour), 0.1, 0.1, 0.1),  // outside window
		mkRecord("m1", now.Add(time.Hour), 0.2, 0.2, 0.2),      // in the future
		mkRecord("m1", now.Add(-2*time.Hour), 0.8, 0.8, 0.8),
	}

	var agg Aggregator
	s, err := agg.Summarize(records, Filter{ModelName: "m1", Window: 24 * time.Hour, Now: now})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 2 {
		t.Fatalf("count = %d, want 2", s.Count)
	}
	wantAvg := (0.9 + 0.8) / 2
	if math.Abs(s.AvgAvailability-wantAvg) > 1e-9 {
		t.Fatalf("avg availability = %v, want %v", s.AvgAvailability, wantAvg)
	}
}

func TestSummarize_AllModels(t *testing.T) {
	now := time.Unix(1000000, 0).UTC()
	records := []oee.Record{
		mkRecord("m1", now.Add(-time.Hour), 0.9, 0.9, 0.9),
		mkRecord("m2", now.Add(-time.Hour), 0.5, 0.5, 0.5),
	}
	var agg Aggregator
	s, err := agg.Summarize(records, Filter{ModelName: ModelAll, Window: 24 * time.Hour, Now: now})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 2 {
		t.Fatalf("count = %d, want 2", s.Count)
	}
}

func TestSummarize_InvalidFilter(t *testing.T) {
	var agg Aggregator
	if _, err := agg.Summarize(nil, Filter{ModelName: "", Window: time.Hour}); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("empty model: expected ErrInvalidFilter, got %v", err)
	}
	if _, err := agg.Summarize(nil, Filter{ModelName: ModelAll, Window: -time.Hour}); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("negative window: expected ErrInvalidFilter, got %v", err)
	}
}

func TestSummarize_Extrema(t *testing.T) {
	now := time.Unix(1000000, 0).UTC()
	lowTS := now.Add(-3 * time.Hour)
	highTS := now.Add(-time.Hour)
	records := []oee.Record{
		mkRecord("m1", now.Add(-2*time.Hour), 0.7, 0.7, 0.7),
		mkRecord("m1", lowTS, 0.3, 0.3, 0.3),
		mkRecord("m1", highTS, 0.95, 0.95, 0.95),
	}
	var agg Aggregator
	s, err := agg.Summarize(records, Filter{ModelName: "m1", Window: 24 * time.Hour, Now: now})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !s.MinOEE.Timestamp.Equal(lowTS) {
		t.Errorf("min timestamp = %v, want %v", s.MinOEE.Timestamp, lowTS)
	}
	if !s.MaxOEE.Timestamp.Equal(highTS) {
		t.Errorf("max timestamp = %v, want %v", s.MaxOEE.Timestamp, highTS)
	}
}

func TestSummarize_Trend(t *testing.T) {
	now := time.Unix(1000000, 0).UTC()
	mk := func(offsets []time.Duration, oees []float64) []oee.Record {
		records := make([]oee.Record, len(offsets))
		for i := range offsets {
			records[i] = oee.Record{ModelName: "m1", Timestamp: now.Add(offsets[i]), OEE: oees[i]}
		}
		return records
	}

	cases := []struct {
		name string
		oees []float64
		want Trend
	}{
		{"improving", []float64{0.5, 0.5, 0.8, 0.8}, TrendImproving},
		{"declining", []float64{0.8, 0.8, 0.5, 0.5}, TrendDeclining},
		{"flat within deadband", []float64{0.700, 0.701, 0.702, 0.703}, TrendFlat},
	}

	offsets := []time.Duration{-4 * time.Hour, -3 * time.Hour, -2 * time.Hour, -time.Hour}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var agg Aggregator
			s, err := agg.Summarize(mk(offsets, tc.oees), Filter{ModelName: "m1", Window: 24 * time.Hour, Now: now})
			if err != nil {
				t.Fatalf("Summarize: %v", err)
			}
			if s.Trend != tc.want {
				t.Fatalf("trend = %q, want %q", s.Trend, tc.want)
			}
		})
	}
}

func TestSummarize_UnorderedInput(t *testing.T) {
	// Trend must follow timestamps, not input order.
	now := time.Unix(1000000, 0).UTC()
	records := []oee.Record{
		{ModelName: "m1", Timestamp: now.Add(-time.Hour), OEE: 0.9},
		{ModelName: "m1", Timestamp: now.Add(-4 * time.Hour), OEE: 0.4},
		{ModelName: "m1", Timestamp: now.Add(-2 * time.Hour), OEE: 0.9},
		{ModelName: "m1", Timestamp: now.Add(-3 * time.Hour), OEE: 0.4},
	}
	var agg Aggregator
	s, err := agg.Summarize(records, Filter{ModelName: "m1", Window: 24 * time.Hour, Now: now})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Trend != TrendImproving {
		t.Fatalf("trend = %q, want %q", s.Trend, TrendImproving)
	}
}
