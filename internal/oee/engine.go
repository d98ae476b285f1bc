// OEE computation from raw run parameters
package oee

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput reports run parameters that fail validation.
var ErrInvalidInput = errors.New("invalid input")

// Params holds the raw inputs for one simulation run. Times are minutes.
type Params struct {
	ModelName         string
	PlannedTime       float64
	Downtime          float64
	ActualCycleTime   float64
	IdealCycleTime    float64
	TotalSimulations  int
	FailedSimulations int
	Notes             string
}

// Engine computes OEE records. The zero value is usable; Now may be
// replaced in tests for deterministic timestamps.
type Engine struct {
	Now func() time.Time
}

// NewEngine returns an Engine stamping records with the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (p Params) validate() error {
	if p.ModelName == "" {
		return fmt.Errorf("%w: model_name must not be empty", ErrInvalidInput)
	}
	if p.PlannedTime <= 0 {
		return fmt.Errorf("%w: planned_time must be positive", ErrInvalidInput)
	}
	if p.TotalSimulations <= 0 {
		return fmt.Errorf("%w: total_simulations must be positive", ErrInvalidInput)
	}
	if p.ActualCycleTime <= 0 {
		return fmt.Errorf("%w: actual_cycle_time must be positive", ErrInvalidInput)
	}
	if p.Downtime < 0 {
		return fmt.Errorf("%w: downtime must not be negative", ErrInvalidInput)
	}
	if p.IdealCycleTime < 0 {
		return fmt.Errorf("%w: ideal_cycle_time must not be negative", ErrInvalidInput)
	}
	if p.FailedSimulations < 0 {
		return fmt.Errorf("%w: failed_simulations must not be negative", ErrInvalidInput)
	}
	if p.FailedSimulations > p.TotalSimulations {
		return fmt.Errorf("%w: failed_simulations cannot exceed total_simulations", ErrInvalidInput)
	}
	return nil
}

// Compute validates p and returns a new Record with the derived metrics.
//
// The formulas are applied literally: downtime above planned_time
// yields a negative availability and a cycle time below ideal yields a
// performance above 1. Neither is clamped; out-of-range metrics signal
// bad input data and are left for the caller to surface.
func (e *Engine) Compute(p Params) (Record, error) {
	if err := p.validate(); err != nil {
		return Record{}, err
	}

	availability := (p.PlannedTime - p.Downtime) / p.PlannedTime
	performance := p.IdealCycleTime / p.ActualCycleTime
	quality := float64(p.TotalSimulations-p.FailedSimulations) / float64(p.TotalSimulations)

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	return Record{
		ID:                uuid.NewString(),
		ModelName:         p.ModelName,
		PlannedTime:       p.PlannedTime,
		Downtime:          p.Downtime,
		ActualCycleTime:   p.ActualCycleTime,
		IdealCycleTime:    p.IdealCycleTime,
		TotalSimulations:  p.TotalSimulations,
		FailedSimulations: p.FailedSimulations,
		Availability:      availability,
		Performance:       performance,
		Quality:           quality,
		OEE:               availability * performance * quality,
		Notes:             p.Notes,
		Timestamp:         now().UTC(),
	}, nil
}
