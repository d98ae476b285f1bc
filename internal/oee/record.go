// Record structs with greptime tags
package oee

import (
	"os"
	"time"
)

// Record represents one computed simulation run for storage and reporting.
type Record struct {
	ID                string    `json:"id"`         // TAG
	ModelName         string    `json:"model_name"` // TAG
	PlannedTime       float64   `json:"planned_time"`
	Downtime          float64   `json:"downtime"`
	ActualCycleTime   float64   `json:"actual_cycle_time"`
	IdealCycleTime    float64   `json:"ideal_cycle_time"`
	TotalSimulations  int       `json:"total_simulations"`
	FailedSimulations int       `json:"failed_simulations"`
	Availability      float64   `json:"availability"`
	Performance       float64   `json:"performance"`
	Quality           float64   `json:"quality"`
	OEE               float64   `json:"oee"`
	Notes             string    `json:"notes,omitempty"`
	Timestamp         time.Time `json:"ts"` // TIME INDEX
}

// RecordTableName holds the table name used when writing to GreptimeDB.
// It defaults to "oee_records" but can be overridden via the
// OEE_TABLE environment variable.
var RecordTableName = func() string {
	if env := os.Getenv("OEE_TABLE"); env != "" {
		return env
	}
	return "oee_records"
}()

func (Record) TableName() string {
	return RecordTableName
}
