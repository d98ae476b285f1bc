// Writer implementation printing records to STDOUT
package store

import (
	"encoding/json"
	"fmt"

	"oeesim/internal/oee"
)

// StdoutWriter prints records to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single record.
func (w *StdoutWriter) Write(rec oee.Record) error {
	data, _ := json.Marshal(rec)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple records.
func (w *StdoutWriter) WriteBatch(records []oee.Record) error {
	for _, r := range records {
		_ = w.Write(r)
	}
	return nil
}
