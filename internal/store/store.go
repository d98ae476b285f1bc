// Record persistence interfaces and sinks
package store

import (
	"time"

	"oeesim/internal/oee"
)

// RecordWriter is an interface to support different record sinks.
type RecordWriter interface {
	Write(oee.Record) error
}

// Optional: writers can also support batch mode.
type batchRecordWriter interface {
	WriteBatch([]oee.Record) error
}

// RecordStore is a durable sink that also supports reads.
type RecordStore interface {
	RecordWriter
	// Query returns records matching the model filter (ModelAll for
	// every model) whose timestamps fall within the window, ordered by
	// timestamp ascending. A limit > 0 keeps only the newest records.
	Query(modelName string, window time.Duration, limit int) ([]oee.Record, error)
	Close() error
}

// ModelAll matches every model in a query.
const ModelAll = "all"
