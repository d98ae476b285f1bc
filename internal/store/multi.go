package store

import "oeesim/internal/oee"

// MultiWriter fan-outs records to multiple writers.
type MultiWriter struct {
	writers []RecordWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(writers ...RecordWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write sends a record to all writers.
func (mw *MultiWriter) Write(rec oee.Record) error {
	for _, w := range mw.writers {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple records to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteBatch(records []oee.Record) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchRecordWriter); ok {
			if err := bw.WriteBatch(records); err != nil {
				return err
			}
			continue
		}
		for _, r := range records {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}
