package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"oeesim/internal/oee"
)

// FileStore persists records as JSONL in a data directory.
type FileStore struct {
	path string
	file *os.File
	enc  *json.Encoder

	// Now anchors query windows; replaced in tests.
	Now func() time.Time
}

// NewFileStore creates dir if needed and opens the record log for
// appending.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "records.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path, file: f, enc: json.NewEncoder(f), Now: time.Now}, nil
}

// Write appends a single record.
func (s *FileStore) Write(rec oee.Record) error {
	return s.enc.Encode(rec)
}

// WriteBatch appends multiple records.
func (s *FileStore) WriteBatch(records []oee.Record) error {
	for _, r := range records {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Query reads the record log and returns matching records ordered by
// timestamp ascending. With limit > 0 only the newest matches are kept.
func (s *FileStore) Query(modelName string, window time.Duration, limit int) ([]oee.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var cutoff time.Time
	if window > 0 {
		cutoff = now().Add(-window)
	}

	var matched []oee.Record
	dec := json.NewDecoder(f)
	for {
		var rec oee.Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if modelName != ModelAll && rec.ModelName != modelName {
			continue
		}
		if !cutoff.IsZero() && rec.Timestamp.Before(cutoff) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

// Close closes the underlying log file.
func (s *FileStore) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
