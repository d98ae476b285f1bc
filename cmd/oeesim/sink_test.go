package main

import (
	"testing"

	"oeesim/internal/config"
	"oeesim/internal/store"
)

func TestNewSink_FileOnly(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	writer, st, cleanup, err := newSink(cfg, false, nil)
	if err != nil {
		t.Fatalf("newSink: %v", err)
	}
	defer cleanup()

	if _, ok := writer.(*store.FileStore); !ok {
		t.Fatalf("expected *store.FileStore, got %T", writer)
	}
	if st == nil {
		t.Fatalf("expected queryable store")
	}
}

func TestNewSink_WithEcho(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	writer, _, cleanup, err := newSink(cfg, true, nil)
	if err != nil {
		t.Fatalf("newSink: %v", err)
	}
	defer cleanup()

	if _, ok := writer.(*store.MultiWriter); !ok {
		t.Fatalf("expected *store.MultiWriter, got %T", writer)
	}
}

func TestOpenStore(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	st, cleanup, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer cleanup()

	records, err := st.Query(store.ModelAll, 0, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
}
