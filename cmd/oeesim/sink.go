package main

import (
	"log/slog"

	"oeesim/internal/config"
	"oeesim/internal/store"
)

// newSink sets up the record sinks for a save operation: the durable
// file store, an optional GreptimeDB mirror, and an optional JSON echo
// to STDOUT. It returns the combined writer, the queryable store, and
// a cleanup function.
func newSink(cfg *config.Config, echoJSON bool, log *slog.Logger) (store.RecordWriter, store.RecordStore, func(), error) {
	fs, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() { fs.Close() }

	writers := []store.RecordWriter{fs}
	if cfg.Greptime.Endpoint != "" {
		gw, err := store.NewGreptimeDBWriter(cfg.Greptime.Endpoint, cfg.Greptime.Database, log)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		writers = append(writers, gw)
	}
	if echoJSON {
		writers = append(writers, &store.StdoutWriter{})
	}

	if len(writers) == 1 {
		return fs, fs, cleanup, nil
	}
	return store.NewMultiWriter(writers...), fs, cleanup, nil
}

// openStore opens the durable store for read-only commands.
func openStore(cfg *config.Config) (store.RecordStore, func(), error) {
	fs, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() { fs.Close() }, nil
}
