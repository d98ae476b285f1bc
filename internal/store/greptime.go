package store

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"oeesim/internal/oee"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// recordFields is the field schema in row value order, between the two
// tag columns and the time index.
var recordFields = []struct {
	name string
	typ  types.ColumnType
}{
	{"planned_time", types.FLOAT64},
	{"downtime", types.FLOAT64},
	{"actual_cycle_time", types.FLOAT64},
	{"ideal_cycle_time", types.FLOAT64},
	{"total_simulations", types.INT64},
	{"failed_simulations", types.INT64},
	{"availability", types.FLOAT64},
	{"performance", types.FLOAT64},
	{"quality", types.FLOAT64},
	{"oee", types.FLOAT64},
	{"notes", types.STRING},
}

// GreptimeDBWriter mirrors records to GreptimeDB via the ingester
// client. It is write-only; durable queries go through the FileStore.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
	log    *slog.Logger
}

// NewGreptimeDBWriter connects to a GreptimeDB endpoint ("host" or
// "host:port"). The target table is created on first ingest by the
// server.
func NewGreptimeDBWriter(endpoint, database string, log *slog.Logger) (*GreptimeDBWriter, error) {
	host := endpoint
	port := 0
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port > 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{client: client, table: oee.RecordTableName, log: log}, nil
}

// Write inserts a single record.
func (w *GreptimeDBWriter) Write(rec oee.Record) error {
	return w.WriteBatch([]oee.Record{rec})
}

// WriteBatch inserts multiple records.
func (w *GreptimeDBWriter) WriteBatch(records []oee.Record) error {
	if len(records) == 0 {
		return nil
	}

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	for _, name := range []string{"id", "model_name"} {
		if err := tbl.AddTagColumn(name, types.STRING); err != nil {
			return err
		}
	}
	for _, f := range recordFields {
		if err := tbl.AddFieldColumn(f.name, f.typ); err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range records {
		err := tbl.AddRow(
			r.ID,
			r.ModelName,
			r.PlannedTime,
			r.Downtime,
			r.ActualCycleTime,
			r.IdealCycleTime,
			int64(r.TotalSimulations),
			int64(r.FailedSimulations),
			r.Availability,
			r.Performance,
			r.Quality,
			r.OEE,
			r.Notes,
			r.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		if w.log != nil {
			w.log.Error("greptime write failed", "error", err, "rows", len(records))
		}
		return err
	}
	if w.log != nil {
		w.log.Debug("greptime write", "rows", len(records))
	}
	return nil
}
