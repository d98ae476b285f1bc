package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"oeesim/internal/config"
	"oeesim/internal/oee"
	"oeesim/internal/store"
)

func testServer(t *testing.T) (*Server, store.RecordStore) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { fs.Close() })
	return NewServer(fs, config.Default(), nil), fs
}

func seedRecord(t *testing.T, st store.RecordStore, model string) oee.Record {
	t.Helper()
	eng := oee.NewEngine()
	rec, err := eng.Compute(oee.Params{
		ModelName: model, PlannedTime: 480, Downtime: 60,
		ActualCycleTime: 15, IdealCycleTime: 12,
		TotalSimulations: 100, FailedSimulations: 10,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := st.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return rec
}

func TestHandleIndex(t *testing.T) {
	srv, st := testServer(t)
	seedRecord(t, st, "thermal-v2")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "thermal-v2") {
		t.Fatalf("index missing record model:\n%s", body)
	}
	if !strings.Contains(body, "63.0%") {
		t.Fatalf("index missing OEE value:\n%s", body)
	}
}

func TestHandleRecordsJSON(t *testing.T) {
	srv, st := testServer(t)
	seedRecord(t, st, "m1")
	seedRecord(t, st, "m2")

	req := httptest.NewRequest(http.MethodGet, "/records?model=m1", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var records []oee.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].ModelName != "m1" {
		t.Fatalf("unexpected records: %#v", records)
	}
}

func TestHandleSummaryEmpty(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/summary?model=nope", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var s struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Count != 0 {
		t.Fatalf("count = %d, want 0", s.Count)
	}
}

func TestHandleCompute(t *testing.T) {
	srv, st := testServer(t)

	form := url.Values{
		"model_name":         {"thermal-v2"},
		"planned_time":       {"480"},
		"downtime":           {"60"},
		"actual_cycle_time":  {"15"},
		"ideal_cycle_time":   {"12"},
		"total_simulations":  {"100"},
		"failed_simulations": {"10"},
		"save":               {"true"},
	}
	req := httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var rec oee.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.OEE < 0.62 || rec.OEE > 0.64 {
		t.Fatalf("oee = %v, want ~0.63", rec.OEE)
	}

	saved, err := st.Query(store.ModelAll, time.Hour, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(saved))
	}
}

func TestHandleCompute_InvalidInput(t *testing.T) {
	srv, _ := testServer(t)

	form := url.Values{
		"model_name":         {"m"},
		"planned_time":       {"480"},
		"downtime":           {"0"},
		"actual_cycle_time":  {"15"},
		"ideal_cycle_time":   {"12"},
		"total_simulations":  {"10"},
		"failed_simulations": {"12"},
	}
	req := httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHandleCompute_MethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/compute", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
