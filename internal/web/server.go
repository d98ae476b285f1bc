// Web dashboard serving OEE summaries and record entry
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"oeesim/internal/config"
	"oeesim/internal/oee"
	"oeesim/internal/report"
	"oeesim/internal/store"
)

//go:embed templates/index.html
var content embed.FS

// Server renders the OEE overview page and JSON endpoints.
type Server struct {
	store  store.RecordStore
	cfg    *config.Config
	engine *oee.Engine
	agg    report.Aggregator
	tpl    *template.Template
	log    *slog.Logger
	srv    *http.Server
}

// NewServer wires handlers to a record store.
func NewServer(st store.RecordStore, cfg *config.Config, log *slog.Logger) *Server {
	funcs := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}
	tpl := template.Must(template.New("index.html").Funcs(funcs).ParseFS(content, "templates/index.html"))
	return &Server{
		store:  st,
		cfg:    cfg,
		engine: oee.NewEngine(),
		agg:    report.Aggregator{TrendDeadband: cfg.Report.TrendDeadband},
		tpl:    tpl,
		log:    log,
	}
}

// Handler returns the routed mux, exported for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/records", s.handleRecords)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/compute", s.handleCompute)
	return mux
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutCtx)
	}()
	return s.srv.ListenAndServe()
}

func (s *Server) window(r *http.Request) time.Duration {
	days := s.cfg.Report.WindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 0 {
			days = d
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

func (s *Server) modelFilter(r *http.Request) string {
	if m := r.URL.Query().Get("model"); m != "" {
		return m
	}
	return report.ModelAll
}

func (s *Server) query(r *http.Request) ([]oee.Record, error) {
	return s.store.Query(s.modelFilter(r), s.window(r), s.cfg.Report.Limit)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	records, err := s.query(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summary, err := s.agg.Summarize(records, report.Filter{ModelName: s.modelFilter(r), Window: s.window(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := struct {
		Model   string
		Summary report.Summary
		Records []oee.Record
	}{
		Model:   s.modelFilter(r),
		Summary: summary,
		Records: records,
	}
	if err := s.tpl.Execute(w, data); err != nil && s.log != nil {
		s.log.Error("render index", "error", err)
	}
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.query(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.query(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summary, err := s.agg.Summarize(records, report.Filter{ModelName: s.modelFilter(r), Window: s.window(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := paramsFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := s.engine.Compute(p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.FormValue("save") == "true" {
		if err := s.store.Write(rec); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func paramsFromForm(r *http.Request) (oee.Params, error) {
	var (
		p   oee.Params
		err error
	)
	p.ModelName = r.FormValue("model_name")
	p.Notes = r.FormValue("notes")
	if p.PlannedTime, err = strconv.ParseFloat(r.FormValue("planned_time"), 64); err != nil {
		return p, err
	}
	if p.Downtime, err = strconv.ParseFloat(r.FormValue("downtime"), 64); err != nil {
		return p, err
	}
	if p.ActualCycleTime, err = strconv.ParseFloat(r.FormValue("actual_cycle_time"), 64); err != nil {
		return p, err
	}
	if p.IdealCycleTime, err = strconv.ParseFloat(r.FormValue("ideal_cycle_time"), 64); err != nil {
		return p, err
	}
	if p.TotalSimulations, err = strconv.Atoi(r.FormValue("total_simulations")); err != nil {
		return p, err
	}
	if p.FailedSimulations, err = strconv.Atoi(r.FormValue("failed_simulations")); err != nil {
		return p, err
	}
	return p, nil
}
