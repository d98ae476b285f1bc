// Interactive terminal dashboard for OEE records
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"oeesim/internal/config"
	"oeesim/internal/oee"
	"oeesim/internal/report"
	"oeesim/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const entryPlaceholder = "model,planned,downtime,actual,ideal,total,failed[,notes]"

// Dashboard drives the bubbletea program.
type Dashboard struct {
	store  store.RecordStore
	cfg    *config.Config
	engine *oee.Engine
}

// NewDashboard wires the dashboard to a record store.
func NewDashboard(st store.RecordStore, cfg *config.Config) *Dashboard {
	return &Dashboard{store: st, cfg: cfg, engine: oee.NewEngine()}
}

// Run starts the TUI and blocks until the user quits.
func (d *Dashboard) Run() error {
	m := newModel(d.store, d.cfg, d.engine)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type model struct {
	store  store.RecordStore
	cfg    *config.Config
	engine *oee.Engine
	agg    report.Aggregator
	th     report.Thresholds

	table   table.Model
	vp      viewport.Model
	entry   textinput.Model
	records []oee.Record
	models  []string
	modelIx int
	dialog  bool
	help    bool
	status  string
	width   int
	height  int
}

func newModel(st store.RecordStore, cfg *config.Config, engine *oee.Engine) model {
	cols := []table.Column{
		{Title: "Timestamp", Width: 16},
		{Title: "Model", Width: 20},
		{Title: "Avail", Width: 8},
		{Title: "Perf", Width: 8},
		{Title: "Qual", Width: 8},
		{Title: "OEE", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(10), table.WithFocused(true))

	ti := textinput.New()
	ti.Placeholder = entryPlaceholder
	ti.CharLimit = 200

	m := model{
		store:  st,
		cfg:    cfg,
		engine: engine,
		agg:    report.Aggregator{TrendDeadband: cfg.Report.TrendDeadband},
		th: report.Thresholds{
			Excellent:        cfg.Report.Thresholds.Excellent,
			Good:             cfg.Report.Thresholds.Good,
			Fair:             cfg.Report.Thresholds.Fair,
			AvailabilityHint: cfg.Report.Thresholds.AvailabilityHint,
			PerformanceHint:  cfg.Report.Thresholds.PerformanceHint,
			QualityHint:      cfg.Report.Thresholds.QualityHint,
		},
		table: t,
		vp:    viewport.New(0, 0),
		entry: ti,
	}
	m.reload()
	return m
}

// currentModel returns the active model filter.
func (m *model) currentModel() string {
	if m.modelIx == 0 || m.modelIx > len(m.models) {
		return report.ModelAll
	}
	return m.models[m.modelIx-1]
}

func (m *model) reload() {
	window := time.Duration(m.cfg.Report.WindowDays) * 24 * time.Hour
	records, err := m.store.Query(store.ModelAll, window, m.cfg.Report.Limit)
	if err != nil {
		m.status = errorStyle.Render("query failed: " + err.Error())
		return
	}
	m.records = records

	seen := map[string]bool{}
	m.models = m.models[:0]
	for _, r := range records {
		if !seen[r.ModelName] {
			seen[r.ModelName] = true
			m.models = append(m.models, r.ModelName)
		}
	}
	if m.modelIx > len(m.models) {
		m.modelIx = 0
	}
	m.refresh()
}

func (m *model) refresh() {
	filter := m.currentModel()
	rows := make([]table.Row, 0, len(m.records))
	var filtered []oee.Record
	for _, r := range m.records {
		if filter != report.ModelAll && r.ModelName != filter {
			continue
		}
		filtered = append(filtered, r)
		rows = append(rows, table.Row{
			r.Timestamp.Format("2006-01-02 15:04"),
			r.ModelName,
			fmt.Sprintf("%.1f%%", r.Availability*100),
			fmt.Sprintf("%.1f%%", r.Performance*100),
			fmt.Sprintf("%.1f%%", r.Quality*100),
			fmt.Sprintf("%.1f%%", r.OEE*100),
		})
	}
	m.table.SetRows(rows)

	window := time.Duration(m.cfg.Report.WindowDays) * 24 * time.Hour
	s, err := m.agg.Summarize(filtered, report.Filter{ModelName: filter, Window: window})
	if err != nil {
		m.status = errorStyle.Render("summarize failed: " + err.Error())
		return
	}
	text := report.RenderSummary(s, window, m.th)
	if m.vp.Width > 0 {
		text = wordwrap.String(text, m.vp.Width)
	}
	m.vp.SetContent(text)
	m.status = statusStyle.Render(fmt.Sprintf("%d records | filter: %s", len(filtered), filter))
}

func (m *model) submitEntry() {
	p, err := parseEntryInput(m.entry.Value())
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	rec, err := m.engine.Compute(p)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	if err := m.store.Write(rec); err != nil {
		m.status = errorStyle.Render("save failed: " + err.Error())
		return
	}
	m.status = statusStyle.Render(fmt.Sprintf("saved run for %s (OEE %.1f%%)", rec.ModelName, rec.OEE*100))
	m.reload()
}

// parseEntryInput parses a comma-separated run entry.
func parseEntryInput(s string) (oee.Params, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 7 {
		return oee.Params{}, fmt.Errorf("expected %s", entryPlaceholder)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var (
		p   oee.Params
		err error
	)
	p.ModelName = parts[0]
	if p.PlannedTime, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return oee.Params{}, fmt.Errorf("planned time: %w", err)
	}
	if p.Downtime, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return oee.Params{}, fmt.Errorf("downtime: %w", err)
	}
	if p.ActualCycleTime, err = strconv.ParseFloat(parts[3], 64); err != nil {
		return oee.Params{}, fmt.Errorf("actual cycle time: %w", err)
	}
	if p.IdealCycleTime, err = strconv.ParseFloat(parts[4], 64); err != nil {
		return oee.Params{}, fmt.Errorf("ideal cycle time: %w", err)
	}
	if p.TotalSimulations, err = strconv.Atoi(parts[5]); err != nil {
		return oee.Params{}, fmt.Errorf("total simulations: %w", err)
	}
	if p.FailedSimulations, err = strconv.Atoi(parts[6]); err != nil {
		return oee.Params{}, fmt.Errorf("failed simulations: %w", err)
	}
	if len(parts) > 7 {
		p.Notes = strings.Join(parts[7:], ",")
	}
	return p, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		tableHeight := msg.Height / 2
		if tableHeight < 4 {
			tableHeight = 4
		}
		m.table.SetHeight(tableHeight)
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - tableHeight - 3
		if m.vp.Height < 3 {
			m.vp.Height = 3
		}
		m.refresh()
	case tea.KeyMsg:
		if m.dialog {
			switch msg.Type {
			case tea.KeyEnter:
				m.submitEntry()
				m.dialog = false
				m.entry.Blur()
			case tea.KeyEsc:
				m.dialog = false
				m.entry.Blur()
			default:
				var cmd tea.Cmd
				m.entry, cmd = m.entry.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.dialog = true
			m.entry.SetValue("")
			m.entry.Focus()
			return m, textinput.Blink
		case "m":
			m.modelIx = (m.modelIx + 1) % (len(m.models) + 1)
			m.refresh()
		case "r":
			m.reload()
		case "?":
			m.help = true
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.help {
		return dialogStyle.Render(strings.Join([]string{
			titleStyle.Render("oeesim dashboard"),
			"",
			"n      record a new simulation run",
			"m      cycle model filter",
			"r      reload records from the store",
			"?      toggle this help",
			"q      quit",
		}, "\n"))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("OEE Dashboard") + "\n")
	sb.WriteString(m.table.View() + "\n")
	sb.WriteString(m.vp.View() + "\n")
	if m.dialog {
		sb.WriteString(dialogStyle.Render("New run: "+m.entry.View()) + "\n")
	}
	sb.WriteString(m.status)
	return sb.String()
}
