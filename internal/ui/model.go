package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"platewatch/internal/export"
	"platewatch/internal/prefs"
	"platewatch/internal/registry"
)

const (
	// uiRefreshInterval is how often the UI re-reads the store. The
	// poller updates the store on its own cadence; this tick only
	// controls repaint latency.
	uiRefreshInterval = time.Second

	// growthBannerTTL is how long the "new data" banner stays visible.
	growthBannerTTL = 4 * time.Second

	// statusTTL is how long transient status messages stay visible.
	statusTTL = 5 * time.Second

	// topCallSigns bounds the call-sign breakdown on the stats view.
	topCallSigns = 10
)

// Controller is the handle the UI uses to drive the refresh loop.
type Controller interface {
	SetEnabled(on bool)
	SetInterval(d time.Duration)
	RefreshNow()
}

// Options configure the UI program.
type Options struct {
	Context      context.Context
	Store        *registry.Store
	Poller       Controller
	PollInterval time.Duration
	Prefs        prefs.Prefs
	PrefsPath    string
}

type viewTab int

const (
	tabTable viewTab = iota
	tabStats
	tabSettings
)

func (t viewTab) title() string {
	switch t {
	case tabTable:
		return "Table"
	case tabStats:
		return "Stats"
	case tabSettings:
		return "Settings"
	default:
		return "?"
	}
}

// tickMsg drives the periodic repaint.
type tickMsg time.Time

// peekMsg is a one-shot early repaint after a manual refresh.
type peekMsg struct{}

// exportDoneMsg reports the outcome of an export command.
type exportDoneMsg struct {
	filename string
	size     int
	err      error
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	store  *registry.Store
	poller Controller

	theme  Theme
	styles Styles

	prefs     prefs.Prefs
	prefsPath string

	state   registry.State
	view    registry.ViewState
	visible int // rows passing the current filter

	activeTab    viewTab
	table        table.Model
	search       textinput.Model
	searching    bool
	showHelp     bool
	exportFormat export.Format

	status      string
	statusError bool
	statusAt    time.Time

	width  int
	height int
	ready  bool
	now    time.Time
}

func newModel(opts Options) Model {
	theme := GetTheme(opts.Prefs.Theme)

	search := textinput.New()
	search.Placeholder = "plate or call sign"
	search.Prompt = "/ "
	search.CharLimit = 64

	cols := buildColumns(registry.DisplayColumns(), 80)
	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(theme.TableStyles())

	m := Model{
		store:     opts.Store,
		poller:    opts.Poller,
		theme:     theme,
		styles:    theme.Styles(),
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		view: registry.ViewState{
			Scope:      registry.ScopeAll,
			AutoUpdate: opts.Prefs.AutoUpdate,
			Interval:   opts.PollInterval,
		},
		table:        tbl,
		search:       search,
		exportFormat: export.FormatCSV,
		now:          time.Now(),
	}
	m.state = opts.Store.State()
	m.syncRows()
	return m
}

// Init starts the repaint ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(uiRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// syncRows applies the current search and scope to the latest snapshot
// and pushes the result into the table widget. Filtering happens here,
// at repaint time, so a changed search term never waits on a fetch.
func (m *Model) syncRows() {
	filtered := registry.Filter(m.state.Snapshot.Rows, m.view.Search, m.view.Scope)
	m.visible = len(filtered)
	m.table.SetRows(buildTableRows(filtered))
}

// buildTableRows converts registry rows to table widget rows, in the
// display column order.
func buildTableRows(rows []registry.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.PlateNumber, r.CallSign}
	}
	return out
}

// buildColumns splits the available width across the display columns.
func buildColumns(names []string, width int) []table.Column {
	if width < 20 {
		width = 20
	}
	per := (width - 4) / len(names)
	cols := make([]table.Column, len(names))
	for i, name := range names {
		cols[i] = table.Column{Title: name, Width: per}
	}
	return cols
}

func (m *Model) resize() {
	m.table.SetColumns(buildColumns(registry.DisplayColumns(), m.width))
	m.table.SetWidth(m.width)

	// Header, tabs, search line, banner slot, count line, status, footer.
	chrome := 9
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
	m.statusAt = m.now
}

func (m *Model) expireStatus() {
	if m.status != "" && m.now.Sub(m.statusAt) > statusTTL {
		m.status = ""
		m.statusError = false
	}
}
