package ui

import (
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"platewatch/internal/export"
	"platewatch/internal/prefs"
	"platewatch/internal/registry"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.state = m.store.State()
		m.expireStatus()
		m.syncRows()
		return m, tickCmd()

	case peekMsg:
		m.state = m.store.State()
		m.syncRows()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Exported "+formatBytes(msg.size)+" to "+msg.filename, false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "1":
		m.activeTab = tabTable
		return m, nil
	case "2":
		m.activeTab = tabStats
		return m, nil
	case "3":
		m.activeTab = tabSettings
		return m, nil
	case "tab":
		m.activeTab = (m.activeTab + 1) % 3
		return m, nil

	case "/":
		m.activeTab = tabTable
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		if m.view.Search != "" {
			m.view.Search = ""
			m.search.SetValue("")
			m.syncRows()
		}
		return m, nil

	case "f":
		if m.activeTab == tabSettings {
			m.exportFormat = nextFormat(m.exportFormat)
		} else {
			m.view.Scope = m.view.Scope.Next()
			m.syncRows()
		}
		return m, nil

	case "a":
		m.view.AutoUpdate = !m.view.AutoUpdate
		m.poller.SetEnabled(m.view.AutoUpdate)
		m.prefs.AutoUpdate = m.view.AutoUpdate
		m.savePrefs()
		if m.view.AutoUpdate {
			m.setStatus("Auto update on", false)
		} else {
			m.setStatus("Auto update paused", false)
		}
		return m, nil

	case "i":
		seconds := nextPollChoice(int(m.view.Interval.Seconds()))
		m.prefs.PollSeconds = seconds
		m.view.Interval = time.Duration(seconds) * time.Second
		m.poller.SetInterval(m.view.Interval)
		m.savePrefs()
		return m, nil

	case "r":
		m.poller.RefreshNow()
		m.setStatus("Checking for new data...", false)
		return m, peekSoon()

	case "e":
		return m, exportCmd(m.state.Snapshot, m.exportFormat)

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.table.SetStyles(m.theme.TableStyles())
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	}

	if m.activeTab == tabTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.view.Search = ""
		m.syncRows()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.Search = m.search.Value()
	m.syncRows()
	return m, cmd
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// peekSoon schedules a single early repaint so a manual refresh shows
// up before the next regular tick.
func peekSoon() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
		return peekMsg{}
	})
}

// exportCmd encodes the snapshot and writes it next to the process
// working directory under the format's fixed filename.
func exportCmd(snap registry.Snapshot, format export.Format) tea.Cmd {
	return func() tea.Msg {
		data, err := export.Encode(snap, format)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		name := format.Filename()
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{filename: name, size: len(data)}
	}
}

func nextFormat(current export.Format) export.Format {
	formats := export.Formats()
	for i, f := range formats {
		if f == current {
			return formats[(i+1)%len(formats)]
		}
	}
	return formats[0]
}

func nextPollChoice(current int) int {
	for i, c := range prefs.PollChoices {
		if c == current {
			return prefs.PollChoices[(i+1)%len(prefs.PollChoices)]
		}
	}
	return prefs.PollChoices[0]
}
