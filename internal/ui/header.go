package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// renderHeader renders the status bar with connection and data info.
func (m Model) renderHeader() string {
	compact := m.width < 90
	sep := "  "

	var parts []string

	parts = append(parts, m.styles.Logo.Render("platewatch"))

	switch {
	case m.state.IsOffline():
		parts = append(parts, m.styles.DangerText.Render("● OFFLINE"))
	case m.view.AutoUpdate:
		parts = append(parts, m.styles.SuccessText.Render("● LIVE"))
	default:
		parts = append(parts, m.styles.WarningText.Render("● PAUSED"))
	}

	parts = append(parts,
		m.styles.MutedText.Render("Vehicles:")+" "+
			m.styles.Text.Render(fmt.Sprintf("%d", len(m.state.Snapshot.Rows))))

	if ts := m.formatLastChecked(); ts != "" {
		parts = append(parts, m.styles.MutedText.Render(ts))
	}

	if m.state.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		errText := truncate(m.state.LastError.Error(), maxErr)
		parts = append(parts,
			m.styles.DangerText.Render(classifyConnectionError(m.state.LastError))+" "+
				m.styles.DangerText.Render(errText))
	}

	return m.styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderTabs renders the tab bar.
func (m Model) renderTabs() string {
	tabs := []viewTab{tabTable, tabStats, tabSettings}
	segments := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%d %s", int(t)+1, t.title())
		if t == m.activeTab {
			segments = append(segments, m.styles.TabActive.Render(label))
		} else {
			segments = append(segments, m.styles.TabInactive.Render(label))
		}
	}
	return strings.Join(segments, " ")
}

// renderCommandBar renders the key hints bar.
func (m Model) renderCommandBar() string {
	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.activeTab {
	case tabStats:
		commands = []cmd{
			{"r", "Refresh"},
			{"a", m.autoUpdateLabel()},
			{"i", m.intervalLabel()},
			{"1", "Table"},
			{"3", "Settings"},
			{"?", "Help"},
		}
	case tabSettings:
		commands = []cmd{
			{"f", "Format"},
			{"e", "Export"},
			{"a", m.autoUpdateLabel()},
			{"i", m.intervalLabel()},
			{"1", "Table"},
			{"?", "Help"},
		}
	default: // tabTable
		commands = []cmd{
			{"/", "Search"},
			{"f", m.view.Scope.String()},
			{"r", "Refresh"},
			{"a", m.autoUpdateLabel()},
			{"e", "Export"},
			{"j/k", "Navigate"},
			{"?", "Help"},
		}
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			m.styles.AccentText.Render(c.key)+":"+m.styles.MutedText.Render(c.desc))
	}

	if m.view.Search != "" {
		segments = append(segments,
			m.styles.AccentText.Render("/"+truncate(m.view.Search, 18)))
	}

	segments = append(segments,
		m.styles.AccentText.Render("T")+":"+m.styles.FaintText.Render(m.theme.Name))

	return m.styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

func (m Model) autoUpdateLabel() string {
	if m.view.AutoUpdate {
		return "Pause"
	}
	return "Resume"
}

func (m Model) intervalLabel() string {
	return fmt.Sprintf("Every %ds", int(m.view.Interval.Seconds()))
}

// formatLastChecked formats the last poll time with a relative suffix.
func (m Model) formatLastChecked() string {
	if m.state.LastChecked.IsZero() {
		return "waiting for first fetch"
	}
	return m.state.LastChecked.Format("15:04:05") +
		" (" + humanize.Time(m.state.LastChecked) + ")"
}

func formatBytes(n int) string {
	return humanize.Bytes(uint64(n))
}

// classifyConnectionError returns a short description of the error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "status 401"), strings.Contains(msg, "status 403"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// plural returns the singular or plural form for n.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
