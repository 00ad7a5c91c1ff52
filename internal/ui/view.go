package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"platewatch/internal/export"
	"platewatch/internal/registry"
)

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch {
	case m.showHelp:
		content = m.renderHelp()
	case m.activeTab == tabStats:
		content = m.renderStats()
	case m.activeTab == tabSettings:
		content = m.renderSettings()
	default:
		content = m.renderTable()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		content,
		m.renderStatusLine(),
		m.renderCommandBar(),
	)
}

func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderCountLine())

	return b.String()
}

func (m Model) renderSearchLine() string {
	if m.searching || m.view.Search != "" {
		return m.search.View() + "  " +
			m.styles.FaintText.Render("in "+m.view.Scope.String())
	}
	return m.styles.FaintText.Render("Press / to search")
}

// renderBanner shows the latest fetch outcome: a fetch error, or a
// short-lived notice when new rows arrived. An error never hides the
// table; the last good snapshot stays on screen below it.
func (m Model) renderBanner() string {
	if m.state.LastError != nil {
		return m.styles.DangerBanner.Render(
			"Error fetching data: " + truncate(m.state.LastError.Error(), m.width-24))
	}
	if m.state.RowsAdded > 0 && !m.state.LastGrowth.IsZero() &&
		m.now.Sub(m.state.LastGrowth) < growthBannerTTL {
		return m.styles.SuccessBanner.Render(fmt.Sprintf(
			"%d new %s loaded", m.state.RowsAdded,
			plural(m.state.RowsAdded, "vehicle record", "vehicle records")))
	}
	return ""
}

func (m Model) renderCountLine() string {
	total := len(m.state.Snapshot.Rows)
	line := fmt.Sprintf("Showing %d of %d %s", m.visible, total,
		plural(total, "vehicle", "vehicles"))
	if m.view.AutoUpdate {
		line += fmt.Sprintf(" • updating every %ds", int(m.view.Interval.Seconds()))
	} else {
		line += " • auto update paused"
	}
	return m.styles.MutedText.Render(line)
}

func (m Model) renderStats() string {
	stats := registry.Summarize(m.state.Snapshot.Rows, topCallSigns)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCard("Total Vehicles", fmt.Sprintf("%d", stats.TotalVehicles)),
		" ",
		m.renderCard("Unique Call Signs", fmt.Sprintf("%d", stats.UniqueCallSigns)),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(m.styles.AccentText.Render("Plates per Call Sign"))
	b.WriteString("\n")

	if len(stats.TopCallSigns) == 0 {
		b.WriteString(m.styles.MutedText.Render("No data yet."))
	} else {
		for _, c := range stats.TopCallSigns {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				m.styles.Text.Render(fmt.Sprintf("%-16s", truncate(c.CallSign, 16))),
				m.styles.InfoText.Render(fmt.Sprintf("%4d", c.Count))))
		}
	}

	return b.String()
}

func (m Model) renderCard(label, value string) string {
	return m.styles.Card.Render(
		m.styles.MutedText.Render(label) + "\n" +
			m.styles.Text.Bold(true).Render(value))
}

func (m Model) renderSettings() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render("Export"))
	b.WriteString("\n")
	b.WriteString("  Format: " + m.renderFormatPicker())
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf(
		"  Writes %s (%s) to the working directory. Press e to export.",
		m.exportFormat.Filename(), m.exportFormat.MIMEType())))
	b.WriteString("\n\n")

	b.WriteString(m.styles.AccentText.Render("Refresh"))
	b.WriteString("\n")
	if m.view.AutoUpdate {
		b.WriteString(fmt.Sprintf("  Auto update on, every %ds", int(m.view.Interval.Seconds())))
	} else {
		b.WriteString("  Auto update paused; press r to fetch manually")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("  Press i to cycle the interval (1s, 3s, 5s)."))
	b.WriteString("\n\n")

	b.WriteString(m.styles.AccentText.Render("Appearance"))
	b.WriteString("\n")
	b.WriteString("  Theme: " + m.theme.Name + " ")
	b.WriteString(m.styles.MutedText.Render("(T to cycle: " + strings.Join(ThemeNames(), ", ") + ")"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.AccentText.Render("Connection"))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(
		"  Endpoint and key come from ~/.config/platewatch/config.toml\n" +
			"  or the PLATEWATCH_URL / PLATEWATCH_KEY environment variables."))

	return b.String()
}

func (m Model) renderFormatPicker() string {
	segments := make([]string, 0, 3)
	for _, f := range export.Formats() {
		if f == m.exportFormat {
			segments = append(segments, m.styles.AccentText.Render("["+f.String()+"]"))
		} else {
			segments = append(segments, m.styles.MutedText.Render(" "+f.String()+" "))
		}
	}
	return strings.Join(segments, " ")
}

func (m Model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusError {
		return m.styles.DangerText.Render(m.status)
	}
	return m.styles.SuccessText.Render(m.status)
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"/", "Search plates and call signs"},
		{"f", "Cycle search scope (export format on Settings)"},
		{"Esc", "Clear the search"},
		{"j/k, arrows", "Move the table selection"},
		{"r", "Fetch now"},
		{"a", "Toggle auto update"},
		{"i", "Cycle poll interval (1s, 3s, 5s)"},
		{"e", "Export the current table"},
		{"1/2/3, Tab", "Switch views"},
		{"T", "Cycle theme"},
		{"?", "Close help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("Keys"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.AccentText.Render(fmt.Sprintf("%-12s", r[0])),
			m.styles.MutedText.Render(r[1])))
	}
	return b.String()
}
