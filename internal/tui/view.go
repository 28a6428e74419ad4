package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/laralog/laralog/internal/domain"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.helpView()
	case ModeConfirmEmpty:
		return m.confirmView()
	default:
		return m.mainView()
	}
}

// mainView renders the main TUI layout
func (m Model) mainView() string {
	var sb strings.Builder

	// Severity panel at top
	sb.WriteString(m.severityPanel())
	sb.WriteString("\n")

	// Main log viewport
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	// Status bar at bottom
	sb.WriteString(m.statusBar())

	return sb.String()
}

// severityPanel renders the severity toggle header
func (m Model) severityPanel() string {
	var items []string

	for i, sev := range domain.Severities {
		label := fmt.Sprintf("%d:%s", i+1, sev)
		if m.filter.Enabled(sev) {
			items = append(items, severityStyle(sev).Render(label))
		} else {
			items = append(items, disabledStyle.Render(label))
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(items, "  "))
	return headerStyle.Render(header)
}

// formatRecord formats a single record for display. Body lines are
// rendered dimmed and indented under the header line.
func (m Model) formatRecord(record domain.LogRecord) string {
	ts := "--:--:--"
	if record.HasTimestamp() {
		ts = record.Timestamp.Format("15:04:05")
	}

	level := severityStyle(record.Severity).Render(fmt.Sprintf("%-9s", record.Severity))

	channel := ""
	if record.Channel != "" {
		channel = dimStyle.Render(record.Channel) + " "
	}

	line := fmt.Sprintf("%s %s %s%s", dimStyle.Render(ts), level, channel, record.Summary)

	if len(record.Body) == 0 {
		return line
	}

	var sb strings.Builder
	sb.WriteString(line)
	for _, bodyLine := range record.Body {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("    " + bodyLine))
	}
	return sb.String()
}

// statusBar renders the bottom status bar
func (m Model) statusBar() string {
	var left string

	// Left side: mode/filter info
	switch {
	case m.mode == ModeFilter:
		left = "Filter: " + m.textInput.View()
	case m.lastNotice != "":
		left = m.lastNotice
	case m.searchPattern != "":
		left = fmt.Sprintf("Filter: %s (ESC to clear)", m.searchPattern)
	default:
		left = "? for help"
	}

	// Right side: watch state, follow mode and counts
	watchIndicator := "[STOPPED]"
	if m.watcher.Watching() {
		watchIndicator = "[WATCHING]"
	}
	followIndicator := "[FOLLOW]"
	if !m.followMode {
		followIndicator = "[PAUSED]"
	}
	right := fmt.Sprintf("%s %s %d/%d entries", watchIndicator, followIndicator,
		len(m.filteredRecords()), m.sessionTotal)

	// Calculate widths
	leftWidth := m.width - len(right) - 4
	if leftWidth < 0 {
		leftWidth = 0
	}

	leftPart := statusStyle.Width(leftWidth).Render(left)
	rightPart := statusStyle.Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPart, "  ", rightPart)
}

// confirmView renders the empty-file confirmation prompt
func (m Model) confirmView() string {
	prompt := fmt.Sprintf(`Empty log file?

This truncates %s to zero length.
The file's contents cannot be recovered.

  y  Empty the file
  n  Cancel
`, m.path)

	return confirmStyle.Render(prompt)
}

// helpView renders the help overlay
func (m Model) helpView() string {
	help := fmt.Sprintf(`
Laralog - %s

Navigation:
  j/↓        Scroll down
  k/↑        Scroll up (pauses auto-follow)
  g/Home     Go to top (pauses auto-follow)
  G/End      Go to bottom (resumes auto-follow)
  PgUp/PgDn  Page up/down
  F          Toggle auto-follow mode

Severities:
  1-8        Toggle a level (emergency..debug)
  A          Enable all levels
  N          Disable all levels

Filtering:
  /          Text filter (substring)
  ESC        Clear filter

File:
  w          Start/stop watching
  c          Clear display
  r          Restore display from session history
  E          Empty the log file (asks first)

Other:
  ?          Toggle help
  q/Ctrl+C   Quit

Press any key to close help...
`, m.path)

	return helpStyle.Render(help)
}
