package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/watch"
)

// nearBottomThreshold is the scroll percentage (0.0-1.0) at which we consider
// the viewport to be "near" the bottom for auto-follow purposes.
const nearBottomThreshold = 0.98

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		m.updateViewport()

	case RecordMsg:
		m.handleRecord(domain.LogRecord(msg))

	case NoticeMsg:
		m.handleNotice(watch.Notice(msg))
		cmds = append(cmds, noticeClearCmd())

	case TickMsg:
		m.sessionTotal = m.sink.Stats().TotalRecords
		cmds = append(cmds, tickCmd())

	case EmptyResultMsg:
		if msg.Err != nil {
			m.lastNotice = "Empty failed: " + truncateError(msg.Err, maxErrorDisplayLen)
		} else {
			m.records = m.records[:0]
			m.sessionTotal = 0
			m.updateViewport()
			m.lastNotice = "Log file emptied"
		}
		cmds = append(cmds, noticeClearCmd())

	case ResyncMsg:
		m.records = append(m.records[:0], msg...)
		m.updateViewport()
		m.viewport.GotoBottom()

	case WatchToggleMsg:
		if msg.Err != nil {
			m.lastNotice = "Watch failed: " + truncateError(msg.Err, maxErrorDisplayLen)
			cmds = append(cmds, noticeClearCmd())
		}

	case PrefsSaveMsg:
		if msg.Err != nil {
			m.lastNotice = "Prefs not saved: " + truncateError(msg.Err, maxErrorDisplayLen)
			cmds = append(cmds, noticeClearCmd())
		}

	case NoticeClearMsg:
		m.lastNotice = ""
	}

	// Handle viewport updates
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	// Handle text input if in filter mode
	if m.mode == ModeFilter {
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle mode-specific keys first
	switch m.mode {
	case ModeFilter:
		cmd := m.handleFilterKey(msg)
		return m, cmd
	case ModeHelp:
		m.handleHelpKey(msg)
		return m, nil
	case ModeConfirmEmpty:
		cmd := m.handleConfirmKey(msg)
		return m, cmd
	}

	// Normal mode keys
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7", "8":
		idx := int(msg.String()[0] - '1')
		return m, m.toggleSeverity(domain.Severities[idx])

	case "A":
		return m, m.setAllSeverities(true)

	case "N":
		return m, m.setAllSeverities(false)

	case "w":
		return m, toggleWatchCmd(m.watcher, m.path)

	case "c":
		m.records = m.records[:0]
		m.updateViewport()
		return m, nil

	case "r":
		return m, resyncCmd(m.sink, m.searchPattern)

	case "E":
		m.mode = ModeConfirmEmpty
		return m, nil
	}

	// Handle common navigation keys
	if m.handleNavigationKey(msg) {
		return m, nil
	}

	return m, nil
}

// toggleSeverity flips one severity in the live filter and persists the
// change. Already-delivered records of that severity are hidden or
// shown immediately; new records of a disabled severity never arrive.
func (m *Model) toggleSeverity(sev domain.Severity) tea.Cmd {
	enabled := !m.filter.Enabled(sev)
	m.filter.SetEnabled(sev, enabled)
	m.userPrefs.SetLevelEnabled(sev, enabled)
	m.updateViewport()
	return savePrefsCmd(m.prefsPath, m.userPrefs)
}

// setAllSeverities enables or disables every severity at once
func (m *Model) setAllSeverities(enabled bool) tea.Cmd {
	for _, sev := range domain.Severities {
		m.filter.SetEnabled(sev, enabled)
		m.userPrefs.SetLevelEnabled(sev, enabled)
	}
	m.updateViewport()
	return savePrefsCmd(m.prefsPath, m.userPrefs)
}

// handleFilterKey handles keys in filter mode
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.textInput.Blur()
		m.searchPattern = ""
		m.updateViewport()
		return nil

	case "enter":
		m.searchPattern = m.textInput.Value()
		m.mode = ModeNormal
		m.textInput.Blur()
		m.updateViewport()
		return nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	// Live update filter
	m.searchPattern = m.textInput.Value()
	m.updateViewport()
	return cmd
}

// handleHelpKey handles keys in help mode
func (m *Model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "?", "q", "enter":
		m.mode = ModeNormal
	}
}

// handleConfirmKey handles the empty-file confirmation prompt
func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		return emptyFileCmd(m.path, m.sink)
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
	}
	return nil
}

// handleNavigationKey handles common navigation keys.
// Returns true if the key was handled.
func (m *Model) handleNavigationKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "?":
		m.mode = ModeHelp
		return true

	case "/":
		m.mode = ModeFilter
		m.textInput.SetValue("")
		m.textInput.Focus()
		return true

	case "esc":
		// Clear filters
		m.searchPattern = ""
		m.updateViewport()
		return true

	case "up", "k":
		m.viewport.LineUp(1)
		m.followMode = false
		return true

	case "down", "j":
		m.viewport.LineDown(1)
		return true

	case "pgup":
		m.viewport.HalfViewUp()
		m.followMode = false
		return true

	case "pgdown":
		m.viewport.HalfViewDown()
		return true

	case "home", "g":
		m.viewport.GotoTop()
		m.followMode = false
		return true

	case "end", "G":
		m.viewport.GotoBottom()
		m.followMode = true
		return true

	case "F":
		m.followMode = !m.followMode
		if m.followMode {
			m.viewport.GotoBottom()
		}
		return true
	}

	return false
}

// handleWindowSize handles window resize messages
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2 // Severity panel
	footerHeight := 2 // Status bar
	verticalMargins := headerHeight + footerHeight

	viewportHeight := msg.Height - verticalMargins
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}
}

// handleRecord handles a new log record message
func (m *Model) handleRecord(record domain.LogRecord) {
	// Check if we're at/near bottom BEFORE adding new content
	wasNearBottom := m.isNearBottom()

	m.records = append(m.records, record)
	// Keep only last records - create new slice to release memory from old entries
	if len(m.records) > maxDisplayRecords {
		newRecords := make([]domain.LogRecord, maxDisplayRecords)
		copy(newRecords, m.records[len(m.records)-maxDisplayRecords:])
		m.records = newRecords
	}
	m.updateViewport()

	// If user was at bottom, re-enable follow mode and stay at bottom
	if wasNearBottom {
		m.followMode = true
		m.viewport.GotoBottom()
	} else if m.followMode {
		m.viewport.GotoBottom()
	}
}

// handleNotice turns a watcher notice into status bar feedback
func (m *Model) handleNotice(n watch.Notice) {
	switch n.Kind {
	case watch.NoticeStarted:
		m.lastNotice = "Watching " + n.Path
	case watch.NoticeStopped:
		m.lastNotice = "Stopped watching"
	case watch.NoticeTruncated:
		m.lastNotice = "File truncated; reading from the start"
	case watch.NoticeReplaced:
		m.lastNotice = "File replaced; reading from the start"
	case watch.NoticeFileMissing:
		m.lastNotice = "File is gone; watching stopped"
	case watch.NoticeReadError:
		m.lastNotice = "Read error: " + truncateError(n.Err, maxErrorDisplayLen)
	}
}

// isNearBottom checks if the viewport is at or near the bottom
func (m *Model) isNearBottom() bool {
	if m.viewport.AtBottom() {
		return true
	}
	return m.viewport.ScrollPercent() >= nearBottomThreshold
}

// updateViewport updates the viewport content
func (m *Model) updateViewport() {
	var lines []string

	for _, record := range m.filteredRecords() {
		lines = append(lines, m.formatRecord(record))
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// filteredRecords returns display records after applying the severity
// toggles and the text filter. Unknown-severity records are always
// shown.
func (m *Model) filteredRecords() []domain.LogRecord {
	var result []domain.LogRecord
	for _, record := range m.records {
		if record.Severity != domain.SeverityUnknown && !m.filter.Enabled(record.Severity) {
			continue
		}
		if m.searchPattern != "" && !containsIgnoreCase(record.Raw, m.searchPattern) {
			continue
		}
		result = append(result, record)
	}
	return result
}

// containsIgnoreCase performs a case-insensitive substring search
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// truncateError truncates an error message to maxLen characters
func truncateError(err error, maxLen int) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > maxLen {
		return msg[:maxLen-3] + "..."
	}
	return msg
}
