package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/prefs"
	"github.com/laralog/laralog/internal/watch"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
	ModeConfirmEmpty
)

// maxDisplayRecords is the maximum number of records kept in the display list
const maxDisplayRecords = 1000

// maxErrorDisplayLen is the maximum length of error messages in the status bar
const maxErrorDisplayLen = 60

// Model is the bubbletea model for the TUI
type Model struct {
	// Dependencies
	watcher   *watch.Watcher
	sink      *logs.Manager
	filter    *logs.SeverityFilter
	userPrefs prefs.Prefs
	prefsPath string

	// Watched file
	path string

	// Display state
	records       []domain.LogRecord
	searchPattern string
	sessionTotal  int

	// UI components
	viewport  viewport.Model
	textInput textinput.Model

	// Mode
	mode Mode

	// Auto-scroll
	followMode bool

	// Last notice for status bar feedback
	lastNotice string

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewModel creates a new TUI model
func NewModel(path string, watcher *watch.Watcher, sink *logs.Manager, filter *logs.SeverityFilter, userPrefs prefs.Prefs, prefsPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		watcher:    watcher,
		sink:       sink,
		filter:     filter,
		userPrefs:  userPrefs,
		prefsPath:  prefsPath,
		path:       path,
		records:    make([]domain.LogRecord, 0),
		textInput:  ti,
		mode:       ModeNormal,
		followMode: true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// RecordMsg is sent when a new log record arrives
type RecordMsg domain.LogRecord

// NoticeMsg is sent when the watcher reports a lifecycle condition
type NoticeMsg watch.Notice

// TickMsg is sent periodically to refresh session statistics
type TickMsg time.Time

// EmptyResultMsg is sent when the empty-file operation completes
type EmptyResultMsg struct {
	Err error
}

// ResyncMsg carries session history re-read from the sink
type ResyncMsg []domain.LogRecord

// WatchToggleMsg is sent when a watch start/stop completes
type WatchToggleMsg struct {
	Err error
}

// NoticeClearMsg is sent to clear the status notice after a delay
type NoticeClearMsg struct{}

// noticeClearDelay is how long to show a notice before clearing
const noticeClearDelay = 4 * time.Second

// noticeClearCmd returns a command that clears the notice after a delay
func noticeClearCmd() tea.Cmd {
	return tea.Tick(noticeClearDelay, func(t time.Time) tea.Msg {
		return NoticeClearMsg{}
	})
}

// tickCmd returns a command that ticks periodically
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// emptyFileCmd truncates the watched file to zero length and drops the
// session history. The watcher notices the truncation on its next poll
// and resets its cursor on its own.
func emptyFileCmd(path string, sink *logs.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := os.Truncate(path, 0); err != nil {
			return EmptyResultMsg{Err: err}
		}
		sink.Clear()
		return EmptyResultMsg{}
	}
}

// resyncCmd rebuilds the display list from the session history,
// e.g. to restore entries hidden by a display clear.
func resyncCmd(sink *logs.Manager, pattern string) tea.Cmd {
	return func() tea.Msg {
		records, err := sink.QueryLast(logs.RecordFilter{Pattern: pattern}, maxDisplayRecords)
		if err != nil {
			return ResyncMsg(nil)
		}
		return ResyncMsg(records)
	}
}

// toggleWatchCmd starts or stops the watch session. Stop blocks for up
// to one poll interval, so it runs off the UI loop.
func toggleWatchCmd(watcher *watch.Watcher, path string) tea.Cmd {
	return func() tea.Msg {
		if watcher.Watching() {
			watcher.Stop()
			return WatchToggleMsg{}
		}
		return WatchToggleMsg{Err: watcher.Start(path)}
	}
}

// PrefsSaveMsg is sent when a preferences write completes
type PrefsSaveMsg struct {
	Err error
}

// savePrefsCmd persists user preferences without blocking the UI loop
func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return PrefsSaveMsg{Err: prefs.Save(path, p)}
	}
}
