// Package tui is the interactive terminal front end: a scrolling view
// of reconstructed log entries with live severity toggles, text
// filtering, and the destructive empty-file action.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/prefs"
	"github.com/laralog/laralog/internal/watch"
)

// Run starts the TUI application watching path. It owns the pipeline
// lifecycle: the watch session starts before the UI comes up and stops
// when the user quits.
func Run(path string, cfg watch.Config, managerCfg logs.ManagerConfig, userPrefs prefs.Prefs, prefsPath string) error {
	filter := logs.NewSeverityFilter()
	for _, sev := range domain.Severities {
		filter.SetEnabled(sev, userPrefs.LevelEnabled(sev))
	}

	sink := logs.NewManager(managerCfg)
	defer sink.Close()

	watcher := watch.New(sink, filter, cfg)

	model := NewModel(path, watcher, sink, filter, userPrefs, prefsPath)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())

	// Subscribe before the watcher starts so no record slips past
	subID, ch, err := sink.Subscribe(logs.RecordFilter{})
	if err != nil {
		cancel()
		return err
	}
	go forwardRecords(ctx, p, ch)
	go forwardNotices(ctx, p, watcher.Notices())

	if err := watcher.Start(path); err != nil {
		cancel()
		sink.Unsubscribe(subID)
		return err
	}

	_, runErr := p.Run()

	// Cleanup: stop the watcher first so its final flush still reaches
	// the subscription, then tear down the forwarders.
	watcher.Stop()
	cancel()
	sink.Unsubscribe(subID)

	return runErr
}

// forwardRecords forwards accepted records from the subscription channel
// to the TUI program. It exits when the context is cancelled or the
// channel is closed.
func forwardRecords(ctx context.Context, p *tea.Program, ch <-chan domain.LogRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			p.Send(RecordMsg(record))
		}
	}
}

// forwardNotices forwards watcher notices to the TUI program.
// It exits when the context is cancelled.
func forwardNotices(ctx context.Context, p *tea.Program, ch <-chan watch.Notice) {
	for {
		select {
		case <-ctx.Done():
			return
		case notice := <-ch:
			p.Send(NoticeMsg(notice))
		}
	}
}
