package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/watch"
)

// pollInterval keeps integration runs fast without racing the watcher
const pollInterval = 200 * time.Millisecond

// newLogFile creates a log file seeded with content
func newLogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "laravel.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create log file: %v", err)
	}
	return path
}

// appendTo appends content to the log file the way a logger would
func appendTo(t *testing.T, path, content string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
}

// startPipeline wires a full watcher-to-subscription pipeline
func startPipeline(t *testing.T, path string, cfg watch.Config) (<-chan domain.LogRecord, *watch.Watcher) {
	t.Helper()

	filter := logs.NewSeverityFilter()
	sink := logs.NewManager(logs.DefaultManagerConfig())
	t.Cleanup(sink.Close)

	subID, ch, err := sink.Subscribe(logs.RecordFilter{})
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}
	t.Cleanup(func() { sink.Unsubscribe(subID) })

	watcher := watch.New(sink, filter, cfg)
	if err := watcher.Start(path); err != nil {
		t.Fatalf("failed to start watching: %v", err)
	}
	t.Cleanup(watcher.Stop)

	return ch, watcher
}

// collectRecords receives n records or fails after a timeout
func collectRecords(t *testing.T, ch <-chan domain.LogRecord, n int) []domain.LogRecord {
	t.Helper()

	records := make([]domain.LogRecord, 0, n)
	deadline := time.After(5 * time.Second)
	for len(records) < n {
		select {
		case record := <-ch:
			records = append(records, record)
		case <-deadline:
			t.Fatalf("timed out waiting for records: got %d, want %d", len(records), n)
		}
	}
	return records
}
