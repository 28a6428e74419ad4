// Package watch runs the ingestion pipeline for a single log file: one
// background goroutine polls for changes, reads newly appended bytes,
// segments them into logical entries, parses each entry, applies the
// live severity filter, and hands accepted records to the delivery
// sink. The presentation layer never blocks on any of it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/parse"
	"github.com/laralog/laralog/internal/tail"
)

// NoticeKind classifies watcher lifecycle and error notices
type NoticeKind int

const (
	// NoticeStarted means a watch session began
	NoticeStarted NoticeKind = iota
	// NoticeStopped means the watch session ended
	NoticeStopped
	// NoticeTruncated means the file shrank and the cursor was reset
	NoticeTruncated
	// NoticeReplaced means the file was rotated and the cursor was reset
	NoticeReplaced
	// NoticeFileMissing means the file disappeared; the session ended
	NoticeFileMissing
	// NoticeReadError means one poll cycle failed and will be retried
	NoticeReadError
)

// Notice reports a filesystem-level condition to the consumer. Content
// problems never produce notices; they degrade into best-effort records.
type Notice struct {
	Kind NoticeKind
	Path string
	Err  error
}

// Config holds watcher configuration
type Config struct {
	// PollInterval is how often the file is probed for changes
	PollInterval time.Duration
	// StartAtEnd skips content already in the file when watching starts
	StartAtEnd bool
	// Notify enables fsnotify wake hints between polls
	Notify bool
}

// Watcher tails one file at a time. Start and Stop are idempotent; the
// cursor and pending buffer live inside the background goroutine and
// are never touched from outside it.
type Watcher struct {
	sink    *logs.Manager
	filter  *logs.SeverityFilter
	cfg     Config
	notices chan Notice

	mu     sync.Mutex
	path   string
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher that delivers accepted records to sink
func New(sink *logs.Manager, filter *logs.SeverityFilter, cfg Config) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.DefaultPollInterval
	}
	return &Watcher{
		sink:    sink,
		filter:  filter,
		cfg:     cfg,
		notices: make(chan Notice, constants.DefaultNoticeBuffer),
	}
}

// Notices returns the channel carrying lifecycle and error notices.
// Sends are non-blocking; a slow consumer misses notices, not records.
func (w *Watcher) Notices() <-chan Notice {
	return w.notices
}

// Watching reports whether a watch session is active
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// Path returns the file currently being watched, if any
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Start begins watching path. Calling Start for the file already being
// watched is a no-op; starting a different file restarts the session.
func (w *Watcher) Start(path string) error {
	w.mu.Lock()
	if w.cancel != nil {
		if w.path == path {
			w.mu.Unlock()
			return nil
		}
		w.mu.Unlock()
		w.Stop()
		w.mu.Lock()
	}

	cursor := tail.NewCursor(path)
	if w.cfg.StartAtEnd {
		offset, err := tail.EndOffset(path)
		if err != nil {
			w.mu.Unlock()
			return err
		}
		cursor.Offset = offset
	} else if _, err := tail.EndOffset(path); err != nil {
		w.mu.Unlock()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w.path = path
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	go w.run(ctx, cursor, done)

	w.notify(Notice{Kind: NoticeStarted, Path: path})
	return nil
}

// Stop ends the current watch session. It blocks until the background
// goroutine has finished its in-flight cycle and flushed the pending
// entry, which takes at most one poll interval. Stopping when not
// watching is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.done = nil
	w.path = ""
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// run is the background loop. It owns the cursor and the segmenter's
// pending buffer exclusively.
func (w *Watcher) run(ctx context.Context, cursor *tail.Cursor, done chan struct{}) {
	defer close(done)
	defer w.notify(Notice{Kind: NoticeStopped, Path: cursor.Path})

	seg := parse.NewSegmenter()
	detector := tail.NewDetector(cursor)

	var wake <-chan struct{}
	if w.cfg.Notify {
		if notifier, err := tail.NewNotifier(cursor.Path); err == nil {
			defer notifier.Close()
			wake = notifier.Wake()
		}
		// On notifier failure polling alone carries the session.
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	// Probe immediately so existing content shows up without waiting
	// out the first interval.
	if w.cycle(detector, cursor, seg) {
		w.finish(done)
		return
	}

	for {
		select {
		case <-ctx.Done():
			w.flush(seg)
			return
		case <-ticker.C:
		case <-wake:
		}

		if w.cycle(detector, cursor, seg) {
			w.finish(done)
			return
		}
	}
}

// cycle performs one poll-read-deliver pass. It returns true when the
// session should end.
func (w *Watcher) cycle(detector *tail.Detector, cursor *tail.Cursor, seg *parse.Segmenter) bool {
	ev, err := detector.Poll()
	if err != nil {
		return w.handleReadError(cursor.Path, err)
	}

	switch ev.Change {
	case tail.ChangeNone:
		return false
	case tail.ChangeTruncated:
		// A partially written entry from before the truncation can
		// never be completed.
		seg.Reset()
		cursor.Reset()
		w.notify(Notice{Kind: NoticeTruncated, Path: cursor.Path})
	case tail.ChangeReplaced:
		seg.Reset()
		cursor.Reset()
		w.notify(Notice{Kind: NoticeReplaced, Path: cursor.Path})
	}

	data, err := tail.ReadNew(cursor)
	if err != nil {
		return w.handleReadError(cursor.Path, err)
	}

	for _, raw := range seg.Feed(data) {
		w.deliver(raw)
	}
	return false
}

// flush force-emits the pending entry when watching stops so a fully
// written trailing entry is not lost.
func (w *Watcher) flush(seg *parse.Segmenter) {
	if raw, ok := seg.Flush(); ok {
		w.deliver(raw)
	}
}

// deliver parses one raw segment and hands it to the sink if the live
// filter accepts it. The filter snapshot is read once per record.
func (w *Watcher) deliver(raw string) {
	record := parse.Parse(raw)
	if w.filter.Accept(record) {
		w.sink.Write(record)
	}
}

// handleReadError reports a cycle failure. A missing file ends the
// session; anything else is transient and retried on the next poll
// with the cursor untouched.
func (w *Watcher) handleReadError(path string, err error) bool {
	if errors.Is(err, domain.ErrFileNotFound) {
		w.notify(Notice{Kind: NoticeFileMissing, Path: path, Err: err})
		return true
	}
	w.notify(Notice{Kind: NoticeReadError, Path: path, Err: fmt.Errorf("poll cycle: %w", err)})
	return false
}

// finish clears session state when the goroutine exits on its own
// (file missing) rather than via Stop.
func (w *Watcher) finish(done chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done == done {
		w.cancel = nil
		w.done = nil
		w.path = ""
	}
}

func (w *Watcher) notify(n Notice) {
	select {
	case w.notices <- n:
	default:
		// Notices are advisory; never block the pipeline on them.
	}
}
