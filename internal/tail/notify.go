package tail

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Notifier turns filesystem events for the watched file into wake
// hints. Hints only accelerate the next poll; the polling Detector
// remains the authority, since OS notifications can coalesce or go
// missing on some platforms and filesystems.
type Notifier struct {
	watcher *fsnotify.Watcher
	wake    chan struct{}
}

// NewNotifier watches the file's parent directory so a file recreated
// after rotation is still seen while the path is briefly absent.
func NewNotifier(path string) (*Notifier, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	n := &Notifier{
		watcher: watcher,
		wake:    make(chan struct{}, 1),
	}
	go n.loop(filepath.Base(path))
	return n, nil
}

// Wake returns the channel that receives at most one pending hint
func (n *Notifier) Wake() <-chan struct{} {
	return n.wake
}

// Close stops the notifier and releases the underlying watcher
func (n *Notifier) Close() error {
	return n.watcher.Close()
}

func (n *Notifier) loop(base string) {
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			select {
			case n.wake <- struct{}{}:
			default:
				// A hint is already pending; one poll covers both.
			}
		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			// Hints are best effort; errors fall back to pure polling.
		}
	}
}
