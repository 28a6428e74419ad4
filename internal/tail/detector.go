package tail

import (
	"fmt"
	"os"

	"github.com/laralog/laralog/internal/domain"
)

// Change describes what happened to the watched file since the last poll
type Change int

const (
	// ChangeNone means the file is unchanged
	ChangeNone Change = iota
	// ChangeGrown means new bytes were appended
	ChangeGrown
	// ChangeTruncated means the file shrank in place (same identity)
	ChangeTruncated
	// ChangeReplaced means a different file now lives at the path
	ChangeReplaced
)

// String returns the string representation of Change
func (c Change) String() string {
	switch c {
	case ChangeGrown:
		return "grown"
	case ChangeTruncated:
		return "truncated"
	case ChangeReplaced:
		return "replaced"
	default:
		return "none"
	}
}

// Event is the result of one change probe
type Event struct {
	Change Change
	// Growth is the number of newly appended bytes when Change is ChangeGrown
	Growth int64
}

// Detector probes the watched file's metadata on each poll and reports
// growth, truncation, and replacement. It is a read-only probe; actual
// reading is the Reader's job.
type Detector struct {
	cursor *Cursor
}

// NewDetector creates a detector for the given cursor
func NewDetector(cursor *Cursor) *Detector {
	return &Detector{cursor: cursor}
}

// Poll stats the file and compares size and identity against the
// cursor. A missing file is reported as domain.ErrFileNotFound so the
// caller can end the watch session; any other stat failure is transient
// and leaves the cursor untouched.
func (d *Detector) Poll() (Event, error) {
	info, err := os.Stat(d.cursor.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Event{}, fmt.Errorf("%w: %s", domain.ErrFileNotFound, d.cursor.Path)
		}
		return Event{}, fmt.Errorf("probing %s: %w", d.cursor.Path, err)
	}

	prev := d.cursor.info
	d.cursor.info = info

	switch {
	case prev != nil && !os.SameFile(prev, info):
		// Rotation: a new file at the same path, even if sizes match.
		return Event{Change: ChangeReplaced}, nil
	case info.Size() < d.cursor.Offset:
		return Event{Change: ChangeTruncated}, nil
	case info.Size() > d.cursor.Offset:
		return Event{Change: ChangeGrown, Growth: info.Size() - d.cursor.Offset}, nil
	default:
		return Event{Change: ChangeNone}, nil
	}
}
