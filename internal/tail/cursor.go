// Package tail provides the file-level mechanics for following a single
// growing log file: a read cursor, a polling change detector, an
// incremental reader, and optional filesystem wake hints.
package tail

import "os"

// Cursor tracks read progress into the watched file. It is owned
// exclusively by the watch goroutine; the offset advances monotonically
// while the file only grows and resets to zero on truncation or
// replacement.
type Cursor struct {
	// Path identifies the file being tailed
	Path string
	// Offset is the byte offset already consumed
	Offset int64

	// info is the identity snapshot from the last poll, used with
	// os.SameFile to tell replacement apart from growth
	info os.FileInfo
}

// NewCursor creates a cursor for path starting at offset zero
func NewCursor(path string) *Cursor {
	return &Cursor{Path: path}
}

// Reset moves the cursor back to the start of the file. The identity
// snapshot is kept so a replacement is not re-reported on the next poll.
func (c *Cursor) Reset() {
	c.Offset = 0
}
