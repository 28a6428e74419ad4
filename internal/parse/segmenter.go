// Package parse turns the raw byte stream of a Laravel log file into
// structured log records. The Segmenter groups physical lines into
// logical entries; Parse converts one entry's text into a LogRecord.
package parse

import (
	"regexp"
	"strings"
)

// headerPattern recognizes the physical line that begins a new entry:
// a leading bracketed date/time token like "[2024-01-01 10:00:00]".
var headerPattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:[+-]\d{2}:?\d{2}|Z)?\]`)

// IsHeaderLine reports whether line starts a new logical entry.
//
// Known limitation: a continuation line that coincidentally matches the
// header pattern is treated as a header. Line-header segmentation has no
// way to tell the two apart.
func IsHeaderLine(line string) bool {
	return headerPattern.MatchString(strings.TrimSuffix(line, "\r"))
}

// Segmenter groups physical lines into logical entry segments. An entry
// begins at a header line and extends until the next header line. The
// trailing entry of a feed is held back until a subsequent header
// confirms it is complete, or until Flush forces it out.
//
// The zero value is ready to use. Not safe for concurrent use; the
// watch goroutine owns it exclusively.
type Segmenter struct {
	// pending holds unemitted raw text: the open entry (starting with a
	// header line) and/or a trailing partial line awaiting its newline.
	pending string
}

// NewSegmenter creates an empty Segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Feed appends newly read bytes and returns the raw text of every entry
// completed by this feed, in file order. Each returned segment is the
// verbatim file text minus its final newline. Feeding the same bytes in
// different chunkings yields the same sequence of segments.
func (s *Segmenter) Feed(p []byte) []string {
	if len(p) == 0 {
		return nil
	}
	buf := s.pending + string(p)

	var segments []string
	start := -1 // offset of the open entry's header line
	i := 0
	for i < len(buf) {
		nl := strings.IndexByte(buf[i:], '\n')
		if nl < 0 {
			// Trailing partial line: may be a split header, so it
			// cannot be classified until the rest arrives.
			break
		}
		line := buf[i : i+nl]
		if IsHeaderLine(line) {
			if start >= 0 {
				segments = append(segments, trimSegment(buf[start:i]))
			}
			start = i
		}
		// Complete lines before the first header of the stream belong
		// to an entry whose header was never seen (e.g. watching
		// started mid-entry). They are dropped.
		i += nl + 1
	}

	if start >= 0 {
		s.pending = buf[start:]
	} else {
		s.pending = buf[i:]
	}
	return segments
}

// Flush force-emits the pending entry, if any. Used when watching stops
// so a fully written trailing entry is not lost. Returns false when
// nothing parseable is pending.
func (s *Segmenter) Flush() (string, bool) {
	buf := s.pending
	s.pending = ""

	seg := trimSegment(buf)
	if seg == "" {
		return "", false
	}
	first := seg
	if idx := strings.IndexByte(seg, '\n'); idx >= 0 {
		first = seg[:idx]
	}
	if !IsHeaderLine(first) {
		return "", false
	}
	return seg, true
}

// Reset discards the pending buffer. Called on truncation or rotation:
// a partially written entry from before the reset cannot be completed.
func (s *Segmenter) Reset() {
	s.pending = ""
}

// trimSegment strips the segment's final newline so Raw reconstructs
// the file content modulo trailing newline normalization.
func trimSegment(seg string) string {
	seg = strings.TrimSuffix(seg, "\n")
	return strings.TrimSuffix(seg, "\r")
}
