package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "[2024-01-01 10:00:00] local.ERROR: boom\n" +
	"[stacktrace...]\n" +
	"[2024-01-02 09:00:00] local.INFO: ok\n"

func feedAll(s *Segmenter, input string, chunk int) []string {
	var segments []string
	for i := 0; i < len(input); i += chunk {
		end := i + chunk
		if end > len(input) {
			end = len(input)
		}
		segments = append(segments, s.Feed([]byte(input[i:end]))...)
	}
	return segments
}

func TestSegmenter_BasicSplit(t *testing.T) {
	s := NewSegmenter()
	segments := s.Feed([]byte(sampleLog))

	// The second entry is still pending: no header has confirmed it.
	require.Len(t, segments, 1)
	assert.Equal(t, "[2024-01-01 10:00:00] local.ERROR: boom\n[stacktrace...]", segments[0])

	seg, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, "[2024-01-02 09:00:00] local.INFO: ok", seg)
}

func TestSegmenter_ChunkBoundaryIndependence(t *testing.T) {
	whole := NewSegmenter()
	want := whole.Feed([]byte(sampleLog))

	for chunk := 1; chunk <= len(sampleLog); chunk++ {
		s := NewSegmenter()
		got := feedAll(s, sampleLog, chunk)
		assert.Equal(t, want, got, "chunk size %d", chunk)

		wantTail, wantOK := func() (string, bool) {
			w := NewSegmenter()
			w.Feed([]byte(sampleLog))
			return w.Flush()
		}()
		gotTail, gotOK := s.Flush()
		assert.Equal(t, wantOK, gotOK, "chunk size %d", chunk)
		assert.Equal(t, wantTail, gotTail, "chunk size %d", chunk)
	}
}

func TestSegmenter_RawConcatenationRoundTrip(t *testing.T) {
	input := "[2024-01-01 10:00:00] local.ERROR: one\n" +
		"trace line 1\n" +
		"trace line 2\n" +
		"[2024-01-01 10:00:01] local.WARNING: two\n" +
		"[2024-01-01 10:00:02] local.INFO: three\n"

	s := NewSegmenter()
	segments := s.Feed([]byte(input))
	if seg, ok := s.Flush(); ok {
		segments = append(segments, seg)
	}

	var rebuilt strings.Builder
	for _, seg := range segments {
		rebuilt.WriteString(seg)
		rebuilt.WriteString("\n")
	}
	assert.Equal(t, input, rebuilt.String())
}

func TestSegmenter_HeaderAtEOFStaysPending(t *testing.T) {
	s := NewSegmenter()

	// No trailing newline: could be a split header continuation.
	segments := s.Feed([]byte("[2024-01-01 10:00:00] local.ERROR: bo"))
	assert.Empty(t, segments)

	// The rest of the line arrives, then a new header confirms it.
	segments = s.Feed([]byte("om\n[2024-01-01 10:00:01] local.INFO: next\n"))
	require.Len(t, segments, 1)
	assert.Equal(t, "[2024-01-01 10:00:00] local.ERROR: boom", segments[0])
}

func TestSegmenter_SplitHeaderAcrossFeeds(t *testing.T) {
	s := NewSegmenter()

	assert.Empty(t, s.Feed([]byte("[2024-01")))
	assert.Empty(t, s.Feed([]byte("-01 10:00:00] local.ERROR: boom\n")))

	seg, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, "[2024-01-01 10:00:00] local.ERROR: boom", seg)
}

func TestSegmenter_AmbiguousContinuationTreatedAsHeader(t *testing.T) {
	// A continuation line that happens to match the header pattern
	// starts a new entry. Documented limitation of line-header
	// segmentation.
	input := "[2024-01-01 10:00:00] local.ERROR: boom\n" +
		"[2024-01-01 10:00:00] quoted inside trace\n" +
		"[2024-01-01 10:00:01] local.INFO: ok\n"

	s := NewSegmenter()
	segments := s.Feed([]byte(input))
	require.Len(t, segments, 2)
	assert.Equal(t, "[2024-01-01 10:00:00] local.ERROR: boom", segments[0])
	assert.Equal(t, "[2024-01-01 10:00:00] quoted inside trace", segments[1])
}

func TestSegmenter_OrphanLinesBeforeFirstHeaderDropped(t *testing.T) {
	// Watching started mid-entry: lines before the first header belong
	// to an entry whose header was never read.
	s := NewSegmenter()
	segments := s.Feed([]byte("tail of an old trace\nmore trace\n[2024-01-01 10:00:00] local.INFO: fresh\n"))
	assert.Empty(t, segments)

	seg, ok := s.Flush()
	require.True(t, ok)
	assert.Equal(t, "[2024-01-01 10:00:00] local.INFO: fresh", seg)
}

func TestSegmenter_Reset(t *testing.T) {
	s := NewSegmenter()
	s.Feed([]byte("[2024-01-01 10:00:00] local.ERROR: half-written"))
	s.Reset()

	_, ok := s.Flush()
	assert.False(t, ok)

	// After reset the segmenter behaves as if brand new.
	segments := s.Feed([]byte(sampleLog))
	require.Len(t, segments, 1)
}

func TestSegmenter_FlushPartialNonHeaderDiscarded(t *testing.T) {
	s := NewSegmenter()
	s.Feed([]byte("not a header fragment"))

	_, ok := s.Flush()
	assert.False(t, ok)
}

func TestSegmenter_FlushEmpty(t *testing.T) {
	s := NewSegmenter()
	_, ok := s.Flush()
	assert.False(t, ok)
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"[2024-01-01 10:00:00] local.ERROR: boom", true},
		{"[2024-01-01T10:00:00+02:00] production.INFO: ok", true},
		{"[2024-01-01 10:00:00.123456] local.DEBUG: x", true},
		{"[2024-01-01 10:00:00] anything after", true},
		{"[stacktrace...]", false},
		{"#0 /app/Http/Kernel.php(42): handle()", false},
		{"", false},
		{"2024-01-01 10:00:00 no brackets", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHeaderLine(tt.line), "line %q", tt.line)
	}
}
