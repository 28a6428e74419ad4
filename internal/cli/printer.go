package cli

import (
	"fmt"
	"io"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
)

// RecordPrinter handles consistent record formatting for stdout streaming
type RecordPrinter struct {
	out   io.Writer
	color bool
}

// NewRecordPrinter creates a new RecordPrinter. Colors are ANSI escapes
// keyed by severity; pass color=false when the output is not a terminal.
func NewRecordPrinter(out io.Writer, color bool) *RecordPrinter {
	return &RecordPrinter{out: out, color: color}
}

// PrintRecord prints one reconstructed entry. Body lines follow the
// header line indented so entries stay visually grouped.
func (rp *RecordPrinter) PrintRecord(record domain.LogRecord) {
	ts := "--:--:--"
	if record.HasTimestamp() {
		ts = record.Timestamp.Format("15:04:05")
	}

	level := fmt.Sprintf("%-9s", record.Severity)
	if color, ok := constants.SeverityColors[record.Severity.String()]; rp.color && ok {
		level = color + level + constants.ColorReset
	}

	channel := record.Channel
	if channel == "" {
		channel = "-"
	}

	fmt.Fprintf(rp.out, "%s %s %-8s | %s\n", ts, level, channel, record.Summary)

	for _, line := range record.Body {
		fmt.Fprintf(rp.out, "    %s\n", line)
	}
}
