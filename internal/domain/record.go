package domain

import "time"

// Severity is a Laravel log level token
type Severity string

// The eight Laravel log levels, most to least severe, plus a sentinel
// for tokens the parser does not recognize.
const (
	SeverityEmergency Severity = "emergency"
	SeverityAlert     Severity = "alert"
	SeverityCritical  Severity = "critical"
	SeverityError     Severity = "error"
	SeverityWarning   Severity = "warning"
	SeverityNotice    Severity = "notice"
	SeverityInfo      Severity = "info"
	SeverityDebug     Severity = "debug"
	SeverityUnknown   Severity = "unknown"
)

// Severities lists the recognized levels in severity order.
// SeverityUnknown is deliberately excluded: it is a parse outcome,
// not a level a user can toggle.
var Severities = []Severity{
	SeverityEmergency,
	SeverityAlert,
	SeverityCritical,
	SeverityError,
	SeverityWarning,
	SeverityNotice,
	SeverityInfo,
	SeverityDebug,
}

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// BodyKind classifies an entry's continuation body so the consumer
// can pick a rendering strategy. It is metadata only.
type BodyKind string

const (
	BodyNone       BodyKind = "none"
	BodyStackTrace BodyKind = "stacktrace"
	BodyStructured BodyKind = "structured"
)

// LogRecord is one logical log entry, possibly spanning several
// physical lines. A record is immutable once constructed.
type LogRecord struct {
	// Timestamp parsed from the entry header; zero if unparseable
	Timestamp time.Time `json:"timestamp"`
	// Severity of the entry; SeverityUnknown for unrecognized tokens
	Severity Severity `json:"severity"`
	// Channel is the Laravel environment/channel token (e.g. "local")
	Channel string `json:"channel,omitempty"`
	// Summary is the first-line message text
	Summary string `json:"summary"`
	// Body holds continuation lines (stack trace or structured payload)
	Body []string `json:"body,omitempty"`
	// BodyKind classifies the body content
	BodyKind BodyKind `json:"body_kind"`
	// Raw is the original entry text, preserved verbatim minus the
	// trailing newline
	Raw string `json:"-"`
}

// HasTimestamp reports whether the header carried a parseable timestamp
func (r LogRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}
