package parse

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/laralog/laralog/internal/domain"
)

// entryPattern matches a full Laravel header line:
// [timestamp] channel.LEVEL: message
var entryPattern = regexp.MustCompile(`^\[([^\]]+)\] ([\w-]+)\.([A-Za-z]+): ?(.*)$`)

// timestampLayouts are tried in order when parsing the header timestamp
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
}

// Parse converts one logical entry's raw text into a LogRecord. It is a
// pure function and never fails: a malformed timestamp yields a zero
// Timestamp, an unrecognized level token yields SeverityUnknown, and
// invalid UTF-8 is replaced in parsed fields while Raw stays verbatim.
func Parse(raw string) domain.LogRecord {
	rec := domain.LogRecord{
		Severity: domain.SeverityUnknown,
		BodyKind: domain.BodyNone,
		Raw:      raw,
	}

	first, rest, multiline := strings.Cut(raw, "\n")
	first = sanitize(strings.TrimSuffix(first, "\r"))

	if m := entryPattern.FindStringSubmatch(first); m != nil {
		rec.Timestamp = parseTimestamp(m[1])
		rec.Channel = m[2]
		rec.Severity = domain.ParseSeverity(m[3])
		rec.Summary = m[4]
	} else if m := headerPattern.FindString(first); m != "" {
		// Header line without the channel.LEVEL token: keep the
		// timestamp, treat the remainder as the message.
		rec.Timestamp = parseTimestamp(strings.Trim(m, "[]"))
		rec.Summary = strings.TrimSpace(first[len(m):])
	} else {
		rec.Summary = first
	}

	var body []string
	if multiline {
		for _, line := range strings.Split(rest, "\n") {
			body = append(body, sanitize(strings.TrimSuffix(line, "\r")))
		}
	}

	// Laravel often embeds a JSON payload directly in the message,
	// typically {"exception":"..."} with the full trace inside.
	if payload, ok := decodePayload(rec.Summary); ok {
		rec.BodyKind = domain.BodyStructured
		if exc, ok := payload["exception"].(string); ok && exc != "" {
			excLines := strings.Split(exc, "\n")
			rec.Summary = strings.TrimSpace(excLines[0])
			rec.Body = append(excLines, body...)
		} else {
			rec.Body = append(indentJSON(payload), body...)
		}
		return rec
	}

	rec.Body = body
	switch {
	case len(body) == 0:
		rec.BodyKind = domain.BodyNone
	case json.Valid([]byte(strings.TrimSpace(strings.Join(body, "\n")))):
		rec.BodyKind = domain.BodyStructured
	default:
		rec.BodyKind = domain.BodyStackTrace
	}
	return rec
}

// decodePayload attempts to decode a message as a JSON object
func decodePayload(msg string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(msg)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// indentJSON pretty-prints a decoded payload into display lines
func indentJSON(payload map[string]any) []string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func parseTimestamp(text string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// sanitize replaces invalid UTF-8 sequences so garbage bytes inside an
// entry never abort the pipeline
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "�")
}
