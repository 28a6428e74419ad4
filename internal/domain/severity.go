package domain

import "strings"

// ParseSeverity maps a level token from a log header to a Severity.
// Matching is case-insensitive; unrecognized tokens map to
// SeverityUnknown rather than failing.
func ParseSeverity(token string) Severity {
	switch strings.ToLower(token) {
	case "emergency":
		return SeverityEmergency
	case "alert":
		return SeverityAlert
	case "critical":
		return SeverityCritical
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	case "notice":
		return SeverityNotice
	case "info":
		return SeverityInfo
	case "debug":
		return SeverityDebug
	default:
		return SeverityUnknown
	}
}
