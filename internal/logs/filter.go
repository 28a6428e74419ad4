package logs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/laralog/laralog/internal/domain"
)

// MaxPatternLength is the maximum allowed length for filter patterns
// to prevent potential DoS from excessively complex patterns
const MaxPatternLength = 256

// RecordFilter defines criteria a subscription applies to records
type RecordFilter struct {
	Severities []domain.Severity // Filter to specific severities
	Pattern    string            // Filter by pattern match against the raw text
	IsRegex    bool              // If true, Pattern is a regex; otherwise substring match
}

// IsEmpty returns true if no filters are set
func (f RecordFilter) IsEmpty() bool {
	return len(f.Severities) == 0 && f.Pattern == ""
}

// MatchesSeverity returns true if the severity matches the filter.
// Unknown severity always passes: unclassifiable entries should not be
// silently dropped.
func (f RecordFilter) MatchesSeverity(sev domain.Severity) bool {
	if len(f.Severities) == 0 || sev == domain.SeverityUnknown {
		return true
	}
	for _, s := range f.Severities {
		if s == sev {
			return true
		}
	}
	return false
}

// Filter applies a RecordFilter to log records
type Filter struct {
	filter RecordFilter
	regex  *regexp.Regexp
}

// NewFilter creates a new filter from a RecordFilter
func NewFilter(filter RecordFilter) (*Filter, error) {
	f := &Filter{filter: filter}

	if len(filter.Pattern) > MaxPatternLength {
		return nil, fmt.Errorf("%w: pattern exceeds maximum length of %d characters", domain.ErrInvalidPattern, MaxPatternLength)
	}

	if filter.Pattern != "" && filter.IsRegex {
		re, err := regexp.Compile(filter.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
		}
		f.regex = re
	}

	return f, nil
}

// Matches returns true if the record matches the filter criteria
func (f *Filter) Matches(record domain.LogRecord) bool {
	if !f.filter.MatchesSeverity(record.Severity) {
		return false
	}

	if f.filter.Pattern != "" {
		if f.regex != nil {
			if !f.regex.MatchString(record.Raw) {
				return false
			}
		} else {
			if !strings.Contains(record.Raw, f.filter.Pattern) {
				return false
			}
		}
	}

	return true
}

// FilterRecords filters a slice of records
func FilterRecords(records []domain.LogRecord, filter RecordFilter) ([]domain.LogRecord, error) {
	if filter.IsEmpty() {
		return records, nil
	}

	f, err := NewFilter(filter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.LogRecord, 0, len(records))
	for _, record := range records {
		if f.Matches(record) {
			result = append(result, record)
		}
	}

	return result, nil
}
