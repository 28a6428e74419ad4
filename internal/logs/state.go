package logs

import (
	"sync"
	"sync/atomic"

	"github.com/laralog/laralog/internal/domain"
)

// SeverityFilter is the live set of enabled severities. The consumer
// mutates it from the UI thread while the watch goroutine reads it once
// per record, so reads go through an atomically swapped immutable
// snapshot and never take a lock.
//
// Changes take effect on the next record evaluated; already-delivered
// records are never re-delivered or retracted.
type SeverityFilter struct {
	mu       sync.Mutex // serializes writers
	snapshot atomic.Pointer[severitySet]
}

// severitySet is an immutable snapshot; only disabled levels are stored
// so the zero set means everything is enabled.
type severitySet struct {
	disabled map[domain.Severity]bool
}

// NewSeverityFilter creates a filter with every severity enabled
func NewSeverityFilter() *SeverityFilter {
	f := &SeverityFilter{}
	f.snapshot.Store(&severitySet{disabled: map[domain.Severity]bool{}})
	return f
}

// SetEnabled enables or disables delivery of a severity
func (f *SeverityFilter) SetEnabled(sev domain.Severity, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old := f.snapshot.Load()
	disabled := make(map[domain.Severity]bool, len(old.disabled)+1)
	for k, v := range old.disabled {
		disabled[k] = v
	}
	if enabled {
		delete(disabled, sev)
	} else {
		disabled[sev] = true
	}
	f.snapshot.Store(&severitySet{disabled: disabled})
}

// Enabled reports whether a severity is currently enabled
func (f *SeverityFilter) Enabled(sev domain.Severity) bool {
	return !f.snapshot.Load().disabled[sev]
}

// Accept is the delivery predicate applied to each record before it
// reaches the consumer. SeverityUnknown always passes so unclassifiable
// entries are never silently dropped.
func (f *SeverityFilter) Accept(record domain.LogRecord) bool {
	if record.Severity == domain.SeverityUnknown {
		return true
	}
	return f.Enabled(record.Severity)
}

// Snapshot returns the current enabled state for every known severity
func (f *SeverityFilter) Snapshot() map[domain.Severity]bool {
	set := f.snapshot.Load()
	result := make(map[domain.Severity]bool, len(domain.Severities))
	for _, sev := range domain.Severities {
		result[sev] = !set.disabled[sev]
	}
	return result
}
