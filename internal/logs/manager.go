package logs

import (
	"github.com/laralog/laralog/internal/domain"
)

// ManagerConfig holds configuration for the record manager
type ManagerConfig struct {
	BufferSize         int // Number of records to keep in the session ring buffer
	SubscriptionBuffer int // Buffer size for subscription channels
}

// DefaultManagerConfig returns the default configuration
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		BufferSize:         2000,
		SubscriptionBuffer: 100,
	}
}

// Stats contains statistics about the record manager
type Stats struct {
	TotalRecords int
	BufferSize   int
	Subscribers  int
}

// Manager is the delivery sink: it stores the session's accepted
// records and broadcasts each one to subscribers in file order.
type Manager struct {
	buffer        *RingBuffer
	subscriptions *SubscriptionManager
}

// NewManager creates a new record manager
func NewManager(config ManagerConfig) *Manager {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultManagerConfig().BufferSize
	}
	if config.SubscriptionBuffer <= 0 {
		config.SubscriptionBuffer = DefaultManagerConfig().SubscriptionBuffer
	}

	return &Manager{
		buffer:        NewRingBuffer(config.BufferSize),
		subscriptions: NewSubscriptionManager(config.SubscriptionBuffer),
	}
}

// Write stores a record in the session buffer and broadcasts it
func (m *Manager) Write(record domain.LogRecord) {
	m.buffer.Write(record)
	m.subscriptions.Broadcast(record)
}

// Query retrieves session records matching the filter
func (m *Manager) Query(filter RecordFilter) ([]domain.LogRecord, error) {
	return FilterRecords(m.buffer.Read(), filter)
}

// QueryLast retrieves the last n session records matching the filter
func (m *Manager) QueryLast(filter RecordFilter, n int) ([]domain.LogRecord, error) {
	filtered, err := FilterRecords(m.buffer.Read(), filter)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(filtered) > n {
		filtered = filtered[len(filtered)-n:]
	}
	return filtered, nil
}

// Subscribe creates a subscription for records matching the filter
func (m *Manager) Subscribe(filter RecordFilter) (string, <-chan domain.LogRecord, error) {
	return m.subscriptions.Subscribe(filter)
}

// Unsubscribe removes a subscription
func (m *Manager) Unsubscribe(id string) {
	m.subscriptions.Unsubscribe(id)
}

// Clear drops the session history. Used after the underlying file is
// deliberately emptied; it does not touch subscriptions or the cursor.
func (m *Manager) Clear() {
	m.buffer.Clear()
}

// Stats returns statistics about the manager
func (m *Manager) Stats() Stats {
	return Stats{
		TotalRecords: m.buffer.Count(),
		BufferSize:   m.buffer.Capacity(),
		Subscribers:  m.subscriptions.Count(),
	}
}

// Close closes the manager and all subscriptions
func (m *Manager) Close() {
	m.subscriptions.Close()
}
