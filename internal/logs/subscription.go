package logs

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/laralog/laralog/internal/domain"
)

// Subscription represents one consumer of the record stream
type Subscription struct {
	id     string
	ch     chan domain.LogRecord
	filter *Filter
	closed atomic.Bool
}

// newSubscription creates a new subscription
func newSubscription(filter RecordFilter, bufferSize int) (*Subscription, error) {
	f, err := NewFilter(filter)
	if err != nil {
		return nil, err
	}

	return &Subscription{
		id:     "sub-" + uuid.NewString(),
		ch:     make(chan domain.LogRecord, bufferSize),
		filter: f,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() string {
	return s.id
}

// Channel returns the channel for receiving records
func (s *Subscription) Channel() <-chan domain.LogRecord {
	return s.ch
}

// Send attempts to send a record to the subscriber.
// Returns false if the channel is full or closed.
func (s *Subscription) Send(record domain.LogRecord) bool {
	if s.closed.Load() {
		return false
	}

	if !s.filter.Matches(record) {
		return true // filtered out, but not a failure
	}

	select {
	case s.ch <- record:
		return true
	default:
		// Channel full, drop record - log for debugging slow consumers
		log.Printf("Subscription %s: dropped %s record (channel full)", s.id, record.Severity)
		return false
	}
}

// Close closes the subscription
func (s *Subscription) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

// SubscriptionManager manages multiple subscriptions
type SubscriptionManager struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	bufferSize    int
}

// NewSubscriptionManager creates a new subscription manager
func NewSubscriptionManager(bufferSize int) *SubscriptionManager {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &SubscriptionManager{
		subscriptions: make(map[string]*Subscription),
		bufferSize:    bufferSize,
	}
}

// Subscribe creates a new subscription
func (m *SubscriptionManager) Subscribe(filter RecordFilter) (string, <-chan domain.LogRecord, error) {
	sub, err := newSubscription(filter, m.bufferSize)
	if err != nil {
		return "", nil, err
	}

	m.mu.Lock()
	m.subscriptions[sub.id] = sub
	m.mu.Unlock()

	return sub.id, sub.ch, nil
}

// Unsubscribe removes a subscription
func (m *SubscriptionManager) Unsubscribe(id string) {
	m.mu.Lock()
	sub, ok := m.subscriptions[id]
	if ok {
		delete(m.subscriptions, id)
	}
	m.mu.Unlock()

	if ok {
		sub.Close()
	}
}

// Broadcast sends a record to all subscribers
func (m *SubscriptionManager) Broadcast(record domain.LogRecord) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		sub.Send(record)
	}
}

// Count returns the number of active subscriptions
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close closes all subscriptions
func (m *SubscriptionManager) Close() {
	m.mu.Lock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.subscriptions = make(map[string]*Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
