// Package logs is the delivery surface of the ingestion core: a ring
// buffer holding the current session's records, a live severity filter,
// and channel subscriptions that receive records in file order.
package logs

import (
	"sync"

	"github.com/laralog/laralog/internal/domain"
)

// RingBuffer is a fixed-size circular buffer for the session's records
type RingBuffer struct {
	mu       sync.RWMutex
	records  []domain.LogRecord
	head     int // next write position
	count    int // current number of records
	capacity int // max records
}

// NewRingBuffer creates a new ring buffer with the given capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingBuffer{
		records:  make([]domain.LogRecord, capacity),
		capacity: capacity,
	}
}

// Write adds a new record to the buffer
func (b *RingBuffer) Write(record domain.LogRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[b.head] = record
	b.head = (b.head + 1) % b.capacity

	if b.count < b.capacity {
		b.count++
	}
}

// Read returns all records in file order
func (b *RingBuffer) Read() []domain.LogRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]domain.LogRecord, b.count)

	start := 0
	if b.count == b.capacity {
		start = b.head // oldest record is at head when full
	}

	for i := 0; i < b.count; i++ {
		result[i] = b.records[(start+i)%b.capacity]
	}

	return result
}

// ReadLast returns the last n records in file order
func (b *RingBuffer) ReadLast(n int) []domain.LogRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 || n <= 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}

	var start int
	if b.count == b.capacity {
		start = (b.head - n + b.capacity) % b.capacity
	} else {
		start = b.count - n
	}

	result := make([]domain.LogRecord, n)
	for i := 0; i < n; i++ {
		result[i] = b.records[(start+i)%b.capacity]
	}

	return result
}

// Count returns the current number of records in the buffer
func (b *RingBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Capacity returns the maximum capacity of the buffer
func (b *RingBuffer) Capacity() int {
	return b.capacity
}

// Clear removes all records from the buffer
func (b *RingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.count = 0
}
