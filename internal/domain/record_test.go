package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogRecord_HasTimestamp(t *testing.T) {
	assert.False(t, LogRecord{}.HasTimestamp())

	record := LogRecord{Timestamp: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)}
	assert.True(t, record.HasTimestamp())
}
