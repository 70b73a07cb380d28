package undolog

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Log.
type Memory struct {
	mu      sync.Mutex
	records []Record
	nextID  int64
	now     func() time.Time
}

// NewMemory returns an empty in-memory log.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Append(_ context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rec.ID = m.nextID
	if rec.MovedAt.IsZero() {
		now := time.Now
		if m.now != nil {
			now = m.now
		}
		rec.MovedAt = now().UTC()
	}
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *Memory) Records(context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...), nil
}

func (m *Memory) Len(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}
