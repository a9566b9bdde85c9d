package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MaxRecent bounds a single Recent call.
const MaxRecent = 100

// Memory is an in-process [Store]. When Capacity is positive the oldest
// records are evicted beyond it.
type Memory struct {
	mu       sync.RWMutex
	records  map[string]Record
	order    []string
	capacity int
}

// NewMemory returns an empty store holding at most capacity records
// (unbounded when capacity <= 0).
func NewMemory(capacity int) *Memory {
	return &Memory{records: make(map[string]Record), capacity: capacity}
}

func (m *Memory) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[rec.ID]; !ok {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec

	for m.capacity > 0 && len(m.order) > m.capacity {
		delete(m.records, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) Recent(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := Limit(limit, MaxRecent); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *Memory) Close(context.Context) error { return nil }
