package store

import (
	"context"
	"errors"
	"sync"
)

// errWritesDisabled is the cause reported while Memory.FailWrites is set.
var errWritesDisabled = errors.New("storage is read-only")

// Memory is an in-process persistence gateway. It backs tests and
// throwaway runs; nothing survives the process.
type Memory struct {
	mu      sync.Mutex
	kv      map[string][]byte
	log     []HistoryEntry
	nextSeq int64

	// FailWrites makes every write return an ErrUnavailable error, the way
	// a full or disabled disk would.
	FailWrites bool
}

var _ backend = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{kv: make(map[string][]byte), nextSeq: 1}
}

// ProgressRepo returns a ProgressRepo backed by this store.
func (m *Memory) ProgressRepo() ProgressRepo {
	return &progressRepo{b: m}
}

// raw returns the stored bytes for key without copying.
func (m *Memory) raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	return v, ok
}

func (m *Memory) get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return unavailable("put "+key, errWritesDisabled)
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.kv[key] = v
	return nil
}

func (m *Memory) del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return unavailable("delete", errWritesDisabled)
	}
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}

func (m *Memory) appendHistory(_ context.Context, e HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return unavailable("append history", errWritesDisabled)
	}
	e.Sequence = m.nextSeq
	m.nextSeq++
	m.log = append(m.log, e)
	return nil
}

func (m *Memory) history(_ context.Context) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HistoryEntry, len(m.log))
	copy(out, m.log)
	return out, nil
}

func (m *Memory) clear(_ context.Context, keys []string, withHistory bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return unavailable("clear", errWritesDisabled)
	}
	for _, k := range keys {
		delete(m.kv, k)
	}
	if withHistory {
		m.log = nil
	}
	return nil
}
