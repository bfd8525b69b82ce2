package store

import "sync"

// Memory is an in-process KV. Nothing survives the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

// MemoryLocation is an in-process location fragment.
type MemoryLocation struct {
	mu    sync.Mutex
	value string
	set   bool
}

// Get returns the fragment, if one was set.
func (l *MemoryLocation) Get() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.set
}

// Set replaces the fragment.
func (l *MemoryLocation) Set(v string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value, l.set = v, true
	return nil
}
