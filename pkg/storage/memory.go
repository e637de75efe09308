package storage

import "sync"

// MemoryBackend keeps collections in a map. Used by tests and available as
// a throwaway mode where nothing should survive the process.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string

	// ReadErr and WriteErr, when set, are returned by every Read/Write.
	// Tests use them to exercise the swallow-and-log persistence policy.
	ReadErr  error
	WriteErr error
}

// NewMemory returns an empty in-memory backend
func NewMemory() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Read returns the value stored under key
func (b *MemoryBackend) Read(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return "", false, b.ReadErr
	}
	value, ok := b.values[key]
	return value, ok, nil
}

// Write replaces the value stored under key
func (b *MemoryBackend) Write(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.values[key] = value
	return nil
}

// Close is a no-op
func (b *MemoryBackend) Close() error {
	return nil
}
