package evidence

import (
	"context"
	"fmt"
	"sync"
)

// MemoryExporter stores exported blobs in-process, for tests and
// single-node deployments that don't need object storage.
type MemoryExporter struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryExporter returns an empty in-memory exporter.
func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{blobs: make(map[string][]byte)}
}

func (e *MemoryExporter) Export(_ context.Context, key string, data []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blobs[key] = append([]byte(nil), data...)
	return fmt.Sprintf("memory://%s", key), nil
}

// Get returns a previously exported blob by key.
func (e *MemoryExporter) Get(key string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.blobs[key]
	return b, ok
}
