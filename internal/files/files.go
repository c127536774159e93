// Package files is the object-storage seam used for supporting documents
// (diplomas, certificates). Workflows depend on BlobStore; production wires
// the minio adapter, tests the in-memory fake.
package files

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	dErrors "guild/pkg/domain-errors"
)

// BlobStore is the external object-storage contract.
type BlobStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Memory is the in-memory BlobStore used by tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailUpload forces the next Upload to fail, for exercising
	// compensation paths.
	FailUpload bool
}

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Upload(_ context.Context, key, _ string, body io.Reader) error {
	if m.FailUpload {
		return dErrors.New(dErrors.CodeInternal, "upload failed")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *Memory) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *Memory) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "memory://" + key, nil
}
