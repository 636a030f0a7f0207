package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Compile-time check that Memory implements ObjectStore.
var _ ObjectStore = (*Memory)(nil)

// Memory is an in-memory ObjectStore for tests. Failure injection via
// FailUploads/FailDeletes simulates backend outages.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	publicBase string

	FailUploads bool
	FailDeletes bool
}

// NewMemory creates an empty in-memory store.
func NewMemory(publicBase string) *Memory {
	return &Memory{
		objects:    make(map[string][]byte),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (m *Memory) Upload(ctx context.Context, key string, data []byte, contentType string) (UploadedObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailUploads {
		return UploadedObject{}, &StorageError{Op: "upload", Key: key, Err: errors.New("injected upload failure")}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[key] = buf
	return UploadedObject{Key: key, URL: m.PublicURL(key)}, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDeletes {
		return &StorageError{Op: "delete", Key: key, Err: errors.New("injected delete failure")}
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *Memory) PublicURL(key string) string {
	return m.publicBase + "/" + key
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
