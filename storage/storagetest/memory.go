// Package storagetest provides an in-memory storage.BlobStore for tests.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/petiverse/petiversebackend/storage"
)

// ErrInjected is what Memory returns for an injected failure.
var ErrInjected = errors.New("injected blob failure")

// Memory stores blobs in a map. Handles are "blob-<n>".
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
	names map[string]string
	next  int

	// FailPutAfter makes the Put call after that many successes fail.
	// Negative disables it.
	FailPutAfter int
	// GetErr is returned from every Get when set.
	GetErr error

	puts    int
	Deleted []string
}

var _ storage.BlobStore = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		blobs:        map[string][]byte{},
		names:        map[string]string{},
		FailPutAfter: -1,
	}
}

func (m *Memory) Put(_ context.Context, filename, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPutAfter >= 0 && m.puts >= m.FailPutAfter {
		return "", ErrInjected
	}
	m.puts++
	m.next++
	handle := fmt.Sprintf("blob-%d", m.next)
	m.blobs[handle] = append([]byte(nil), data...)
	m.names[handle] = filename
	return handle, nil
}

func (m *Memory) Get(_ context.Context, handle string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.blobs[handle]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return data, nil
}

func (m *Memory) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, handle)
	if _, ok := m.blobs[handle]; !ok {
		return storage.ErrBlobNotFound
	}
	delete(m.blobs, handle)
	delete(m.names, handle)
	return nil
}

// Len reports how many blobs are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

// Filename returns the name a blob was stored under.
func (m *Memory) Filename(handle string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.names[handle]
}
