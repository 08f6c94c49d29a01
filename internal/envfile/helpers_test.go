package envfile

import (
	"context"
	"errors"
	"io/fs"
	"sync"
)

// memFS is an in-memory ReadWriter for tests.
type memFS struct {
	mu       sync.Mutex
	files    map[string]string
	readErr  error
	writeErr error
	writes   int
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files}
}

func (m *memFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	s, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

func (m *memFS) WriteFile(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = string(data)
	m.writes++
	return nil
}

var errDisk = errors.New("disk on fire")
