// Package testutils holds fakes and helpers shared by package tests.
package testutils

import (
	"EnvFlip/internal/workspace"
	"context"
	"io/fs"
	"maps"
	"path/filepath"
	"sync"
)

// MemFS is an in-memory workspace.FS. Find honours the include and exclude
// patterns relative to Root; Watch hands out subscriptions that only receive
// what Emit sends.
type MemFS struct {
	Root string

	mu       sync.Mutex
	files    map[string]string
	readErrs map[string]error
	findErr  error
	writeErr error
	writes   int
	subs     []*MemSubscription
}

// NewMemFS returns a MemFS rooted at root holding files keyed by path
// relative to root.
func NewMemFS(root string, files map[string]string) *MemFS {
	m := &MemFS{
		Root:     root,
		files:    make(map[string]string),
		readErrs: make(map[string]error),
	}
	for rel, content := range files {
		m.files[m.Path(rel)] = content
	}
	return m
}

// Path joins rel onto Root.
func (m *MemFS) Path(rel string) string {
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}

// Set creates or replaces a file.
func (m *MemFS) Set(rel, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.Path(rel)] = content
}

// Remove deletes a file.
func (m *MemFS) Remove(rel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, m.Path(rel))
}

// Content returns the current content of a file.
func (m *MemFS) Content(rel string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[m.Path(rel)]
}

// FailRead makes reads of rel return err. A nil err clears it.
func (m *MemFS) FailRead(rel string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.readErrs, m.Path(rel))
		return
	}
	m.readErrs[m.Path(rel)] = err
}

// FailFind makes Find return err. A nil err clears it.
func (m *MemFS) FailFind(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findErr = err
}

// FailWrite makes every write return err. A nil err clears it.
func (m *MemFS) FailWrite(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns the number of successful writes.
func (m *MemFS) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemFS) Find(ctx context.Context, include string, exclude []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matcher, err := workspace.NewMatcher(include, exclude)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var found []string
	for path := range maps.Keys(m.files) {
		rel, err := filepath.Rel(m.Root, path)
		if err != nil {
			continue
		}
		if matcher.Match(rel) {
			found = append(found, path)
		}
	}
	return found, nil
}

func (m *MemFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readErrs[path]; err != nil {
		return nil, err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func (m *MemFS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = string(data)
	m.writes++
	return nil
}

func (m *MemFS) Watch(ctx context.Context, pattern string, exclude []string) (workspace.Subscription, error) {
	if _, err := workspace.NewMatcher(pattern, exclude); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := &MemSubscription{events: make(chan workspace.Event, 64), fs: m}
	m.subs = append(m.subs, sub)
	return sub, nil
}

// Emit delivers ev to every open subscription.
func (m *MemFS) Emit(ev workspace.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subs {
		if !sub.closed {
			sub.events <- ev
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (m *MemFS) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, sub := range m.subs {
		if !sub.closed {
			n++
		}
	}
	return n
}

// MemSubscription is the Subscription returned by MemFS.Watch.
type MemSubscription struct {
	fs     *MemFS
	events chan workspace.Event
	closed bool
}

func (s *MemSubscription) Events() <-chan workspace.Event {
	return s.events
}

func (s *MemSubscription) Close() error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}
