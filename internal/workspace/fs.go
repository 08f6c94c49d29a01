// Package workspace gives the rest of the program its view of the files on
// disk: glob-based discovery, whole-file reads and writes, and change
// notifications.
package workspace

import "context"

// Op is the kind of change a watcher reports.
type Op int

const (
	Created Op = iota
	Changed
	Deleted
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Event is a single filesystem notification for a path matching the watched
// pattern.
type Event struct {
	Op   Op
	Path string
}

// Subscription delivers events until Close is called. Events is closed once
// the subscription has stopped.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// FS is the filesystem capability the tree and toggle code depend on.
type FS interface {
	// Find returns every file under the workspace matching include and none
	// of exclude, in no particular order.
	Find(ctx context.Context, include string, exclude []string) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	// Watch reports create, change and delete events for files matching
	// pattern.
	Watch(ctx context.Context, pattern string, exclude []string) (Subscription, error)
}
