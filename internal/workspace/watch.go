package workspace

import (
	"EnvFlip/internal/logger"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const eventBuffer = 64

type watchSubscription struct {
	watcher *fsnotify.Watcher
	matcher *Matcher
	dir     *Dir
	events  chan Event
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the workspace recursively. fsnotify only watches
// single directories, so every non-excluded directory is added, and
// directories created later are added as they appear.
func (d *Dir) Watch(ctx context.Context, pattern string, exclude []string) (Subscription, error) {
	m, err := NewMatcher(pattern, exclude)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &watchSubscription{
		watcher: w,
		matcher: m,
		dir:     d,
		events:  make(chan Event, eventBuffer),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if err := s.addTree(ctx, d.Root, false); err != nil {
		cancel()
		_ = w.Close()
		return nil, err
	}

	go s.loop(ctx)
	return s, nil
}

func (s *watchSubscription) Events() <-chan Event {
	return s.events
}

// Close stops the watcher and waits for the event loop to exit. It is safe
// to call more than once.
func (s *watchSubscription) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.watcher.Close()
		<-s.done
	})
	return err
}

// addTree registers root and its subdirectories. With announce set, matching
// files already inside are reported as created; this covers files written
// into a new directory before its watch was registered.
func (s *watchSubscription) addTree(ctx context.Context, root string, announce bool) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		rel := s.dir.Rel(path)
		if entry.IsDir() {
			if s.matcher.SkipDir(rel) {
				return fs.SkipDir
			}
			if err := s.watcher.Add(path); err != nil {
				logger.Debug(ctx, "Not watching '{{_Folder_}}%s{{|-|}}': %v", path, err)
			}
			return nil
		}
		if announce && s.matcher.Match(rel) {
			s.send(ctx, Event{Op: Created, Path: path})
		}
		return nil
	})
}

func (s *watchSubscription) send(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

func (s *watchSubscription) loop(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(ctx, ev)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn(ctx, "File watcher error: %v", err)
		}
	}
}

func (s *watchSubscription) handle(ctx context.Context, ev fsnotify.Event) {
	rel := s.dir.Rel(ev.Name)

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !s.matcher.SkipDir(rel) {
				if err := s.addTree(ctx, ev.Name, true); err != nil {
					logger.Debug(ctx, "Failed to watch new folder '{{_Folder_}}%s{{|-|}}': %v", ev.Name, err)
				}
			}
			return
		}
	}

	if !s.matcher.Match(rel) {
		return
	}

	switch {
	case ev.Has(fsnotify.Create):
		s.send(ctx, Event{Op: Created, Path: ev.Name})
	case ev.Has(fsnotify.Write):
		s.send(ctx, Event{Op: Changed, Path: ev.Name})
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		s.send(ctx, Event{Op: Deleted, Path: ev.Name})
	}
}
