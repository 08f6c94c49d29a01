// Package tree owns the list of parsed env files and presents it as a
// two-level tree of files and variables. It keeps the list current by
// re-parsing on filesystem events and tells its listeners when anything a
// renderer shows has changed.
package tree

import (
	"EnvFlip/internal/envfile"
	"EnvFlip/internal/logger"
	"EnvFlip/internal/workspace"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNotEnvFile rejects a toggle on a file whose name does not start with
// ".env".
var ErrNotEnvFile = errors.New("not an env file")

// parseLimit caps concurrent file reads during a refresh.
const parseLimit = 16

// Provider holds the current files and filter.
type Provider struct {
	fs      workspace.FS
	include string
	exclude []string
	changed Emitter

	mu     sync.Mutex
	files  []envfile.File
	filter string

	watchMu sync.Mutex
	sub     workspace.Subscription
	wg      sync.WaitGroup
}

// NewProvider returns an empty Provider. Call Refresh to load it.
func NewProvider(fs workspace.FS, include string, exclude []string) *Provider {
	return &Provider{
		fs:      fs,
		include: include,
		exclude: exclude,
	}
}

// OnDidChange registers fn to run after every refresh and filter change.
func (p *Provider) OnDidChange(fn func()) *Subscription {
	return p.changed.On(fn)
}

// Refresh re-discovers and re-parses every file, then replaces the stored
// list and notifies listeners. Files that fail to read are left out and
// their errors are joined into the returned error. When discovery itself
// fails the previous list stays in place.
func (p *Provider) Refresh(ctx context.Context) error {
	found, err := p.fs.Find(ctx, p.include, p.exclude)
	if err != nil {
		return fmt.Errorf("finding env files: %w", err)
	}
	found = envfile.SortFiles(found)

	parsed := make([]envfile.File, len(found))
	failed := make([]error, len(found))

	g := new(errgroup.Group)
	g.SetLimit(parseLimit)
	for i, path := range found {
		g.Go(func() error {
			f, err := envfile.ParseFile(ctx, p.fs, path)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed[i] = err
				return nil
			}
			parsed[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	files := make([]envfile.File, 0, len(parsed))
	for i, f := range parsed {
		if failed[i] == nil {
			files = append(files, f)
		}
	}

	p.mu.Lock()
	p.files = files
	p.mu.Unlock()

	logger.Debug(ctx, "Loaded %d env files", len(files))
	p.changed.Fire()
	return errors.Join(failed...)
}

// Files returns the current list. The slice is shared; callers must not
// modify it.
func (p *Provider) Files() []envfile.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.files
}

// SetFilter stores the search text and notifies listeners.
func (p *Provider) SetFilter(text string) {
	p.mu.Lock()
	p.filter = text
	p.mu.Unlock()
	p.changed.Fire()
}

// ClearFilter removes the search text and notifies listeners.
func (p *Provider) ClearFilter() {
	p.SetFilter("")
}

// Filter returns the current search text.
func (p *Provider) Filter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// Message is the banner shown above the tree while a filter is set.
func (p *Provider) Message() string {
	filter := p.Filter()
	if filter == "" {
		return ""
	}
	return fmt.Sprintf("Filtering by: %q", filter)
}

// Roots returns one node per file, including files whose variables are all
// filtered out.
func (p *Provider) Roots() []Node {
	files := p.Files()
	nodes := make([]Node, len(files))
	for i, f := range files {
		nodes[i] = fileNode(f)
	}
	return nodes
}

// Children returns the variables of a file node that pass the filter.
// Variable nodes have no children.
func (p *Provider) Children(n Node) []Node {
	if n.Kind != FileKind {
		return nil
	}
	filter := p.Filter()
	var nodes []Node
	for _, v := range n.File.Variables {
		if matches(v, filter) {
			nodes = append(nodes, variableNode(n.File, v))
		}
	}
	return nodes
}

// Toggle flips v in f and refreshes on success. A refresh failure after a
// successful write is logged, not returned: the toggle itself happened.
func (p *Provider) Toggle(ctx context.Context, f envfile.File, v envfile.Variable) (envfile.Result, error) {
	if !envfile.IsEnvFile(f.Path) {
		return envfile.Result{}, fmt.Errorf("%w: %s", ErrNotEnvFile, filepath.Base(f.Path))
	}

	res, err := envfile.Toggle(ctx, p.fs, f.Path, v)
	if err != nil {
		return res, err
	}

	if err := p.Refresh(ctx); err != nil {
		logger.Warn(ctx, "Refresh after toggling '{{_Var_}}%s{{|-|}}' failed: %v", v.Key, err)
	}
	return res, nil
}

// Watch subscribes to changes of the include pattern. Every event starts its
// own refresh. Calling Watch while already watching does nothing.
func (p *Provider) Watch(ctx context.Context) error {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	if p.sub != nil {
		return nil
	}
	sub, err := p.fs.Watch(ctx, p.include, p.exclude)
	if err != nil {
		return fmt.Errorf("watching env files: %w", err)
	}
	p.sub = sub

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for ev := range sub.Events() {
			logger.Debug(ctx, "'{{_File_}}%s{{|-|}}' %s", ev.Path, ev.Op)
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				if err := p.Refresh(ctx); err != nil {
					logger.Warn(ctx, "Refresh failed: %v", err)
				}
			}()
		}
	}()
	return nil
}

// Close stops watching and waits for the watch loop and any refreshes it
// started. It is safe to call more than once.
func (p *Provider) Close() error {
	p.watchMu.Lock()
	sub := p.sub
	p.sub = nil
	p.watchMu.Unlock()

	var err error
	if sub != nil {
		err = sub.Close()
	}
	p.wg.Wait()
	return err
}
