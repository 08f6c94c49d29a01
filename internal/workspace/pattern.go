package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher evaluates include/exclude globs against workspace-relative paths.
// "**" spans directories, "*" does not. Patterns are anchored at the
// workspace root, so "**/x" also matches "x" at the top level.
type Matcher struct {
	include glob.Glob
	exclude []glob.Glob
}

func anchor(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	if strings.HasPrefix(pattern, "**") {
		return pattern
	}
	return "/" + strings.TrimPrefix(pattern, "/")
}

// NewMatcher compiles the include pattern and exclude patterns.
func NewMatcher(include string, exclude []string) (*Matcher, error) {
	inc, err := glob.Compile(anchor(include), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern %q: %w", include, err)
	}
	m := &Matcher{include: inc}
	for _, p := range exclude {
		g, err := glob.Compile(anchor(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

func slashed(rel string) string {
	return "/" + strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

func (m *Matcher) excluded(p string) bool {
	for _, g := range m.exclude {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// Match reports whether the relative file path is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	p := slashed(rel)
	return m.include.Match(p) && !m.excluded(p)
}

// SkipDir reports whether everything under the relative directory is
// excluded.
func (m *Matcher) SkipDir(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	return m.excluded(slashed(rel) + "/")
}
