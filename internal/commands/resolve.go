package commands

import (
	"EnvFlip/internal/envfile"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrBadTarget is returned for a target that is not FILE:LINE or FILE:KEY.
	ErrBadTarget = errors.New("target must be FILE:LINE or FILE:KEY")
	// ErrNoMatch is returned when no variable matches a target.
	ErrNoMatch = errors.New("no matching variable")
	// ErrAmbiguous is returned when a key target matches more than one line.
	ErrAmbiguous = errors.New("key is defined more than once")
)

// Resolve turns a command-line target into a Ref using the current tree.
// FILE is matched against each file's path relative to root, then against
// its base name. LINE is 1-based.
func (c *Commands) Resolve(root, target string) (Ref, error) {
	i := strings.LastIndex(target, ":")
	if i <= 0 || i == len(target)-1 {
		return Ref{}, fmt.Errorf("%w: %q", ErrBadTarget, target)
	}
	name, selector := target[:i], target[i+1:]

	file, err := c.findFile(root, name)
	if err != nil {
		return Ref{}, err
	}

	if line, err := strconv.Atoi(selector); err == nil {
		v, ok := file.AtLine(line - 1)
		if !ok {
			return Ref{}, fmt.Errorf("%w: line %d of %s", ErrNoMatch, line, name)
		}
		return Ref{File: file, Variable: v}, nil
	}

	vars := file.Lookup(selector)
	switch len(vars) {
	case 0:
		return Ref{}, fmt.Errorf("%w: %s in %s", ErrNoMatch, selector, name)
	case 1:
		return Ref{File: file, Variable: vars[0]}, nil
	}
	lines := make([]string, len(vars))
	for i, v := range vars {
		lines[i] = strconv.Itoa(v.LineNumber + 1)
	}
	return Ref{}, fmt.Errorf("%w: %s in %s (lines %s), use FILE:LINE", ErrAmbiguous, selector, name, strings.Join(lines, ", "))
}

func (c *Commands) findFile(root, name string) (envfile.File, error) {
	files := c.Provider.Files()
	want := filepath.Clean(filepath.FromSlash(name))

	for _, f := range files {
		if rel, err := filepath.Rel(root, f.Path); err == nil && rel == want {
			return f, nil
		}
		if f.Path == want {
			return f, nil
		}
	}

	var byName []envfile.File
	for _, f := range files {
		if f.Name() == want {
			byName = append(byName, f)
		}
	}
	switch len(byName) {
	case 0:
		return envfile.File{}, fmt.Errorf("%w: no env file %s", ErrNoMatch, name)
	case 1:
		return byName[0], nil
	}
	return envfile.File{}, fmt.Errorf("%w: %d files named %s, use a relative path", ErrAmbiguous, len(byName), name)
}
