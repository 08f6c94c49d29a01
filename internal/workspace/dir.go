package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is an FS rooted at a directory on the local disk.
type Dir struct {
	Root string
}

// NewDir returns a Dir for the absolute form of root.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: abs, Err: fs.ErrInvalid}
	}
	return &Dir{Root: abs}, nil
}

// Rel returns path relative to the workspace root, or path itself when it
// lies outside.
func (d *Dir) Rel(path string) string {
	rel, err := filepath.Rel(d.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// Find walks the workspace. Unreadable directories are skipped.
func (d *Dir) Find(ctx context.Context, include string, exclude []string) ([]string, error) {
	m, err := NewMatcher(include, exclude)
	if err != nil {
		return nil, err
	}

	var found []string
	err = filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == d.Root {
				return err
			}
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := d.Rel(path)
		if entry.IsDir() {
			if m.SkipDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if m.Match(rel) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ReadFile reads the whole file.
func (d *Dir) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteFile overwrites the whole file. Existing files keep their mode.
func (d *Dir) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
