package workspace

import (
	"errors"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ResolveRoot returns the absolute workspace root for dir. With useGit set,
// a dir inside a git worktree resolves to the worktree's top level.
func ResolveRoot(dir string, useGit bool) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if !useGit {
		return abs, nil
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to scan
		if errors.Is(err, git.ErrIsBareRepository) {
			return abs, nil
		}
		return "", err
	}
	return wt.Filesystem.Root(), nil
}
