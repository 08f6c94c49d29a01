package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
)

func sameDir(t *testing.T, a, b string) bool {
	t.Helper()
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		t.Fatal(err)
	}
	return ra == rb
}

func TestResolveRoot(t *testing.T) {
	repo := t.TempDir()
	if _, err := git.PlainInit(repo, false); err != nil {
		t.Fatalf("PlainInit() error: %v", err)
	}
	sub := filepath.Join(repo, "services", "api")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveRoot(sub, true)
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	if !sameDir(t, got, repo) {
		t.Errorf("ResolveRoot(useGit) = %q, want %q", got, repo)
	}

	got, err = ResolveRoot(sub, false)
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	if !sameDir(t, got, sub) {
		t.Errorf("ResolveRoot(no git) = %q, want %q", got, sub)
	}
}

func TestResolveRootOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveRoot(dir, true)
	if err != nil {
		t.Fatalf("ResolveRoot() error: %v", err)
	}
	if !sameDir(t, got, dir) {
		t.Errorf("ResolveRoot() = %q, want %q", got, dir)
	}
}
