package workspace

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDirFind(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env":                  "A=1",
		".envrc":                "export A=1",
		"sub/.env.local":        "B=2",
		"node_modules/.env":     "C=3",
		"pkg/node_modules/.env": "D=4",
		"README.md":             "",
	})

	d, err := NewDir(root)
	if err != nil {
		t.Fatalf("NewDir() error: %v", err)
	}
	got, err := d.Find(context.Background(), "**/.env*", []string{"**/node_modules/**"})
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	var rels []string
	for _, p := range got {
		rels = append(rels, filepath.ToSlash(d.Rel(p)))
	}
	slices.Sort(rels)
	want := []string{".env", ".envrc", "sub/.env.local"}
	if !slices.Equal(rels, want) {
		t.Errorf("Find() = %v, want %v", rels, want)
	}
}

func TestDirFindCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".env": "A=1"})
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Find(ctx, "**/.env*", nil); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestNewDirNotADirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file": ""})
	if _, err := NewDir(filepath.Join(root, "file")); err == nil {
		t.Error("expected error for a regular file")
	}
	if _, err := NewDir(filepath.Join(root, "missing")); err == nil {
		t.Error("expected error for a missing path")
	}
}

func TestDirWriteFileKeepsMode(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".env")
	if err := os.WriteFile(path, []byte("A=1"), 0600); err != nil {
		t.Fatal(err)
	}
	d := &Dir{Root: root}
	ctx := context.Background()

	if err := d.WriteFile(ctx, path, []byte("#A=1")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := d.ReadFile(ctx, path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "#A=1" {
		t.Errorf("content = %q, want %q", data, "#A=1")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func nextEvent(t *testing.T, sub Subscription, want Op, path string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				t.Fatalf("events closed while waiting for %v %s", want, path)
			}
			if ev.Op == want && ev.Path == path {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %v %s", want, path)
		}
	}
}

func TestDirWatch(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := d.Watch(context.Background(), "**/.env*", []string{"**/node_modules/**"})
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer sub.Close()

	path := filepath.Join(d.Root, ".env")
	if err := os.WriteFile(path, []byte("A=1"), 0644); err != nil {
		t.Fatal(err)
	}
	nextEvent(t, sub, Created, path)

	if err := os.WriteFile(path, []byte("A=2"), 0644); err != nil {
		t.Fatal(err)
	}
	nextEvent(t, sub, Changed, path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	nextEvent(t, sub, Deleted, path)
}

func TestDirWatchNewDirectory(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := d.Watch(context.Background(), "**/.env*", nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer sub.Close()

	dir := filepath.Join(d.Root, "svc")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ".env.local")
	if err := os.WriteFile(path, []byte("A=1"), 0644); err != nil {
		t.Fatal(err)
	}
	nextEvent(t, sub, Created, path)
}

func TestWatchCloseTwice(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	sub, err := d.Watch(context.Background(), "**/.env*", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if _, ok := <-sub.Events(); ok {
		t.Error("events channel should be closed")
	}
}
