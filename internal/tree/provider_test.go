package tree

import (
	"EnvFlip/internal/envfile"
	"EnvFlip/internal/testutils"
	"EnvFlip/internal/workspace"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

var exclude = []string{"**/node_modules/**"}

func newProvider(files map[string]string) (*Provider, *testutils.MemFS) {
	fs := testutils.NewMemFS("/ws", files)
	return NewProvider(fs, "**/.env*", exclude), fs
}

func labels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func TestRefreshOrdersFiles(t *testing.T) {
	p, _ := newProvider(map[string]string{
		".env.local":        "A=1",
		"sub/.env.b":        "B=1",
		".env":              "C=1",
		"node_modules/.env": "D=1",
		"notes.txt":         "E=1",
	})
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	got := strings.Join(labels(p.Roots()), ",")
	want := "Env,Env B,Env Local"
	if got != want {
		t.Errorf("Roots() = %s, want %s", got, want)
	}
}

func TestRefreshEmpty(t *testing.T) {
	p, _ := newProvider(nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if n := len(p.Roots()); n != 0 {
		t.Errorf("Roots() has %d nodes, want 0", n)
	}
}

func TestRefreshDropsUnreadableFiles(t *testing.T) {
	p, fs := newProvider(map[string]string{
		".env":      "A=1",
		".env.test": "B=1",
	})
	boom := errors.New("permission denied")
	fs.FailRead(".env.test", boom)

	err := p.Refresh(context.Background())
	if !errors.Is(err, envfile.ErrIO) || !errors.Is(err, boom) {
		t.Fatalf("Refresh() error = %v, want IOError wrapping %v", err, boom)
	}
	if got := labels(p.Roots()); len(got) != 1 || got[0] != "Env" {
		t.Errorf("Roots() = %v, want [Env]", got)
	}
}

func TestRefreshFindFailureKeepsList(t *testing.T) {
	p, fs := newProvider(map[string]string{".env": "A=1"})
	ctx := context.Background()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	fs.FailFind(errors.New("walk failed"))
	if err := p.Refresh(ctx); err == nil {
		t.Fatal("expected error from failing Find")
	}
	if n := len(p.Roots()); n != 1 {
		t.Errorf("Roots() has %d nodes after failed refresh, want 1", n)
	}
}

func TestRefreshNotifies(t *testing.T) {
	p, _ := newProvider(map[string]string{".env": "A=1"})
	var calls atomic.Int32
	sub := p.OnDidChange(func() { calls.Add(1) })

	ctx := context.Background()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Fatalf("listener called %d times, want 1", calls.Load())
	}

	sub.Close()
	sub.Close()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("closed listener still called, %d calls", calls.Load())
	}
}

func TestFilter(t *testing.T) {
	p, _ := newProvider(map[string]string{
		".env":       "DB_HOST=localhost\n#DB_PORT=5432\nAPI_KEY=secret",
		".env.cache": "REDIS_URL=redis://db:6379",
		".env.empty": "NAME=app",
	})
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	var fired int
	p.OnDidChange(func() { fired++ })

	if p.Message() != "" {
		t.Errorf("Message() = %q before filtering, want empty", p.Message())
	}

	p.SetFilter("DB")
	if p.Message() != `Filtering by: "DB"` {
		t.Errorf("Message() = %q", p.Message())
	}

	roots := p.Roots()
	if len(roots) != 3 {
		t.Fatalf("Roots() has %d nodes, want all 3 files", len(roots))
	}
	tests := []struct {
		file string
		want string
	}{
		{"Env", "DB_HOST,DB_PORT"},
		{"Env Cache", "REDIS_URL"},
		{"Env Empty", ""},
	}
	for i, tt := range tests {
		if roots[i].Label != tt.file {
			t.Fatalf("root %d = %s, want %s", i, roots[i].Label, tt.file)
		}
		got := strings.Join(labels(p.Children(roots[i])), ",")
		if got != tt.want {
			t.Errorf("Children(%s) = %q, want %q", tt.file, got, tt.want)
		}
	}

	p.ClearFilter()
	if p.Message() != "" || p.Filter() != "" {
		t.Errorf("filter not cleared: %q / %q", p.Filter(), p.Message())
	}
	if n := len(p.Children(p.Roots()[0])); n != 3 {
		t.Errorf("Children() after clear has %d nodes, want 3", n)
	}
	if fired != 2 {
		t.Errorf("change events = %d, want 2", fired)
	}
}

func TestNodes(t *testing.T) {
	p, fs := newProvider(map[string]string{".env": "A=1\n#B=two"})
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	root := p.Roots()[0]
	if root.Kind != FileKind || root.Tooltip != fs.Path(".env") {
		t.Errorf("file node = %+v", root)
	}
	kids := p.Children(root)
	if len(kids) != 2 {
		t.Fatalf("Children() has %d nodes, want 2", len(kids))
	}
	if kids[0].Tooltip != "A=1" || !kids[0].Active || kids[0].Description != "1" {
		t.Errorf("active node = %+v", kids[0])
	}
	if kids[1].Tooltip != "B=two" || kids[1].Active {
		t.Errorf("inactive node = %+v", kids[1])
	}
	if p.Children(kids[0]) != nil {
		t.Error("variable nodes should have no children")
	}
}

func TestToggle(t *testing.T) {
	p, fs := newProvider(map[string]string{".env": "A=1\n  B=2"})
	ctx := context.Background()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	file := p.Files()[0]
	v, _ := file.AtLine(1)

	res, err := p.Toggle(ctx, file, v)
	if err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if res.Activated {
		t.Error("B was active and should now be deactivated")
	}
	if got := fs.Content(".env"); got != "A=1\n  #B=2" {
		t.Errorf("content = %q", got)
	}
	if b, _ := p.Files()[0].AtLine(1); b.IsActive {
		t.Error("tree was not refreshed after toggle")
	}
}

func TestToggleRejectsNonEnvFile(t *testing.T) {
	p, fs := newProvider(map[string]string{"config.env": "A=1"})
	file := envfile.File{Path: fs.Path("config.env")}
	v := envfile.Variable{Key: "A", Value: "1", IsActive: true}

	_, err := p.Toggle(context.Background(), file, v)
	if !errors.Is(err, ErrNotEnvFile) {
		t.Fatalf("Toggle() error = %v, want ErrNotEnvFile", err)
	}
	if fs.Writes() != 0 {
		t.Error("file was written")
	}
}

func TestToggleFailureSkipsRefresh(t *testing.T) {
	p, fs := newProvider(map[string]string{".env": "A=1"})
	ctx := context.Background()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	var fired int
	p.OnDidChange(func() { fired++ })

	fs.FailWrite(errors.New("read-only"))
	file := p.Files()[0]
	if _, err := p.Toggle(ctx, file, file.Variables[0]); !errors.Is(err, envfile.ErrIO) {
		t.Fatalf("Toggle() error = %v, want ErrIO", err)
	}
	if fired != 0 {
		t.Error("failed toggle should not refresh")
	}
}

func TestWatchRefreshesOnEvents(t *testing.T) {
	p, fs := newProvider(map[string]string{".env": "A=1"})
	ctx := context.Background()
	if err := p.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	refreshed := make(chan struct{}, 8)
	p.OnDidChange(func() { refreshed <- struct{}{} })

	if err := p.Watch(ctx); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	if err := p.Watch(ctx); err != nil {
		t.Fatalf("second Watch() error: %v", err)
	}
	if fs.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", fs.Subscribers())
	}

	fs.Set(".env.local", "B=2")
	fs.Emit(workspace.Event{Op: workspace.Created, Path: fs.Path(".env.local")})

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh after watch event")
	}
	if n := len(p.Roots()); n != 2 {
		t.Errorf("Roots() has %d nodes, want 2", n)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if fs.Subscribers() != 0 {
		t.Error("subscription not released")
	}
}
