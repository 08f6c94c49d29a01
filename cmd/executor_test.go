package cmd

import (
	"EnvFlip/internal/console"
	"EnvFlip/internal/paths"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupWorkspace writes files under a temp folder, points the config and
// state homes at temp folders and captures command output.
func setupWorkspace(t *testing.T, files map[string]string) (string, *bytes.Buffer) {
	t.Helper()

	paths.ConfigHomeOverride = t.TempDir()
	paths.StateHomeOverride = t.TempDir()

	var buf bytes.Buffer
	oldStdout := stdout
	stdout = &buf
	t.Cleanup(func() {
		paths.ConfigHomeOverride = ""
		paths.StateHomeOverride = ""
		stdout = oldStdout
	})

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, &buf
}

func execute(t *testing.T, args ...string) int {
	t.Helper()
	groups, err := Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return Execute(context.Background(), groups)
}

func TestExecuteList(t *testing.T) {
	dir, out := setupWorkspace(t, map[string]string{
		".env":                   "A=1\n# B=2\n",
		"node_modules/pkg/.env":  "C=3\n",
		"services/web/.env.test": "D=4\n",
	})

	if code := execute(t, "--dir", dir, "--list"); code != 0 {
		t.Fatalf("exit code %d", code)
	}

	got := console.Strip(out.String())
	for _, want := range []string{"Env .env", "A=1 :1", "B=2 :2", "Env Test services/web/.env.test", "D=4"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "C=3") {
		t.Errorf("excluded file listed:\n%s", got)
	}
}

func TestExecuteToggle(t *testing.T) {
	dir, _ := setupWorkspace(t, map[string]string{
		".env":     "A=1\n# B=2\nC=3\n",
		"api/.env": "KEY=x\n",
	})

	if code := execute(t, "-C", dir, "-t", ".env:A", ".env:2", "api/.env:1"); code != 0 {
		t.Fatalf("exit code %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "#A=1\nB=2\nC=3\n"; string(data) != want {
		t.Errorf(".env = %q, want %q", data, want)
	}

	data, err = os.ReadFile(filepath.Join(dir, "api", ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "#KEY=x\n"; string(data) != want {
		t.Errorf("api/.env = %q, want %q", data, want)
	}
}

func TestExecuteToggleStopsOnError(t *testing.T) {
	dir, _ := setupWorkspace(t, map[string]string{
		".env": "A=1\n",
	})

	code := execute(t, "-C", dir, "-t", ".env:MISSING", "-C", dir, "-t", ".env:A")
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}

	data, _ := os.ReadFile(filepath.Join(dir, ".env"))
	if string(data) != "A=1\n" {
		t.Errorf("later command ran after failure: .env = %q", data)
	}
}

func TestExecuteListJSONWithFilter(t *testing.T) {
	dir, out := setupWorkspace(t, map[string]string{
		".env": "DB_HOST=localhost\nAPI_KEY=secret\n",
	})

	if code := execute(t, "-C", dir, "--filter", "db", "--format", "json", "-l"); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got := out.String()
	if !strings.Contains(got, `"key": "DB_HOST"`) {
		t.Errorf("filtered variable missing:\n%s", got)
	}
	if strings.Contains(got, "API_KEY") {
		t.Errorf("JSON listing was not filtered:\n%s", got)
	}
}

func TestExecuteMissingDir(t *testing.T) {
	dir, _ := setupWorkspace(t, nil)

	if code := execute(t, "-C", filepath.Join(dir, "nope"), "-l"); code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	_, out := setupWorkspace(t, nil)

	if code := execute(t, "-h", "--toggle", "-V"); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got := console.Strip(out.String())
	if !strings.Contains(got, "-t --toggle") {
		t.Errorf("help output missing toggle usage:\n%s", got)
	}
	if !strings.Contains(got, "EnvFlip") {
		t.Errorf("version output missing application name:\n%s", got)
	}
}

func TestExecuteConfigShow(t *testing.T) {
	_, out := setupWorkspace(t, nil)

	if code := execute(t, "--config-show"); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got := console.Strip(out.String())
	for _, want := range []string{"Option", "**/.env*", "**/node_modules/**"} {
		if !strings.Contains(got, want) {
			t.Errorf("config table missing %q:\n%s", want, got)
		}
	}
}
