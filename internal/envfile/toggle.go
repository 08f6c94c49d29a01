package envfile

import (
	"context"
	"strings"
)

// Result describes a successful toggle.
type Result struct {
	Path       string
	Key        string
	LineNumber int
	Activated  bool
	Before     string
	After      string
}

// Action returns "activated" or "deactivated".
func (r Result) Action() string {
	if r.Activated {
		return "activated"
	}
	return "deactivated"
}

// FlipLine comments out an active line or uncomments an inactive one,
// keeping its indentation. No space is inserted after '#'. An inactive line
// that does not start with '#' is returned unchanged.
func FlipLine(line string, wasActive bool) string {
	indent := leadingSpace(line)
	trimmed := trimSpace(line)

	if wasActive {
		return indent + "#" + trimmed
	}
	if strings.HasPrefix(trimmed, "#") {
		return indent + trimSpace(trimmed[1:])
	}
	return line
}

// Toggle flips v between active and inactive in the file at path.
//
// The file is re-read first so the current on-disk content is what gets
// rewritten. The target line must still be an assignment of v.Key in the
// state v.IsActive describes. Line endings are normalised to "\n" on write.
func Toggle(ctx context.Context, rw ReadWriter, path string, v Variable) (Result, error) {
	data, err := rw.ReadFile(ctx, path)
	if err != nil {
		return Result{}, &IOError{Op: "read", Path: path, Err: err}
	}

	lines := SplitLines(string(data))
	if v.LineNumber < 0 || v.LineNumber >= len(lines) {
		return Result{}, &OutOfRangeError{Path: path, Line: v.LineNumber, Lines: len(lines)}
	}

	before := lines[v.LineNumber]
	current, ok := parseLine(before, v.LineNumber)
	if !ok || current.Key != v.Key || current.IsActive != v.IsActive {
		return Result{}, &StaleStateError{
			Path:       path,
			Line:       v.LineNumber,
			Key:        v.Key,
			WantActive: v.IsActive,
			Got:        trimSpace(before),
		}
	}

	after := FlipLine(before, v.IsActive)
	lines[v.LineNumber] = after

	if err := rw.WriteFile(ctx, path, []byte(strings.Join(lines, "\n"))); err != nil {
		return Result{}, &IOError{Op: "write", Path: path, Err: err}
	}

	return Result{
		Path:       path,
		Key:        v.Key,
		LineNumber: v.LineNumber,
		Activated:  !v.IsActive,
		Before:     before,
		After:      after,
	}, nil
}
