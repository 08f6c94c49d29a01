package envfile

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// assignmentRegex matches KEY=VALUE on an already trimmed line.
var assignmentRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// displaySplitRegex splits the filename suffix into words.
var displaySplitRegex = regexp.MustCompile(`[._-]`)

// Reader reads a whole file by location.
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Writer overwrites a whole file by location.
type Writer interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// ReadWriter is what Toggle needs from the filesystem.
type ReadWriter interface {
	Reader
	Writer
}

// isSpace also treats a byte order mark as whitespace so a BOM-prefixed
// first line still parses.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// leadingSpace returns the greedy run of whitespace at the start of line.
func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, isSpace))]
}

// SplitLines splits text on "\n" and "\r\n".
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// parseLine classifies a single physical line. ok is false for blank lines,
// plain comments and malformed content.
func parseLine(line string, index int) (Variable, bool) {
	trimmed := trimSpace(line)
	if trimmed == "" {
		return Variable{}, false
	}

	active := true
	if strings.HasPrefix(trimmed, "#") {
		active = false
		trimmed = trimSpace(trimmed[1:])
	}

	m := assignmentRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Variable{}, false
	}
	return Variable{
		Key:          m[1],
		Value:        m[2],
		IsActive:     active,
		LineNumber:   index,
		OriginalLine: line,
	}, true
}

// Parse returns every active and disabled assignment in text, in line order.
// Duplicate keys produce one Variable each.
func Parse(text string) []Variable {
	var vars []Variable
	for i, line := range SplitLines(text) {
		if v, ok := parseLine(line, i); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// ParseFile reads and parses the file at path.
func ParseFile(ctx context.Context, r Reader, path string) (File, error) {
	data, err := r.ReadFile(ctx, path)
	if err != nil {
		return File{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return File{
		Path:        path,
		DisplayName: DisplayName(path),
		Variables:   Parse(string(data)),
	}, nil
}

// DisplayName turns a .env filename into a label:
//
//	.env            -> Env
//	.env.local      -> Env Local
//	.env.prod-east  -> Env Prod East
//	.envrc          -> Env Rc
func DisplayName(path string) string {
	filename := filepath.Base(path)
	if filename == ".env" {
		return "Env"
	}

	suffix := strings.TrimPrefix(filename, ".env")
	if len(suffix) < len(filename) {
		suffix = strings.TrimPrefix(suffix, ".")
	}
	if suffix == "" {
		return "Env"
	}

	var words []string
	for _, word := range displaySplitRegex.Split(suffix, -1) {
		if word == "" {
			continue
		}
		words = append(words, capitalize(word))
	}
	if len(words) == 0 {
		return "Env"
	}
	return "Env " + strings.Join(words, " ")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return strings.ToUpper(string(r)) + strings.ToLower(word[size:])
}

// IsEnvFile reports whether the filename starts with ".env". Only such files
// are valid toggle targets.
func IsEnvFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".env")
}
