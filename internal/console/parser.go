package console

import (
	"os"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct colour codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_\-]+)\|\}\}`)

	// ansiRegex matches raw CSI sequences
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

	isTTYGlobal bool

	// preferredProfile stores the detected or forced color profile
	preferredProfile termenv.Profile
)

func init() {
	stat, err := os.Stdout.Stat()
	isTTYGlobal = err == nil && (stat.Mode()&os.ModeCharDevice) != 0
	preferredProfile = detectProfile()
}

// GetPreferredProfile returns the detected or forced color profile
func GetPreferredProfile() termenv.Profile {
	return preferredProfile
}

// SetPreferredProfile explicitly sets the color profile (useful for testing)
func SetPreferredProfile(p termenv.Profile) {
	preferredProfile = p
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return isTTYGlobal
}

func detectProfile() termenv.Profile {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}

	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	switch colorTerm {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "4bit", "16color", "8color", "3bit":
		return termenv.ANSI
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "256color") {
		return termenv.ANSI256
	}
	if term == "dumb" {
		return termenv.Ascii
	}

	return termenv.ColorProfile()
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.Trim(name, "_"))
}

// Parse replaces semantic ({{_Tag_}}) and direct ({{|code|}}) tags with ANSI
// sequences. When colour is unavailable the tags are removed instead.
func Parse(text string) string {
	if !isTTYGlobal || preferredProfile == termenv.Ascii {
		return StripTags(text)
	}
	return render(text)
}

// ParseColor is Parse with colour forced on, for writers that handle their own
// TTY detection.
func ParseColor(text string) string {
	return render(text)
}

func render(text string) string {
	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := match[3 : len(match)-3]
		return semanticMap[normalizeTag(content)]
	})
	return directRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := match[3 : len(match)-3]
		return ansiMap[strings.ToLower(content)]
	})
}

// StripTags removes all semantic and direct tags without emitting colour.
func StripTags(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	return directRegex.ReplaceAllString(text, "")
}

// Strip removes tags and raw ANSI sequences.
func Strip(text string) string {
	return ansiRegex.ReplaceAllString(StripTags(text), "")
}
