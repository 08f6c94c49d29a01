package tui

// Glyphs are the markers drawn in front of tree rows.
type Glyphs struct {
	Active    string
	Inactive  string
	Expanded  string
	Collapsed string
}

var (
	unicodeGlyphs = Glyphs{
		Active:    "✓",
		Inactive:  "⊘",
		Expanded:  "▾",
		Collapsed: "▸",
	}
	asciiGlyphs = Glyphs{
		Active:    "+",
		Inactive:  "/",
		Expanded:  "v",
		Collapsed: ">",
	}
)

// GlyphSet returns the ASCII fallbacks when ascii is set.
func GlyphSet(ascii bool) Glyphs {
	if ascii {
		return asciiGlyphs
	}
	return unicodeGlyphs
}
