package style

import (
	"strconv"
	"strings"
)

// DefaultFont is the canvas default font.
const DefaultFont = "10px sans-serif"

// Font is the subset of the CSS font shorthand a raster surface can honor.
type Font struct {
	Size   float64 // Pixels.
	Family string  // First family, lower-cased, quotes removed.
	Bold   bool
	Italic bool
}

// Monospace reports whether the family asks for a fixed-pitch face.
func (f Font) Monospace() bool {
	switch f.Family {
	case "monospace", "courier", "courier new", "consolas", "menlo", "monaco", "go mono":
		return true
	}
	return strings.Contains(f.Family, "mono")
}

// ParseFont parses a CSS font shorthand such as "bold 16px monospace" or
// "italic 12pt 'Go', sans-serif". A size and a family are required.
func ParseFont(s string) (Font, bool) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	var f Font
	for i, tok := range tokens {
		switch tok {
		case "normal", "small-caps":
			continue
		case "bold", "bolder":
			f.Bold = true
			continue
		case "italic", "oblique":
			f.Italic = true
			continue
		}
		if w, err := strconv.Atoi(tok); err == nil {
			f.Bold = w >= 600
			continue
		}

		size, ok := parseFontSize(tok)
		if !ok {
			return Font{}, false
		}
		family := strings.Join(tokens[i+1:], " ")
		if comma := strings.IndexByte(family, ','); comma >= 0 {
			family = family[:comma]
		}
		family = strings.Trim(strings.TrimSpace(family), `"'`)
		if family == "" {
			return Font{}, false
		}
		f.Size = size
		f.Family = family
		return f, true
	}
	return Font{}, false
}

// parseFontSize parses "16px", "12pt", "1.5em" or "16px/20px" into pixels.
func parseFontSize(tok string) (float64, bool) {
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		tok = tok[:slash]
	}
	scale := 0.0
	switch {
	case strings.HasSuffix(tok, "px"):
		scale = 1
	case strings.HasSuffix(tok, "pt"):
		scale = 4.0 / 3.0
	case strings.HasSuffix(tok, "em"):
		scale = 10
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(tok[:len(tok)-2], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}
