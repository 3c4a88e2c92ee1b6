package style

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func near(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func sameColor(a, b gg.RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want gg.RGBA
		ok   bool
	}{
		{"#fff", gg.RGB(1, 1, 1), true},
		{"#FF0000", gg.RGB(1, 0, 0), true},
		{"#00ff0080", gg.RGBA2(0, 1, 0, 128.0/255), true},
		{"  red ", gg.RGB(1, 0, 0), true},
		{"White", gg.RGB(1, 1, 1), true},
		{"transparent", gg.Transparent, true},
		{"rgb(0, 0, 255)", gg.RGB(0, 0, 1), true},
		{"rgba(255,0,0,0.5)", gg.RGBA2(1, 0, 0, 0.5), true},
		{"rgb(100% 0% 0% / 25%)", gg.RGBA2(1, 0, 0, 0.25), true},
		{"rgb(300, -4, 0)", gg.RGB(1, 0, 0), true},
		{"hsl(120, 100%, 50%)", gg.RGB(0, 1, 0), true},
		{"hsla(480deg, 100%, 50%, 0.5)", gg.RGBA2(0, 1, 0, 0.5), true},
		{"#ggg", gg.RGBA{}, false},
		{"#12345", gg.RGBA{}, false},
		{"rgb(1,2)", gg.RGBA{}, false},
		{"rgb(1,2,3", gg.RGBA{}, false},
		{"hsl(10, 50, 50)", gg.RGBA{}, false},
		{"notacolor", gg.RGBA{}, false},
		{"", gg.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !sameColor(got, tt.want) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		in   string
		want Font
		ok   bool
	}{
		{DefaultFont, Font{Size: 10, Family: "sans-serif"}, true},
		{"bold 16px monospace", Font{Size: 16, Family: "monospace", Bold: true}, true},
		{"italic 700 12pt 'Go Mono', monospace", Font{Size: 16, Family: "go mono", Bold: true, Italic: true}, true},
		{"normal 400 1.5em serif", Font{Size: 15, Family: "serif"}, true},
		{"14px/20px Arial", Font{Size: 14, Family: "arial"}, true},
		{"16px", Font{}, false},
		{"monospace", Font{}, false},
		{"-3px serif", Font{}, false},
		{"", Font{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseFont(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseFont(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (got.Family != tt.want.Family || !near(got.Size, tt.want.Size) ||
			got.Bold != tt.want.Bold || got.Italic != tt.want.Italic) {
			t.Errorf("ParseFont(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFontMonospace(t *testing.T) {
	for family, want := range map[string]bool{
		"monospace":        true,
		"go mono":          true,
		"dejavu sans mono": true,
		"courier":          true,
		"sans-serif":       false,
		"serif":            false,
	} {
		if got := (Font{Family: family}).Monospace(); got != want {
			t.Errorf("Monospace(%q) = %v, want %v", family, got, want)
		}
	}
}

func TestParseComposite(t *testing.T) {
	if c, ok := ParseComposite(" Multiply "); !ok || c != Multiply {
		t.Errorf("ParseComposite(Multiply) = %q, %v", c, ok)
	}
	if _, ok := ParseComposite("destination-out"); !ok {
		t.Error("destination-out should be accepted")
	}
	if _, ok := ParseComposite("blend-everything"); ok {
		t.Error("unknown mode accepted")
	}
}
