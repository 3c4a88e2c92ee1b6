package devicebridge

import (
	"bytes"
	"testing"
	"unicode/utf8"
)

func TestCopyCString(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		in       string
		want     string
	}{
		{"fits", 16, "Keystation", "Keystation"},
		{"exact fit with terminator", 5, "abcd", "abcd"},
		{"truncated", 5, "abcdef", "abcd"},
		{"capacity one", 1, "abc", ""},
		{"empty string", 4, "", ""},
		{"no split of two-byte rune", 3, "aé", "a"},
		{"keeps whole rune", 4, "aé", "aé"},
		{"no split of three-byte rune", 3, "€€", ""},
		{"three-byte rune fits", 4, "€€", "€"},
		{"no split mid sequence", 6, "x€€", "x€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Guard bytes around the window catch overruns.
			backing := bytes.Repeat([]byte{0xAA}, tt.capacity+2)
			dst := backing[1 : 1+tt.capacity]

			n := CopyCString(dst, tt.in)
			if got := string(dst[:n]); got != tt.want {
				t.Errorf("copied %q, want %q", got, tt.want)
			}
			if dst[n] != 0 {
				t.Errorf("missing terminator at %d", n)
			}
			if !utf8.Valid(dst[:n]) {
				t.Errorf("invalid UTF-8 %q", dst[:n])
			}
			if backing[0] != 0xAA || backing[len(backing)-1] != 0xAA {
				t.Error("wrote outside the buffer")
			}
		})
	}
}

func TestCopyCStringZeroCapacity(t *testing.T) {
	if n := CopyCString(nil, "abc"); n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if n := CopyCString([]byte{}, "abc"); n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}
