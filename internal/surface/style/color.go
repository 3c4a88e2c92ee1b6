// Package style parses the CSS strings a 2D canvas accepts for colors,
// fonts and composite operations.
package style

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: hex (#rgb, #rgba, #rrggbb, #rrggbbaa),
// rgb()/rgba(), hsl()/hsla(), a named color or "transparent".
// ok is false for anything else; canvases ignore such assignments.
func ParseColor(s string) (c gg.RGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return gg.RGBA{}, false
	case s == "transparent":
		return gg.Transparent, true
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	named, found := colornames.Map[s]
	if !found {
		return gg.RGBA{}, false
	}
	return gg.FromColor(named), true
}

func parseHexColor(hex string) (gg.RGBA, bool) {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return gg.RGBA{}, false
		}
	}
	return gg.Hex(hex), true
}

// funcArgs splits "name(a, b, c)" or "name(a b c / d)" into its arguments.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	body := s[open+1 : len(s)-1]
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
	return strings.Fields(body), true
}

func parseRGBFunc(s string) (gg.RGBA, bool) {
	args, ok := funcArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return gg.RGBA{}, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(args[i])
		if !ok {
			return gg.RGBA{}, false
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(args) == 4 {
		if alpha, ok = parseAlpha(args[3]); !ok {
			return gg.RGBA{}, false
		}
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], alpha), true
}

func parseHSLFunc(s string) (gg.RGBA, bool) {
	args, ok := funcArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return gg.RGBA{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return gg.RGBA{}, false
	}
	sat, ok1 := parsePercent(args[1])
	light, ok2 := parsePercent(args[2])
	if !ok1 || !ok2 {
		return gg.RGBA{}, false
	}
	alpha := 1.0
	if len(args) == 4 {
		if alpha, ok = parseAlpha(args[3]); !ok {
			return gg.RGBA{}, false
		}
	}
	h = h - 360*float64(int(h/360))
	if h < 0 {
		h += 360
	}
	c := gg.HSL(h, sat, light)
	c.A = alpha
	return c, true
}

// parseChannel parses 0-255 or a percentage into [0, 1].
func parseChannel(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v / 255), true
}

func parsePercent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v / 100), true
}

func parseAlpha(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp01(v), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
