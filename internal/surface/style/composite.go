package style

import "strings"

// Composite is a canvas globalCompositeOperation value.
type Composite string

// Composite operations understood by the raster surface.
const (
	SourceOver Composite = "source-over"
	Multiply   Composite = "multiply"
	Screen     Composite = "screen"
	Overlay    Composite = "overlay"
	Darken     Composite = "darken"
	Lighten    Composite = "lighten"
	Lighter    Composite = "lighter"
	Copy       Composite = "copy"
	Xor        Composite = "xor"
)

var composites = map[Composite]bool{
	SourceOver: true, Multiply: true, Screen: true, Overlay: true,
	Darken: true, Lighten: true, Lighter: true, Copy: true, Xor: true,
	"source-in": true, "source-out": true, "source-atop": true,
	"destination-over": true, "destination-in": true, "destination-out": true,
	"destination-atop": true, "color-dodge": true, "color-burn": true,
	"hard-light": true, "soft-light": true, "difference": true,
	"exclusion": true, "hue": true, "saturation": true, "color": true,
	"luminosity": true,
}

// ParseComposite validates a globalCompositeOperation value. Unknown values
// are rejected, matching the browser which ignores them.
func ParseComposite(s string) (Composite, bool) {
	c := Composite(strings.ToLower(strings.TrimSpace(s)))
	return c, composites[c]
}
