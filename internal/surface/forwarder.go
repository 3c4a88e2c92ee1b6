// Package surface forwards drawing and style commands to the single
// rendering surface. Every call resolves the surface afresh and does nothing
// when it is absent.
package surface

import (
	"sync/atomic"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// Forwarder is the host-facing drawing API.
type Forwarder struct {
	resolver contracts.SurfaceResolver
	logger   contracts.Logger
	absent   atomic.Bool
}

// NewForwarder creates a forwarder over resolver. A nil resolver makes every
// call a no-op.
func NewForwarder(resolver contracts.SurfaceResolver, logger contracts.Logger) *Forwarder {
	return &Forwarder{resolver: resolver, logger: logger}
}

// canvas resolves the surface. Absence is logged once until the surface
// comes back.
func (f *Forwarder) canvas() (contracts.Canvas, bool) {
	var (
		c  contracts.Canvas
		ok bool
	)
	if f.resolver != nil {
		c, ok = f.resolver.Resolve()
	}
	if !ok || c == nil {
		if f.absent.CompareAndSwap(false, true) && f.logger != nil {
			f.logger.Debug("Drawing surface not found; skipping draw calls")
		}
		return nil, false
	}
	f.absent.Store(false)
	return c, true
}

// Clear erases the whole surface.
func (f *Forwarder) Clear() {
	if c, ok := f.canvas(); ok {
		c.Clear()
	}
}

// DrawLine strokes a line from (x0, y0) to (x1, y1).
func (f *Forwarder) DrawLine(x0, y0, x1, y1 float64) {
	if c, ok := f.canvas(); ok {
		c.StrokeLine(x0, y0, x1, y1)
	}
}

// DrawRect strokes a rectangle outline.
func (f *Forwarder) DrawRect(x, y, w, h float64) {
	if c, ok := f.canvas(); ok {
		c.StrokeRect(x, y, w, h)
	}
}

// FillRect fills a rectangle.
func (f *Forwarder) FillRect(x, y, w, h float64) {
	if c, ok := f.canvas(); ok {
		c.FillRect(x, y, w, h)
	}
}

// DrawCircle strokes a circle outline.
func (f *Forwarder) DrawCircle(x, y, r float64) {
	if c, ok := f.canvas(); ok {
		c.StrokeEllipse(x, y, r, r)
	}
}

// FillCircle fills a circle.
func (f *Forwarder) FillCircle(x, y, r float64) {
	if c, ok := f.canvas(); ok {
		c.FillEllipse(x, y, r, r)
	}
}

// DrawEllipse strokes an axis-aligned ellipse outline.
func (f *Forwarder) DrawEllipse(x, y, rx, ry float64) {
	if c, ok := f.canvas(); ok {
		c.StrokeEllipse(x, y, rx, ry)
	}
}

// FillEllipse fills an axis-aligned ellipse.
func (f *Forwarder) FillEllipse(x, y, rx, ry float64) {
	if c, ok := f.canvas(); ok {
		c.FillEllipse(x, y, rx, ry)
	}
}

// DrawText fills text with its baseline starting at (x, y).
func (f *Forwarder) DrawText(x, y float64, text string) {
	if c, ok := f.canvas(); ok {
		c.FillText(text, x, y)
	}
}

// SetColor sets both the stroke and the fill color.
func (f *Forwarder) SetColor(color string) {
	if c, ok := f.canvas(); ok {
		c.SetStrokeStyle(color)
		c.SetFillStyle(color)
	}
}

// SetLineWidth sets the stroke width in pixels.
func (f *Forwarder) SetLineWidth(width float64) {
	if c, ok := f.canvas(); ok {
		c.SetLineWidth(width)
	}
}

// SetFont sets the CSS font used by DrawText.
func (f *Forwarder) SetFont(font string) {
	if c, ok := f.canvas(); ok {
		c.SetFont(font)
	}
}

// SetAlpha sets the global alpha, nominally in [0, 1].
func (f *Forwarder) SetAlpha(alpha float64) {
	if c, ok := f.canvas(); ok {
		c.SetGlobalAlpha(alpha)
	}
}

// SetCompositeOperation sets the global composite operation.
func (f *Forwarder) SetCompositeOperation(mode string) {
	if c, ok := f.canvas(); ok {
		c.SetGlobalCompositeOperation(mode)
	}
}

// SaveContext pushes the drawing state.
func (f *Forwarder) SaveContext() {
	if c, ok := f.canvas(); ok {
		c.Save()
	}
}

// RestoreContext pops the drawing state.
func (f *Forwarder) RestoreContext() {
	if c, ok := f.canvas(); ok {
		c.Restore()
	}
}

// Width returns the surface width, or 0 when absent.
func (f *Forwarder) Width() int {
	if c, ok := f.canvas(); ok {
		return c.Width()
	}
	return 0
}

// Height returns the surface height, or 0 when absent.
func (f *Forwarder) Height() int {
	if c, ok := f.canvas(); ok {
		return c.Height()
	}
	return 0
}
