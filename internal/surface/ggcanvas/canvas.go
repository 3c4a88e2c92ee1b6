// Package ggcanvas is an offscreen rendering surface backed by gogpu/gg.
// It keeps canvas-style state (separate stroke and fill colors, global
// alpha, composite operation, font) that gg does not track itself.
package ggcanvas

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/leandrodaf/midibridge/internal/surface/style"
	"github.com/leandrodaf/midibridge/sdk/contracts"
)

type drawState struct {
	stroke    gg.RGBA
	fill      gg.RGBA
	lineWidth float64
	font      style.Font
	alpha     float64
	composite style.Composite
}

func defaultState() drawState {
	font, _ := style.ParseFont(style.DefaultFont)
	return drawState{
		stroke:    gg.Black,
		fill:      gg.Black,
		lineWidth: 1,
		font:      font,
		alpha:     1,
		composite: style.SourceOver,
	}
}

// Canvas implements contracts.Canvas on a gg.Context.
type Canvas struct {
	dc     *gg.Context
	logger contracts.Logger
	fonts  *fontCache
	state  drawState
	stack  []drawState
}

// New creates a transparent width x height surface.
func New(width, height int, logger contracts.Logger) *Canvas {
	return &Canvas{
		dc:     gg.NewContext(width, height),
		logger: logger,
		fonts:  newFontCache(),
		state:  defaultState(),
	}
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.dc.Height() }

// Clear resets every pixel to transparent.
func (c *Canvas) Clear() {
	c.dc.Clear()
}

// StrokeLine implements contracts.Canvas.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64) {
	c.strokePath(func() { c.dc.DrawLine(x0, y0, x1, y1) })
}

// StrokeRect implements contracts.Canvas.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.strokePath(func() { c.dc.DrawRectangle(x, y, w, h) })
}

// FillRect implements contracts.Canvas.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.fillPath(func() { c.dc.DrawRectangle(x, y, w, h) })
}

// StrokeEllipse implements contracts.Canvas.
func (c *Canvas) StrokeEllipse(x, y, rx, ry float64) {
	c.strokePath(func() { c.ellipse(x, y, rx, ry) })
}

// FillEllipse implements contracts.Canvas.
func (c *Canvas) FillEllipse(x, y, rx, ry float64) {
	c.fillPath(func() { c.ellipse(x, y, rx, ry) })
}

func (c *Canvas) ellipse(x, y, rx, ry float64) {
	if rx == ry {
		c.dc.DrawCircle(x, y, rx)
		return
	}
	c.dc.DrawEllipse(x, y, rx, ry)
}

// FillText draws text in the fill color with its baseline at y.
func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	face, err := c.fonts.face(c.state.font)
	if err != nil {
		c.logger.Error("Failed to load font face",
			c.logger.Field().String("family", c.state.font.Family),
			c.logger.Field().Error("error", err))
		return
	}
	c.dc.SetFont(face)
	c.paint(c.state.fill, func() { c.dc.DrawString(text, x, y) })
}

// SetStrokeStyle sets the stroke color. Invalid colors are ignored.
func (c *Canvas) SetStrokeStyle(color string) {
	if col, ok := c.parseColor(color); ok {
		c.state.stroke = col
	}
}

// SetFillStyle sets the fill color. Invalid colors are ignored.
func (c *Canvas) SetFillStyle(color string) {
	if col, ok := c.parseColor(color); ok {
		c.state.fill = col
	}
}

func (c *Canvas) parseColor(s string) (gg.RGBA, bool) {
	col, ok := style.ParseColor(s)
	if !ok {
		c.logger.Debug("Ignoring invalid color", c.logger.Field().String("color", s))
	}
	return col, ok
}

// SetLineWidth sets the stroke width. Non-positive or non-finite values are
// ignored.
func (c *Canvas) SetLineWidth(width float64) {
	if width <= 0 || math.IsInf(width, 0) || math.IsNaN(width) {
		return
	}
	c.state.lineWidth = width
}

// SetFont sets the CSS font. Unparseable values are ignored.
func (c *Canvas) SetFont(font string) {
	f, ok := style.ParseFont(font)
	if !ok {
		c.logger.Debug("Ignoring invalid font", c.logger.Field().String("font", font))
		return
	}
	c.state.font = f
}

// SetGlobalAlpha sets the alpha applied to every draw. Values outside
// [0, 1] are ignored.
func (c *Canvas) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return
	}
	c.state.alpha = alpha
}

// SetGlobalCompositeOperation sets how draws combine with existing pixels.
// Modes without a gg blend equivalent draw as source-over.
func (c *Canvas) SetGlobalCompositeOperation(mode string) {
	comp, ok := style.ParseComposite(mode)
	if !ok {
		c.logger.Debug("Ignoring invalid composite operation", c.logger.Field().String("mode", mode))
		return
	}
	c.state.composite = comp
}

// Save pushes the drawing state and the transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
	c.dc.Push()
}

// Restore pops the drawing state. Without a matching Save it does nothing.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

func (c *Canvas) strokePath(path func()) {
	c.paint(c.state.stroke, func() {
		c.dc.SetLineWidth(c.state.lineWidth)
		path()
		if err := c.dc.Stroke(); err != nil {
			c.logger.Debug("Stroke failed", c.logger.Field().Error("error", err))
		}
	})
}

func (c *Canvas) fillPath(path func()) {
	c.paint(c.state.fill, func() {
		path()
		if err := c.dc.Fill(); err != nil {
			c.logger.Debug("Fill failed", c.logger.Field().Error("error", err))
		}
	})
}

// paint sets the color, scaled by global alpha, and runs draw inside a
// blend layer when the composite operation needs one.
func (c *Canvas) paint(col gg.RGBA, draw func()) {
	blend, layered := blendMode(c.state.composite)
	if layered {
		c.dc.PushLayer(blend, 1)
	}
	c.dc.SetRGBA(col.R, col.G, col.B, col.A*c.state.alpha)
	draw()
	if layered {
		c.dc.PopLayer()
	}
}

func blendMode(comp style.Composite) (gg.BlendMode, bool) {
	switch comp {
	case style.Multiply:
		return gg.BlendMultiply, true
	case style.Screen:
		return gg.BlendScreen, true
	case style.Overlay:
		return gg.BlendOverlay, true
	default:
		return gg.BlendNormal, false
	}
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the surface to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// EncodePNG writes the surface as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the gg context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
