//go:build js && wasm

// Package jscanvas forwards drawing commands to an HTML canvas element
// through syscall/js.
package jscanvas

import (
	"math"
	"syscall/js"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// Canvas wraps a resolved element and its 2D context.
type Canvas struct {
	element js.Value
	ctx     js.Value
}

type resolver struct {
	id string
}

// NewResolver returns a resolver that looks the element up by id on every
// call, so a canvas added or removed by the page is picked up.
func NewResolver(id string) contracts.SurfaceResolver {
	return resolver{id: id}
}

func (r resolver) Resolve() (contracts.Canvas, bool) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, false
	}
	el := doc.Call("getElementById", r.id)
	if !el.Truthy() {
		return nil, false
	}
	ctx := el.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil, false
	}
	return &Canvas{element: el, ctx: ctx}, true
}

func (c *Canvas) Width() int  { return c.element.Get("width").Int() }
func (c *Canvas) Height() int { return c.element.Get("height").Int() }

func (c *Canvas) Clear() {
	c.ctx.Call("clearRect", 0, 0, c.Width(), c.Height())
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64) {
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x0, y0)
	c.ctx.Call("lineTo", x1, y1)
	c.ctx.Call("stroke")
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.ctx.Call("strokeRect", x, y, w, h)
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *Canvas) StrokeEllipse(x, y, rx, ry float64) {
	c.ellipse(x, y, rx, ry)
	c.ctx.Call("stroke")
}

func (c *Canvas) FillEllipse(x, y, rx, ry float64) {
	c.ellipse(x, y, rx, ry)
	c.ctx.Call("fill")
}

func (c *Canvas) ellipse(x, y, rx, ry float64) {
	c.ctx.Call("beginPath")
	c.ctx.Call("ellipse", x, y, rx, ry, 0, 0, 2*math.Pi)
}

func (c *Canvas) FillText(text string, x, y float64) {
	c.ctx.Call("fillText", text, x, y)
}

func (c *Canvas) SetStrokeStyle(color string) { c.ctx.Set("strokeStyle", color) }
func (c *Canvas) SetFillStyle(color string)   { c.ctx.Set("fillStyle", color) }
func (c *Canvas) SetLineWidth(width float64)  { c.ctx.Set("lineWidth", width) }
func (c *Canvas) SetFont(font string)         { c.ctx.Set("font", font) }
func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.ctx.Set("globalAlpha", alpha)
}

func (c *Canvas) SetGlobalCompositeOperation(mode string) {
	c.ctx.Set("globalCompositeOperation", mode)
}

func (c *Canvas) Save()    { c.ctx.Call("save") }
func (c *Canvas) Restore() { c.ctx.Call("restore") }
