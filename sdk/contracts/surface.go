package contracts

// Canvas is a stateful 2D rendering context modeled on the browser's
// CanvasRenderingContext2D. Style setters affect subsequent drawing and are
// saved and restored by Save/Restore.
type Canvas interface {
	Width() int
	Height() int

	Clear()
	StrokeLine(x0, y0, x1, y1 float64)
	StrokeRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	StrokeEllipse(x, y, rx, ry float64)
	FillEllipse(x, y, rx, ry float64)
	FillText(text string, x, y float64)

	SetStrokeStyle(color string)
	SetFillStyle(color string)
	SetLineWidth(width float64)
	SetFont(font string)
	SetGlobalAlpha(alpha float64)
	SetGlobalCompositeOperation(mode string)

	Save()
	Restore()
}

// SurfaceResolver locates the rendering surface. It is consulted on every
// call; ok is false when the surface is absent.
type SurfaceResolver interface {
	Resolve() (canvas Canvas, ok bool)
}

// SurfaceResolverFunc adapts a function to SurfaceResolver.
type SurfaceResolverFunc func() (Canvas, bool)

// Resolve implements SurfaceResolver.
func (f SurfaceResolverFunc) Resolve() (Canvas, bool) {
	return f()
}

// StaticSurface resolves to a fixed canvas; a nil canvas is absent.
func StaticSurface(c Canvas) SurfaceResolver {
	return SurfaceResolverFunc(func() (Canvas, bool) {
		return c, c != nil
	})
}
