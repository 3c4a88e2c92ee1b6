package ggcanvas

import (
	"sync"

	"github.com/gogpu/gg/text"
	"github.com/leandrodaf/midibridge/internal/surface/style"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type fontKey struct {
	mono, bold, italic bool
}

var fontData = map[fontKey][]byte{
	{false, false, false}: goregular.TTF,
	{false, true, false}:  gobold.TTF,
	{false, false, true}:  goitalic.TTF,
	{false, true, true}:   gobolditalic.TTF,
	{true, false, false}:  gomono.TTF,
	{true, true, false}:   gomonobold.TTF,
	{true, false, true}:   gomonoitalic.TTF,
	{true, true, true}:    gomonobolditalic.TTF,
}

// fontCache maps CSS families onto the Go font family. Anything that is not
// monospace renders with Go Regular.
type fontCache struct {
	mu      sync.Mutex
	sources map[fontKey]*text.FontSource
}

func newFontCache() *fontCache {
	return &fontCache{sources: make(map[fontKey]*text.FontSource)}
}

func (fc *fontCache) face(f style.Font) (text.Face, error) {
	key := fontKey{mono: f.Monospace(), bold: f.Bold, italic: f.Italic}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	src, ok := fc.sources[key]
	if !ok {
		var err error
		src, err = text.NewFontSource(fontData[key])
		if err != nil {
			return nil, err
		}
		fc.sources[key] = src
	}
	return src.Face(f.Size), nil
}
