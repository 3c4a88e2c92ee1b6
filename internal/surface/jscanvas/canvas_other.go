//go:build !(js && wasm)

// Package jscanvas forwards drawing commands to an HTML canvas element
// through syscall/js.
package jscanvas

import "github.com/leandrodaf/midibridge/sdk/contracts"

// NewResolver returns a resolver that never finds a surface outside the
// browser.
func NewResolver(id string) contracts.SurfaceResolver {
	return contracts.SurfaceResolverFunc(func() (contracts.Canvas, bool) {
		return nil, false
	})
}
