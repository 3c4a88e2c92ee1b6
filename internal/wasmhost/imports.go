package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func (r *Runtime) exportSurface(b wazero.HostModuleBuilder) {
	f := r.surface
	b.NewFunctionBuilder().WithFunc(func() { f.Clear() }).Export("js_clear_canvas")
	b.NewFunctionBuilder().WithFunc(func(x0, y0, x1, y1 float64) { f.DrawLine(x0, y0, x1, y1) }).Export("js_draw_line")
	b.NewFunctionBuilder().WithFunc(func(x, y, w, h float64) { f.DrawRect(x, y, w, h) }).Export("js_draw_rect")
	b.NewFunctionBuilder().WithFunc(func(x, y, w, h float64) { f.FillRect(x, y, w, h) }).Export("js_fill_rect")
	b.NewFunctionBuilder().WithFunc(func(x, y, radius float64) { f.DrawCircle(x, y, radius) }).Export("js_draw_circle")
	b.NewFunctionBuilder().WithFunc(func(x, y, radius float64) { f.FillCircle(x, y, radius) }).Export("js_fill_circle")
	b.NewFunctionBuilder().WithFunc(func(x, y, rx, ry float64) { f.DrawEllipse(x, y, rx, ry) }).Export("js_draw_ellipse")
	b.NewFunctionBuilder().WithFunc(func(x, y, rx, ry float64) { f.FillEllipse(x, y, rx, ry) }).Export("js_fill_ellipse")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, x, y float64, textPtr uint32) {
		if text, ok := r.cString(m, "js_draw_text", textPtr); ok {
			f.DrawText(x, y, text)
		}
	}).Export("js_draw_text")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, ptr uint32) {
		if color, ok := r.cString(m, "js_set_color", ptr); ok {
			f.SetColor(color)
		}
	}).Export("js_set_color")
	b.NewFunctionBuilder().WithFunc(func(width float64) { f.SetLineWidth(width) }).Export("js_set_line_width")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, ptr uint32) {
		if font, ok := r.cString(m, "js_set_font", ptr); ok {
			f.SetFont(font)
		}
	}).Export("js_set_font")
	b.NewFunctionBuilder().WithFunc(func(alpha float64) { f.SetAlpha(alpha) }).Export("js_set_alpha")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, ptr uint32) {
		if mode, ok := r.cString(m, "js_set_composite_operation", ptr); ok {
			f.SetCompositeOperation(mode)
		}
	}).Export("js_set_composite_operation")
	b.NewFunctionBuilder().WithFunc(func() { f.SaveContext() }).Export("js_save_context")
	b.NewFunctionBuilder().WithFunc(func() { f.RestoreContext() }).Export("js_restore_context")
	b.NewFunctionBuilder().WithFunc(func() int32 { return int32(f.Width()) }).Export("js_get_canvas_width")
	b.NewFunctionBuilder().WithFunc(func() int32 { return int32(f.Height()) }).Export("js_get_canvas_height")
}

func (r *Runtime) exportDevices(b wazero.HostModuleBuilder) {
	d := r.devices
	b.NewFunctionBuilder().WithFunc(func() { d.RequestAccess() }).Export("js_request_midi_access")
	b.NewFunctionBuilder().WithFunc(func() { d.OpenInputs() }).Export("js_open_midi_inputs")
	b.NewFunctionBuilder().WithFunc(func() int32 { return int32(d.InputCount()) }).Export("js_get_midi_input_count")
	b.NewFunctionBuilder().WithFunc(func() int32 { return int32(d.OutputCount()) }).Export("js_get_midi_output_count")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, index int32, bufPtr uint32, capacity int32) {
		if buf, ok := r.buffer(m, "js_get_midi_input_name", bufPtr, capacity); ok {
			d.CopyInputName(int(index), buf)
		}
	}).Export("js_get_midi_input_name")
	b.NewFunctionBuilder().WithFunc(func(ctx context.Context, m api.Module, index int32, bufPtr uint32, capacity int32) {
		if buf, ok := r.buffer(m, "js_get_midi_output_name", bufPtr, capacity); ok {
			d.CopyOutputName(int(index), buf)
		}
	}).Export("js_get_midi_output_name")
}

func (r *Runtime) cString(m api.Module, call string, ptr uint32) (string, bool) {
	s, ok := readCString(moduleMemory(m), ptr)
	if !ok {
		r.logger.Warn("Invalid guest string; call skipped",
			r.logger.Field().String("call", call),
			r.logger.Field().Uint64("ptr", uint64(ptr)))
	}
	return s, ok
}

func (r *Runtime) buffer(m api.Module, call string, ptr uint32, capacity int32) ([]byte, bool) {
	buf, ok := writableBuffer(moduleMemory(m), ptr, capacity)
	if !ok {
		r.logger.Warn("Invalid guest buffer; call skipped",
			r.logger.Field().String("call", call),
			r.logger.Field().Uint64("ptr", uint64(ptr)),
			r.logger.Field().Int("capacity", int(capacity)))
	}
	return buf, ok
}

// moduleMemory avoids wrapping a nil api.Memory in a non-nil interface.
func moduleMemory(m api.Module) memory {
	if mem := m.Memory(); mem != nil {
		return mem
	}
	return nil
}
