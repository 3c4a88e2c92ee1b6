package wasmhost

import "bytes"

// maxCString bounds how far a NUL terminator is searched for.
const maxCString = 64 << 10

// memory is the part of api.Memory the host functions need.
type memory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
}

// readCString reads the NUL-terminated string at ptr. It fails when ptr is
// outside memory or no terminator is found within maxCString bytes.
func readCString(mem memory, ptr uint32) (string, bool) {
	if mem == nil {
		return "", false
	}
	size := mem.Size()
	if ptr >= size {
		return "", false
	}
	n := size - ptr
	if n > maxCString {
		n = maxCString
	}
	buf, ok := mem.Read(ptr, n)
	if !ok {
		return "", false
	}
	end := bytes.IndexByte(buf, 0)
	if end < 0 {
		return "", false
	}
	return string(buf[:end]), true
}

// writableBuffer returns the guest buffer [ptr, ptr+capacity) as a slice
// aliasing guest memory. A non-positive capacity yields an empty buffer.
func writableBuffer(mem memory, ptr uint32, capacity int32) ([]byte, bool) {
	if capacity <= 0 {
		return nil, true
	}
	if mem == nil {
		return nil, false
	}
	return mem.Read(ptr, uint32(capacity))
}
