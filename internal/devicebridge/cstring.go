package devicebridge

import "unicode/utf8"

// CopyCString copies s into dst as a NUL-terminated string and returns the
// number of bytes copied, excluding the terminator. It never writes past
// len(dst) and truncates on a UTF-8 boundary. An empty dst is left untouched.
func CopyCString(dst []byte, s string) int {
	if len(dst) == 0 {
		return 0
	}
	n := len(s)
	if n > len(dst)-1 {
		n = len(dst) - 1
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
	}
	copy(dst, s[:n])
	dst[n] = 0
	return n
}
