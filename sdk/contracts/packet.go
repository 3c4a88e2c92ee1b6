package contracts

import "bytes"

// MessageLength returns the length in bytes of a message that starts with
// status. It returns 0 for data bytes and for sysex, whose length is not
// fixed.
func MessageLength(status byte) int {
	switch {
	case status < 0x80:
		return 0
	case status < 0xC0:
		return 3
	case status < 0xE0:
		return 2
	case status < 0xF0:
		return 3
	}
	switch status {
	case 0xF0:
		return 0
	case 0xF1, 0xF3:
		return 2
	case 0xF2:
		return 3
	default:
		return 1
	}
}

// SplitMessages splits a platform packet holding several complete messages.
// Sysex blocks are skipped, stray data bytes are dropped and a truncated
// final message is returned as is. The returned slices alias data.
func SplitMessages(data []byte) [][]byte {
	var out [][]byte
	for i := 0; i < len(data); {
		status := data[i]
		if status == 0xF0 {
			end := bytes.IndexByte(data[i:], 0xF7)
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}
		n := MessageLength(status)
		if n == 0 {
			i++
			continue
		}
		end := i + n
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[i:end])
		i = end
	}
	return out
}
