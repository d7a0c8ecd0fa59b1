package transcoder

import "unicode/utf8"

// ASCIIValidUpTo returns the length of the longest prefix of src that is
// entirely ASCII.
func ASCIIValidUpTo(src []byte) int {
	for i, b := range src {
		if b >= 0x80 {
			return i
		}
	}
	return len(src)
}

// UTF8ValidUpTo returns the length of the longest prefix of src that is
// valid UTF-8.
func UTF8ValidUpTo(src []byte) int {
	i := 0
	for i < len(src) {
		if src[i] < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return i
}

// ISO2022JPASCIIValidUpTo returns the length of the longest prefix of src
// that encodes to itself in ISO-2022-JP: ASCII without the shift and escape
// controls.
func ISO2022JPASCIIValidUpTo(src []byte) int {
	for i, b := range src {
		if b >= 0x80 || b == 0x0E || b == 0x0F || b == 0x1B {
			return i
		}
	}
	return len(src)
}
