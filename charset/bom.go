package charset

// ForBOM inspects the start of buf for a byte-order mark and returns the
// matching encoding along with the BOM's length in bytes, or (nil, 0) when
// buf does not begin with a BOM.
//
// buf may be shorter than three bytes; a prefix that merely could still turn
// into a BOM with more data (for example a lone 0xEF) is reported as no BOM.
// Streaming callers that need to wait for more input should use a sniffing
// Decoder instead, which buffers up to three bytes internally.
func ForBOM(buf []byte) (*Encoding, int) {
	if len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return UTF8, 3
	}
	if len(buf) >= 2 {
		if buf[0] == 0xFF && buf[1] == 0xFE {
			return UTF16LE, 2
		}
		if buf[0] == 0xFE && buf[1] == 0xFF {
			return UTF16BE, 2
		}
	}
	return nil, 0
}
