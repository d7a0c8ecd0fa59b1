package charset

// Encoding is a character encoding defined by the Encoding Standard.
//
// All instances are statically allocated; two *Encoding values refer to the
// same encoding exactly when the pointers are equal. Comparing Name() strings
// is never necessary.
type Encoding struct {
	name            string
	output          *Encoding // nil means the encoding is its own output encoding
	asciiCompatible bool
	singleByte      bool
}

// Name returns the canonical name of the encoding, in the casing used by the
// Encoding Standard ("UTF-8", "Shift_JIS", "windows-1252", ...).
func (e *Encoding) Name() string {
	return e.name
}

// OutputEncoding returns the encoding used for outbound serialization (form
// submission, URL query encoding). This is UTF-8 for UTF-16LE, UTF-16BE and
// the replacement encoding, and the encoding itself for everything else.
func (e *Encoding) OutputEncoding() *Encoding {
	if e.output != nil {
		return e.output
	}
	return e
}

// CanEncodeEverything reports whether the output encoding of this encoding
// can represent every Unicode scalar value, which is the case exactly when
// the output encoding is UTF-8.
func (e *Encoding) CanEncodeEverything() bool {
	return e.OutputEncoding() == UTF8
}

// IsASCIICompatible reports whether the encoding maps the bytes 0x00..0x7F to
// the corresponding Basic Latin characters. False for UTF-16LE, UTF-16BE,
// ISO-2022-JP and the replacement encoding.
func (e *Encoding) IsASCIICompatible() bool {
	return e.asciiCompatible
}

// IsSingleByte reports whether this is a single-byte legacy encoding.
func (e *Encoding) IsSingleByte() bool {
	return e.singleByte
}

// String implements fmt.Stringer.
func (e *Encoding) String() string {
	return e.name
}
