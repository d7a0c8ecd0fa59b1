package transcoder

import (
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/textcodec/charset"
)

// Encoder converts UTF-8 or UTF-16 text into a byte stream in one encoding,
// incrementally and with caller-supplied buffers. Like a Decoder, an Encoder
// is good for one stream and is not safe for concurrent use.
//
// By default unmappable characters are written as decimal numeric character
// references; the *WithoutReplacement calls stop with Unmappable instead,
// leaving the offending character unconsumed in src.
type Encoder struct {
	enc   *charset.Encoding
	inner variantEncoder

	unmappableRune rune
}

// NewEncoder returns an Encoder for e's output encoding: e itself for most
// encodings, UTF-8 for UTF-16LE, UTF-16BE and replacement, which have no
// encoder of their own.
func NewEncoder(e *charset.Encoding) *Encoder {
	out := e.OutputEncoding()
	return &Encoder{enc: out, inner: newVariantEncoder(out)}
}

// Encoding returns the encoding being encoded to.
func (e *Encoder) Encoding() *charset.Encoding { return e.enc }

// Unmappable returns the character behind the most recent Unmappable status.
func (e *Encoder) Unmappable() rune { return e.unmappableRune }

// EncodeFromUTF8 encodes src, writing unmappable characters as numeric
// character references. Invalid UTF-8 in src is treated as U+FFFD. It
// returns the status, the bytes read, the bytes written, and whether any
// unmappable was replaced during this call.
func (e *Encoder) EncodeFromUTF8(src, dst []byte, last bool) (Status, int, int, bool) {
	return e.encodeFromUTF8(src, dst, last, true)
}

// EncodeFromUTF8WithoutReplacement encodes src, stopping with Unmappable at
// the first character the output encoding cannot represent.
func (e *Encoder) EncodeFromUTF8WithoutReplacement(src, dst []byte, last bool) (Status, int, int) {
	status, read, written, _ := e.encodeFromUTF8(src, dst, last, false)
	return status, read, written
}

// EncodeFromUTF16 is EncodeFromUTF8 with UTF-16 code unit input. Unpaired
// surrogates are treated as U+FFFD.
func (e *Encoder) EncodeFromUTF16(src []uint16, dst []byte, last bool) (Status, int, int, bool) {
	return e.encodeFromUTF16(src, dst, last, true)
}

// EncodeFromUTF16WithoutReplacement is EncodeFromUTF8WithoutReplacement with
// UTF-16 code unit input.
func (e *Encoder) EncodeFromUTF16WithoutReplacement(src []uint16, dst []byte, last bool) (Status, int, int) {
	status, read, written, _ := e.encodeFromUTF16(src, dst, last, false)
	return status, read, written
}

func (e *Encoder) encodeFromUTF8(src, dst []byte, last, replace bool) (Status, int, int, bool) {
	read, written := 0, 0
	hadErrors := false
	for read < len(src) {
		r, size := utf8.DecodeRune(src[read:])
		if r == utf8.RuneError && size == 1 {
			if !last && !utf8.FullRune(src[read:]) {
				// an incomplete trailing sequence may be completed next call
				return InputEmpty, read, written, hadErrors
			}
			r = 0xFFFD
		}
		status, ok := e.put(r, dst, &written, replace, &hadErrors)
		if !ok {
			return status, read, written, hadErrors
		}
		read += size
	}
	if last {
		n, res := e.inner.finish(dst[written:])
		if res == encFull {
			return OutputFull, read, written, hadErrors
		}
		written += n
	}
	return InputEmpty, read, written, hadErrors
}

func (e *Encoder) encodeFromUTF16(src []uint16, dst []byte, last, replace bool) (Status, int, int, bool) {
	read, written := 0, 0
	hadErrors := false
	for read < len(src) {
		u := src[read]
		r, size := rune(u), 1
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if read+1 == len(src) {
				if !last {
					// the trail surrogate may arrive with the next call
					return InputEmpty, read, written, hadErrors
				}
				r = 0xFFFD
				break
			}
			if t := src[read+1]; t >= 0xDC00 && t <= 0xDFFF {
				r = 0x10000 + (rune(u)-0xD800)<<10 + (rune(t) - 0xDC00)
				size = 2
			} else {
				r = 0xFFFD
			}
		case u >= 0xDC00 && u <= 0xDFFF:
			r = 0xFFFD
		}
		status, ok := e.put(r, dst, &written, replace, &hadErrors)
		if !ok {
			return status, read, written, hadErrors
		}
		read += size
	}
	if last {
		n, res := e.inner.finish(dst[written:])
		if res == encFull {
			return OutputFull, read, written, hadErrors
		}
		written += n
	}
	return InputEmpty, read, written, hadErrors
}

// put encodes one scalar value, falling back to a numeric character
// reference when replace is set. The reference is written whole or not at
// all so a full buffer never tears it.
func (e *Encoder) put(r rune, dst []byte, written *int, replace bool, hadErrors *bool) (Status, bool) {
	r = e.inner.sanitize(r)
	n, res := e.inner.encode(r, dst[*written:])
	switch res {
	case encOK:
		*written += n
		return InputEmpty, true
	case encFull:
		return OutputFull, false
	}
	if !replace {
		e.unmappableRune = r
		return Unmappable, false
	}
	ref := "&#" + strconv.Itoa(int(r)) + ";"
	if len(dst)-*written < e.inner.asciiOverhead()+len(ref) {
		return OutputFull, false
	}
	for i := 0; i < len(ref); i++ {
		n, res := e.inner.encode(rune(ref[i]), dst[*written:])
		if res != encOK {
			return OutputFull, false
		}
		*written += n
	}
	*hadErrors = true
	return InputEmpty, true
}

// MaxBufferLengthFromUTF8WithoutReplacement returns a dst length guaranteed
// to hold the output of one encode call over n further UTF-8 bytes, provided
// no numeric character references are written.
func (e *Encoder) MaxBufferLengthFromUTF8WithoutReplacement(n int) int {
	return e.inner.maxFromUTF8(n)
}

// MaxBufferLengthFromUTF8IfNoUnmappables is the same bound for the replacing
// calls; it holds whenever the input has no unmappable characters.
func (e *Encoder) MaxBufferLengthFromUTF8IfNoUnmappables(n int) int {
	return e.inner.maxFromUTF8(n)
}

// MaxBufferLengthFromUTF16WithoutReplacement returns a dst length guaranteed
// to hold the output of one encode call over n further UTF-16 code units,
// provided no numeric character references are written.
func (e *Encoder) MaxBufferLengthFromUTF16WithoutReplacement(n int) int {
	return e.inner.maxFromUTF16(n)
}

// MaxBufferLengthFromUTF16IfNoUnmappables is the same bound for the
// replacing calls; it holds whenever the input has no unmappable characters.
func (e *Encoder) MaxBufferLengthFromUTF16IfNoUnmappables(n int) int {
	return e.inner.maxFromUTF16(n)
}
