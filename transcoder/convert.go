package transcoder

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/textcodec/charset"
	"github.com/wippyai/textcodec/errors"
)

// The single-shot layer wraps the incremental Decoder/Encoder for callers
// with the whole stream in hand. Decoding allocates an output buffer sized
// by the worst-case query, so one call always suffices; encoding grows its
// buffer geometrically because unmappables can expand without bound.

// Decode decodes src to a string, honoring a leading byte order mark over
// the fallback encoding e. It returns the decoded text, the encoding
// actually used and whether any malformed sequence was replaced.
func Decode(e *charset.Encoding, src []byte) (string, *charset.Encoding, bool) {
	if detected, size := charset.ForBOM(src); detected != nil {
		s, hadErrors := DecodeWithoutBOMHandling(detected, src[size:])
		return s, detected, hadErrors
	}
	s, hadErrors := DecodeWithoutBOMHandling(e, src)
	return s, e, hadErrors
}

// DecodeWithBOMRemoval decodes src as e, stripping a leading byte order
// mark only when it matches e.
func DecodeWithBOMRemoval(e *charset.Encoding, src []byte) (string, bool) {
	var bom []byte
	switch e {
	case charset.UTF8:
		bom = []byte{0xEF, 0xBB, 0xBF}
	case charset.UTF16LE:
		bom = []byte{0xFF, 0xFE}
	case charset.UTF16BE:
		bom = []byte{0xFE, 0xFF}
	}
	if bom != nil && bytes.HasPrefix(src, bom) {
		src = src[len(bom):]
	}
	return DecodeWithoutBOMHandling(e, src)
}

// DecodeWithoutBOMHandling decodes src as e, treating any byte order mark
// as content.
func DecodeWithoutBOMHandling(e *charset.Encoding, src []byte) (string, bool) {
	d := NewDecoderWithoutBOMHandling(e)
	dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
	status, read, written, hadErrors := d.DecodeToUTF8(src, dst, true)
	if status != InputEmpty || read != len(src) {
		panic("transcoder: worst-case buffer did not hold a single-shot decode")
	}
	return string(dst[:written]), hadErrors
}

// DecodeWithoutBOMHandlingAndWithoutReplacement decodes src as e, failing
// on the first malformed sequence instead of replacing it.
func DecodeWithoutBOMHandlingAndWithoutReplacement(e *charset.Encoding, src []byte) (string, error) {
	d := NewDecoderWithoutBOMHandling(e)
	dst := make([]byte, d.MaxUTF8BufferLengthWithoutReplacement(len(src)))
	status, read, written := d.DecodeToUTF8WithoutReplacement(src, dst, true)
	switch status {
	case InputEmpty:
		return string(dst[:written]), nil
	case Malformed:
		seq := d.Malformed()
		return "", errors.MalformedSequence(e.Name(), read-len(seq), seq)
	}
	panic("transcoder: worst-case buffer did not hold a single-shot decode")
}

// Encode encodes s into e's output encoding, writing unmappable characters
// as numeric character references. It returns the encoded bytes, the
// encoding they are in (UTF-8 when e is UTF-16LE, UTF-16BE or replacement, e
// itself otherwise) and whether any unmappable was replaced. Invalid UTF-8
// in s is treated as U+FFFD.
func Encode(e *charset.Encoding, s string) ([]byte, *charset.Encoding, bool) {
	out := e.OutputEncoding()
	if out == charset.UTF8 {
		if !utf8.ValidString(s) {
			s = strings.ToValidUTF8(s, "�")
		}
		return []byte(s), out, false
	}
	enc := NewEncoder(out)
	dst := make([]byte, enc.MaxBufferLengthFromUTF8IfNoUnmappables(len(s)))
	src := []byte(s)
	read, written := 0, 0
	hadErrors := false
	for {
		status, r, w, replaced := enc.EncodeFromUTF8(src[read:], dst[written:], true)
		read += r
		written += w
		hadErrors = hadErrors || replaced
		switch status {
		case InputEmpty:
			return dst[:written], out, hadErrors
		case OutputFull:
			grown := make([]byte, len(dst)*2+16)
			copy(grown, dst[:written])
			dst = grown
		}
	}
}
