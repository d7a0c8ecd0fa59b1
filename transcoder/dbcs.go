package transcoder

import (
	"unicode/utf8"

	"github.com/wippyai/textcodec/transcoder/internal/tables"
)

// The legacy CJK decoders share one shape: a lead byte (or several, for
// gb18030) is buffered across calls, the trail byte selects a table entry,
// and a trail byte that could begin a new sequence is left unconsumed when
// the sequence it terminated turns out malformed.

func yieldText(s string, consumed int) nextResult {
	r, size := utf8.DecodeRuneInString(s)
	if size == len(s) {
		return yieldRune(r, consumed)
	}
	r2, _ := utf8.DecodeRuneInString(s[size:])
	return yieldPair(r, r2, consumed)
}

type shiftJISDecoder struct {
	lead byte
}

func (d *shiftJISDecoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.lead != 0 {
				lead := d.lead
				d.lead = 0
				return malformed(consumed, lead)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		if d.lead == 0 {
			switch {
			case b <= 0x80:
				return yieldRune(rune(b), consumed+1)
			case b >= 0xA1 && b <= 0xDF:
				return yieldRune(0xFF61+rune(b)-0xA1, consumed+1)
			case b >= 0x81 && b <= 0x9F || b >= 0xE0 && b <= 0xFC:
				d.lead = b
				consumed++
			default:
				return malformed(consumed+1, b)
			}
			continue
		}
		lead := d.lead
		d.lead = 0
		if b >= 0x40 && b <= 0x7E || b >= 0x80 && b <= 0xFC {
			if s, ok := tables.ShiftJIS().DecodePair(lead, b); ok {
				return yieldText(s, consumed+1)
			}
			if b <= 0x7F {
				// unmapped pair with an ASCII trail: the trail survives
				return malformed(consumed, lead)
			}
			return malformed(consumed+1, lead, b)
		}
		return malformed(consumed, lead)
	}
}

func (d *shiftJISDecoder) pending() int {
	if d.lead != 0 {
		return 1
	}
	return 0
}

func (d *shiftJISDecoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *shiftJISDecoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *shiftJISDecoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

type eucJPDecoder struct {
	lead   byte
	second byte // trails a 0x8F lead
}

func (d *eucJPDecoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.lead != 0 {
				seq := []byte{d.lead}
				if d.second != 0 {
					seq = append(seq, d.second)
				}
				d.lead, d.second = 0, 0
				return malformed(consumed, seq...)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		switch {
		case d.lead == 0:
			switch {
			case b <= 0x7F:
				return yieldRune(rune(b), consumed+1)
			case b == 0x8E || b == 0x8F || b >= 0xA1 && b <= 0xFE:
				d.lead = b
				consumed++
			default:
				return malformed(consumed+1, b)
			}
		case d.lead == 0x8E:
			d.lead = 0
			if b >= 0xA1 && b <= 0xDF {
				return yieldRune(0xFF61+rune(b)-0xA1, consumed+1)
			}
			if b <= 0x7F {
				return malformed(consumed, 0x8E)
			}
			return malformed(consumed+1, 0x8E, b)
		case d.lead == 0x8F && d.second == 0:
			if b >= 0xA1 && b <= 0xFE {
				d.second = b
				consumed++
				continue
			}
			d.lead = 0
			if b <= 0x7F {
				return malformed(consumed, 0x8F)
			}
			return malformed(consumed+1, 0x8F, b)
		case d.lead == 0x8F:
			second := d.second
			d.lead, d.second = 0, 0
			if b >= 0xA1 && b <= 0xFE {
				if r, ok := tables.EUCJP0212Decode(second, b); ok {
					return yieldRune(r, consumed+1)
				}
				return malformed(consumed+1, 0x8F, second, b)
			}
			if b <= 0x7F {
				return malformed(consumed, 0x8F, second)
			}
			return malformed(consumed+1, 0x8F, second, b)
		default:
			lead := d.lead
			d.lead = 0
			if b >= 0xA1 && b <= 0xFE {
				if s, ok := tables.EUCJP().DecodePair(lead, b); ok {
					return yieldText(s, consumed+1)
				}
				return malformed(consumed+1, lead, b)
			}
			if b <= 0x7F {
				return malformed(consumed, lead)
			}
			return malformed(consumed+1, lead, b)
		}
	}
}

func (d *eucJPDecoder) pending() int {
	n := 0
	if d.lead != 0 {
		n++
	}
	if d.second != 0 {
		n++
	}
	return n
}

func (d *eucJPDecoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *eucJPDecoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *eucJPDecoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

type eucKRDecoder struct {
	lead byte
}

func (d *eucKRDecoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.lead != 0 {
				lead := d.lead
				d.lead = 0
				return malformed(consumed, lead)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		if d.lead == 0 {
			switch {
			case b <= 0x7F:
				return yieldRune(rune(b), consumed+1)
			case b >= 0x81 && b <= 0xFE:
				d.lead = b
				consumed++
			default:
				return malformed(consumed+1, b)
			}
			continue
		}
		lead := d.lead
		d.lead = 0
		if b >= 0x41 && b <= 0xFE {
			if s, ok := tables.EUCKR().DecodePair(lead, b); ok {
				return yieldText(s, consumed+1)
			}
			if b <= 0x7F {
				return malformed(consumed, lead)
			}
			return malformed(consumed+1, lead, b)
		}
		return malformed(consumed, lead)
	}
}

func (d *eucKRDecoder) pending() int {
	if d.lead != 0 {
		return 1
	}
	return 0
}

func (d *eucKRDecoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *eucKRDecoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *eucKRDecoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

type big5Decoder struct {
	lead byte
}

func (d *big5Decoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.lead != 0 {
				lead := d.lead
				d.lead = 0
				return malformed(consumed, lead)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		if d.lead == 0 {
			switch {
			case b <= 0x7F:
				return yieldRune(rune(b), consumed+1)
			case b >= 0x81 && b <= 0xFE:
				d.lead = b
				consumed++
			default:
				return malformed(consumed+1, b)
			}
			continue
		}
		lead := d.lead
		d.lead = 0
		if b >= 0x40 && b <= 0x7E || b >= 0xA1 && b <= 0xFE {
			if s, ok := tables.Big5().DecodePair(lead, b); ok {
				return yieldText(s, consumed+1)
			}
			if b <= 0x7F {
				return malformed(consumed, lead)
			}
			return malformed(consumed+1, lead, b)
		}
		return malformed(consumed, lead)
	}
}

func (d *big5Decoder) pending() int {
	if d.lead != 0 {
		return 1
	}
	return 0
}

func (d *big5Decoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *big5Decoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *big5Decoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

// gbDecoder serves both GBK and gb18030, which share a decoder. Up to three
// bytes of a four-byte sequence may be buffered across calls.
type gbDecoder struct {
	b1, b2, b3 byte
}

func (d *gbDecoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.b1 != 0 {
				seq := []byte{d.b1}
				if d.b2 != 0 {
					seq = append(seq, d.b2)
				}
				if d.b3 != 0 {
					seq = append(seq, d.b3)
				}
				d.b1, d.b2, d.b3 = 0, 0, 0
				return malformed(consumed, seq...)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		switch {
		case d.b1 == 0:
			switch {
			case b <= 0x7F:
				return yieldRune(rune(b), consumed+1)
			case b >= 0x81 && b <= 0xFE:
				d.b1 = b
				consumed++
			default:
				return malformed(consumed+1, b)
			}
		case d.b2 == 0:
			switch {
			case b >= 0x30 && b <= 0x39:
				d.b2 = b
				consumed++
			case b >= 0x40 && b <= 0x7E || b >= 0x80 && b <= 0xFE:
				b1 := d.b1
				d.b1 = 0
				if s, ok := tables.GB().DecodePair(b1, b); ok {
					return yieldText(s, consumed+1)
				}
				if b <= 0x7F {
					return malformed(consumed, b1)
				}
				return malformed(consumed+1, b1, b)
			default:
				b1 := d.b1
				d.b1 = 0
				if b <= 0x7F {
					return malformed(consumed, b1)
				}
				return malformed(consumed+1, b1, b)
			}
		case d.b3 == 0:
			if b >= 0x81 && b <= 0xFE {
				d.b3 = b
				consumed++
				continue
			}
			// the digit re-decodes as ASCII and b is reprocessed
			b1, b2 := d.b1, d.b2
			d.b1, d.b2 = 0, 0
			return malformedRestore(consumed, []byte{b1}, []byte{b2})
		default:
			b1, b2, b3 := d.b1, d.b2, d.b3
			d.b1, d.b2, d.b3 = 0, 0, 0
			if b >= 0x30 && b <= 0x39 {
				if r, ok := tables.GB18030DecodeQuad(b1, b2, b3, b); ok {
					return yieldRune(r, consumed+1)
				}
				return malformed(consumed+1, b1, b2, b3, b)
			}
			return malformedRestore(consumed, []byte{b1}, []byte{b2, b3})
		}
	}
}

func (d *gbDecoder) pending() int {
	n := 0
	if d.b1 != 0 {
		n++
	}
	if d.b2 != 0 {
		n++
	}
	if d.b3 != 0 {
		n++
	}
	return n
}

func (d *gbDecoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *gbDecoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *gbDecoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

type shiftJISEncoder struct {
	statelessEncoder
}

func (shiftJISEncoder) encode(r rune, dst []byte) (int, encResult) {
	switch {
	case r <= 0x80:
		return putByte(dst, byte(r))
	case r == 0x00A5:
		return putByte(dst, 0x5C)
	case r == 0x203E:
		return putByte(dst, 0x7E)
	case r >= 0xFF61 && r <= 0xFF9F:
		return putByte(dst, 0xA1+byte(r-0xFF61))
	}
	if r == 0x2212 {
		r = 0xFF0D
	}
	lead, trail, ok := tables.ShiftJIS().EncodeRune(r)
	if !ok {
		return 0, encUnmappable
	}
	return putPair(dst, lead, trail)
}

func (shiftJISEncoder) maxFromUTF8(n int) int  { return n }
func (shiftJISEncoder) maxFromUTF16(n int) int { return 2 * n }

type eucJPEncoder struct {
	statelessEncoder
}

func (eucJPEncoder) encode(r rune, dst []byte) (int, encResult) {
	switch {
	case r <= 0x7F:
		return putByte(dst, byte(r))
	case r == 0x00A5:
		return putByte(dst, 0x5C)
	case r == 0x203E:
		return putByte(dst, 0x7E)
	case r >= 0xFF61 && r <= 0xFF9F:
		return putPair(dst, 0x8E, 0xA1+byte(r-0xFF61))
	}
	if r == 0x2212 {
		r = 0xFF0D
	}
	lead, trail, ok := tables.EUCJP().EncodeRune(r)
	if !ok {
		return 0, encUnmappable
	}
	return putPair(dst, lead, trail)
}

func (eucJPEncoder) maxFromUTF8(n int) int  { return n }
func (eucJPEncoder) maxFromUTF16(n int) int { return 2 * n }

type eucKREncoder struct {
	statelessEncoder
}

func (eucKREncoder) encode(r rune, dst []byte) (int, encResult) {
	if r <= 0x7F {
		return putByte(dst, byte(r))
	}
	lead, trail, ok := tables.EUCKR().EncodeRune(r)
	if !ok {
		return 0, encUnmappable
	}
	return putPair(dst, lead, trail)
}

func (eucKREncoder) maxFromUTF8(n int) int  { return n }
func (eucKREncoder) maxFromUTF16(n int) int { return 2 * n }

type big5Encoder struct {
	statelessEncoder
}

func (big5Encoder) encode(r rune, dst []byte) (int, encResult) {
	if r <= 0x7F {
		return putByte(dst, byte(r))
	}
	lead, trail, ok := tables.Big5().EncodeRune(r)
	if !ok {
		return 0, encUnmappable
	}
	return putPair(dst, lead, trail)
}

func (big5Encoder) maxFromUTF8(n int) int  { return n }
func (big5Encoder) maxFromUTF16(n int) int { return 2 * n }

// gbkEncoder serves both GBK and gb18030 output; only the latter may fall
// back to four-byte sequences.
type gbkEncoder struct {
	statelessEncoder
	fourByte bool
}

func (e *gbkEncoder) encode(r rune, dst []byte) (int, encResult) {
	if r <= 0x7F {
		return putByte(dst, byte(r))
	}
	// U+E5E5 round-trips through the index but is excluded from encoding
	if r == 0xE5E5 {
		return 0, encUnmappable
	}
	if !e.fourByte && r == 0x20AC {
		return putByte(dst, 0x80)
	}
	if lead, trail, ok := tables.GB().EncodeRune(r); ok {
		return putPair(dst, lead, trail)
	}
	if !e.fourByte {
		return 0, encUnmappable
	}
	seq, ok := tables.GB18030Encode(r)
	if !ok {
		return 0, encUnmappable
	}
	if len(dst) < len(seq) {
		return 0, encFull
	}
	return copy(dst, seq), encOK
}

func (e *gbkEncoder) maxFromUTF8(n int) int {
	if e.fourByte {
		return 2 * n
	}
	return n
}

func (e *gbkEncoder) maxFromUTF16(n int) int {
	if e.fourByte {
		return 4 * n
	}
	return 2 * n
}

func putByte(dst []byte, b byte) (int, encResult) {
	if len(dst) < 1 {
		return 0, encFull
	}
	dst[0] = b
	return 1, encOK
}

func putPair(dst []byte, lead, trail byte) (int, encResult) {
	if len(dst) < 2 {
		return 0, encFull
	}
	dst[0], dst[1] = lead, trail
	return 2, encOK
}
