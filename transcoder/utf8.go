package transcoder

import (
	"unicode/utf8"
)

// utf8Decoder is the incremental UTF-8 state machine. It tracks the bytes of
// the sequence in progress so a malformed result can report the exact
// offending prefix, and restarts at the byte that rejected the sequence
// rather than consuming it.
type utf8Decoder struct {
	needed int // continuation bytes still expected
	seen   int
	cp     rune
	lower  byte // bounds for the next continuation byte
	upper  byte
	raw    [4]byte
	rawLen int
}

func (d *utf8Decoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last && d.needed != 0 {
				seq := append([]byte(nil), d.raw[:d.rawLen]...)
				d.reset()
				return malformed(consumed, seq...)
			}
			return needMore(consumed)
		}
		b := src[consumed]
		if d.needed == 0 {
			switch {
			case b <= 0x7F:
				return yieldRune(rune(b), consumed+1)
			case b >= 0xC2 && b <= 0xDF:
				d.needed, d.cp = 1, rune(b&0x1F)
			case b >= 0xE0 && b <= 0xEF:
				if b == 0xE0 {
					d.lower = 0xA0
				}
				if b == 0xED {
					d.upper = 0x9F
				}
				d.needed, d.cp = 2, rune(b&0x0F)
			case b >= 0xF0 && b <= 0xF4:
				if b == 0xF0 {
					d.lower = 0x90
				}
				if b == 0xF4 {
					d.upper = 0x8F
				}
				d.needed, d.cp = 3, rune(b&0x07)
			default:
				return malformed(consumed+1, b)
			}
			if d.lower == 0 {
				d.lower = 0x80
			}
			if d.upper == 0 {
				d.upper = 0xBF
			}
			d.raw[0], d.rawLen = b, 1
			consumed++
			continue
		}
		if b < d.lower || b > d.upper {
			// the offending byte may start a valid sequence; leave it in src
			seq := append([]byte(nil), d.raw[:d.rawLen]...)
			d.reset()
			return malformed(consumed, seq...)
		}
		d.lower, d.upper = 0x80, 0xBF
		d.cp = d.cp<<6 | rune(b&0x3F)
		d.raw[d.rawLen] = b
		d.rawLen++
		d.seen++
		consumed++
		if d.seen == d.needed {
			r := d.cp
			d.reset()
			return yieldRune(r, consumed)
		}
	}
}

func (d *utf8Decoder) reset() {
	d.needed, d.seen, d.cp, d.rawLen = 0, 0, 0, 0
	d.lower, d.upper = 0, 0
}

func (d *utf8Decoder) pending() int { return d.rawLen }

func (d *utf8Decoder) maxUTF16(n int) int {
	return n + d.pending() + 1
}

func (d *utf8Decoder) maxUTF8(n int) int {
	// worst case: every byte is its own malformed sequence
	return 3 * (n + d.pending() + 1)
}

func (d *utf8Decoder) maxUTF8NoRep(n int) int {
	return n + d.pending() + 3
}

// utf8Encoder writes UTF-8 output. It exists so that an Encoder bound to
// UTF-8 goes through the same protocol as every other output encoding; it
// can never report an unmappable character.
type utf8Encoder struct {
	statelessEncoder
}

func (utf8Encoder) encode(r rune, dst []byte) (int, encResult) {
	size := utf8.RuneLen(r)
	if len(dst) < size {
		return 0, encFull
	}
	return utf8.EncodeRune(dst, r), encOK
}

func (utf8Encoder) maxFromUTF8(n int) int  { return n }
func (utf8Encoder) maxFromUTF16(n int) int { return 3 * n }
