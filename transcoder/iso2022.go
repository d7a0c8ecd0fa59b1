package transcoder

import (
	"github.com/wippyai/textcodec/transcoder/internal/tables"
)

type iso2022Mode int

const (
	modeASCII iso2022Mode = iota
	modeRoman
	modeKatakana
	modeLead
)

// iso2022JPDecoder tracks the shift state selected by escape sequences. The
// output flag catches back-to-back escapes, which the standard treats as an
// error so that escape sequences cannot smuggle state past a validator.
type iso2022JPDecoder struct {
	mode    iso2022Mode
	escSeen int  // 0 none, 1 after ESC, 2 after ESC $ or ESC (
	escByte byte // intermediate byte when escSeen is 2
	lead    byte
	outFlag bool
}

func (d *iso2022JPDecoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		if consumed == len(src) {
			if last {
				switch {
				case d.escSeen == 2:
					eb := d.escByte
					d.escSeen = 0
					d.outFlag = false
					return malformedRestore(consumed, []byte{0x1B}, []byte{eb})
				case d.escSeen == 1:
					d.escSeen = 0
					return malformed(consumed, 0x1B)
				case d.lead != 0:
					lead := d.lead
					d.lead = 0
					return malformed(consumed, lead)
				}
			}
			return needMore(consumed)
		}
		b := src[consumed]

		if d.escSeen == 1 {
			if b == 0x24 || b == 0x28 {
				d.escByte = b
				d.escSeen = 2
				consumed++
				continue
			}
			// b is reprocessed in the current mode
			d.escSeen = 0
			d.outFlag = false
			return malformed(consumed, 0x1B)
		}
		if d.escSeen == 2 {
			var mode iso2022Mode
			ok := true
			switch {
			case d.escByte == 0x28 && b == 0x42:
				mode = modeASCII
			case d.escByte == 0x28 && b == 0x4A:
				mode = modeRoman
			case d.escByte == 0x28 && b == 0x49:
				mode = modeKatakana
			case d.escByte == 0x24 && (b == 0x40 || b == 0x42):
				mode = modeLead
			default:
				ok = false
			}
			eb := d.escByte
			d.escSeen = 0
			if !ok {
				// the intermediate byte and b re-decode in the current mode
				d.outFlag = false
				return malformedRestore(consumed, []byte{0x1B}, []byte{eb})
			}
			consumed++
			d.mode = mode
			doubled := d.outFlag
			d.outFlag = true
			if doubled {
				return malformed(consumed, 0x1B, eb, b)
			}
			continue
		}

		if d.mode == modeLead && d.lead != 0 {
			lead := d.lead
			d.lead = 0
			if b == 0x1B {
				d.escSeen = 1
				consumed++
				return malformed(consumed, lead)
			}
			consumed++
			if b >= 0x21 && b <= 0x7E {
				if r, ok := tables.JIS0208Decode(lead, b); ok {
					d.outFlag = false
					return yieldRune(r, consumed)
				}
			}
			return malformed(consumed, lead, b)
		}

		if b == 0x1B {
			d.escSeen = 1
			consumed++
			continue
		}
		consumed++
		switch d.mode {
		case modeASCII:
			d.outFlag = false
			if b <= 0x7F && b != 0x0E && b != 0x0F {
				return yieldRune(rune(b), consumed)
			}
			return malformed(consumed, b)
		case modeRoman:
			d.outFlag = false
			switch {
			case b == 0x5C:
				return yieldRune(0x00A5, consumed)
			case b == 0x7E:
				return yieldRune(0x203E, consumed)
			case b <= 0x7F && b != 0x0E && b != 0x0F:
				return yieldRune(rune(b), consumed)
			}
			return malformed(consumed, b)
		case modeKatakana:
			d.outFlag = false
			if b >= 0x21 && b <= 0x5F {
				return yieldRune(0xFF61+rune(b)-0x21, consumed)
			}
			return malformed(consumed, b)
		default: // lead state, no lead buffered
			d.outFlag = false
			if b >= 0x21 && b <= 0x7E {
				d.lead = b
				continue
			}
			return malformed(consumed, b)
		}
	}
}

func (d *iso2022JPDecoder) pending() int {
	n := d.escSeen
	if d.lead != 0 {
		n++
	}
	return n
}

func (d *iso2022JPDecoder) maxUTF16(n int) int     { return n + d.pending() + 1 }
func (d *iso2022JPDecoder) maxUTF8(n int) int      { return 3*(n+d.pending()) + 3 }
func (d *iso2022JPDecoder) maxUTF8NoRep(n int) int { return 3*(n+d.pending()) + 3 }

type isoEncMode int

const (
	encModeASCII isoEncMode = iota
	encModeRoman
	encModeJIS
)

// iso2022JPEncoder is the one stateful encoder: it tracks which shift state
// the output stream is in and emits escape sequences on transitions. finish
// returns the stream to ASCII so the output is self-delimiting.
type iso2022JPEncoder struct {
	mode isoEncMode
}

// The shift-out, shift-in and escape controls cannot appear in the output
// stream; they decode as errors, so encoding them would not round-trip.
func (e *iso2022JPEncoder) sanitize(r rune) rune {
	if r == 0x0E || r == 0x0F || r == 0x1B {
		return 0xFFFD
	}
	return r
}

func (e *iso2022JPEncoder) encode(r rune, dst []byte) (int, encResult) {
	switch {
	case r <= 0x7F:
		n := 0
		if e.mode != encModeASCII {
			if len(dst) < 4 {
				return 0, encFull
			}
			dst[0], dst[1], dst[2] = 0x1B, 0x28, 0x42
			e.mode = encModeASCII
			n = 3
		}
		if len(dst) < n+1 {
			return 0, encFull
		}
		dst[n] = byte(r)
		return n + 1, encOK
	case r == 0x00A5 || r == 0x203E:
		n := 0
		if e.mode != encModeRoman {
			if len(dst) < 4 {
				return 0, encFull
			}
			dst[0], dst[1], dst[2] = 0x1B, 0x28, 0x4A
			e.mode = encModeRoman
			n = 3
		}
		if len(dst) < n+1 {
			return 0, encFull
		}
		if r == 0x00A5 {
			dst[n] = 0x5C
		} else {
			dst[n] = 0x7E
		}
		return n + 1, encOK
	}
	r = tables.FullwidthKatakana(r)
	if r == 0x2212 {
		r = 0xFF0D
	}
	lead, trail, ok := tables.JIS0208Encode(r)
	if !ok {
		return 0, encUnmappable
	}
	n := 0
	if e.mode != encModeJIS {
		if len(dst) < 5 {
			return 0, encFull
		}
		dst[0], dst[1], dst[2] = 0x1B, 0x24, 0x42
		e.mode = encModeJIS
		n = 3
	}
	if len(dst) < n+2 {
		return 0, encFull
	}
	dst[n], dst[n+1] = lead, trail
	return n + 2, encOK
}

func (e *iso2022JPEncoder) finish(dst []byte) (int, encResult) {
	if e.mode == encModeASCII {
		return 0, encOK
	}
	if len(dst) < 3 {
		return 0, encFull
	}
	dst[0], dst[1], dst[2] = 0x1B, 0x28, 0x42
	e.mode = encModeASCII
	return 3, encOK
}

func (e *iso2022JPEncoder) asciiOverhead() int { return 3 }

func (e *iso2022JPEncoder) maxFromUTF8(n int) int { return 4*n + 4 }

func (e *iso2022JPEncoder) maxFromUTF16(n int) int { return 5*n + 4 }
