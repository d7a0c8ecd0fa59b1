package transcoder

// utf16Decoder decodes UTF-16LE/BE byte streams. State spans three layers:
// an odd byte waiting for its partner, a pending lead surrogate, and a
// complete unit held back for reprocessing after a lone lead surrogate.
type utf16Decoder struct {
	bigEndian bool
	haveByte  bool
	byteVal   byte
	haveLead  bool
	lead      uint16
	haveUnit  bool // unit already consumed from src, waiting to be re-examined
	unit      uint16
}

func (d *utf16Decoder) next(src []byte, last bool) nextResult {
	consumed := 0
	for {
		var u uint16
		switch {
		case d.haveUnit:
			u = d.unit
			d.haveUnit = false
		default:
			// assemble a unit from the pending odd byte and/or src
			if !d.haveByte {
				if consumed == len(src) {
					return d.flush(consumed, last)
				}
				d.byteVal = src[consumed]
				d.haveByte = true
				consumed++
			}
			if consumed == len(src) {
				return d.flush(consumed, last)
			}
			b2 := src[consumed]
			consumed++
			d.haveByte = false
			if d.bigEndian {
				u = uint16(d.byteVal)<<8 | uint16(b2)
			} else {
				u = uint16(b2)<<8 | uint16(d.byteVal)
			}
		}

		switch {
		case u >= 0xDC00 && u <= 0xDFFF:
			if d.haveLead {
				lead := d.lead
				d.haveLead = false
				r := 0x10000 + (rune(lead)-0xD800)<<10 + (rune(u) - 0xDC00)
				return yieldRune(r, consumed)
			}
			return malformed(consumed, d.unitBytes(u)...)
		case u >= 0xD800 && u <= 0xDBFF:
			if d.haveLead {
				// lone lead; reprocess u on the next pass
				seq := d.unitBytes(d.lead)
				d.lead = u
				return malformed(consumed, seq...)
			}
			d.haveLead = true
			d.lead = u
		default:
			if d.haveLead {
				d.haveLead = false
				d.haveUnit = true
				d.unit = u
				return malformed(consumed, d.unitBytes(d.lead)...)
			}
			return yieldRune(rune(u), consumed)
		}
	}
}

// flush handles end-of-input: pending state becomes malformed when last is
// set, one sequence per call.
func (d *utf16Decoder) flush(consumed int, last bool) nextResult {
	if !last {
		return needMore(consumed)
	}
	if d.haveLead {
		d.haveLead = false
		return malformed(consumed, d.unitBytes(d.lead)...)
	}
	if d.haveByte {
		d.haveByte = false
		return malformed(consumed, d.byteVal)
	}
	return needMore(consumed)
}

func (d *utf16Decoder) unitBytes(u uint16) []byte {
	if d.bigEndian {
		return []byte{byte(u >> 8), byte(u)}
	}
	return []byte{byte(u), byte(u >> 8)}
}

func (d *utf16Decoder) pending() int {
	n := 0
	if d.haveByte {
		n++
	}
	if d.haveLead {
		n += 2
	}
	if d.haveUnit {
		n += 2
	}
	return n
}

func (d *utf16Decoder) maxUTF16(n int) int {
	return (n+d.pending())/2 + 2
}

func (d *utf16Decoder) maxUTF8(n int) int {
	// one scalar of up to three UTF-8 bytes per two input bytes
	return 3*((n+d.pending())/2) + 6
}

func (d *utf16Decoder) maxUTF8NoRep(n int) int {
	return d.maxUTF8(n)
}
