package transcoder

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// singleByteDecoder covers every single-byte encoding through its charmap
// table. Bytes below 0x80 are passed through directly; x-user-defined and the
// ISO/windows family differ only in the table.
type singleByteDecoder struct {
	table *charmap.Charmap
}

func (d *singleByteDecoder) next(src []byte, last bool) nextResult {
	if len(src) == 0 {
		return needMore(0)
	}
	b := src[0]
	if b < 0x80 {
		return yieldRune(rune(b), 1)
	}
	r := d.table.DecodeByte(b)
	if r == utf8.RuneError {
		return malformed(1, b)
	}
	return yieldRune(r, 1)
}

func (d *singleByteDecoder) pending() int { return 0 }

func (d *singleByteDecoder) maxUTF16(n int) int { return n + 1 }

func (d *singleByteDecoder) maxUTF8(n int) int { return 3*n + 3 }

func (d *singleByteDecoder) maxUTF8NoRep(n int) int { return 3*n + 3 }

type singleByteEncoder struct {
	statelessEncoder
	table *charmap.Charmap
}

func (e *singleByteEncoder) encode(r rune, dst []byte) (int, encResult) {
	if r < 0x80 {
		if len(dst) < 1 {
			return 0, encFull
		}
		dst[0] = byte(r)
		return 1, encOK
	}
	b, ok := e.table.EncodeRune(r)
	if !ok {
		return 0, encUnmappable
	}
	if len(dst) < 1 {
		return 0, encFull
	}
	dst[0] = b
	return 1, encOK
}

func (e *singleByteEncoder) maxFromUTF8(n int) int { return n }

func (e *singleByteEncoder) maxFromUTF16(n int) int { return n }
