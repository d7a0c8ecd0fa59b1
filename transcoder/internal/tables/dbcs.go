package tables

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/wippyai/textcodec/errors"
)

// DBCS is a derived two-byte codec table. DecodePair maps a lead/trail byte
// pair to its decoded text (one scalar value, or two for the handful of Big5
// doublet entries); EncodeRune is the inversion, restricted to single-scalar
// mappings.
type DBCS struct {
	decode map[uint16]string
	encode map[rune]uint16
}

// DecodePair returns the decoded text for the pair, if the pair is mapped.
func (t *DBCS) DecodePair(lead, trail byte) (string, bool) {
	s, ok := t.decode[uint16(lead)<<8|uint16(trail)]
	return s, ok
}

// EncodeRune returns the byte pair encoding r, if r is mapped.
func (t *DBCS) EncodeRune(r rune) (lead, trail byte, ok bool) {
	p, ok := t.encode[r]
	if !ok {
		return 0, 0, false
	}
	return byte(p >> 8), byte(p), true
}

type span struct {
	lo, hi byte
}

// derive builds a DBCS table by probing dec over every lead/trail pair.
// A probe whose output is empty or contains U+FFFD is unmapped: no legacy
// two-byte encoding maps a pair to the replacement character itself.
// Pairs are probed in ascending order and the first pair wins on encode,
// matching the Encoding Standard's lowest-pointer preference. Pairs with a
// lead below encodeLeadMin decode but do not encode (the Big5 HKSCS region).
func derive(name string, dec *encoding.Decoder, leads, trails []span, encodeLeadMin byte) *DBCS {
	start := time.Now()
	t := &DBCS{
		decode: make(map[uint16]string),
		encode: make(map[rune]uint16),
	}
	buf := make([]byte, 2)
	for _, ls := range leads {
		for l := int(ls.lo); l <= int(ls.hi); l++ {
			for _, ts := range trails {
				for tr := int(ts.lo); tr <= int(ts.hi); tr++ {
					buf[0], buf[1] = byte(l), byte(tr)
					out, err := dec.Bytes(buf)
					if err != nil || len(out) == 0 {
						continue
					}
					s := string(out)
					if strings.ContainsRune(s, utf8.RuneError) {
						continue
					}
					key := uint16(l)<<8 | uint16(tr)
					t.decode[key] = s
					if r, size := utf8.DecodeRuneInString(s); size == len(s) && byte(l) >= encodeLeadMin {
						if _, dup := t.encode[r]; !dup {
							t.encode[r] = key
						}
					}
				}
			}
		}
	}
	if len(t.decode) == 0 {
		panic(errors.NotDerived(name, nil))
	}
	Logger().Debug("derived codec table",
		zap.String("encoding", name),
		zap.Int("pairs", len(t.decode)),
		zap.Duration("elapsed", time.Since(start)))
	return t
}

var (
	shiftJISOnce sync.Once
	shiftJIS     *DBCS

	eucJPOnce    sync.Once
	eucJP        *DBCS
	eucJP0212Tab map[uint16]rune

	eucKROnce sync.Once
	eucKR     *DBCS

	gbOnce sync.Once
	gb     *DBCS

	big5Once sync.Once
	big5     *DBCS
)

// ShiftJIS returns the Shift_JIS two-byte table.
func ShiftJIS() *DBCS {
	shiftJISOnce.Do(func() {
		shiftJIS = derive("Shift_JIS", japanese.ShiftJIS.NewDecoder(),
			[]span{{0x81, 0x9F}, {0xE0, 0xFC}},
			[]span{{0x40, 0x7E}, {0x80, 0xFC}}, 0)
	})
	return shiftJIS
}

// EUCJP returns the EUC-JP JIS X 0208 two-byte table.
func EUCJP() *DBCS {
	eucJPOnce.Do(deriveEUCJP)
	return eucJP
}

// EUCJP0212Decode resolves a JIS X 0212 pair (the bytes following a 0x8F
// lead in EUC-JP). The 0212 repertoire is decode-only, as the standard's
// EUC-JP encoder never emits it.
func EUCJP0212Decode(lead, trail byte) (rune, bool) {
	eucJPOnce.Do(deriveEUCJP)
	r, ok := eucJP0212Tab[uint16(lead)<<8|uint16(trail)]
	return r, ok
}

func deriveEUCJP() {
	eucJP = derive("EUC-JP", japanese.EUCJP.NewDecoder(),
		[]span{{0xA1, 0xFE}},
		[]span{{0xA1, 0xFE}}, 0)

	start := time.Now()
	eucJP0212Tab = make(map[uint16]rune)
	dec := japanese.EUCJP.NewDecoder()
	buf := make([]byte, 3)
	for l := 0xA1; l <= 0xFE; l++ {
		for tr := 0xA1; tr <= 0xFE; tr++ {
			buf[0], buf[1], buf[2] = 0x8F, byte(l), byte(tr)
			out, err := dec.Bytes(buf)
			if err != nil {
				continue
			}
			if r, size := utf8.DecodeRune(out); size == len(out) && r != utf8.RuneError {
				eucJP0212Tab[uint16(l)<<8|uint16(tr)] = r
			}
		}
	}
	Logger().Debug("derived codec table",
		zap.String("encoding", "EUC-JP/0212"),
		zap.Int("pairs", len(eucJP0212Tab)),
		zap.Duration("elapsed", time.Since(start)))
}

// EUCKR returns the EUC-KR (UHC) two-byte table.
func EUCKR() *DBCS {
	eucKROnce.Do(func() {
		eucKR = derive("EUC-KR", korean.EUCKR.NewDecoder(),
			[]span{{0x81, 0xFE}},
			[]span{{0x41, 0xFE}}, 0)
	})
	return eucKR
}

// GB returns the gb18030 two-byte table, shared by the GBK and gb18030
// state machines (the standard gives them the same decoder).
func GB() *DBCS {
	gbOnce.Do(func() {
		gb = derive("gb18030", simplifiedchinese.GB18030.NewDecoder(),
			[]span{{0x81, 0xFE}},
			[]span{{0x40, 0x7E}, {0x80, 0xFE}}, 0)
	})
	return gb
}

// big5PreferLast holds the code points that are indexed twice within the
// encodable region with the symbol-area pair first; the Encoding Standard's
// encoder picks the highest pointer for exactly these, against its usual
// lowest-pointer rule.
var big5PreferLast = [...]rune{0x2550, 0x255E, 0x2561, 0x256A, 0x5341, 0x5345}

// Big5 returns the Big5 two-byte table. Leads below 0xA1 (the HKSCS region)
// decode but never encode.
func Big5() *DBCS {
	big5Once.Do(func() {
		big5 = derive("Big5", traditionalchinese.Big5.NewDecoder(),
			[]span{{0x81, 0xFE}},
			[]span{{0x40, 0x7E}, {0xA1, 0xFE}}, 0xA1)
		for _, r := range big5PreferLast {
			want := string(r)
			var best uint16
			for key, s := range big5.decode {
				if s == want && byte(key>>8) >= 0xA1 && key > best {
					best = key
				}
			}
			if best != 0 {
				big5.encode[r] = best
			}
		}
	})
	return big5
}

// JIS0208Decode resolves a JIS X 0208 pair (bytes in 0x21..0x7E) through the
// EUC-JP table: the EUC-JP form of a JIS pair is the pair with the high bits
// set.
func JIS0208Decode(lead, trail byte) (rune, bool) {
	s, ok := EUCJP().DecodePair(lead|0x80, trail|0x80)
	if !ok {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, false
	}
	return r, true
}

// JIS0208Encode returns the JIS X 0208 pair for r, if r is in the 0208
// repertoire.
func JIS0208Encode(r rune) (lead, trail byte, ok bool) {
	l, t, ok := EUCJP().EncodeRune(r)
	if !ok {
		return 0, 0, false
	}
	return l &^ 0x80, t &^ 0x80, true
}

// gb18030 four-byte sequences are probed per sequence rather than derived
// into a table; they are rare and the probe is constant time. The sequence
// for U+FFFD is special-cased because a probe result of U+FFFD is otherwise
// indistinguishable from an unmapped sequence.

var gb18030FFFD = [4]byte{0x84, 0x31, 0xA4, 0x37}

// GB18030DecodeQuad resolves a gb18030 four-byte sequence.
func GB18030DecodeQuad(b1, b2, b3, b4 byte) (rune, bool) {
	if [4]byte{b1, b2, b3, b4} == gb18030FFFD {
		return utf8.RuneError, true
	}
	out, err := simplifiedchinese.GB18030.NewDecoder().Bytes([]byte{b1, b2, b3, b4})
	if err != nil {
		return 0, false
	}
	r, size := utf8.DecodeRune(out)
	if size != len(out) || r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// GB18030Encode returns the gb18030 byte sequence for r. It is the encode
// fallback for runes absent from the two-byte table.
func GB18030Encode(r rune) ([]byte, bool) {
	if r == utf8.RuneError {
		seq := gb18030FFFD
		return seq[:], true
	}
	out, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(out) == 0 {
		return nil, false
	}
	return out, true
}
