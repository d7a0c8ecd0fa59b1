package charset

import (
	"github.com/wippyai/textcodec/errors"
)

// labels maps every label from the Encoding Standard, already lowercased, to
// its encoding.
var labels = map[string]*Encoding{
	"unicode-1-1-utf-8": UTF8,
	"unicode11utf8":     UTF8,
	"unicode20utf8":     UTF8,
	"utf-8":             UTF8,
	"utf8":              UTF8,
	"x-unicode20utf8":   UTF8,

	"866":      IBM866,
	"cp866":    IBM866,
	"csibm866": IBM866,
	"ibm866":   IBM866,

	"csisolatin2":     ISO8859_2,
	"iso-8859-2":      ISO8859_2,
	"iso-ir-101":      ISO8859_2,
	"iso8859-2":       ISO8859_2,
	"iso88592":        ISO8859_2,
	"iso_8859-2":      ISO8859_2,
	"iso_8859-2:1987": ISO8859_2,
	"l2":              ISO8859_2,
	"latin2":          ISO8859_2,

	"csisolatin3":     ISO8859_3,
	"iso-8859-3":      ISO8859_3,
	"iso-ir-109":      ISO8859_3,
	"iso8859-3":       ISO8859_3,
	"iso88593":        ISO8859_3,
	"iso_8859-3":      ISO8859_3,
	"iso_8859-3:1988": ISO8859_3,
	"l3":              ISO8859_3,
	"latin3":          ISO8859_3,

	"csisolatin4":     ISO8859_4,
	"iso-8859-4":      ISO8859_4,
	"iso-ir-110":      ISO8859_4,
	"iso8859-4":       ISO8859_4,
	"iso88594":        ISO8859_4,
	"iso_8859-4":      ISO8859_4,
	"iso_8859-4:1988": ISO8859_4,
	"l4":              ISO8859_4,
	"latin4":          ISO8859_4,

	"csisolatincyrillic": ISO8859_5,
	"cyrillic":           ISO8859_5,
	"iso-8859-5":         ISO8859_5,
	"iso-ir-144":         ISO8859_5,
	"iso8859-5":          ISO8859_5,
	"iso88595":           ISO8859_5,
	"iso_8859-5":         ISO8859_5,
	"iso_8859-5:1988":    ISO8859_5,

	"arabic":           ISO8859_6,
	"asmo-708":         ISO8859_6,
	"csiso88596e":      ISO8859_6,
	"csiso88596i":      ISO8859_6,
	"csisolatinarabic": ISO8859_6,
	"ecma-114":         ISO8859_6,
	"iso-8859-6":       ISO8859_6,
	"iso-8859-6-e":     ISO8859_6,
	"iso-8859-6-i":     ISO8859_6,
	"iso-ir-127":       ISO8859_6,
	"iso8859-6":        ISO8859_6,
	"iso88596":         ISO8859_6,
	"iso_8859-6":       ISO8859_6,
	"iso_8859-6:1987":  ISO8859_6,

	"csisolatingreek": ISO8859_7,
	"ecma-118":        ISO8859_7,
	"elot_928":        ISO8859_7,
	"greek":           ISO8859_7,
	"greek8":          ISO8859_7,
	"iso-8859-7":      ISO8859_7,
	"iso-ir-126":      ISO8859_7,
	"iso8859-7":       ISO8859_7,
	"iso88597":        ISO8859_7,
	"iso_8859-7":      ISO8859_7,
	"iso_8859-7:1987": ISO8859_7,
	"sun_eu_greek":    ISO8859_7,

	"csiso88598e":      ISO8859_8,
	"csisolatinhebrew": ISO8859_8,
	"hebrew":           ISO8859_8,
	"iso-8859-8":       ISO8859_8,
	"iso-8859-8-e":     ISO8859_8,
	"iso-ir-138":       ISO8859_8,
	"iso8859-8":        ISO8859_8,
	"iso88598":         ISO8859_8,
	"iso_8859-8":       ISO8859_8,
	"iso_8859-8:1988":  ISO8859_8,
	"visual":           ISO8859_8,

	"csiso88598i":  ISO8859_8I,
	"iso-8859-8-i": ISO8859_8I,
	"logical":      ISO8859_8I,

	"csisolatin6": ISO8859_10,
	"iso-8859-10": ISO8859_10,
	"iso-ir-157":  ISO8859_10,
	"iso8859-10":  ISO8859_10,
	"iso885910":   ISO8859_10,
	"l6":          ISO8859_10,
	"latin6":      ISO8859_10,

	"iso-8859-13": ISO8859_13,
	"iso8859-13":  ISO8859_13,
	"iso885913":   ISO8859_13,

	"iso-8859-14": ISO8859_14,
	"iso8859-14":  ISO8859_14,
	"iso885914":   ISO8859_14,

	"csisolatin9": ISO8859_15,
	"iso-8859-15": ISO8859_15,
	"iso8859-15":  ISO8859_15,
	"iso885915":   ISO8859_15,
	"iso_8859-15": ISO8859_15,
	"l9":          ISO8859_15,

	"iso-8859-16": ISO8859_16,

	"cskoi8r": KOI8R,
	"koi":     KOI8R,
	"koi8":    KOI8R,
	"koi8-r":  KOI8R,
	"koi8_r":  KOI8R,

	"koi8-ru": KOI8U,
	"koi8-u":  KOI8U,

	"csmacintosh": Macintosh,
	"mac":         Macintosh,
	"macintosh":   Macintosh,
	"x-mac-roman": Macintosh,

	"dos-874":     Windows874,
	"iso-8859-11": Windows874,
	"iso8859-11":  Windows874,
	"iso885911":   Windows874,
	"tis-620":     Windows874,
	"windows-874": Windows874,

	"cp1250":       Windows1250,
	"windows-1250": Windows1250,
	"x-cp1250":     Windows1250,

	"cp1251":       Windows1251,
	"windows-1251": Windows1251,
	"x-cp1251":     Windows1251,

	"ansi_x3.4-1968":  Windows1252,
	"ascii":           Windows1252,
	"cp1252":          Windows1252,
	"cp819":           Windows1252,
	"csisolatin1":     Windows1252,
	"ibm819":          Windows1252,
	"iso-8859-1":      Windows1252,
	"iso-ir-100":      Windows1252,
	"iso8859-1":       Windows1252,
	"iso88591":        Windows1252,
	"iso_8859-1":      Windows1252,
	"iso_8859-1:1987": Windows1252,
	"l1":              Windows1252,
	"latin1":          Windows1252,
	"us-ascii":        Windows1252,
	"windows-1252":    Windows1252,
	"x-cp1252":        Windows1252,

	"cp1253":       Windows1253,
	"windows-1253": Windows1253,
	"x-cp1253":     Windows1253,

	"cp1254":          Windows1254,
	"csisolatin5":     Windows1254,
	"iso-8859-9":      Windows1254,
	"iso-ir-148":      Windows1254,
	"iso8859-9":       Windows1254,
	"iso88599":        Windows1254,
	"iso_8859-9":      Windows1254,
	"iso_8859-9:1989": Windows1254,
	"l5":              Windows1254,
	"latin5":          Windows1254,
	"windows-1254":    Windows1254,
	"x-cp1254":        Windows1254,

	"cp1255":       Windows1255,
	"windows-1255": Windows1255,
	"x-cp1255":     Windows1255,

	"cp1256":       Windows1256,
	"windows-1256": Windows1256,
	"x-cp1256":     Windows1256,

	"cp1257":       Windows1257,
	"windows-1257": Windows1257,
	"x-cp1257":     Windows1257,

	"cp1258":       Windows1258,
	"windows-1258": Windows1258,
	"x-cp1258":     Windows1258,

	"x-mac-cyrillic":  XMacCyrillic,
	"x-mac-ukrainian": XMacCyrillic,

	"chinese":         GBK,
	"csgb2312":        GBK,
	"csiso58gb231280": GBK,
	"gb2312":          GBK,
	"gb_2312":         GBK,
	"gb_2312-80":      GBK,
	"gbk":             GBK,
	"iso-ir-58":       GBK,
	"x-gbk":           GBK,

	"gb18030": GB18030,

	"big5":       Big5,
	"big5-hkscs": Big5,
	"cn-big5":    Big5,
	"csbig5":     Big5,
	"x-x-big5":   Big5,

	"cseucpkdfmtjapanese": EUCJP,
	"euc-jp":              EUCJP,
	"x-euc-jp":            EUCJP,

	"csiso2022jp": ISO2022JP,
	"iso-2022-jp": ISO2022JP,

	"csshiftjis":  ShiftJIS,
	"ms932":       ShiftJIS,
	"ms_kanji":    ShiftJIS,
	"shift-jis":   ShiftJIS,
	"shift_jis":   ShiftJIS,
	"sjis":        ShiftJIS,
	"windows-31j": ShiftJIS,
	"x-sjis":      ShiftJIS,

	"cseuckr":        EUCKR,
	"csksc56011987":  EUCKR,
	"euc-kr":         EUCKR,
	"iso-ir-149":     EUCKR,
	"korean":         EUCKR,
	"ks_c_5601-1987": EUCKR,
	"ks_c_5601-1989": EUCKR,
	"ksc5601":        EUCKR,
	"ksc_5601":       EUCKR,
	"windows-949":    EUCKR,

	"csiso2022kr":     Replacement,
	"hz-gb-2312":      Replacement,
	"iso-2022-cn":     Replacement,
	"iso-2022-cn-ext": Replacement,
	"iso-2022-kr":     Replacement,
	"replacement":     Replacement,

	"unicodefffe": UTF16BE,
	"utf-16be":    UTF16BE,

	"csunicode":       UTF16LE,
	"iso-10646-ucs-2": UTF16LE,
	"ucs-2":           UTF16LE,
	"unicode":         UTF16LE,
	"unicodefeff":     UTF16LE,
	"utf-16":          UTF16LE,
	"utf-16le":        UTF16LE,

	"x-user-defined": XUserDefined,
}

// names maps canonical names, case-sensitively, to encodings.
var names = func() map[string]*Encoding {
	m := make(map[string]*Encoding, len(all))
	for _, e := range all {
		m[e.name] = e
	}
	return m
}()

// ForLabel returns the encoding identified by label, implementing the
// Encoding Standard's "get an encoding" algorithm. Matching is
// ASCII-case-insensitive and ignores leading and trailing ASCII whitespace.
// Returns nil when the label identifies no encoding.
func ForLabel(label []byte) *Encoding {
	return labels[normalizeLabel(label)]
}

// ForLabelNoReplacement behaves like ForLabel except that a label resolving
// to the replacement encoding returns nil, so that unsupported labels and
// the replacement encoding are indistinguishable.
func ForLabelNoReplacement(label []byte) *Encoding {
	if e := ForLabel(label); e != Replacement {
		return e
	}
	return nil
}

// ForName returns the encoding with the given canonical name. The match is
// exact and case-sensitive; ForName panics with a *errors.Error when name is
// not a canonical name. It is meant for callers that already hold a name
// produced by Name(); use ForLabel for anything user-supplied.
func ForName(name []byte) *Encoding {
	if e, ok := names[string(name)]; ok {
		return e
	}
	panic(errors.UnknownEncoding(errors.PhaseLookup, string(name)))
}

func normalizeLabel(label []byte) string {
	start := 0
	for start < len(label) && isASCIIWhitespace(label[start]) {
		start++
	}
	end := len(label)
	for end > start && isASCIIWhitespace(label[end-1]) {
		end--
	}
	buf := make([]byte, end-start)
	for i, b := range label[start:end] {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		buf[i] = b
	}
	return string(buf)
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
