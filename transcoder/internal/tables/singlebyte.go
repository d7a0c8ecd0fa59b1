package tables

import (
	"golang.org/x/text/encoding/charmap"
)

// singleByte maps canonical encoding names to their x/text charmap. The
// charmap is the opaque table capability: DecodeByte yields U+FFFD for bytes
// the encoding leaves unmapped, which the state machines treat as malformed.
var singleByte = map[string]*charmap.Charmap{
	"IBM866":         charmap.CodePage866,
	"ISO-8859-2":     charmap.ISO8859_2,
	"ISO-8859-3":     charmap.ISO8859_3,
	"ISO-8859-4":     charmap.ISO8859_4,
	"ISO-8859-5":     charmap.ISO8859_5,
	"ISO-8859-6":     charmap.ISO8859_6,
	"ISO-8859-7":     charmap.ISO8859_7,
	"ISO-8859-8":     charmap.ISO8859_8,
	"ISO-8859-8-I":   charmap.ISO8859_8, // same byte mapping, different bidi handling
	"ISO-8859-10":    charmap.ISO8859_10,
	"ISO-8859-13":    charmap.ISO8859_13,
	"ISO-8859-14":    charmap.ISO8859_14,
	"ISO-8859-15":    charmap.ISO8859_15,
	"ISO-8859-16":    charmap.ISO8859_16,
	"KOI8-R":         charmap.KOI8R,
	"KOI8-U":         charmap.KOI8U,
	"macintosh":      charmap.Macintosh,
	"windows-874":    charmap.Windows874,
	"windows-1250":   charmap.Windows1250,
	"windows-1251":   charmap.Windows1251,
	"windows-1252":   charmap.Windows1252,
	"windows-1253":   charmap.Windows1253,
	"windows-1254":   charmap.Windows1254,
	"windows-1255":   charmap.Windows1255,
	"windows-1256":   charmap.Windows1256,
	"windows-1257":   charmap.Windows1257,
	"windows-1258":   charmap.Windows1258,
	"x-mac-cyrillic": charmap.MacintoshCyrillic,
	"x-user-defined": charmap.XUserDefined,
}

// Charmap returns the single-byte table for the named encoding, or nil when
// the encoding is not single-byte.
func Charmap(name string) *charmap.Charmap {
	return singleByte[name]
}
