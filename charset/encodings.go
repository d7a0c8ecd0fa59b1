package charset

// Statically allocated instances for every supported encoding. The output
// encoding for UTF-16LE/BE and replacement is wired up in init below; a nil
// output field means "self".
var (
	UTF8 = &Encoding{name: "UTF-8", asciiCompatible: true}

	IBM866     = &Encoding{name: "IBM866", asciiCompatible: true, singleByte: true}
	ISO8859_2  = &Encoding{name: "ISO-8859-2", asciiCompatible: true, singleByte: true}
	ISO8859_3  = &Encoding{name: "ISO-8859-3", asciiCompatible: true, singleByte: true}
	ISO8859_4  = &Encoding{name: "ISO-8859-4", asciiCompatible: true, singleByte: true}
	ISO8859_5  = &Encoding{name: "ISO-8859-5", asciiCompatible: true, singleByte: true}
	ISO8859_6  = &Encoding{name: "ISO-8859-6", asciiCompatible: true, singleByte: true}
	ISO8859_7  = &Encoding{name: "ISO-8859-7", asciiCompatible: true, singleByte: true}
	ISO8859_8  = &Encoding{name: "ISO-8859-8", asciiCompatible: true, singleByte: true}
	ISO8859_8I = &Encoding{name: "ISO-8859-8-I", asciiCompatible: true, singleByte: true}
	ISO8859_10 = &Encoding{name: "ISO-8859-10", asciiCompatible: true, singleByte: true}
	ISO8859_13 = &Encoding{name: "ISO-8859-13", asciiCompatible: true, singleByte: true}
	ISO8859_14 = &Encoding{name: "ISO-8859-14", asciiCompatible: true, singleByte: true}
	ISO8859_15 = &Encoding{name: "ISO-8859-15", asciiCompatible: true, singleByte: true}
	ISO8859_16 = &Encoding{name: "ISO-8859-16", asciiCompatible: true, singleByte: true}
	KOI8R      = &Encoding{name: "KOI8-R", asciiCompatible: true, singleByte: true}
	KOI8U      = &Encoding{name: "KOI8-U", asciiCompatible: true, singleByte: true}
	Macintosh  = &Encoding{name: "macintosh", asciiCompatible: true, singleByte: true}
	Windows874 = &Encoding{name: "windows-874", asciiCompatible: true, singleByte: true}

	Windows1250 = &Encoding{name: "windows-1250", asciiCompatible: true, singleByte: true}
	Windows1251 = &Encoding{name: "windows-1251", asciiCompatible: true, singleByte: true}
	Windows1252 = &Encoding{name: "windows-1252", asciiCompatible: true, singleByte: true}
	Windows1253 = &Encoding{name: "windows-1253", asciiCompatible: true, singleByte: true}
	Windows1254 = &Encoding{name: "windows-1254", asciiCompatible: true, singleByte: true}
	Windows1255 = &Encoding{name: "windows-1255", asciiCompatible: true, singleByte: true}
	Windows1256 = &Encoding{name: "windows-1256", asciiCompatible: true, singleByte: true}
	Windows1257 = &Encoding{name: "windows-1257", asciiCompatible: true, singleByte: true}
	Windows1258 = &Encoding{name: "windows-1258", asciiCompatible: true, singleByte: true}

	XMacCyrillic = &Encoding{name: "x-mac-cyrillic", asciiCompatible: true, singleByte: true}
	XUserDefined = &Encoding{name: "x-user-defined", asciiCompatible: true, singleByte: true}

	GBK       = &Encoding{name: "GBK", asciiCompatible: true}
	GB18030   = &Encoding{name: "gb18030", asciiCompatible: true}
	Big5      = &Encoding{name: "Big5", asciiCompatible: true}
	EUCJP     = &Encoding{name: "EUC-JP", asciiCompatible: true}
	ISO2022JP = &Encoding{name: "ISO-2022-JP", asciiCompatible: false}
	ShiftJIS  = &Encoding{name: "Shift_JIS", asciiCompatible: true}
	EUCKR     = &Encoding{name: "EUC-KR", asciiCompatible: true}

	Replacement = &Encoding{name: "replacement", asciiCompatible: false}
	UTF16BE     = &Encoding{name: "UTF-16BE", asciiCompatible: false}
	UTF16LE     = &Encoding{name: "UTF-16LE", asciiCompatible: false}
)

func init() {
	UTF16LE.output = UTF8
	UTF16BE.output = UTF8
	Replacement.output = UTF8
}

var all = []*Encoding{
	Big5, EUCJP, EUCKR, GB18030, GBK, IBM866, ISO2022JP,
	ISO8859_10, ISO8859_13, ISO8859_14, ISO8859_15, ISO8859_16,
	ISO8859_2, ISO8859_3, ISO8859_4, ISO8859_5, ISO8859_6,
	ISO8859_7, ISO8859_8, ISO8859_8I,
	KOI8R, KOI8U, Macintosh, Replacement, ShiftJIS,
	UTF16BE, UTF16LE, UTF8,
	Windows1250, Windows1251, Windows1252, Windows1253, Windows1254,
	Windows1255, Windows1256, Windows1257, Windows1258, Windows874,
	XMacCyrillic, XUserDefined,
}

// All returns every supported encoding. The returned slice is a copy and may
// be mutated by the caller.
func All() []*Encoding {
	out := make([]*Encoding, len(all))
	copy(out, all)
	return out
}
