package transcoder

import (
	"bytes"
	"testing"

	"github.com/wippyai/textcodec/charset"
)

// decodeAllChunked runs src through d in chunks of size step with a dst
// sized by the worst-case query, asserting OutputFull never shows up.
func decodeAllChunked(t *testing.T, d *Decoder, src []byte, step int) string {
	t.Helper()
	var out []byte
	for off := 0; ; {
		end := off + step
		last := false
		if end >= len(src) {
			end = len(src)
			last = true
		}
		chunk := src[off:end]
		dst := make([]byte, d.MaxUTF8BufferLength(len(chunk)))
		status, read, written, _ := d.DecodeToUTF8(chunk, dst, last)
		if status == OutputFull {
			t.Fatalf("OutputFull with worst-case dst (chunk %d..%d)", off, end)
		}
		out = append(out, dst[:written]...)
		off += read
		if last && status == InputEmpty && off == len(src) {
			return string(out)
		}
	}
}

func TestDecoder_UTF8(t *testing.T) {
	tests := []struct {
		name      string
		src       []byte
		want      string
		hadErrors bool
	}{
		{"ascii", []byte("hello"), "hello", false},
		{"two byte", []byte("caf\xC3\xA9"), "café", false},
		{"three byte", []byte("\xE6\x97\xA5\xE6\x9C\xAC"), "日本", false},
		{"four byte", []byte("\xF0\x9F\x98\x80"), "😀", false},
		{"stray continuation", []byte("a\x80b"), "a�b", true},
		{"stray lead", []byte{0xFF}, "�", true},
		{"overlong", []byte{0xC0, 0xAF}, "��", true},
		{"surrogate range", []byte{0xED, 0xA0, 0x80}, "���", true},
		{"truncated at end", []byte("ab\xE6\x97"), "ab�", true},
		{"lead then ascii", []byte{0xC3, 0x28}, "�(", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoderWithoutBOMHandling(charset.UTF8)
			dst := make([]byte, d.MaxUTF8BufferLength(len(tt.src)))
			status, read, written, hadErrors := d.DecodeToUTF8(tt.src, dst, true)
			if status != InputEmpty {
				t.Fatalf("status = %v, want InputEmpty", status)
			}
			if read != len(tt.src) {
				t.Errorf("read = %d, want %d", read, len(tt.src))
			}
			if got := string(dst[:written]); got != tt.want {
				t.Errorf("decoded %q, want %q", got, tt.want)
			}
			if hadErrors != tt.hadErrors {
				t.Errorf("hadErrors = %v, want %v", hadErrors, tt.hadErrors)
			}
		})
	}
}

func TestDecoder_SplitAnywhere(t *testing.T) {
	tests := []struct {
		name  string
		label string
		src   []byte
		want  string
	}{
		{"utf-8", "utf-8", []byte("héllo 日本語 😀"), "héllo 日本語 😀"},
		{"shift_jis", "shift_jis", []byte{0x82, 0xA0, 0x82, 0xA2, 0x61}, "あいa"},
		{"euc-jp", "euc-jp", []byte{0xA4, 0xA2, 0x8E, 0xB1}, "あア"},
		{"gb18030 quad", "gb18030", []byte{0x81, 0x30, 0x81, 0x30, 0x41}, "A"},
		{"utf-16le astral", "utf-16le", []byte{0x3D, 0xD8, 0x00, 0xDE}, "😀"},
		{"iso-2022-jp", "iso-2022-jp", []byte{0x61, 0x1B, 0x24, 0x42, 0x24, 0x22, 0x1B, 0x28, 0x42, 0x62}, "aあb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := charset.ForLabel([]byte(tt.label))
			if e == nil {
				t.Fatalf("no encoding for label %q", tt.label)
			}
			for step := 1; step <= len(tt.src); step++ {
				d := NewDecoderWithoutBOMHandling(e)
				if got := decodeAllChunked(t, d, tt.src, step); got != tt.want {
					t.Fatalf("step %d: decoded %q, want %q", step, got, tt.want)
				}
			}
		})
	}
}

func TestDecoder_WithoutReplacement(t *testing.T) {
	d := NewDecoderWithoutBOMHandling(charset.UTF8)
	src := []byte("ab\xC3\x28cd")
	dst := make([]byte, d.MaxUTF8BufferLengthWithoutReplacement(len(src)))

	status, read, written := d.DecodeToUTF8WithoutReplacement(src, dst, true)
	if status != Malformed {
		t.Fatalf("status = %v, want Malformed", status)
	}
	if read != 3 {
		t.Errorf("read = %d, want 3", read)
	}
	if got := string(dst[:written]); got != "ab" {
		t.Errorf("decoded %q before fault, want %q", got, "ab")
	}
	if !bytes.Equal(d.Malformed(), []byte{0xC3}) {
		t.Errorf("Malformed() = % X, want C3", d.Malformed())
	}

	// the rejecting byte resumes as content
	rest := src[read:]
	status, read, written = d.DecodeToUTF8WithoutReplacement(rest, dst, true)
	if status != InputEmpty || read != len(rest) {
		t.Fatalf("resume: status = %v read = %d", status, read)
	}
	if got := string(dst[:written]); got != "(cd" {
		t.Errorf("resume decoded %q, want %q", got, "(cd")
	}
}

func TestDecoder_OutputFullStagesWholeScalars(t *testing.T) {
	d := NewDecoderWithoutBOMHandling(charset.UTF8)
	src := []byte("é") // two bytes, one scalar

	dst := make([]byte, 1)
	status, read, written, _ := d.DecodeToUTF8(src, dst, false)
	if status != OutputFull {
		t.Fatalf("status = %v, want OutputFull", status)
	}
	if read != 2 || written != 0 {
		t.Fatalf("read = %d written = %d, want 2 and 0", read, written)
	}

	dst = make([]byte, 4)
	status, read, written, _ = d.DecodeToUTF8(nil, dst, true)
	if status != InputEmpty || read != 0 {
		t.Fatalf("flush: status = %v read = %d", status, read)
	}
	if got := string(dst[:written]); got != "é" {
		t.Errorf("flushed %q, want %q", got, "é")
	}
}

func TestDecoder_BOMSniffing(t *testing.T) {
	t.Run("utf-8 bom switches encoding", func(t *testing.T) {
		d := NewDecoder(charset.Windows1252)
		src := []byte{0xEF, 0xBB, 0xBF, 0x41}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		status, read, written, _ := d.DecodeToUTF8(src, dst, true)
		if status != InputEmpty || read != len(src) {
			t.Fatalf("status = %v read = %d", status, read)
		}
		if got := string(dst[:written]); got != "A" {
			t.Errorf("decoded %q, want %q", got, "A")
		}
		if d.Encoding() != charset.UTF8 {
			t.Errorf("Encoding() = %v, want UTF-8", d.Encoding())
		}
	})

	t.Run("utf-16le bom switches encoding", func(t *testing.T) {
		d := NewDecoder(charset.Windows1252)
		src := []byte{0xFF, 0xFE, 0x41, 0x00}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		_, _, written, _ := d.DecodeToUTF8(src, dst, true)
		if got := string(dst[:written]); got != "A" {
			t.Errorf("decoded %q, want %q", got, "A")
		}
		if d.Encoding() != charset.UTF16LE {
			t.Errorf("Encoding() = %v, want UTF-16LE", d.Encoding())
		}
	})

	t.Run("bom split across calls", func(t *testing.T) {
		d := NewDecoder(charset.Windows1252)
		out := decodeAllChunked(t, d, []byte{0xEF, 0xBB, 0xBF, 0x41}, 1)
		if out != "A" {
			t.Errorf("decoded %q, want %q", out, "A")
		}
		if d.Encoding() != charset.UTF8 {
			t.Errorf("Encoding() = %v, want UTF-8", d.Encoding())
		}
	})

	t.Run("false start decodes as content", func(t *testing.T) {
		// EF BB not followed by BF is windows-1252 content
		d := NewDecoder(charset.Windows1252)
		out := decodeAllChunked(t, d, []byte{0xEF, 0xBB, 0x41}, 1)
		if out != "ï»A" {
			t.Errorf("decoded %q, want %q", out, "ï»A")
		}
		if d.Encoding() != charset.Windows1252 {
			t.Errorf("Encoding() = %v, want windows-1252", d.Encoding())
		}
	})

	t.Run("truncated bom at eof decodes as content", func(t *testing.T) {
		d := NewDecoder(charset.Windows1252)
		src := []byte{0xEF, 0xBB}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		status, read, written, _ := d.DecodeToUTF8(src, dst, true)
		if status != InputEmpty || read != len(src) {
			t.Fatalf("status = %v read = %d", status, read)
		}
		if got := string(dst[:written]); got != "ï»" {
			t.Errorf("decoded %q, want %q", got, "ï»")
		}
	})
}

func TestDecoder_BOMRemoval(t *testing.T) {
	t.Run("matching bom removed", func(t *testing.T) {
		d := NewDecoderWithBOMRemoval(charset.UTF8)
		src := []byte{0xEF, 0xBB, 0xBF, 0x41}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		_, _, written, _ := d.DecodeToUTF8(src, dst, true)
		if got := string(dst[:written]); got != "A" {
			t.Errorf("decoded %q, want %q", got, "A")
		}
	})

	t.Run("foreign bom kept", func(t *testing.T) {
		// a UTF-16 BOM is content for a UTF-8 removal decoder
		d := NewDecoderWithBOMRemoval(charset.UTF8)
		src := []byte{0xFF, 0xFE}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		_, _, written, hadErrors := d.DecodeToUTF8(src, dst, true)
		if got := string(dst[:written]); got != "��" {
			t.Errorf("decoded %q, want two replacements", got)
		}
		if !hadErrors {
			t.Error("hadErrors = false, want true")
		}
		if d.Encoding() != charset.UTF8 {
			t.Errorf("Encoding() = %v, want UTF-8", d.Encoding())
		}
	})

	t.Run("no removal for other encodings", func(t *testing.T) {
		d := NewDecoderWithBOMRemoval(charset.Windows1252)
		src := []byte{0xEF, 0xBB, 0xBF}
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		_, _, written, _ := d.DecodeToUTF8(src, dst, true)
		if got := string(dst[:written]); got != "ï»¿" {
			t.Errorf("decoded %q, want %q", got, "ï»¿")
		}
	})
}

func TestDecoder_WithoutBOMHandling(t *testing.T) {
	d := NewDecoderWithoutBOMHandling(charset.UTF8)
	src := []byte{0xEF, 0xBB, 0xBF, 0x41}
	dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
	_, _, written, _ := d.DecodeToUTF8(src, dst, true)
	if got := string(dst[:written]); got != "\uFEFFA" {
		t.Errorf("decoded %q, want BOM kept as U+FEFF", got)
	}
}

func TestDecoder_UTF16(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		src       []byte
		want      string
		hadErrors bool
	}{
		{"le bmp", "utf-16le", []byte{0x41, 0x00, 0xAC, 0x20}, "A€", false},
		{"be bmp", "utf-16be", []byte{0x00, 0x41, 0x20, 0xAC}, "A€", false},
		{"le pair", "utf-16le", []byte{0x3D, 0xD8, 0x00, 0xDE}, "😀", false},
		{"lone lead", "utf-16le", []byte{0x00, 0xD8, 0x41, 0x00}, "�A", true},
		{"lone trail", "utf-16le", []byte{0x00, 0xDC}, "�", true},
		{"lead at eof", "utf-16le", []byte{0x00, 0xD8}, "�", true},
		{"odd byte at eof", "utf-16le", []byte{0x41, 0x00, 0x41}, "A�", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := charset.ForLabel([]byte(tt.label))
			d := NewDecoderWithoutBOMHandling(e)
			dst := make([]byte, d.MaxUTF8BufferLength(len(tt.src)))
			status, read, written, hadErrors := d.DecodeToUTF8(tt.src, dst, true)
			if status != InputEmpty || read != len(tt.src) {
				t.Fatalf("status = %v read = %d", status, read)
			}
			if got := string(dst[:written]); got != tt.want {
				t.Errorf("decoded %q, want %q", got, tt.want)
			}
			if hadErrors != tt.hadErrors {
				t.Errorf("hadErrors = %v, want %v", hadErrors, tt.hadErrors)
			}
		})
	}
}

func TestDecoder_DecodeToUTF16(t *testing.T) {
	d := NewDecoderWithoutBOMHandling(charset.UTF8)
	src := []byte("A😀")
	dst := make([]uint16, d.MaxUTF16BufferLength(len(src)))
	status, read, written, _ := d.DecodeToUTF16(src, dst, true)
	if status != InputEmpty || read != len(src) {
		t.Fatalf("status = %v read = %d", status, read)
	}
	want := []uint16{0x0041, 0xD83D, 0xDE00}
	if written != len(want) {
		t.Fatalf("written = %d, want %d", written, len(want))
	}
	for i, u := range want {
		if dst[i] != u {
			t.Errorf("dst[%d] = %04X, want %04X", i, dst[i], u)
		}
	}
}

func TestDecoder_Replacement(t *testing.T) {
	e := charset.ForLabel([]byte("iso-2022-kr"))
	if e != charset.Replacement {
		t.Fatalf("iso-2022-kr resolved to %v, want replacement", e)
	}
	d := NewDecoderWithoutBOMHandling(e)
	src := []byte("any bytes at all")
	dst := make([]byte, 16)
	status, read, written, hadErrors := d.DecodeToUTF8(src, dst, true)
	if status != InputEmpty || read != len(src) {
		t.Fatalf("status = %v read = %d", status, read)
	}
	if got := string(dst[:written]); got != "�" {
		t.Errorf("decoded %q, want a single U+FFFD", got)
	}
	if !hadErrors {
		t.Error("hadErrors = false, want true")
	}
}

func TestDecoder_LegacyMappings(t *testing.T) {
	tests := []struct {
		label string
		src   []byte
		want  string
	}{
		{"windows-1252", []byte{0x80}, "€"},
		{"windows-1251", []byte{0xC0}, "А"},
		{"koi8-r", []byte{0xC1}, "а"},
		{"ibm866", []byte{0x80}, "А"},
		{"x-user-defined", []byte{0x80}, "\uF780"},
		{"shift_jis", []byte{0xB1}, "ｱ"},
		{"euc-kr", []byte{0xB0, 0xA1}, "가"},
		{"big5", []byte{0xA4, 0x40}, "一"},
		{"gbk", []byte{0xD6, 0xD0}, "中"},
		{"gb18030", []byte{0xD6, 0xD0}, "中"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e := charset.ForLabel([]byte(tt.label))
			if e == nil {
				t.Fatalf("no encoding for label %q", tt.label)
			}
			d := NewDecoderWithoutBOMHandling(e)
			dst := make([]byte, d.MaxUTF8BufferLength(len(tt.src)))
			status, _, written, hadErrors := d.DecodeToUTF8(tt.src, dst, true)
			if status != InputEmpty || hadErrors {
				t.Fatalf("status = %v hadErrors = %v", status, hadErrors)
			}
			if got := string(dst[:written]); got != tt.want {
				t.Errorf("decoded %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecoder_MalformedRestoresBytes(t *testing.T) {
	// bytes buffered for a sequence that fails re-decode as fresh content
	tests := []struct {
		name  string
		label string
		src   []byte
		want  string
	}{
		{"gb18030 quad rejected at third byte", "gb18030", []byte{0x81, 0x30, 0x41}, "�0A"},
		{"gb18030 quad rejected at fourth byte", "gb18030", []byte{0x81, 0x30, 0x81, 0x41}, "�0丄"},
		{"gb18030 restored lead fails again", "gb18030", []byte{0x81, 0x30, 0x81, 0x2E}, "�0�."},
		{"iso-2022-jp failed escape", "iso-2022-jp", []byte{0x61, 0x1B, 0x24, 0x5A, 0x62}, "a�$Zb"},
		{"iso-2022-jp escape pair at eof", "iso-2022-jp", []byte{0x1B, 0x24}, "�$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := charset.ForLabel([]byte(tt.label))
			for step := 1; step <= len(tt.src); step++ {
				d := NewDecoderWithoutBOMHandling(e)
				if got := decodeAllChunked(t, d, tt.src, step); got != tt.want {
					t.Fatalf("step %d: decoded %q, want %q", step, got, tt.want)
				}
			}
		})
	}
}

func TestDecoder_ISO2022JPOutputFlag(t *testing.T) {
	decode := func(t *testing.T, src []byte) (string, bool) {
		t.Helper()
		d := NewDecoderWithoutBOMHandling(charset.ISO2022JP)
		dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
		status, read, written, hadErrors := d.DecodeToUTF8(src, dst, true)
		if status != InputEmpty || read != len(src) {
			t.Fatalf("status = %v read = %d", status, read)
		}
		return string(dst[:written]), hadErrors
	}

	t.Run("doubled escape is an error", func(t *testing.T) {
		src := []byte{0x1B, 0x28, 0x4A, 0x1B, 0x28, 0x42, 0x61}
		got, hadErrors := decode(t, src)
		if got != "�a" || !hadErrors {
			t.Errorf("decoded %q hadErrors %v, want %q and true", got, hadErrors, "�a")
		}
	})

	t.Run("error clears the doubled-escape detector", func(t *testing.T) {
		src := []byte{0x1B, 0x28, 0x4A, 0xFF, 0x1B, 0x28, 0x42, 0x61}
		got, hadErrors := decode(t, src)
		if got != "�a" || !hadErrors {
			t.Errorf("decoded %q hadErrors %v, want %q and true", got, hadErrors, "�a")
		}
	})

	t.Run("buffered lead clears the detector", func(t *testing.T) {
		// the escape interrupting the pair is the only error
		src := []byte{0x1B, 0x24, 0x42, 0x24, 0x1B, 0x28, 0x42, 0x62}
		got, hadErrors := decode(t, src)
		if got != "�b" || !hadErrors {
			t.Errorf("decoded %q hadErrors %v, want %q and true", got, hadErrors, "�b")
		}
	})
}

func TestDecoder_MalformedLegacy(t *testing.T) {
	tests := []struct {
		name  string
		label string
		src   []byte
		want  string
	}{
		{"shift_jis unmapped pair resumes", "shift_jis", []byte{0x82, 0x40}, "�@"},
		{"euc-jp stray byte", "euc-jp", []byte{0xFF, 0x61}, "�a"},
		{"gb18030 truncated quad", "gb18030", []byte{0x81, 0x30}, "�"},
		{"big5 lead at eof", "big5", []byte{0xA4}, "�"},
		{"iso-2022-jp bare escape", "iso-2022-jp", []byte{0x1B, 0x61}, "�a"},
		{"iso-2022-jp eight bit", "iso-2022-jp", []byte{0x80}, "�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := charset.ForLabel([]byte(tt.label))
			d := NewDecoderWithoutBOMHandling(e)
			dst := make([]byte, d.MaxUTF8BufferLength(len(tt.src)))
			status, read, written, hadErrors := d.DecodeToUTF8(tt.src, dst, true)
			if status != InputEmpty || read != len(tt.src) {
				t.Fatalf("status = %v read = %d", status, read)
			}
			if got := string(dst[:written]); got != tt.want {
				t.Errorf("decoded %q, want %q", got, tt.want)
			}
			if !hadErrors {
				t.Error("hadErrors = false, want true")
			}
		})
	}
}
