package transcoder

import (
	"bytes"
	"testing"

	"github.com/wippyai/textcodec/charset"
)

func encodeAll(t *testing.T, e *Encoder, s string) ([]byte, bool) {
	t.Helper()
	src := []byte(s)
	dst := make([]byte, e.MaxBufferLengthFromUTF8IfNoUnmappables(len(src))+32)
	status, read, written, hadErrors := e.EncodeFromUTF8(src, dst, true)
	if status != InputEmpty || read != len(src) {
		t.Fatalf("status = %v read = %d (want InputEmpty, %d)", status, read, len(src))
	}
	return dst[:written], hadErrors
}

func TestEncoder_SingleByte(t *testing.T) {
	tests := []struct {
		label string
		in    string
		want  []byte
	}{
		{"windows-1252", "café", []byte{0x63, 0x61, 0x66, 0xE9}},
		{"windows-1252", "€", []byte{0x80}},
		{"windows-1251", "Да", []byte{0xC4, 0xE0}},
		{"koi8-r", "а", []byte{0xC1}},
		{"x-user-defined", "\uF780", []byte{0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.in, func(t *testing.T) {
			e := NewEncoder(charset.ForLabel([]byte(tt.label)))
			got, hadErrors := encodeAll(t, e, tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded % X, want % X", got, tt.want)
			}
			if hadErrors {
				t.Error("hadErrors = true, want false")
			}
		})
	}
}

func TestEncoder_NumericCharacterReference(t *testing.T) {
	e := NewEncoder(charset.ForLabel([]byte("koi8-r")))
	got, hadErrors := encodeAll(t, e, "price: 5€")
	if want := []byte("price: 5&#8364;"); !bytes.Equal(got, want) {
		t.Errorf("encoded %q, want %q", got, want)
	}
	if !hadErrors {
		t.Error("hadErrors = false, want true")
	}
}

func TestEncoder_WithoutReplacement(t *testing.T) {
	e := NewEncoder(charset.ForLabel([]byte("koi8-r")))
	src := []byte("a€b")
	dst := make([]byte, 16)

	status, read, written := e.EncodeFromUTF8WithoutReplacement(src, dst, true)
	if status != Unmappable {
		t.Fatalf("status = %v, want Unmappable", status)
	}
	if read != 1 || written != 1 {
		t.Fatalf("read = %d written = %d, want 1 and 1", read, written)
	}
	if e.Unmappable() != '€' {
		t.Errorf("Unmappable() = %q, want €", e.Unmappable())
	}

	// the caller decides; skipping the scalar resumes cleanly
	src = src[read+len("€"):]
	status, read, written = e.EncodeFromUTF8WithoutReplacement(src, dst, true)
	if status != InputEmpty || read != 1 || written != 1 || dst[0] != 'b' {
		t.Fatalf("resume: status = %v read = %d written = %d dst[0] = %q", status, read, written, dst[0])
	}
}

func TestEncoder_CJK(t *testing.T) {
	tests := []struct {
		label string
		in    string
		want  []byte
	}{
		{"shift_jis", "¥あｱ", []byte{0x5C, 0x82, 0xA0, 0xB1}},
		{"euc-jp", "あｱ", []byte{0xA4, 0xA2, 0x8E, 0xB1}},
		{"euc-kr", "가", []byte{0xB0, 0xA1}},
		{"big5", "一", []byte{0xA4, 0x40}},
		{"gbk", "中€", []byte{0xD6, 0xD0, 0x80}},
		{"gb18030", "中", []byte{0xD6, 0xD0}},
		{"gb18030", "\u0080", []byte{0x81, 0x30, 0x81, 0x30}},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.in, func(t *testing.T) {
			e := NewEncoder(charset.ForLabel([]byte(tt.label)))
			got, hadErrors := encodeAll(t, e, tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded % X, want % X", got, tt.want)
			}
			if hadErrors {
				t.Error("hadErrors = true, want false")
			}
		})
	}
}

func TestEncoder_ISO2022JP(t *testing.T) {
	t.Run("shifts in and out", func(t *testing.T) {
		e := NewEncoder(charset.ISO2022JP)
		got, _ := encodeAll(t, e, "aあ")
		want := []byte{0x61, 0x1B, 0x24, 0x42, 0x24, 0x22, 0x1B, 0x28, 0x42}
		if !bytes.Equal(got, want) {
			t.Errorf("encoded % X, want % X", got, want)
		}
	})

	t.Run("halfwidth katakana folds to fullwidth", func(t *testing.T) {
		e := NewEncoder(charset.ISO2022JP)
		got, _ := encodeAll(t, e, "ｱ")
		want := []byte{0x1B, 0x24, 0x42, 0x25, 0x22, 0x1B, 0x28, 0x42}
		if !bytes.Equal(got, want) {
			t.Errorf("encoded % X, want % X", got, want)
		}
	})

	t.Run("trailing escape arrives with last", func(t *testing.T) {
		e := NewEncoder(charset.ISO2022JP)
		dst := make([]byte, 32)
		status, _, written, _ := e.EncodeFromUTF8([]byte("あ"), dst, false)
		if status != InputEmpty {
			t.Fatalf("status = %v", status)
		}
		if want := []byte{0x1B, 0x24, 0x42, 0x24, 0x22}; !bytes.Equal(dst[:written], want) {
			t.Fatalf("mid-stream % X, want % X", dst[:written], want)
		}
		status, _, written, _ = e.EncodeFromUTF8(nil, dst, true)
		if status != InputEmpty {
			t.Fatalf("final status = %v", status)
		}
		if want := []byte{0x1B, 0x28, 0x42}; !bytes.Equal(dst[:written], want) {
			t.Errorf("final % X, want % X", dst[:written], want)
		}
	})

	t.Run("escape controls become references", func(t *testing.T) {
		e := NewEncoder(charset.ISO2022JP)
		got, hadErrors := encodeAll(t, e, "a\x1Bb")
		if want := []byte("a&#65533;b"); !bytes.Equal(got, want) {
			t.Errorf("encoded %q, want %q", got, want)
		}
		if !hadErrors {
			t.Error("hadErrors = false, want true")
		}
	})
}

func TestEncoder_FromUTF16(t *testing.T) {
	t.Run("pairs combine", func(t *testing.T) {
		e := NewEncoder(charset.GB18030)
		src := []uint16{0x4E2D}
		dst := make([]byte, e.MaxBufferLengthFromUTF16IfNoUnmappables(len(src)))
		status, read, written, _ := e.EncodeFromUTF16(src, dst, true)
		if status != InputEmpty || read != 1 {
			t.Fatalf("status = %v read = %d", status, read)
		}
		if want := []byte{0xD6, 0xD0}; !bytes.Equal(dst[:written], want) {
			t.Errorf("encoded % X, want % X", dst[:written], want)
		}
	})

	t.Run("unpaired lead becomes replacement", func(t *testing.T) {
		e := NewEncoder(charset.Windows1252)
		src := []uint16{0xD800, 0x0041}
		dst := make([]byte, 32)
		status, read, written, hadErrors := e.EncodeFromUTF16(src, dst, true)
		if status != InputEmpty || read != 2 {
			t.Fatalf("status = %v read = %d", status, read)
		}
		if want := []byte("&#65533;A"); !bytes.Equal(dst[:written], want) {
			t.Errorf("encoded %q, want %q", dst[:written], want)
		}
		if !hadErrors {
			t.Error("hadErrors = false, want true")
		}
	})

	t.Run("lead at split waits for its trail", func(t *testing.T) {
		e := NewEncoder(charset.GB18030)
		src := []uint16{0x0041, 0xD83D}
		dst := make([]byte, 32)
		status, read, _, _ := e.EncodeFromUTF16(src, dst, false)
		if status != InputEmpty || read != 1 {
			t.Fatalf("status = %v read = %d, want InputEmpty and 1", status, read)
		}
	})
}

func TestEncoder_OutputEncoding(t *testing.T) {
	for _, e := range []*charset.Encoding{charset.UTF16LE, charset.UTF16BE, charset.Replacement} {
		if enc := NewEncoder(e); enc.Encoding() != charset.UTF8 {
			t.Errorf("NewEncoder(%v).Encoding() = %v, want UTF-8", e, enc.Encoding())
		}
	}
	if enc := NewEncoder(charset.ShiftJIS); enc.Encoding() != charset.ShiftJIS {
		t.Errorf("Encoding() = %v, want Shift_JIS", enc.Encoding())
	}
}

func TestEncoder_BufferBounds(t *testing.T) {
	inputs := []struct {
		label string
		in    string
	}{
		{"windows-1252", "plain ascii and é ü ÿ"},
		{"shift_jis", "日本語テキスト with ascii"},
		{"gb18030", "中文 text \u0080 😀"},
		{"iso-2022-jp", "aあbいc"},
	}

	for _, tt := range inputs {
		t.Run(tt.label, func(t *testing.T) {
			enc := charset.ForLabel([]byte(tt.label))
			e := NewEncoder(enc)
			src := []byte(tt.in)
			dst := make([]byte, e.MaxBufferLengthFromUTF8IfNoUnmappables(len(src)))
			status, read, _, _ := e.EncodeFromUTF8(src, dst, true)
			if status != InputEmpty || read != len(src) {
				t.Errorf("status = %v read = %d, want InputEmpty and %d", status, read, len(src))
			}
		})
	}
}
