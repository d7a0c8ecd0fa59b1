package transcoder

import (
	"github.com/wippyai/textcodec/charset"
	"github.com/wippyai/textcodec/transcoder/internal/tables"
)

// The per-encoding transformation logic is modeled as a tagged variant held
// inside each Decoder/Encoder and driven through a small pure interface, so
// every encoding's state machine stays swappable without the outer protocol
// knowing anything about shift states or lead bytes.

type nextKind int

const (
	nextRune      nextKind = iota // one or two scalar values were decoded
	nextNeedMore                  // src exhausted; partial state buffered internally
	nextMalformed                 // an invalid sequence was consumed
)

// nextResult is the outcome of decoding one unit of input.
type nextResult struct {
	kind     nextKind
	r        rune // first scalar, valid for nextRune
	r2       rune // optional second scalar (Big5 doublets), -1 when absent
	consumed int  // bytes consumed from src by this step
	seq      []byte
	restore  []byte // consumed bytes handed back for re-decoding
}

func yieldRune(r rune, consumed int) nextResult {
	return nextResult{kind: nextRune, r: r, r2: -1, consumed: consumed}
}

func yieldPair(r, r2 rune, consumed int) nextResult {
	return nextResult{kind: nextRune, r: r, r2: r2, consumed: consumed}
}

func needMore(consumed int) nextResult {
	return nextResult{kind: nextNeedMore, consumed: consumed}
}

func malformed(consumed int, seq ...byte) nextResult {
	return nextResult{kind: nextMalformed, consumed: consumed, seq: seq}
}

// malformedRestore reports seq as malformed and hands restore back to the
// stream: bytes buffered in earlier steps that turned out not to belong to
// the failed sequence and must be decoded afresh.
func malformedRestore(consumed int, seq, restore []byte) nextResult {
	return nextResult{kind: nextMalformed, consumed: consumed, seq: seq, restore: restore}
}

// variantDecoder is the per-encoding decode state machine. next yields at
// most one decoded unit per call; bytes of an incomplete trailing sequence
// are held internally so the caller may split input anywhere. The max
// methods answer buffer-fit queries for n further input bytes, counting the
// internally buffered partial sequence.
type variantDecoder interface {
	next(src []byte, last bool) nextResult
	pending() int
	maxUTF16(n int) int
	maxUTF8(n int) int
	maxUTF8NoRep(n int) int
}

func newVariantDecoder(e *charset.Encoding) variantDecoder {
	switch e {
	case charset.UTF8:
		return &utf8Decoder{}
	case charset.UTF16LE:
		return &utf16Decoder{}
	case charset.UTF16BE:
		return &utf16Decoder{bigEndian: true}
	case charset.Replacement:
		return &replacementDecoder{}
	case charset.GBK, charset.GB18030:
		// the standard gives GBK and gb18030 the same decoder
		return &gbDecoder{}
	case charset.Big5:
		return &big5Decoder{}
	case charset.EUCJP:
		return &eucJPDecoder{}
	case charset.EUCKR:
		return &eucKRDecoder{}
	case charset.ShiftJIS:
		return &shiftJISDecoder{}
	case charset.ISO2022JP:
		return &iso2022JPDecoder{}
	default:
		return &singleByteDecoder{table: tables.Charmap(e.Name())}
	}
}

type encResult int

const (
	encOK encResult = iota
	encFull
	encUnmappable
)

// variantEncoder is the per-encoding encode state machine. encode writes the
// full byte sequence for one scalar value or nothing at all, so OutputFull
// never leaves a torn sequence. finish emits the return-to-initial-state
// terminator for stateful encodings.
type variantEncoder interface {
	sanitize(r rune) rune
	encode(r rune, dst []byte) (int, encResult)
	finish(dst []byte) (int, encResult)
	asciiOverhead() int
	maxFromUTF8(n int) int
	maxFromUTF16(n int) int
}

// statelessEncoder supplies the defaults shared by every encoding without
// shift state.
type statelessEncoder struct{}

func (statelessEncoder) sanitize(r rune) rune          { return r }
func (statelessEncoder) finish([]byte) (int, encResult) { return 0, encOK }
func (statelessEncoder) asciiOverhead() int            { return 0 }

func newVariantEncoder(e *charset.Encoding) variantEncoder {
	switch e {
	case charset.UTF8:
		return &utf8Encoder{}
	case charset.GBK:
		return &gbkEncoder{}
	case charset.GB18030:
		return &gbkEncoder{fourByte: true}
	case charset.Big5:
		return &big5Encoder{}
	case charset.EUCJP:
		return &eucJPEncoder{}
	case charset.EUCKR:
		return &eucKREncoder{}
	case charset.ShiftJIS:
		return &shiftJISEncoder{}
	case charset.ISO2022JP:
		return &iso2022JPEncoder{}
	case charset.UTF16LE, charset.UTF16BE, charset.Replacement:
		// unreachable: NewEncoder resolves the output encoding first
		panic("transcoder: no encoder exists for " + e.Name())
	default:
		return &singleByteEncoder{table: tables.Charmap(e.Name())}
	}
}
