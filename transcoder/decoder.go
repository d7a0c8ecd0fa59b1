package transcoder

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/textcodec/charset"
)

type bomMode int

const (
	bomSniff bomMode = iota
	bomRemoval
	bomOff
)

// Decoder converts a byte stream in one encoding into UTF-8 or UTF-16,
// incrementally and with caller-supplied buffers. A Decoder is good for one
// stream; it is not safe for concurrent use.
//
// Each call consumes a prefix of src, fills a prefix of dst, and reports why
// it stopped. Pass last=true with the final (possibly empty) chunk; the
// stream is finished once a call with last=true returns InputEmpty, and the
// Decoder must not be used after that.
type Decoder struct {
	enc   *charset.Encoding
	inner variantDecoder

	mode    bomMode
	bomWant []byte
	bomBuf  [3]byte
	bomLen  int
	bomDone bool
	replay  []byte // sniffed bytes that turned out to be content

	pend    []rune // decoded scalars that did not fit dst
	pendBuf [2]rune

	malformedSeq []byte
}

// NewDecoder returns a Decoder that sniffs for a byte order mark and, when
// one for UTF-8, UTF-16LE or UTF-16BE is found, decodes the stream as that
// encoding instead of e.
func NewDecoder(e *charset.Encoding) *Decoder {
	return &Decoder{enc: e, inner: newVariantDecoder(e), mode: bomSniff}
}

// NewDecoderWithBOMRemoval returns a Decoder that strips a leading byte
// order mark only when it matches e. It never switches encodings.
func NewDecoderWithBOMRemoval(e *charset.Encoding) *Decoder {
	d := &Decoder{enc: e, inner: newVariantDecoder(e), mode: bomRemoval}
	switch e {
	case charset.UTF8:
		d.bomWant = []byte{0xEF, 0xBB, 0xBF}
	case charset.UTF16LE:
		d.bomWant = []byte{0xFF, 0xFE}
	case charset.UTF16BE:
		d.bomWant = []byte{0xFE, 0xFF}
	default:
		d.bomDone = true
	}
	return d
}

// NewDecoderWithoutBOMHandling returns a Decoder that treats a leading byte
// order mark as ordinary content.
func NewDecoderWithoutBOMHandling(e *charset.Encoding) *Decoder {
	return &Decoder{enc: e, inner: newVariantDecoder(e), mode: bomOff, bomDone: true}
}

// Encoding returns the encoding currently being decoded. It changes at most
// once, when BOM sniffing selects a different encoding.
func (d *Decoder) Encoding() *charset.Encoding { return d.enc }

// Malformed returns the byte sequence behind the most recent Malformed
// status. The slice is valid until the next decode call.
func (d *Decoder) Malformed() []byte { return d.malformedSeq }

// MaxUTF16BufferLength returns a dst length (in code units) guaranteed to
// hold the output of one DecodeToUTF16 call over n further input bytes.
func (d *Decoder) MaxUTF16BufferLength(n int) int {
	return d.inner.maxUTF16(n+d.unprocessed()) + 2*len(d.pend)
}

// MaxUTF8BufferLength returns a dst length guaranteed to hold the output of
// one DecodeToUTF8 call over n further input bytes.
func (d *Decoder) MaxUTF8BufferLength(n int) int {
	return d.inner.maxUTF8(n+d.unprocessed()) + 4*len(d.pend)
}

// MaxUTF8BufferLengthWithoutReplacement is MaxUTF8BufferLength for the
// DecodeToUTF8WithoutReplacement call, which never writes U+FFFD.
func (d *Decoder) MaxUTF8BufferLengthWithoutReplacement(n int) int {
	return d.inner.maxUTF8NoRep(n+d.unprocessed()) + 4*len(d.pend)
}

// unprocessed counts bytes consumed from src by earlier calls but not yet
// run through the state machine.
func (d *Decoder) unprocessed() int {
	n := len(d.replay)
	if !d.bomDone {
		n += d.bomLen
	}
	return n
}

// DecodeToUTF8 decodes with malformed sequences replaced by U+FFFD. It
// returns the status, the bytes read from src, the bytes written to dst, and
// whether any replacement happened during this call.
func (d *Decoder) DecodeToUTF8(src, dst []byte, last bool) (Status, int, int, bool) {
	sink := &utf8Sink{dst: dst}
	status, read, hadErrors := d.decode(src, sink, last, true)
	return status, read, sink.n, hadErrors
}

// DecodeToUTF8WithoutReplacement decodes, stopping with Malformed at the
// first invalid sequence. The offending bytes are consumed and available
// from Malformed; decoding may resume with the unconsumed remainder of src.
func (d *Decoder) DecodeToUTF8WithoutReplacement(src, dst []byte, last bool) (Status, int, int) {
	sink := &utf8Sink{dst: dst}
	status, read, _ := d.decode(src, sink, last, false)
	return status, read, sink.n
}

// DecodeToUTF16 is DecodeToUTF8 with UTF-16 code unit output.
func (d *Decoder) DecodeToUTF16(src []byte, dst []uint16, last bool) (Status, int, int, bool) {
	sink := &utf16Sink{dst: dst}
	status, read, hadErrors := d.decode(src, sink, last, true)
	return status, read, sink.n, hadErrors
}

// DecodeToUTF16WithoutReplacement is DecodeToUTF8WithoutReplacement with
// UTF-16 code unit output.
func (d *Decoder) DecodeToUTF16WithoutReplacement(src []byte, dst []uint16, last bool) (Status, int, int) {
	sink := &utf16Sink{dst: dst}
	status, read, _ := d.decode(src, sink, last, false)
	return status, read, sink.n
}

func (d *Decoder) decode(src []byte, sink outputSink, last, replace bool) (Status, int, bool) {
	read := 0
	hadErrors := false

	for len(d.pend) > 0 {
		if !sink.writeRune(d.pend[0]) {
			return OutputFull, read, hadErrors
		}
		d.pend = d.pend[1:]
	}

	if !d.bomDone {
		n, decided := d.sniff(src, last)
		read += n
		src = src[n:]
		if !decided {
			return InputEmpty, read, hadErrors
		}
	}

	for {
		var res nextResult
		fromReplay := len(d.replay) > 0
		if fromReplay {
			res = d.inner.next(d.replay, last && len(src) == 0)
			d.replay = d.replay[res.consumed:]
		} else {
			res = d.inner.next(src, last)
			read += res.consumed
			src = src[res.consumed:]
		}
		switch res.kind {
		case nextNeedMore:
			if fromReplay {
				continue
			}
			return InputEmpty, read, hadErrors
		case nextRune:
			if !d.deliver(sink, res.r, res.r2) {
				return OutputFull, read, hadErrors
			}
		case nextMalformed:
			if len(res.restore) > 0 {
				replay := make([]byte, 0, len(res.restore)+len(d.replay))
				replay = append(replay, res.restore...)
				d.replay = append(replay, d.replay...)
			}
			if !replace {
				d.malformedSeq = append(d.malformedSeq[:0], res.seq...)
				return Malformed, read, hadErrors
			}
			hadErrors = true
			if !d.deliver(sink, 0xFFFD, -1) {
				return OutputFull, read, hadErrors
			}
		}
	}
}

// deliver writes one or two scalars, whole or not at all; scalars that do
// not fit are staged and flushed by the next call, so the read position
// never moves backwards.
func (d *Decoder) deliver(sink outputSink, r, r2 rune) bool {
	if !sink.writeRune(r) {
		d.pend = append(d.pendBuf[:0], r)
		if r2 >= 0 {
			d.pend = append(d.pend, r2)
		}
		return false
	}
	if r2 >= 0 && !sink.writeRune(r2) {
		d.pend = append(d.pendBuf[:0], r2)
		return false
	}
	return true
}

// sniff consumes BOM-prefix bytes from src. It returns the count consumed
// and whether the BOM question is settled; undecided means src ended inside
// a possible BOM and more input is needed.
func (d *Decoder) sniff(src []byte, last bool) (int, bool) {
	n := 0
	if d.mode == bomRemoval {
		for d.bomLen < len(d.bomWant) && n < len(src) {
			if src[n] != d.bomWant[d.bomLen] {
				d.settleBOM()
				return n, true
			}
			d.bomBuf[d.bomLen] = src[n]
			d.bomLen++
			n++
		}
		if d.bomLen == len(d.bomWant) {
			d.bomDone = true
			d.bomLen = 0
			return n, true
		}
		if last {
			d.settleBOM()
			return n, true
		}
		return n, false
	}

	for d.bomLen < 3 && n < len(src) {
		b := src[n]
		if !bomPrefix(d.bomBuf[:d.bomLen], b) {
			d.settleBOM()
			return n, true
		}
		d.bomBuf[d.bomLen] = b
		d.bomLen++
		n++
		if e, size := charset.ForBOM(d.bomBuf[:d.bomLen]); e != nil && size == d.bomLen {
			d.morph(e)
			d.bomDone = true
			d.bomLen = 0
			return n, true
		}
	}
	if last {
		d.settleBOM()
		return n, true
	}
	return n, false
}

// settleBOM concludes that the buffered prefix was content, not a BOM.
func (d *Decoder) settleBOM() {
	d.bomDone = true
	d.replay = d.bomBuf[:d.bomLen]
	d.bomLen = 0
}

// bomPrefix reports whether prefix followed by b is still a prefix of some
// byte order mark.
func bomPrefix(prefix []byte, b byte) bool {
	switch len(prefix) {
	case 0:
		return b == 0xEF || b == 0xFF || b == 0xFE
	case 1:
		switch prefix[0] {
		case 0xEF:
			return b == 0xBB
		case 0xFF:
			return b == 0xFE
		case 0xFE:
			return b == 0xFF
		}
	case 2:
		return prefix[0] == 0xEF && prefix[1] == 0xBB && b == 0xBF
	}
	return false
}

func (d *Decoder) morph(e *charset.Encoding) {
	if e == d.enc {
		return
	}
	Logger().Debug("byte order mark selected encoding",
		zap.String("bound", d.enc.Name()),
		zap.String("detected", e.Name()))
	d.enc = e
	d.inner = newVariantDecoder(e)
}

// outputSink abstracts the two output forms. writeRune writes one whole
// scalar value or nothing.
type outputSink interface {
	writeRune(r rune) bool
}

type utf8Sink struct {
	dst []byte
	n   int
}

func (s *utf8Sink) writeRune(r rune) bool {
	size := utf8.RuneLen(r)
	if len(s.dst)-s.n < size {
		return false
	}
	s.n += utf8.EncodeRune(s.dst[s.n:], r)
	return true
}

type utf16Sink struct {
	dst []uint16
	n   int
}

func (s *utf16Sink) writeRune(r rune) bool {
	if r <= 0xFFFF {
		if len(s.dst) == s.n {
			return false
		}
		s.dst[s.n] = uint16(r)
		s.n++
		return true
	}
	if len(s.dst)-s.n < 2 {
		return false
	}
	r -= 0x10000
	s.dst[s.n] = 0xD800 + uint16(r>>10)
	s.dst[s.n+1] = 0xDC00 + uint16(r&0x3FF)
	s.n += 2
	return true
}
