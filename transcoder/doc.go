// Package transcoder converts byte streams between the Web's legacy
// character encodings and Unicode.
//
// This package implements the conversion side of the WHATWG Encoding
// Standard: decoding any of its encodings to UTF-8 or UTF-16, and encoding
// Unicode text to every encoding with an encoder. Encoding identities and
// label resolution live in the charset package.
//
// # Conversion Model
//
// All conversion is incremental over caller-supplied buffers:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ bytes ──→ [Decoder] ──→ UTF-8 / UTF-16 code units        │
//	│ UTF-8 / UTF-16 code units ──→ [Encoder] ──→ bytes        │
//	└──────────────────────────────────────────────────────────┘
//
// Each call consumes a prefix of src, fills a prefix of dst and reports a
// Status:
//
//	InputEmpty  - src fully processed; supply more input
//	OutputFull  - dst exhausted; supply more output space
//	Malformed   - invalid byte sequence (WithoutReplacement decodes only)
//	Unmappable  - unrepresentable character (WithoutReplacement encodes only)
//
// Input may be split at any byte boundary; partial sequences are carried
// across calls. The final chunk is flagged with last=true, which flushes
// pending state and, for ISO-2022-JP output, returns the stream to ASCII.
//
// # Key Types
//
//	Decoder  - One stream, bytes to Unicode, with BOM handling
//	Encoder  - One stream, Unicode to bytes, with NCR substitution
//	Status   - Why a conversion call returned
//
// # Error Policies
//
// The default calls substitute: decoders write U+FFFD for each malformed
// sequence, encoders write a decimal numeric character reference such as
// &#8364; for each unmappable character, and both report whether they did.
// The *WithoutReplacement calls stop at the first fault instead and leave
// the caller in control.
//
// # Buffer Sizing
//
// The Max* queries bound the output of a single call over n further units
// of input, counting state buffered by earlier calls:
//
//	n := dec.MaxUTF8BufferLength(len(chunk))
//	dst := make([]byte, n)
//	status, read, written, hadErrors := dec.DecodeToUTF8(chunk, dst, false)
//
// A dst at least that long never observes OutputFull on that call.
//
// # Single-Shot Layer
//
// Decode, DecodeWithBOMRemoval, DecodeWithoutBOMHandling and Encode wrap
// the incremental types for whole-buffer conversion, allocating internally.
package transcoder
