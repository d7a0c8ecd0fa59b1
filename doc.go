// Package textcodec provides streaming conversion between the character
// encodings of the Web and Unicode.
//
// This library implements the encodings, labels and conversion behavior of
// the WHATWG Encoding Standard: everything needed to consume legacy text on
// the Web and to produce it for legacy consumers, with incremental operation
// over caller-supplied buffers.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	textcodec/           Root package documentation
//	├── charset/         Encoding identities, label and BOM resolution
//	├── transcoder/      Incremental decoders, encoders and one-shot helpers
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Decode a byte stream whose encoding came from a header or meta tag:
//
//	enc := charset.ForLabel([]byte(" UTF-8 "))
//	if enc == nil {
//	    log.Fatal("unknown encoding label")
//	}
//	text, used, hadErrors := transcoder.Decode(enc, data)
//	fmt.Println(used.Name(), hadErrors, text)
//
// Encode text for a legacy consumer:
//
//	data, used, hadErrors := transcoder.Encode(charset.ShiftJIS, "こんにちは")
//
// # Incremental Conversion
//
// For streams that do not fit in memory, the transcoder package exposes
// Decoder and Encoder with an explicit buffer protocol: each call consumes a
// prefix of the input, fills a prefix of the output and reports why it
// stopped, so conversion composes with any I/O model.
//
// # Error Policies
//
// Malformed input decodes to U+FFFD and unmappable characters encode to
// decimal numeric character references by default; the *WithoutReplacement
// variants stop at the first fault instead.
//
// # Thread Safety
//
// Encoding values are immutable and safe for concurrent use. Decoder and
// Encoder carry per-stream state and must be confined to one goroutine.
package textcodec
