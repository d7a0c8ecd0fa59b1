// Package charset is the registry of character encodings defined by the
// Encoding Standard (https://encoding.spec.whatwg.org/).
//
// Every supported encoding has exactly one statically allocated *Encoding
// instance (charset.UTF8, charset.Windows1252, ...). Identity comparison is
// pointer comparison:
//
//	if charset.ForLabel([]byte("latin1")) == charset.Windows1252 { ... }
//
// # Lookup
//
// Three lookup surfaces exist, with different failure semantics:
//
//	ForLabel   - case-insensitive label/alias match, nil on miss
//	ForName    - exact canonical-name match, panics on miss
//	ForBOM     - byte-order-mark sniffing over the first bytes of a stream
//
// ForLabel implements the standard's "get an encoding" algorithm, including
// ASCII whitespace trimming and the full alias table ("l1", "latin1",
// "iso-8859-1" and "ascii" all resolve to windows-1252, as the standard
// requires).
//
// # The replacement encoding
//
// Labels for a handful of obsolete, ASCII-incompatible encodings (ISO-2022-KR,
// HZ-GB-2312, ...) resolve to the replacement pseudo-encoding, which decodes
// any non-empty stream to a single U+FFFD. Callers that want such labels to be
// treated as plain failures should use ForLabelNoReplacement.
//
// The registry is immutable after package initialization and safe for
// unsynchronized concurrent reads.
//
// Conversion itself lives in the transcoder package.
package charset
