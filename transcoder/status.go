package transcoder

// Status reports why an incremental decode or encode call returned.
//
// OutputFull is ordinary control flow, not an error: the caller supplies a
// fresh or larger output buffer and calls again with the unconsumed remainder
// of the input. Malformed and Unmappable are returned only by the
// *WithoutReplacement calls; the default calls substitute and continue.
type Status int

const (
	// InputEmpty means every byte or code unit of src was processed.
	InputEmpty Status = iota

	// OutputFull means dst was filled close enough to capacity that one more
	// unit of input might not fit.
	OutputFull

	// Malformed means the decoder hit an invalid byte sequence. The sequence
	// is available from Decoder.Malformed.
	Malformed

	// Unmappable means the encoder hit a character the target encoding cannot
	// represent. The character is available from Encoder.Unmappable and is
	// left unconsumed in src.
	Unmappable
)

func (s Status) String() string {
	switch s {
	case InputEmpty:
		return "input-empty"
	case OutputFull:
		return "output-full"
	case Malformed:
		return "malformed"
	case Unmappable:
		return "unmappable"
	}
	return "unknown"
}
