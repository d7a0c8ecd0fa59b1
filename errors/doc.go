// Package errors provides structured error types for the textcodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: encoding name, byte offset, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformedSequence).
//		Encoding("shift_jis").
//		Offset(42).
//		Detail("truncated two-byte sequence").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownEncoding(errors.PhaseLookup, "utf-9")
//	err := errors.MalformedSequence("utf-8", 7, []byte{0xff})
//
// Note that the transcoder package's Status values (OutputFull in particular)
// are ordinary control flow, not errors; only genuinely fatal conditions are
// represented with this package.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
