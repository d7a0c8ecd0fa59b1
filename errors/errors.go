package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLookup Phase = "lookup" // registry name/label resolution
	PhaseDecode Phase = "decode" // bytes to Unicode
	PhaseEncode Phase = "encode" // Unicode to bytes
	PhaseDerive Phase = "derive" // codec table derivation
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownEncoding   Kind = "unknown_encoding"
	KindMalformedSequence Kind = "malformed_sequence"
	KindUnmappableChar    Kind = "unmappable_char"
	KindNotDerived        Kind = "not_derived"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Encoding string
	Offset   int // byte offset into the stream, -1 when unknown
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Encoding != "" {
		b.WriteString(" in ")
		b.WriteString(e.Encoding)
	}

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		fmt.Fprintf(&b, "%d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Encoding sets the canonical encoding name
func (b *Builder) Encoding(name string) *Builder {
	b.err.Encoding = name
	return b
}

// Offset sets the byte offset into the stream
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownEncoding creates an error for a name or label that resolves to nothing
func UnknownEncoding(phase Phase, name string) *Error {
	return New(phase, KindUnknownEncoding).
		Value(name).
		Detail("no encoding named %q", name).
		Build()
}

// MalformedSequence creates an error for an invalid byte sequence
func MalformedSequence(encoding string, offset int, seq []byte) *Error {
	preview := seq
	if len(preview) > 16 {
		preview = preview[:16]
	}
	return New(PhaseDecode, KindMalformedSequence).
		Encoding(encoding).
		Offset(offset).
		Value(append([]byte(nil), seq...)).
		Detail("malformed byte sequence % x", preview).
		Build()
}

// UnmappableChar creates an error for a character absent from the target encoding
func UnmappableChar(encoding string, r rune) *Error {
	return New(PhaseEncode, KindUnmappableChar).
		Encoding(encoding).
		Value(r).
		Detail("character U+%04X has no representation", r).
		Build()
}

// NotDerived creates an error for a codec table that failed to derive
func NotDerived(encoding string, cause error) *Error {
	return New(PhaseDerive, KindNotDerived).
		Encoding(encoding).
		Cause(cause).
		Detail("codec table unavailable").
		Build()
}
