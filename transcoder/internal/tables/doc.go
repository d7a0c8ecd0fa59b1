// Package tables supplies the per-encoding transformation data consumed by
// the transcoder state machines.
//
// The table content is not authored here. Single-byte encodings are backed
// directly by golang.org/x/text/encoding/charmap. Two-byte (DBCS) tables are
// derived once, lazily, by probing the corresponding x/text decoder over the
// encoding's lead/trail byte space; the encode direction is the inversion of
// the probed decode table. gb18030 four-byte sequences are resolved by
// per-sequence probes instead of a precomputed table.
//
// The package exposes pure lookups only. All derived tables are built under
// sync.Once and are safe for unsynchronized concurrent reads afterwards.
package tables
