// Package wire provides the primitive binary codec shared by the depot header,
// TOC, and entry records: fixed-width big-endian integers, 32-bit length-prefixed
// UTF-8 strings, and a packed 64-bit timestamp+timezone word.
//
// Every function reads or writes directly against an io.Reader/io.Writer rather
// than accumulating into an in-memory buffer first, since depot records are
// interleaved with compressed stream payloads at arbitrary offsets inside a
// single seekable handle.
package wire
