// Package errs centralizes the sentinel errors returned by the depot engine.
//
// Callers should compare against these with errors.Is; call sites wrap them with
// fmt.Errorf("...: %w", ...) to attach the offending path or entry name.
package errs

import "errors"

var (
	// ErrNotFound is returned when an input path does not exist.
	ErrNotFound = errors.New("depot: not found")

	// ErrInvalidInput is returned when an input path is a directory, symlink, or
	// other non-regular file.
	ErrInvalidInput = errors.New("depot: invalid input")

	// ErrPermissionDenied is returned when a mutating operation is attempted on a
	// handle opened in read-only mode.
	ErrPermissionDenied = errors.New("depot: permission denied")

	// ErrInvalidData is returned when on-disk data fails to parse or verify: a bad
	// magic number, a truncated header or TOC, a size mismatch, or a hash mismatch.
	ErrInvalidData = errors.New("depot: invalid data")

	// ErrInvalidHeaderSize is returned when a header byte slice is not exactly
	// section.HeaderSize bytes.
	ErrInvalidHeaderSize = errors.New("depot: invalid header size")

	// ErrInvalidEntrySize is returned when an entry-info byte slice is not exactly
	// section.EntryInfoSize bytes.
	ErrInvalidEntrySize = errors.New("depot: invalid entry info size")

	// ErrClosed is returned when an operation is attempted on a handle that has
	// already been finalized.
	ErrClosed = errors.New("depot: handle closed")

	// ErrUnknownCompressor is returned when a format.CompressionKind has no registered
	// codec, or no registered codec's frame magic matches the stream being read.
	ErrUnknownCompressor = errors.New("depot: unknown compression codec")

	// ErrStreamNotFound is returned by operations that look up an entry by name.
	ErrStreamNotFound = errors.New("depot: stream not found")
)
