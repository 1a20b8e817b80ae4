package wire

import (
	"io"

	"github.com/kordalabs/depot/endian"
)

// Engine is the endian engine used for the depot wire format. The depot format
// mandates big-endian integers (§3 of the format spec); the engine abstraction
// is retained rather than hard-coding encoding/binary.BigEndian calls so the
// rest of the codebase stays consistent with how section headers resolve their
// byte order through an EndianEngine value instead of a bare package function.
func Engine() endian.EndianEngine {
	return endian.GetBigEndianEngine()
}

// WriteUint16 writes v as a 2-byte big-endian integer to w.
func WriteUint16(w io.Writer, v uint16) error {
	var b [2]byte
	Engine().PutUint16(b[:], v)
	_, err := w.Write(b[:])

	return err
}

// ReadUint16 reads a 2-byte big-endian integer from r.
func ReadUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return Engine().Uint16(b[:]), nil
}

// WriteUint32 writes v as a 4-byte big-endian integer to w.
func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	Engine().PutUint32(b[:], v)
	_, err := w.Write(b[:])

	return err
}

// ReadUint32 reads a 4-byte big-endian integer from r.
func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return Engine().Uint32(b[:]), nil
}

// WriteUint64 writes v as an 8-byte big-endian integer to w.
func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	Engine().PutUint64(b[:], v)
	_, err := w.Write(b[:])

	return err
}

// ReadUint64 reads an 8-byte big-endian integer from r.
func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return Engine().Uint64(b[:]), nil
}

// WriteInt32 writes v as a 4-byte big-endian signed integer to w.
func WriteInt32(w io.Writer, v int32) error {
	return WriteUint32(w, uint32(v))
}

// ReadInt32 reads a 4-byte big-endian signed integer from r.
func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	return int32(v), err
}
