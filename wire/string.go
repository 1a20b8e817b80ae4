package wire

import (
	"fmt"
	"io"
)

// MaxStringLength caps the length of a length-prefixed string record to guard
// the decoder against a corrupted or adversarial 32-bit length field driving an
// unbounded allocation.
const MaxStringLength = 1 << 24 // 16 MiB

// WriteString writes s as a 32-bit big-endian length prefix followed by its raw
// UTF-8 bytes, with no terminator.
func WriteString(w io.Writer, s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("wire: string length %d exceeds maximum %d", len(s), MaxStringLength)
	}

	if err := WriteUint32(w, uint32(len(s))); err != nil { //nolint:gosec
		return err
	}

	_, err := io.WriteString(w, s)

	return err
}

// ReadString reads a 32-bit big-endian length prefix followed by that many
// UTF-8 bytes.
func ReadString(r io.Reader) (string, error) {
	length, err := ReadUint32(r)
	if err != nil {
		return "", err
	}

	if length > MaxStringLength {
		return "", fmt.Errorf("wire: string length %d exceeds maximum %d", length, MaxStringLength)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}
