package section

import (
	"bytes"
	"io"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/wire"
)

// Magic is the fixed 8-byte identifier at the start of every depot file.
const Magic = "DEPOTARC"

// Version is the highest wire format version this implementation understands.
const Version uint16 = 1

// UnfinalizedTOCOffset is the sentinel TOCOffset value a draft depot carries
// until finalize rewrites the header with the true offset.
const UnfinalizedTOCOffset uint64 = 0xFFFFFFFFFFFFFFFF

// HeaderSize is the fixed on-disk size of Header in bytes: 8-byte magic,
// 2-byte version, 8-byte toc_offset.
const HeaderSize = 18

// Header is the fixed-size record at byte offset 0 of a depot file.
type Header struct {
	Version   uint16
	TOCOffset uint64
}

// Bytes serializes h into exactly HeaderSize bytes, magic first.
func (h Header) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)

	buf.WriteString(Magic)
	_ = wire.WriteUint16(&buf, h.Version)
	_ = wire.WriteUint64(&buf, h.TOCOffset)

	return buf.Bytes()
}

// ParseHeader reads and validates a Header from r.
//
// It fails with errs.ErrInvalidData if the magic does not match or the
// version exceeds Version.
func ParseHeader(r io.Reader) (Header, error) {
	raw := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, err
	}

	return ParseHeaderBytes(raw)
}

// ParseHeaderBytes parses a Header from exactly HeaderSize bytes.
//
// It fails with errs.ErrInvalidHeaderSize if data is not exactly HeaderSize
// bytes, errs.ErrInvalidData if the magic does not match or the version
// exceeds Version.
func ParseHeaderBytes(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	if string(data[:len(Magic)]) != Magic {
		return Header{}, errs.ErrInvalidData
	}

	r := bytes.NewReader(data[len(Magic):])

	version, err := wire.ReadUint16(r)
	if err != nil {
		return Header{}, err
	}

	if version > Version {
		return Header{}, errs.ErrInvalidData
	}

	tocOffset, err := wire.ReadUint64(r)
	if err != nil {
		return Header{}, err
	}

	return Header{Version: version, TOCOffset: tocOffset}, nil
}
