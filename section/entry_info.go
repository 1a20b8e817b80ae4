package section

import (
	"bytes"
	"io"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/format"
	"github.com/kordalabs/depot/wire"
)

// EntryInfoSize is the fixed on-disk size of EntryInfo in bytes.
const EntryInfoSize = 56

// EmptyHash is the sentinel EntryInfo.Hash value recorded for empty entries,
// which have no compressed payload to hash.
const EmptyHash uint64 = 0xFFFFFFFFFFFFFFFF

// EntryInfo is the fixed-size record describing one stored entry: where its
// compressed payload lives, its sizes, flags, timestamps, and content hash.
type EntryInfo struct {
	Offset     uint64
	Size       uint64
	StreamSize uint64
	Flags      format.EntryFlag
	CreateTS   wire.Timestamp
	ModTS      wire.Timestamp
	Hash       uint64
}

// IsEmpty reports whether this entry represents a zero-byte source stream.
func (e EntryInfo) IsEmpty() bool {
	return e.Flags.IsEmpty()
}

// Bytes serializes e into exactly EntryInfoSize bytes.
func (e EntryInfo) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(EntryInfoSize)

	_ = wire.WriteUint64(&buf, e.Offset)
	_ = wire.WriteUint64(&buf, e.Size)
	_ = wire.WriteUint64(&buf, e.StreamSize)
	_ = wire.WriteUint64(&buf, uint64(e.Flags))
	_ = wire.WriteTimestamp(&buf, e.CreateTS)
	_ = wire.WriteTimestamp(&buf, e.ModTS)
	_ = wire.WriteUint64(&buf, e.Hash)

	return buf.Bytes()
}

// ParseEntryInfo reads an EntryInfo from r.
func ParseEntryInfo(r io.Reader) (EntryInfo, error) {
	raw := make([]byte, EntryInfoSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return EntryInfo{}, err
	}

	return ParseEntryInfoBytes(raw)
}

// ParseEntryInfoBytes parses an EntryInfo from exactly EntryInfoSize bytes.
//
// It fails with errs.ErrInvalidEntrySize if data is not exactly EntryInfoSize
// bytes.
func ParseEntryInfoBytes(data []byte) (EntryInfo, error) {
	if len(data) != EntryInfoSize {
		return EntryInfo{}, errs.ErrInvalidEntrySize
	}

	var e EntryInfo

	r := bytes.NewReader(data)

	offset, err := wire.ReadUint64(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.Offset = offset

	size, err := wire.ReadUint64(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.Size = size

	streamSize, err := wire.ReadUint64(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.StreamSize = streamSize

	flags, err := wire.ReadUint64(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.Flags = format.EntryFlag(flags)

	createTS, err := wire.ReadTimestamp(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.CreateTS = createTS

	modTS, err := wire.ReadTimestamp(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.ModTS = modTS

	hash, err := wire.ReadUint64(r)
	if err != nil {
		return EntryInfo{}, err
	}
	e.Hash = hash

	return e, nil
}
