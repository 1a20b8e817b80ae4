// Package format holds the small value types shared by the depot wire format:
// the compression algorithm tag and the per-entry flag bitfield.
package format

// CompressionKind identifies the block-compression algorithm used to frame an
// entry's payload. It is not itself part of the on-disk EntryInfo; the codec
// actually used for a given entry is recovered at extract time by sniffing the
// stream's frame magic (see package compress).
type CompressionKind uint8

const (
	CompressionNone CompressionKind = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (k CompressionKind) String() string {
	switch k {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// EntryFlag is the bitfield stored in EntryInfo.Flags.
type EntryFlag uint64

const (
	// FlagEmpty marks an entry with a zero-byte source: no compressed payload
	// follows, and Size/StreamSize are both 0.
	FlagEmpty EntryFlag = 1 << 0
)

// IsEmpty reports whether the empty-entry bit is set.
func (f EntryFlag) IsEmpty() bool {
	return f&FlagEmpty != 0
}
