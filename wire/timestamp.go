package wire

import (
	"io"
	"time"
)

// Timestamp is the packed 64-bit timestamp+timezone word used for EntryInfo's
// create_ts and mod_ts fields: the upper 32 bits are seconds since the Unix
// epoch (signed), the lower 32 bits are the timezone offset from UTC in
// seconds (signed).
//
// Decoding a Timestamp whose seconds value does not correspond to a valid
// calendar date is not an error at this level; String returns "invalid
// timestamp" but the value still round-trips byte-for-byte through Pack/Unpack.
type Timestamp struct {
	Seconds  int32
	TZOffset int32
}

// Now returns the current local time packed as a Timestamp.
func Now() Timestamp {
	now := time.Now()
	_, offset := now.Zone()

	return Timestamp{
		Seconds:  int32(now.Unix()), //nolint:gosec
		TZOffset: int32(offset),     //nolint:gosec
	}
}

// Pack encodes the timestamp as (seconds << 32) | (tz_offset & 0xFFFFFFFF).
func (t Timestamp) Pack() uint64 {
	return uint64(uint32(t.Seconds))<<32 | uint64(uint32(t.TZOffset))
}

// Unpack decodes a packed 64-bit timestamp word.
func Unpack(v uint64) Timestamp {
	return Timestamp{
		Seconds:  int32(v >> 32),          //nolint:gosec
		TZOffset: int32(v & 0xFFFF_FFFF), //nolint:gosec
	}
}

// Time converts the Timestamp to a time.Time in its recorded timezone offset.
func (t Timestamp) Time() time.Time {
	loc := time.FixedZone("", int(t.TZOffset))
	return time.Unix(int64(t.Seconds), 0).In(loc)
}

// String renders the timestamp, or "invalid timestamp" if its seconds value
// cannot be represented as a valid calendar date in Go's time package (which
// in practice never happens for the int32 range, but mirrors the original
// format's documented leniency at the codec level).
func (t Timestamp) String() string {
	tm := t.Time()
	if tm.Year() < 0 || tm.Year() > 9999 {
		return "invalid timestamp"
	}

	return tm.Format(time.RFC3339)
}

// WriteTimestamp writes t as a packed 64-bit big-endian word.
func WriteTimestamp(w io.Writer, t Timestamp) error {
	return WriteUint64(w, t.Pack())
}

// ReadTimestamp reads a packed 64-bit big-endian timestamp word.
func ReadTimestamp(r io.Reader) (Timestamp, error) {
	v, err := ReadUint64(r)
	if err != nil {
		return Timestamp{}, err
	}

	return Unpack(v), nil
}
