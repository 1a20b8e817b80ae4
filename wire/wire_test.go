package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint64(&buf, 0xDEADBEEFCAFEBABE))
	require.Equal(t, 8, buf.Len())

	got, err := ReadUint64(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0xDEADBEEFCAFEBABE), got)
}

func TestUint64_BigEndianOnWire(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint64(&buf, 1))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, buf.Bytes())
}

func TestUint32_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 0xFFFFFFFF))

	got, err := ReadUint32(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), got)
}

func TestReadUint64_ShortRead(t *testing.T) {
	_, err := ReadUint64(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestString_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "a.txt"))

	got, err := ReadString(&buf)
	require.NoError(t, err)
	require.Equal(t, "a.txt", got)
}

func TestString_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, ""))

	got, err := ReadString(&buf)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestString_TooLong(t *testing.T) {
	err := WriteString(&bytes.Buffer{}, strings.Repeat("x", MaxStringLength+1))
	require.Error(t, err)
}

func TestTimestamp_PackUnpack(t *testing.T) {
	ts := Timestamp{Seconds: 1_700_000_000, TZOffset: -18000}
	got := Unpack(ts.Pack())
	require.Equal(t, ts, got)
}

func TestTimestamp_NegativeSeconds(t *testing.T) {
	ts := Timestamp{Seconds: -1, TZOffset: 0}
	got := Unpack(ts.Pack())
	require.Equal(t, ts, got)
}

func TestTimestamp_WriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ts := Now()
	require.NoError(t, WriteTimestamp(&buf, ts))

	got, err := ReadTimestamp(&buf)
	require.NoError(t, err)
	require.Equal(t, ts, got)
}
