package depot

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/format"
	"github.com/kordalabs/depot/section"
	"github.com/stretchr/testify/require"
)

// memBuffer is a minimal in-memory io.ReadWriteSeeker, standing in for a
// depot file without touching the filesystem.
type memBuffer struct {
	buf []byte
	pos int64
}

func (m *memBuffer) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *memBuffer) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}

	n := copy(m.buf[m.pos:end], p)
	m.pos = end

	return n, nil
}

func (m *memBuffer) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	}

	m.pos = target

	return m.pos, nil
}

// TestHandle_S1_RoundTripSingleEntry covers S1: one small entry survives
// create/finalize/reopen/extract unchanged.
func TestHandle_S1_RoundTripSingleEntry(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem, WithCompressionLevel(3))
	require.NoError(t, err)
	require.NoError(t, h.AddNamedSizedStream("a.txt", bytes.NewReader([]byte("hello\n")), 6, nil))
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	require.Equal(t, 1, reopened.StreamCount())

	stream, ok := reopened.GetNamedStream("a.txt")
	require.True(t, ok)
	require.Equal(t, uint64(6), stream.Info.Size)

	var out bytes.Buffer
	require.NoError(t, reopened.ExtractStream(stream, &out))
	require.Equal(t, "hello\n", out.String())
}

// TestHandle_S2_SortedIteration covers S2: TOC iteration is sorted by name
// regardless of insertion order, and every entry extracts correctly.
func TestHandle_S2_SortedIteration(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)

	zPayload := bytes.Repeat([]byte{0xAA}, 1024)
	aPayload := bytes.Repeat([]byte{0x55}, 1024)

	require.NoError(t, h.AddNamedSizedStream("z", bytes.NewReader(zPayload), uint64(len(zPayload)), nil))
	require.NoError(t, h.AddNamedSizedStream("a", bytes.NewReader(aPayload), uint64(len(aPayload)), nil))
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	var names []string
	for name := range reopened.Streams() {
		names = append(names, name)
	}
	require.Equal(t, []string{"a", "z"}, names)

	for name, payload := range map[string][]byte{"a": aPayload, "z": zPayload} {
		stream, ok := reopened.GetNamedStream(name)
		require.True(t, ok)

		var out bytes.Buffer
		require.NoError(t, reopened.ExtractStream(stream, &out))
		require.Equal(t, payload, out.Bytes())
	}
}

// TestHandle_S3_EmptyEntry covers S3: a zero-byte entry round-trips as an
// empty write with the empty flag set.
func TestHandle_S3_EmptyEntry(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.addEmptyEntry("empty"))
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	require.Equal(t, 1, reopened.StreamCount())

	stream, ok := reopened.GetNamedStream("empty")
	require.True(t, ok)
	require.True(t, stream.Info.IsEmpty())

	var out bytes.Buffer
	require.NoError(t, reopened.ExtractStream(stream, &out))
	require.Equal(t, 0, out.Len())
}

// TestHandle_S4_CorruptedPayloadFailsHashCheck covers S4: flipping a byte in
// a compressed region surfaces as ErrInvalidData on extract.
func TestHandle_S4_CorruptedPayloadFailsHashCheck(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem, WithCompressionLevel(3))
	require.NoError(t, err)
	require.NoError(t, h.AddNamedSizedStream("a.txt", bytes.NewReader([]byte("hello\n")), 6, nil))
	require.NoError(t, h.Close())

	entry := h.toc.Entries["a.txt"]
	flipIdx := entry.Offset + entry.StreamSize/2
	mem.buf[flipIdx] ^= 0xFF

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	stream, ok := reopened.GetNamedStream("a.txt")
	require.True(t, ok)

	var out bytes.Buffer
	err = reopened.ExtractStream(stream, &out)
	require.ErrorIs(t, err, errs.ErrInvalidData)
}

// TestHandle_S5_BadMagicRejected covers S5: a file without the depot magic
// fails to open with ErrInvalidData.
func TestHandle_S5_BadMagicRejected(t *testing.T) {
	mem := &memBuffer{buf: append([]byte("NOTADEPOT"), make([]byte, 16)...)}

	_, err := Open(mem, ModeRead)
	require.ErrorIs(t, err, errs.ErrInvalidData)
}

// TestHandle_S6_ManyLargeCompressibleEntries covers S6: several large,
// highly compressible entries round-trip and the on-disk size reflects real
// compression.
func TestHandle_S6_ManyLargeCompressibleEntries(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem, WithCompressionLevel(10), WithWorkerThreads(4), WithFrameSize(1<<20))
	require.NoError(t, err)

	const (
		numFiles = 10
		fileSize = 4 << 20
	)

	// Highly compressible content: repeating pattern, not crypto-random.
	pattern := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, fileSize/4)

	for i := range numFiles {
		name := string(rune('a' + i))
		require.NoError(t, h.AddNamedSizedStream(name, bytes.NewReader(pattern), uint64(len(pattern)), nil))
	}

	require.NoError(t, h.Close())
	require.Less(t, len(mem.buf), numFiles*fileSize)

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	for i := range numFiles {
		name := string(rune('a' + i))
		stream, ok := reopened.GetNamedStream(name)
		require.True(t, ok)

		var out bytes.Buffer
		require.NoError(t, reopened.ExtractStream(stream, &out))
		require.Equal(t, pattern, out.Bytes())
	}
}

// TestHandle_P2_TOCDeterminism covers P2: the recorded TOC doesn't depend on
// entry insertion order. Offsets necessarily differ when entries are written
// in a different order, so this compares the order-independent parts of each
// entry (size, hash, flags) rather than raw file bytes.
func TestHandle_P2_TOCDeterminism(t *testing.T) {
	build := func(order []string) map[string]section.EntryInfo {
		mem := &memBuffer{}
		h, err := Create(mem)
		require.NoError(t, err)

		for _, name := range order {
			require.NoError(t, h.AddNamedSizedStream(name, bytes.NewReader([]byte(name)), uint64(len(name)), nil))
		}

		require.NoError(t, h.Close())

		mem.pos = 0
		reopened, err := Open(mem, ModeRead)
		require.NoError(t, err)

		entries := make(map[string]section.EntryInfo, len(order))
		for name, info := range reopened.Streams() {
			entries[name] = info
		}

		return entries
	}

	a := build([]string{"one", "two", "three"})
	b := build([]string{"three", "one", "two"})

	require.Len(t, b, len(a))

	for name, infoA := range a {
		infoB, ok := b[name]
		require.True(t, ok, "missing entry %s in second build", name)
		require.Equal(t, infoA.Size, infoB.Size)
		require.Equal(t, infoA.Hash, infoB.Hash)
		require.Equal(t, infoA.Flags, infoB.Flags)
	}
}

// TestHandle_P5_UnfinalizedRejected covers P5: opening a draft that was
// never closed fails.
func TestHandle_P5_UnfinalizedRejected(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.AddNamedSizedStream("a", bytes.NewReader([]byte("x")), 1, nil))

	mem.pos = 0
	_, err = Open(mem, ModeRead)
	require.ErrorIs(t, err, errs.ErrInvalidData)
}

// TestHandle_P7_IdempotentClose covers P7: closing twice is safe and the
// pre-close in-memory TOC matches the reopened TOC, modulo toc_offset.
func TestHandle_P7_IdempotentClose(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.AddNamedSizedStream("a", bytes.NewReader([]byte("payload")), 7, nil))

	preClose := h.toc.Entries["a"]

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	require.Equal(t, preClose, reopened.toc.Entries["a"])
}

// TestHandle_P8_HeterogeneousCodecs covers P8: entries compressed under
// different codecs all extract correctly without the caller naming a codec.
func TestHandle_P8_HeterogeneousCodecs(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem, WithCompressor(format.CompressionZstd))
	require.NoError(t, err)

	payload := []byte("mixed codec payload, repeated for compressibility. ")

	require.NoError(t, h.AddNamedSizedStream("zstd-entry", bytes.NewReader(payload), uint64(len(payload)), nil))

	h.cfg.compressor = format.CompressionS2
	require.NoError(t, h.AddNamedSizedStream("s2-entry", bytes.NewReader(payload), uint64(len(payload)), nil))

	h.cfg.compressor = format.CompressionLZ4
	require.NoError(t, h.AddNamedSizedStream("lz4-entry", bytes.NewReader(payload), uint64(len(payload)), nil))

	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	for _, name := range []string{"zstd-entry", "s2-entry", "lz4-entry"} {
		stream, ok := reopened.GetNamedStream(name)
		require.True(t, ok)

		var out bytes.Buffer
		require.NoError(t, reopened.ExtractStream(stream, &out))
		require.Equal(t, payload, out.Bytes())
	}
}

func TestHandle_ReadOnlyRejectsWrite(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	err = reopened.AddNamedSizedStream("x", bytes.NewReader([]byte("y")), 1, nil)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestHandle_ClosedHandleRejectsOperations(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	err = h.AddNamedSizedStream("x", bytes.NewReader([]byte("y")), 1, nil)
	require.ErrorIs(t, err, errs.ErrClosed)
}

func TestHandle_GetNamedStream_NotFound(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)

	_, ok := h.GetNamedStream("missing")
	require.False(t, ok)
}

func TestHandle_StreamToMemory(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)
	require.NoError(t, h.AddNamedSizedStream("a", bytes.NewReader([]byte("hello world")), 11, nil))
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	stream, ok := reopened.GetNamedStream("a")
	require.True(t, ok)

	got, err := reopened.StreamToMemory(stream)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), got)
}

func TestHandle_LargeRandomPayload(t *testing.T) {
	mem := &memBuffer{}

	h, err := Create(mem)
	require.NoError(t, err)

	payload := make([]byte, 256*1024)
	rand.New(rand.NewSource(42)).Read(payload)

	require.NoError(t, h.AddNamedSizedStream("random", bytes.NewReader(payload), uint64(len(payload)), nil))
	require.NoError(t, h.Close())

	mem.pos = 0
	reopened, err := Open(mem, ModeRead)
	require.NoError(t, err)

	stream, ok := reopened.GetNamedStream("random")
	require.True(t, ok)

	got, err := reopened.StreamToMemory(stream)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
