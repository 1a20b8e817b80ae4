package section

import (
	"io"
	"sort"

	"github.com/kordalabs/depot/wire"
)

// TOC is the table of contents written at the tail of a depot file: the
// compression level the depot was built with, and the set of entries keyed
// by name.
//
// entry_count and size are not stored on TOC; they are derived from Entries
// at serialization time so they can never drift out of sync with the map.
type TOC struct {
	CompressionLevel int32
	Entries          map[string]EntryInfo
}

// NewTOC returns an empty TOC at the given compression level.
func NewTOC(compressionLevel int32) *TOC {
	return &TOC{
		CompressionLevel: compressionLevel,
		Entries:          make(map[string]EntryInfo),
	}
}

// SortedNames returns the entry names in ascending order, giving TOC
// serialization a deterministic byte layout regardless of map iteration order.
func (t *TOC) SortedNames() []string {
	names := make([]string, 0, len(t.Entries))
	for name := range t.Entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// totalSize sums the uncompressed Size of every non-empty entry.
func (t *TOC) totalSize() uint64 {
	var total uint64
	for _, e := range t.Entries {
		if !e.IsEmpty() {
			total += e.Size
		}
	}

	return total
}

// WriteTo writes the TOC preamble followed by each entry, name then
// EntryInfo, in sorted-by-name order.
func (t *TOC) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	if err := wire.WriteInt32(cw, t.CompressionLevel); err != nil {
		return cw.n, err
	}

	if err := wire.WriteUint64(cw, uint64(len(t.Entries))); err != nil {
		return cw.n, err
	}

	if err := wire.WriteUint64(cw, t.totalSize()); err != nil {
		return cw.n, err
	}

	for _, name := range t.SortedNames() {
		if err := wire.WriteString(cw, name); err != nil {
			return cw.n, err
		}

		if _, err := cw.Write(t.Entries[name].Bytes()); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

// ReadTOC reads a TOC previously written by WriteTo.
func ReadTOC(r io.Reader) (*TOC, error) {
	level, err := wire.ReadInt32(r)
	if err != nil {
		return nil, err
	}

	count, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}

	// size is recomputed from entries on demand; the on-disk value is read
	// only to advance past it.
	if _, err := wire.ReadUint64(r); err != nil {
		return nil, err
	}

	toc := NewTOC(level)

	for i := uint64(0); i < count; i++ {
		name, err := wire.ReadString(r)
		if err != nil {
			return nil, err
		}

		entry, err := ParseEntryInfo(r)
		if err != nil {
			return nil, err
		}

		toc.Entries[name] = entry
	}

	return toc, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	return n, err
}
