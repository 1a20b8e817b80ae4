package depot

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"

	"github.com/kordalabs/depot/compress"
	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/internal/hash"
	"github.com/kordalabs/depot/internal/pool"
	"github.com/kordalabs/depot/section"
)

// StreamInfo pairs an entry's name with its metadata, as returned by
// GetNamedStream and yielded by Streams.
type StreamInfo struct {
	Name string
	Info section.EntryInfo
}

// GetNamedStream looks up an entry by name. The second return value is
// false if no entry with that name exists.
func (h *Handle) GetNamedStream(name string) (StreamInfo, bool) {
	info, ok := h.toc.Entries[name]
	if !ok {
		return StreamInfo{}, false
	}

	return StreamInfo{Name: name, Info: info}, true
}

// StreamCount returns the number of entries currently recorded in the TOC.
func (h *Handle) StreamCount() int {
	return len(h.toc.Entries)
}

// Streams iterates every entry in the depot, sorted by name.
func (h *Handle) Streams() iter.Seq2[string, section.EntryInfo] {
	names := make([]string, 0, len(h.toc.Entries))
	for name := range h.toc.Entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return func(yield func(string, section.EntryInfo) bool) {
		for _, name := range names {
			if !yield(name, h.toc.Entries[name]) {
				return
			}
		}
	}
}

// ExtractStream decompresses stream's payload into w, verifying both the
// uncompressed byte count and the content hash against the entry's
// recorded metadata. Every byte delivered to w is hashed, including a
// trimmed final chunk, so the computed hash always matches what was
// actually written.
//
// ExtractStream requires a readable Handle.
func (h *Handle) ExtractStream(stream StreamInfo, w io.Writer) error {
	if err := h.checkReadable(); err != nil {
		return err
	}

	entry := stream.Info

	if entry.IsEmpty() {
		return nil
	}

	if _, err := h.reader.Seek(int64(entry.Offset), io.SeekStart); err != nil { //nolint:gosec
		return err
	}

	limitedFrame := io.LimitReader(h.reader, int64(entry.StreamSize)) //nolint:gosec
	peeked := bufio.NewReader(limitedFrame)

	kind, err := compress.DetectCodec(peeked)
	if err != nil {
		if errors.Is(err, errs.ErrUnknownCompressor) {
			return fmt.Errorf("%s: unrecognized compression frame: %w", stream.Name, errs.ErrInvalidData)
		}

		return err
	}

	codec, err := compress.ByKind(kind)
	if err != nil {
		return err
	}

	dec, err := codec.NewDecoder(peeked)
	if err != nil {
		return err
	}
	defer dec.Close()

	digest := hash.New()
	tee := io.TeeReader(dec, digest)
	limited := io.LimitReader(tee, int64(entry.Size)) //nolint:gosec

	scratch := pool.GetExtractBuffer()
	defer pool.PutExtractBuffer(scratch)
	scratch.ExtendOrGrow(pool.ExtractBufferDefaultSize)
	frame := scratch.Bytes()

	var written uint64

	for {
		n, readErr := limited.Read(frame)
		if n > 0 {
			if _, werr := w.Write(frame[:n]); werr != nil {
				return werr
			}

			written += uint64(n)
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return fmt.Errorf("%s: corrupt compressed payload: %w", stream.Name, errs.ErrInvalidData)
		}
	}

	if written != entry.Size {
		return fmt.Errorf("%s: uncompressed size mismatch, expected %d got %d: %w",
			stream.Name, entry.Size, written, errs.ErrInvalidData)
	}

	if digest.Sum64() != entry.Hash {
		return fmt.Errorf("%s: content hash mismatch: %w", stream.Name, errs.ErrInvalidData)
	}

	return nil
}

// StreamToMemory is a convenience wrapper around ExtractStream that returns
// the decompressed payload as a byte slice.
func (h *Handle) StreamToMemory(stream StreamInfo) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, stream.Info.Size))

	if err := h.ExtractStream(stream, buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
