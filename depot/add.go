package depot

import (
	"fmt"
	"io"
	"os"

	"github.com/kordalabs/depot/compress"
	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/format"
	"github.com/kordalabs/depot/internal/hash"
	"github.com/kordalabs/depot/internal/pool"
	"github.com/kordalabs/depot/section"
	"github.com/kordalabs/depot/wire"
)

// AddFile reads path from the local filesystem and appends it to the depot
// under its own path as the entry name. progress, if non-nil, is called
// after every frame with (bytesWritten, totalSize).
//
// AddFile requires a writable Handle; it returns errs.ErrPermissionDenied
// otherwise, errs.ErrNotFound if path does not exist, and errs.ErrInvalidInput
// if path is a directory, symlink, or other non-regular file. The last two are
// wrapped with path.
func (h *Handle) AddFile(path string, progress func(written, total uint64)) error {
	if err := h.checkWritable(); err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, errs.ErrNotFound)
		}

		return err
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, errs.ErrInvalidInput)
	}

	if info.Size() == 0 {
		return h.addEmptyEntry(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return h.AddNamedSizedStream(path, f, uint64(info.Size()), progress) //nolint:gosec
}

// AddNamedSizedStream reads size bytes from r, compresses them with the
// handle's configured codec, and records an EntryInfo for name in the
// in-memory TOC. The content hash is computed in a single pass, teed off
// the same bytes fed to the compressor, rather than re-reading r afterward.
//
// AddNamedSizedStream requires a writable Handle.
func (h *Handle) AddNamedSizedStream(name string, r io.Reader, size uint64, progress func(written, total uint64)) error {
	if err := h.checkWritable(); err != nil {
		return err
	}

	before, err := h.reader.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	codec, err := compress.ByKind(h.cfg.compressor)
	if err != nil {
		return err
	}

	counter := &countingWriter{w: h.writer}

	enc, err := codec.NewEncoder(counter, compress.EncodeOptions{
		Level:         int(h.cfg.compressionLevel),
		WorkerThreads: h.cfg.workerThreads,
		Checksum:      true,
	})
	if err != nil {
		return err
	}

	digest := hash.New()
	tee := io.TeeReader(r, digest)

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)
	buf.ExtendOrGrow(h.cfg.frameSize)
	frame := buf.Bytes()

	var written uint64

	for {
		n, readErr := tee.Read(frame)
		if n > 0 {
			if _, err := enc.Write(frame[:n]); err != nil {
				return err
			}

			written += uint64(n)
			if progress != nil {
				progress(written, size)
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return readErr
		}
	}

	if err := enc.Close(); err != nil {
		return err
	}

	now := wire.Now()
	entry := section.EntryInfo{
		Offset:     uint64(before), //nolint:gosec
		Size:       size,
		StreamSize: counter.n,
		CreateTS:   now,
		ModTS:      now,
		Hash:       digest.Sum64(),
	}

	h.toc.Entries[name] = entry

	return nil
}

// addEmptyEntry records an entry for a zero-byte source without writing
// anything to the payload region: offset is the handle's current append
// position, size and stream_size are both 0, and hash is the empty-entry
// sentinel.
func (h *Handle) addEmptyEntry(name string) error {
	before, err := h.reader.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	now := wire.Now()
	h.toc.Entries[name] = section.EntryInfo{
		Offset:   uint64(before), //nolint:gosec
		Flags:    format.FlagEmpty,
		CreateTS: now,
		ModTS:    now,
		Hash:     section.EmptyHash,
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += uint64(n)

	return n, err
}
