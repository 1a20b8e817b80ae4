// Package depot implements the archive-container engine: a single binary
// file holding named byte streams, each independently block-compressed,
// indexed by a table of contents written at the tail once the depot is
// finalized.
//
// Handle is not safe for concurrent use: all operations execute on the
// calling goroutine and block for I/O against the byte handle the Handle
// exclusively owns.
package depot

import (
	"errors"
	"fmt"
	"io"

	"github.com/kordalabs/depot/errs"
	"github.com/kordalabs/depot/internal/options"
	"github.com/kordalabs/depot/section"
)

// OpenMode controls which operations a Handle permits.
type OpenMode uint8

const (
	// ModeRead permits only reads: GetNamedStream, ExtractStream, StreamToMemory, Streams.
	ModeRead OpenMode = iota
	// ModeWrite permits only appends to a depot under construction.
	ModeWrite
	// ModeReadWrite permits both.
	ModeReadWrite
)

type state uint8

const (
	stateDraft state = iota
	stateOpen
	stateClosed
)

// Handle is a single depot file or in-memory byte region, mid-construction
// or already finalized. The zero value is not usable; obtain one via
// Create, Open, or OpenReadWriter.
type Handle struct {
	reader       io.ReadSeeker
	writer       io.Writer
	mode         OpenMode
	state        state
	headerOffset int64
	cfg          *config
	toc          *section.TOC
}

// Create begins a new depot, writing a draft header (toc_offset unfinalized)
// at rw's current position. The returned Handle is in ModeReadWrite until
// Close finalizes it.
func Create(rw io.ReadWriteSeeker, opts ...Option) (*Handle, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	headerOffset, err := rw.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		reader:       rw,
		writer:       rw,
		mode:         ModeReadWrite,
		state:        stateDraft,
		headerOffset: headerOffset,
		cfg:          cfg,
		toc:          section.NewTOC(cfg.compressionLevel),
	}

	header := section.Header{Version: section.Version, TOCOffset: section.UnfinalizedTOCOffset}
	if _, err := rw.Write(header.Bytes()); err != nil {
		return nil, err
	}

	return h, nil
}

// Open opens an existing, finalized depot for read-only access. mode must
// be ModeRead; writable access requires OpenReadWriter.
func Open(rw io.ReadSeeker, mode OpenMode) (*Handle, error) {
	if mode != ModeRead {
		return nil, errs.ErrInvalidInput
	}

	return open(rw, nil, mode)
}

// OpenReadWriter opens an existing, finalized depot for appending, reading,
// or both, according to mode.
func OpenReadWriter(rw io.ReadWriteSeeker, mode OpenMode) (*Handle, error) {
	if mode == ModeRead {
		return open(rw, nil, mode)
	}

	return open(rw, rw, mode)
}

func open(reader io.ReadSeeker, writer io.Writer, mode OpenMode) (*Handle, error) {
	headerOffset, err := reader.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(reader)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated header: %w", errs.ErrInvalidData)
		}

		return nil, err
	}

	if header.TOCOffset == section.UnfinalizedTOCOffset {
		return nil, errs.ErrInvalidData
	}

	if _, err := reader.Seek(int64(header.TOCOffset), io.SeekStart); err != nil { //nolint:gosec
		return nil, err
	}

	toc, err := section.ReadTOC(reader)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated table of contents: %w", errs.ErrInvalidData)
		}

		return nil, err
	}

	cfg := defaultConfig()
	cfg.compressionLevel = toc.CompressionLevel

	return &Handle{
		reader:       reader,
		writer:       writer,
		mode:         mode,
		state:        stateOpen,
		headerOffset: headerOffset,
		cfg:          cfg,
		toc:          toc,
	}, nil
}

// Close finalizes the depot: the TOC is appended at the current end of the
// stream and the header is rewritten with its true offset, making the depot
// readable. Close is idempotent; calling it again after a successful close
// is a no-op. Calling Close on a handle opened with ModeRead simply marks it
// closed, since there is nothing to finalize.
func (h *Handle) Close() error {
	if h.state == stateClosed {
		return nil
	}

	if h.writer == nil {
		h.state = stateClosed
		return nil
	}

	tocOffset, err := h.reader.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	if _, err := h.toc.WriteTo(h.writer); err != nil {
		return err
	}

	if err := h.flushHeader(uint64(tocOffset)); err != nil { //nolint:gosec
		return err
	}

	h.state = stateClosed

	return nil
}

func (h *Handle) flushHeader(tocOffset uint64) error {
	if _, err := h.reader.Seek(h.headerOffset, io.SeekStart); err != nil {
		return err
	}

	header := section.Header{Version: section.Version, TOCOffset: tocOffset}
	_, err := h.writer.Write(header.Bytes())

	return err
}

// Flush is a no-op beyond what the underlying writer already guarantees; it
// exists so callers migrating from handle-per-operation flushing have an
// explicit point to call. Depot defers all durability to Close.
func (h *Handle) Flush() error {
	return nil
}

func (h *Handle) checkWritable() error {
	if h.state == stateClosed {
		return errs.ErrClosed
	}

	if h.writer == nil {
		return errs.ErrPermissionDenied
	}

	return nil
}

func (h *Handle) checkReadable() error {
	if h.state == stateClosed {
		return errs.ErrClosed
	}

	if h.mode == ModeWrite {
		return errs.ErrPermissionDenied
	}

	return nil
}
