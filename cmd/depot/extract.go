package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kordalabs/depot/depot"
	"github.com/kordalabs/depot/errs"
	"github.com/spf13/pflag"
)

// runExtract serves both the extract and carve subcommands. extract
// decompresses and hash-verifies a stream; carve copies its compressed
// bytes verbatim, without touching the codec or the hash.
func runExtract(logger *slog.Logger, path string, args []string, raw bool) error {
	fs := pflag.NewFlagSet("extract", pflag.ExitOnError)
	output := fs.StringP("output", "o", ".", "output directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	names := fs.Args()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := depot.Open(f, depot.ModeRead)
	if err != nil {
		return err
	}

	for _, name := range names {
		stream, ok := h.GetNamedStream(name)
		if !ok {
			return fmt.Errorf("%s: %w", name, errs.ErrStreamNotFound)
		}

		dest := filepath.Join(*output, name)
		if raw {
			dest += ".carved"
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}

		if err := extractOne(f, h, stream, dest, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		logger.Info("extracted stream", "name", name, "dest", dest, "raw", raw)
	}

	return nil
}

func extractOne(f *os.File, h *depot.Handle, stream depot.StreamInfo, dest string, raw bool) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if raw {
		err = carveRaw(f, stream, out)
	} else {
		err = h.ExtractStream(stream, out)
	}

	closeErr := out.Close()
	if err != nil {
		return err
	}

	return closeErr
}

// carveRaw copies a stream's on-disk compressed bytes without decompressing
// or verifying them, for inspecting the raw frame a codec produced.
func carveRaw(f *os.File, stream depot.StreamInfo, w io.Writer) error {
	if _, err := f.Seek(int64(stream.Info.Offset), io.SeekStart); err != nil { //nolint:gosec
		return err
	}

	_, err := io.CopyN(w, f, int64(stream.Info.StreamSize)) //nolint:gosec

	return err
}
