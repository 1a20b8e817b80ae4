package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kordalabs/depot/depot"
	"github.com/kordalabs/depot/errs"
)

func runShow(logger *slog.Logger, path string, names []string) error {
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

		contents, err := h.StreamToMemory(stream)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Printf("Start of %s\n----------------\n%s\n----------------\nEnd of %s\n",
			stream.Name, contents, stream.Name)
	}

	logger.Debug("showed streams", "path", path, "count", len(names))

	return nil
}
