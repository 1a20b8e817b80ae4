package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kordalabs/depot/depot"
)

func runPrintTOC(logger *slog.Logger, path string, _ []string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := depot.Open(f, depot.ModeRead)
	if err != nil {
		return err
	}

	for name, info := range h.Streams() {
		fmt.Printf("%s\n  offset=%d\n  size=%d\n  stream_size=%d\n  flags=%d\n  hash=%016x\n\n",
			name, info.Offset, info.Size, info.StreamSize, info.Flags, info.Hash)
	}

	logger.Debug("printed table of contents", "path", path)

	return nil
}
