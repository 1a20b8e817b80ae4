package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kordalabs/depot/depot"
)

func runList(logger *slog.Logger, path string, _ []string) error {
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
		fmt.Printf("%-40s size=%d stream_size=%d hash=%016x\n", name, info.Size, info.StreamSize, info.Hash)
	}

	logger.Debug("listed depot", "path", path, "count", h.StreamCount())

	return nil
}
