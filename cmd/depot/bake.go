package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kordalabs/depot/depot"
	"github.com/kordalabs/depot/format"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
)

func runBake(logger *slog.Logger, path string, args []string) error {
	fs := pflag.NewFlagSet("bake", pflag.ExitOnError)
	recurse := fs.BoolP("recurse", "r", false, "add all files under a directory argument")
	level := fs.Int32P("level", "l", 10, "compression level")
	frameSize := fs.IntP("frame-size", "f", 8<<20, "frame size for compression, in bytes")
	threads := fs.IntP("threads", "t", 4, "worker threads for compression")
	codecName := fs.StringP("codec", "c", "zstd", "compression codec: zstd, s2, or lz4")

	if err := fs.Parse(args); err != nil {
		return err
	}

	codec, err := parseCodec(*codecName)
	if err != nil {
		return err
	}

	files, err := expandPaths(fs.Args(), *recurse)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	h, err := depot.Create(out,
		depot.WithCompressionLevel(*level),
		depot.WithFrameSize(*frameSize),
		depot.WithWorkerThreads(*threads),
		depot.WithCompressor(codec),
	)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(files)))

	for _, file := range files {
		bar.Describe(file)

		if err := h.AddFile(file, nil); err != nil {
			return fmt.Errorf("adding %s: %w", file, err)
		}

		_ = bar.Add(1)
	}

	if err := h.Close(); err != nil {
		return err
	}

	logger.Info("baked depot", "path", path, "entries", len(files))

	return nil
}

func parseCodec(name string) (format.CompressionKind, error) {
	switch name {
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown codec %q: want zstd, s2, or lz4", name)
	}
}

// expandPaths resolves a list of command-line arguments into a flat list of
// regular files. Directories require recurse; symlinks are skipped.
func expandPaths(paths []string, recurse bool) ([]string, error) {
	var out []string

	for _, p := range paths {
		info, err := os.Lstat(p)
		if err != nil {
			return nil, err
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			fmt.Fprintf(os.Stderr, "ignoring symlink %q\n", p)
		case info.IsDir():
			if !recurse {
				return nil, fmt.Errorf("%s is a directory, pass --recurse to add its contents", p)
			}

			entries, err := os.ReadDir(p)
			if err != nil {
				return nil, err
			}

			children := make([]string, 0, len(entries))
			for _, e := range entries {
				children = append(children, filepath.Join(p, e.Name()))
			}

			sub, err := expandPaths(children, recurse)
			if err != nil {
				return nil, err
			}

			out = append(out, sub...)
		default:
			out = append(out, p)
		}
	}

	return out, nil
}
