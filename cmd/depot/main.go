// Command depot bakes files into a depot archive, lists and inspects its
// table of contents, and extracts or carves streams back out.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}

	path := os.Args[1]
	action := os.Args[2]
	rest := os.Args[3:]

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var err error

	switch action {
	case "bake":
		err = runBake(logger, path, rest)
	case "list":
		err = runList(logger, path, rest)
	case "extract":
		err = runExtract(logger, path, rest, false)
	case "carve":
		err = runExtract(logger, path, rest, true)
	case "show":
		err = runShow(logger, path, rest)
	case "print-toc":
		err = runPrintTOC(logger, path, rest)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", "action", action, "path", path, "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: depot <path> <bake|list|extract|carve|show|print-toc> [flags] [args]")
}
