package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lithammer/shortuuid/v4"
	"github.com/mattn/go-isatty"
)

// NewLogger returns a structured slog.Logger with the given level. Terminals get
// the text handler, anything else (pipes, files) gets JSON. Every record carries
// the run id so appended workbooks can be matched to a session's logs.
func NewLogger(level slog.Leveler) *slog.Logger {
	return newLogger(os.Stdout, isTerminal(os.Stdout), level)
}

func newLogger(w io.Writer, text bool, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if text {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("run", shortuuid.New()))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
