package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// TextSink streams the plain-text report: a banner, then for each pair a
// confidence line, the newer track's path, the earlier track's path, and a
// blank separator line.
type TextSink struct {
	w        io.Writer
	colorize bool
}

// NewTextSink returns a text sink writing to w.
func NewTextSink(w io.Writer, colorize bool) *TextSink {
	return &TextSink{w: w, colorize: colorize}
}

func (s *TextSink) Begin(_ context.Context, info RunInfo) error {
	_, err := fmt.Fprintf(s.w, "Finding duplicate songs in %s\n", info.Library)
	return err
}

func (s *TextSink) Pair(_ context.Context, pair Pair) error {
	label := fmt.Sprintf("Possible duplicates, with %d%% confidence:", pair.Score)
	if s.colorize {
		label = ansiBold + label + ansiReset
		if pair.Score == 100 {
			label = ansiRed + label
		}
	}
	_, err := fmt.Fprintf(s.w, "%s\n%s\n%s\n\n", label, pair.NewPath, pair.ExistingPath)
	return err
}

func (s *TextSink) End(context.Context, Summary) error {
	return nil
}

// ShouldColorize resolves a color mode (auto, always, never) for w.
func ShouldColorize(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
