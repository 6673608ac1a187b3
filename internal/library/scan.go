package library

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single line of the export.
const maxLineBytes = 16 * 1024 * 1024

// Stats summarizes one segmentation pass.
type Stats struct {
	Lines         int
	Blocks        int
	SectionFound  bool
	SectionClosed bool
}

// BlockFunc receives each completed track block in file order.
type BlockFunc func(block []string) error

// Scan reads r line by line and calls fn for every track block. Reading stops
// when the Tracks dictionary closes, at EOF, or when fn returns an error.
func Scan(r io.Reader, fn BlockFunc) (Stats, error) {
	var stats Stats
	seg := NewSegmenter()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		stats.Lines++
		block, ok := seg.Feed(strings.TrimSuffix(scanner.Text(), "\r"))
		if ok {
			stats.Blocks++
			if err := fn(block); err != nil {
				stats.SectionFound = seg.InSection()
				return stats, err
			}
		}
		if seg.Done() {
			break
		}
	}
	stats.SectionFound = seg.InSection()
	stats.SectionClosed = seg.Done()
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read library: %w", err)
	}
	return stats, nil
}
