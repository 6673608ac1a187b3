package library

import "tunedupe/internal/plist"

// TracksSection is the key that introduces the track dictionary.
const TracksSection = "Tracks"

const (
	depthTracks = 1
	depthTrack  = 2
)

// Segmenter splits a library line stream into track blocks.
type Segmenter struct {
	section   string
	inSection bool
	depth     int
	done      bool
	block     []string
}

// NewSegmenter returns a segmenter looking for the Tracks section.
func NewSegmenter() *Segmenter {
	return &Segmenter{section: TracksSection}
}

// Done reports whether the Tracks dictionary has been closed. Feed ignores
// all lines once Done is true.
func (s *Segmenter) Done() bool {
	return s.done
}

// InSection reports whether the Tracks section has been entered.
func (s *Segmenter) InSection() bool {
	return s.inSection
}

// Feed consumes one line. When the line completes a track block, the block's
// lines are returned with ok set.
func (s *Segmenter) Feed(line string) (block []string, ok bool) {
	if s.done {
		return nil, false
	}
	if !s.inSection {
		if !plist.IsSectionKey(line, s.section) {
			return nil, false
		}
		s.inSection = true
	}

	switch plist.Classify(line) {
	case plist.LineDictOpen:
		s.depth++
	case plist.LineDictClose:
		s.depth--
		if s.depth <= 0 {
			s.done = true
			s.block = nil
			return nil, false
		}
		if s.depth == depthTracks {
			block, s.block = s.block, nil
			return block, true
		}
	}

	if s.depth == depthTrack {
		s.block = append(s.block, line)
	}
	return nil, false
}
