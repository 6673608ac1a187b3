// Package library segments a library export into per-track blocks.
//
// Segmenter is a line-at-a-time state machine. It ignores everything until a
// key declaration naming the Tracks section, then counts dictionary depth:
// depth 1 is the Tracks dictionary, depth 2 a single track. Lines seen at
// depth 2 form the current block, which is emitted when its closing marker
// brings the depth back to 1. Closing the Tracks dictionary ends the scan.
//
// Only lines consisting solely of <dict> or </dict> move the depth; markers
// sharing a line with other content are not recognized.
package library
