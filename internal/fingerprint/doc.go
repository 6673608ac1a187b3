// Package fingerprint computes the fixed-window content digest used to
// recognize the same audio payload behind different metadata tags.
//
// Audio files carry variable-length tag blocks at their head, so the digest
// skips the first ID3Offset bytes and covers at most WindowSize bytes after
// that. Files shorter than the offset are hashed whole. The cost is bounded
// regardless of file size; trailing bytes past the window never contribute.
package fingerprint
