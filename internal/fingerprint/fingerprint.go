package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// ID3Offset is the number of leading bytes skipped before hashing.
	ID3Offset = 40000
	// WindowSize is the maximum number of bytes hashed after ID3Offset.
	WindowSize = 800000
)

// Digest is a 128-bit content fingerprint.
type Digest [md5.Size]byte

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Compute opens path and returns its content fingerprint. The file handle is
// released before returning.
func Compute(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("open media file: %w", err)
	}
	defer file.Close()
	return ComputeReader(file)
}

// ComputeReader fingerprints the content of r. When nothing can be read at
// ID3Offset the whole stream is hashed from the start instead.
func ComputeReader(r io.ReadSeeker) (Digest, error) {
	if _, err := r.Seek(ID3Offset, io.SeekStart); err != nil {
		return Digest{}, fmt.Errorf("seek past tag block: %w", err)
	}

	h := md5.New()
	n, err := io.CopyN(h, r, WindowSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return Digest{}, fmt.Errorf("read hash window: %w", err)
	}

	if n == 0 {
		// Shorter than the tag offset.
		h.Reset()
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return Digest{}, fmt.Errorf("rewind short file: %w", err)
		}
		if _, err := io.Copy(h, r); err != nil {
			return Digest{}, fmt.Errorf("read short file: %w", err)
		}
	}

	var digest Digest
	copy(digest[:], h.Sum(nil))
	return digest, nil
}
