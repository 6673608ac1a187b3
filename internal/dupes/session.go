package dupes

import (
	"errors"

	"tunedupe/internal/track"
)

// DefaultCutoff is the minimum score reported as a duplicate.
const DefaultCutoff = 90

// Match is a pair scored at or above the session cutoff.
type Match struct {
	Comparison
	// New is the record that triggered the comparison; Existing was added
	// earlier in the scan.
	New      *track.Record
	Existing *track.Record
}

// EmitFunc receives matches as soon as they are found.
type EmitFunc func(Match) error

// Session accumulates valid records for one scan and compares each new record
// against everything added before it. A Session is not safe for concurrent
// use.
type Session struct {
	cutoff int
	tracks []*track.Record
}

// NewSession returns an empty session reporting scores >= cutoff.
func NewSession(cutoff int) *Session {
	return &Session{cutoff: cutoff}
}

// Cutoff returns the session's reporting threshold.
func (s *Session) Cutoff() int {
	return s.cutoff
}

// Len returns the number of accumulated valid records.
func (s *Session) Len() int {
	return len(s.tracks)
}

// Add compares rec against all earlier records, passes each match to emit,
// and then appends rec. Invalid records are ignored. The record is appended
// even when emit fails; the first emit error is returned after all
// comparisons complete.
func (s *Session) Add(rec *track.Record, emit EmitFunc) error {
	if rec == nil || !rec.Valid {
		return nil
	}

	var errs []error
	for _, existing := range s.tracks {
		c := Compare(rec, existing)
		if c.Score < s.cutoff {
			continue
		}
		if emit == nil {
			continue
		}
		if err := emit(Match{Comparison: c, New: rec, Existing: existing}); err != nil {
			errs = append(errs, err)
		}
	}
	s.tracks = append(s.tracks, rec)
	return errors.Join(errs...)
}
