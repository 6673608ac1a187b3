package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"tunedupe/internal/dupes"
	"tunedupe/internal/track"
)

// RunInfo describes a scan at its start.
type RunInfo struct {
	RunID   string    `json:"run_id"`
	Library string    `json:"library"`
	Cutoff  int       `json:"cutoff"`
	Started time.Time `json:"started_at"`
}

// Track is the library metadata shown for one side of a pair.
type Track struct {
	Name      string `json:"name,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Album     string `json:"album,omitempty"`
	Seconds   int64  `json:"seconds"`
	Rating    int    `json:"rating"`
	PlayCount int64  `json:"play_count"`
	DateAdded string `json:"date_added,omitempty"`
}

// TrackFromRecord copies the displayable fields of rec.
func TrackFromRecord(rec *track.Record) Track {
	return Track{
		Name:      rec.Name(),
		Artist:    rec.Artist(),
		Album:     rec.Album(),
		Seconds:   rec.TotalTime,
		Rating:    rec.Rating,
		PlayCount: rec.PlayCount,
		DateAdded: rec.DateAdded(),
	}
}

// Pair is one reported duplicate.
type Pair struct {
	Score        int      `json:"score"`
	NewPath      string   `json:"new_path"`
	ExistingPath string   `json:"existing_path"`
	Matched      []string `json:"matched"`
	New          Track    `json:"new"`
	Existing     Track    `json:"existing"`
}

// Summary describes a finished scan.
type Summary struct {
	Lines    int            `json:"lines"`
	Blocks   int            `json:"blocks"`
	Valid    int            `json:"valid"`
	Invalid  int            `json:"invalid"`
	Pairs    int            `json:"pairs"`
	Reasons  map[string]int `json:"invalid_reasons,omitempty"`
	Finished time.Time      `json:"finished_at"`
}

// ReasonKeys returns the invalid reasons in sorted order.
func (s Summary) ReasonKeys() []string {
	keys := make([]string, 0, len(s.Reasons))
	for k := range s.Reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sink consumes one run's report.
type Sink interface {
	Begin(ctx context.Context, info RunInfo) error
	Pair(ctx context.Context, pair Pair) error
	End(ctx context.Context, summary Summary) error
}

// PairFromMatch converts a scored match to a report pair.
func PairFromMatch(m dupes.Match) Pair {
	return Pair{
		Score:        m.Score,
		NewPath:      m.New.FilePath,
		ExistingPath: m.Existing.FilePath,
		Matched:      m.Matched(),
		New:          TrackFromRecord(m.New),
		Existing:     TrackFromRecord(m.Existing),
	}
}

// Multi forwards every call to each sink in order.
type Multi []Sink

func (m Multi) Begin(ctx context.Context, info RunInfo) error {
	var errs []error
	for _, s := range m {
		if err := s.Begin(ctx, info); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Pair(ctx context.Context, pair Pair) error {
	var errs []error
	for _, s := range m {
		if err := s.Pair(ctx, pair); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) End(ctx context.Context, summary Summary) error {
	var errs []error
	for _, s := range m {
		if err := s.End(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
