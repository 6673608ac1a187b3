package dupes

import (
	"errors"
	"testing"

	"tunedupe/internal/track"
)

func TestSessionComparesAgainstEarlierRecordsOnly(t *testing.T) {
	s := NewSession(DefaultCutoff)
	if s.Cutoff() != 90 || s.Len() != 0 {
		t.Fatalf("new session cutoff=%d len=%d", s.Cutoff(), s.Len())
	}
	a := record(1, 100, nil)
	b := record(1, 100, nil)
	c := record(1, 100, nil)

	var got []Match
	emit := func(m Match) error {
		got = append(got, m)
		return nil
	}

	for _, rec := range []*track.Record{a, b, c} {
		if err := s.Add(rec, emit); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 matches for 3 identical records, got %d", len(got))
	}
	if got[0].New != b || got[0].Existing != a {
		t.Fatal("first match should pair b with a")
	}
	if got[1].New != c || got[1].Existing != a || got[2].Existing != b {
		t.Fatal("c should be compared against a then b")
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
}

func TestSessionSkipsInvalidAndBelowCutoff(t *testing.T) {
	s := NewSession(90)
	emitted := 0
	emit := func(Match) error {
		emitted++
		return nil
	}

	invalid := record(1, 100, nil)
	invalid.Valid = false
	_ = s.Add(record(1, 100, nil), emit)
	_ = s.Add(invalid, emit)
	_ = s.Add(record(2, 100, nil), emit) // time-only match scores 3

	if emitted != 0 {
		t.Fatalf("expected no matches, got %d", emitted)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestSessionAppendsEvenWhenEmitFails(t *testing.T) {
	s := NewSession(90)
	boom := errors.New("write failed")
	_ = s.Add(record(1, 100, nil), nil)
	err := s.Add(record(1, 100, nil), func(Match) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}
