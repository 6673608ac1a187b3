package track

import (
	"path/filepath"
	"testing"
	"time"

	"tunedupe/internal/location"
	"tunedupe/internal/testsupport"
)

func TestBuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flac")
	testsupport.WriteFile(t, path, 2048)

	b := NewBuilder(&location.Resolver{})
	rec := b.BuildFromFile(path, FileMeta{Name: "Naima", Artist: " ", Duration: 261500 * time.Millisecond})
	if !rec.Valid {
		t.Fatalf("expected valid record, reason %q", rec.Reason)
	}
	if rec.TotalTime != 262 {
		t.Fatalf("TotalTime = %d, want 262", rec.TotalTime)
	}
	if _, ok := rec.Tag(FieldArtist); ok {
		t.Fatal("blank artist tag should be absent")
	}
	if rec.Name() != "Naima" {
		t.Fatalf("Name = %q", rec.Name())
	}

	rec = b.BuildFromFile(path, FileMeta{Name: "Naima"})
	if rec.Valid || rec.Reason != ReasonMissingTotalTime {
		t.Fatalf("expected missing duration to invalidate, got %q", rec.Reason)
	}
	rec = b.BuildFromFile(filepath.Join(t.TempDir(), "none.flac"), FileMeta{Duration: time.Second})
	if rec.Valid || rec.Reason != ReasonFileMissing {
		t.Fatalf("expected missing file to invalidate, got %q", rec.Reason)
	}
}
