package track

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunedupe/internal/fingerprint"
	"tunedupe/internal/location"
	"tunedupe/internal/testsupport"
)

func blockLines(t *testing.T, entry testsupport.TrackEntry) []string {
	t.Helper()
	xml := testsupport.LibraryXML(entry)
	lines := strings.Split(xml, "\n")
	var block []string
	depth := 0
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case "<dict>":
			depth++
		case "</dict>":
			depth--
		}
		if depth == 3 {
			block = append(block, line)
		}
	}
	if len(block) == 0 {
		t.Fatal("no track block generated")
	}
	return block
}

func mediaFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testsupport.WriteMedia(t, path, nil, testsupport.Pattern(size, 1))
	return path
}

func TestBuildValidRecord(t *testing.T) {
	path := mediaFile(t, "Blue Train.mp3", 50000)
	lines := blockLines(t, testsupport.TrackEntry{
		Name:      "Blue Train",
		Artist:    "John Coltrane",
		Album:     "Blue Train",
		TotalTime: 209580,
		Rating:    100,
		PlayCount: 12,
		DateAdded: "2006-12-19T21:36:14Z",
		Location:  testsupport.FileURL(path),
	})

	rec := NewBuilder(&location.Resolver{}).Build(lines)
	if !rec.Valid {
		t.Fatalf("expected valid record, reason %q", rec.Reason)
	}
	if rec.Name() != "Blue Train" || rec.Artist() != "John Coltrane" || rec.Album() != "Blue Train" {
		t.Fatalf("unexpected tags: %+v", rec.Tags)
	}
	if rec.TotalTime != 210 {
		t.Fatalf("TotalTime = %d, want 210", rec.TotalTime)
	}
	if rec.Rating != 5 {
		t.Fatalf("Rating = %d, want 5", rec.Rating)
	}
	if rec.PlayCount != 12 {
		t.Fatalf("PlayCount = %d, want 12", rec.PlayCount)
	}
	if rec.DateAdded() != "2006-12-19" {
		t.Fatalf("DateAdded = %q", rec.DateAdded())
	}
	if rec.FilePath != path {
		t.Fatalf("FilePath = %q, want %q", rec.FilePath, path)
	}
	want, err := fingerprint.Compute(path)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if rec.FileHash != want {
		t.Fatal("FileHash does not match fingerprint.Compute")
	}
}

func TestBuildDefaults(t *testing.T) {
	path := mediaFile(t, "a.mp3", 10)
	rec := NewBuilder(&location.Resolver{}).Build(blockLines(t, testsupport.TrackEntry{
		TotalTime: 1000,
		Location:  testsupport.FileURL(path),
	}))
	if !rec.Valid {
		t.Fatalf("expected valid record, reason %q", rec.Reason)
	}
	if rec.Rating != 0 || rec.PlayCount != 0 {
		t.Fatalf("expected zero defaults, got rating %d play count %d", rec.Rating, rec.PlayCount)
	}
	if _, ok := rec.Tag(FieldName); ok {
		t.Fatal("expected Name to be absent")
	}
	if _, ok := rec.Tag(FieldDateAdded); ok {
		t.Fatal("expected Date Added to be absent")
	}
}

func TestBuildLastDeclarationWins(t *testing.T) {
	path := mediaFile(t, "a.mp3", 10)
	rec := NewBuilder(&location.Resolver{}).Build([]string{
		"<key>Name</key><string>First</string>",
		"<key>Total Time</key><integer>5000</integer>",
		"<key>Name</key><string>Second</string>",
		"<key>Total Time</key><integer>7000</integer>",
		"<key>Location</key><string>" + testsupport.FileURL(path) + "</string>",
	})
	if rec.Name() != "Second" {
		t.Fatalf("Name = %q, want Second", rec.Name())
	}
	if rec.TotalTime != 7 {
		t.Fatalf("TotalTime = %d, want 7", rec.TotalTime)
	}
}

func TestBuildInvalid(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mp3")
	testsupport.WriteFile(t, good, 100)
	empty := filepath.Join(dir, "empty.mp3")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}

	tests := []struct {
		name  string
		entry testsupport.TrackEntry
		want  Reason
	}{
		{"no total time", testsupport.TrackEntry{Location: testsupport.FileURL(good)}, ReasonMissingTotalTime},
		{"zero total time", testsupport.TrackEntry{Location: testsupport.FileURL(good), Extra: []string{"<key>Total Time</key><integer>0</integer>"}}, ReasonMissingTotalTime},
		{"no location", testsupport.TrackEntry{TotalTime: 1000}, ReasonMissingLocation},
		{"empty location", testsupport.TrackEntry{TotalTime: 1000, Extra: []string{"<key>Location</key><string></string>"}}, ReasonMissingLocation},
		{"remote location", testsupport.TrackEntry{TotalTime: 1000, Location: "http://example.com/a.mp3"}, ReasonUnresolvable},
		{"missing file", testsupport.TrackEntry{TotalTime: 1000, Location: testsupport.FileURL(filepath.Join(dir, "gone.mp3"))}, ReasonFileMissing},
		{"directory", testsupport.TrackEntry{TotalTime: 1000, Location: testsupport.FileURL(dir)}, ReasonNotRegularFile},
		{"empty file", testsupport.TrackEntry{TotalTime: 1000, Location: testsupport.FileURL(empty)}, ReasonEmptyFile},
	}

	b := NewBuilder(&location.Resolver{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := b.Build(blockLines(t, tt.entry))
			if rec.Valid {
				t.Fatal("expected invalid record")
			}
			if rec.Reason != tt.want {
				t.Fatalf("Reason = %q, want %q", rec.Reason, tt.want)
			}
			if !rec.FileHash.IsZero() {
				t.Fatal("invalid record must not carry a fingerprint")
			}
		})
	}
}

func TestBuildUnresolvedLeavesPathEmpty(t *testing.T) {
	rec := NewBuilder(&location.Resolver{}).Build([]string{
		"<key>Total Time</key><integer>1000</integer>",
		"<key>Location</key><string>file://nas/music/a.mp3</string>",
	})
	if rec.Valid || rec.FilePath != "" {
		t.Fatalf("expected invalid record with empty path, got valid=%v path=%q", rec.Valid, rec.FilePath)
	}
}

func TestBuildFingerprintFailure(t *testing.T) {
	path := mediaFile(t, "a.mp3", 10)
	failing := func(string) (fingerprint.Digest, error) {
		return fingerprint.Digest{}, errors.New("read failed")
	}
	rec := NewBuilder(&location.Resolver{}, WithHashFunc(failing)).Build([]string{
		"<key>Total Time</key><integer>1000</integer>",
		"<key>Location</key><string>" + testsupport.FileURL(path) + "</string>",
	})
	if rec.Valid || rec.Reason != ReasonFingerprintFailed {
		t.Fatalf("expected fingerprint failure, got valid=%v reason=%q", rec.Valid, rec.Reason)
	}
}

func TestMillisToSeconds(t *testing.T) {
	cases := map[int64]int64{
		209580: 210,
		198504: 199,
		233560: 234,
		191843: 192,
		238785: 239,
		275800: 276,
		237270: 237,
		210102: 210,
		132075: 132,
		224182: 224,
		1500:   2,
		2500:   3,
	}
	for millis, want := range cases {
		if got := MillisToSeconds(millis); got != want {
			t.Errorf("MillisToSeconds(%d) = %d, want %d", millis, got, want)
		}
	}
}
