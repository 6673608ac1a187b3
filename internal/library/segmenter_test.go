package library

import (
	"errors"
	"strings"
	"testing"

	"tunedupe/internal/testsupport"
)

func collect(t *testing.T, input string) ([][]string, Stats) {
	t.Helper()
	var blocks [][]string
	stats, err := Scan(strings.NewReader(input), func(block []string) error {
		blocks = append(blocks, block)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return blocks, stats
}

func TestScanSplitsTrackBlocks(t *testing.T) {
	input := testsupport.LibraryXML(
		testsupport.TrackEntry{ID: 1, Name: "One", TotalTime: 1000, Location: "file://localhost/a.mp3"},
		testsupport.TrackEntry{ID: 2, Name: "Two", TotalTime: 2000, Location: "file://localhost/b.mp3"},
		testsupport.TrackEntry{ID: 3, Name: "Three", TotalTime: 3000, Location: "file://localhost/c.mp3"},
	)

	blocks, stats := collect(t, input)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if !stats.SectionFound || !stats.SectionClosed {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	for i, want := range []string{"One", "Two", "Three"} {
		joined := strings.Join(blocks[i], "\n")
		if !strings.Contains(joined, "<string>"+want+"</string>") {
			t.Fatalf("block %d missing %q: %s", i, want, joined)
		}
		if strings.TrimSpace(blocks[i][0]) != "<dict>" {
			t.Fatalf("block %d should start with its opening marker, got %q", i, blocks[i][0])
		}
	}
}

func TestScanIgnoresLinesBeforeTracksAndStopsAfter(t *testing.T) {
	input := strings.Join([]string{
		"<plist version=\"1.0\">",
		"<dict>",
		"\t<key>Name</key><string>Before</string>",
		"\t<dict>",
		"\t</dict>",
		"\t<key>Tracks</key>",
		"\t<dict>",
		"\t\t<key>7</key>",
		"\t\t<dict>",
		"\t\t\t<key>Name</key><string>Inside</string>",
		"\t\t</dict>",
		"\t</dict>",
		"\t<key>Playlists</key>",
		"\t<dict>",
		"\t\t<dict>",
		"\t\t\t<key>Name</key><string>After</string>",
		"\t\t</dict>",
		"\t</dict>",
		"</dict>",
	}, "\n")

	blocks, stats := collect(t, input)
	if len(blocks) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(blocks))
	}
	if !strings.Contains(strings.Join(blocks[0], "\n"), "Inside") {
		t.Fatalf("unexpected block: %v", blocks[0])
	}
	if stats.Lines != 12 {
		t.Fatalf("expected scanning to stop at the Tracks close (12 lines), read %d", stats.Lines)
	}
}

func TestScanWithoutTracksSection(t *testing.T) {
	blocks, stats := collect(t, "<dict>\n<key>Playlists</key>\n<dict>\n<dict>\n</dict>\n</dict>\n</dict>\n")
	if len(blocks) != 0 || stats.SectionFound {
		t.Fatalf("expected nothing without a Tracks key, got %d blocks, %+v", len(blocks), stats)
	}
}

func TestSegmenterNestedDictDoesNotEmit(t *testing.T) {
	seg := NewSegmenter()
	lines := []string{
		"<key>Tracks</key>",
		"<dict>",
		"<dict>",
		"<key>Name</key><string>Outer</string>",
		"<dict>",
		"<key>Inner</key><string>x</string>",
		"</dict>",
		"<key>Total Time</key><integer>1000</integer>",
		"</dict>",
	}
	var emitted [][]string
	for _, line := range lines {
		if block, ok := seg.Feed(line); ok {
			emitted = append(emitted, block)
		}
	}
	if len(emitted) != 1 {
		t.Fatalf("expected one block, got %d", len(emitted))
	}
	joined := strings.Join(emitted[0], "\n")
	if !strings.Contains(joined, "Outer") || !strings.Contains(joined, "Total Time") {
		t.Fatalf("block should span the whole track: %s", joined)
	}
	if strings.Contains(joined, "Inner") {
		t.Fatalf("lines deeper than the track should not be accumulated: %s", joined)
	}
}

func TestSegmenterMarkersMustStandAlone(t *testing.T) {
	seg := NewSegmenter()
	for _, line := range []string{"<key>Tracks</key>", "<dict>", "<dict><key>Name</key><string>x</string></dict>"} {
		if _, ok := seg.Feed(line); ok {
			t.Fatal("inline markers must not complete a block")
		}
	}
	if seg.Done() {
		t.Fatal("segmenter should still be inside Tracks")
	}
}

func TestScanPropagatesCallbackError(t *testing.T) {
	boom := errors.New("stop")
	input := testsupport.LibraryXML(
		testsupport.TrackEntry{TotalTime: 1000},
		testsupport.TrackEntry{TotalTime: 1000},
	)
	calls := 0
	_, err := Scan(strings.NewReader(input), func([]string) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("expected first callback error to stop the scan, got err=%v calls=%d", err, calls)
	}
}

func TestScanHandlesCRLF(t *testing.T) {
	input := strings.ReplaceAll(testsupport.LibraryXML(testsupport.TrackEntry{Name: "One", TotalTime: 1000}), "\n", "\r\n")
	blocks, _ := collect(t, input)
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
	for _, line := range blocks[0] {
		if strings.HasSuffix(line, "\r") {
			t.Fatalf("line kept carriage return: %q", line)
		}
	}
}
