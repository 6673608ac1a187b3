package testsupport

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TrackEntry describes one track dictionary in a generated library export.
// Zero-valued fields are omitted; Extra lines are emitted verbatim inside the
// track dictionary after the regular fields.
type TrackEntry struct {
	ID        int
	Name      string
	Artist    string
	Album     string
	TotalTime int64
	Rating    int64
	PlayCount int64
	DateAdded string
	Location  string
	Extra     []string
}

// FileURL returns the file://localhost URL a library export uses for path.
func FileURL(path string) string {
	u := url.URL{Scheme: "file", Host: "localhost", Path: filepath.ToSlash(path)}
	return u.String()
}

// LibraryXML renders a plist library export containing tracks.
func LibraryXML(tracks ...TrackEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n")
	b.WriteString("<dict>\n")
	b.WriteString("\t<key>Major Version</key><integer>1</integer>\n")
	b.WriteString("\t<key>Application Version</key><string>7.0.2</string>\n")
	b.WriteString("\t<key>Music Folder</key><string>file://localhost/Users/listener/Music/iTunes/iTunes%20Music/</string>\n")
	b.WriteString("\t<key>Tracks</key>\n")
	b.WriteString("\t<dict>\n")
	for i, tr := range tracks {
		id := tr.ID
		if id == 0 {
			id = 1000 + i
		}
		fmt.Fprintf(&b, "\t\t<key>%d</key>\n", id)
		b.WriteString("\t\t<dict>\n")
		fmt.Fprintf(&b, "\t\t\t<key>Track ID</key><integer>%d</integer>\n", id)
		writeString(&b, "Name", tr.Name)
		writeString(&b, "Artist", tr.Artist)
		writeString(&b, "Album", tr.Album)
		writeInteger(&b, "Total Time", tr.TotalTime)
		writeInteger(&b, "Rating", tr.Rating)
		writeInteger(&b, "Play Count", tr.PlayCount)
		if tr.DateAdded != "" {
			fmt.Fprintf(&b, "\t\t\t<key>Date Added</key><date>%s</date>\n", tr.DateAdded)
		}
		writeString(&b, "Location", tr.Location)
		for _, line := range tr.Extra {
			b.WriteString("\t\t\t" + line + "\n")
		}
		b.WriteString("\t\t</dict>\n")
	}
	b.WriteString("\t</dict>\n")
	b.WriteString("\t<key>Playlists</key>\n")
	b.WriteString("\t<array>\n")
	b.WriteString("\t\t<dict>\n")
	b.WriteString("\t\t\t<key>Name</key><string>Library</string>\n")
	b.WriteString("\t\t</dict>\n")
	b.WriteString("\t</array>\n")
	b.WriteString("</dict>\n")
	b.WriteString("</plist>\n")
	return b.String()
}

// WriteLibrary writes a generated library export to path.
func WriteLibrary(t testing.TB, path string, tracks ...TrackEntry) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(LibraryXML(tracks...)), 0o644); err != nil {
		t.Fatalf("write library %s: %v", path, err)
	}
}

func writeString(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "\t\t\t<key>%s</key><string>%s</string>\n", key, value)
}

func writeInteger(b *strings.Builder, key string, value int64) {
	if value == 0 {
		return
	}
	fmt.Fprintf(b, "\t\t\t<key>%s</key><integer>%d</integer>\n", key, value)
}
