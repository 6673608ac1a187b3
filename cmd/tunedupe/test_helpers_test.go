package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"tunedupe/internal/testsupport"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TUNEDUPE_LIBRARY", "")
	t.Chdir(t.TempDir())
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

type duplicateLibrary struct {
	path   string
	first  string
	second string
}

// writeDuplicateLibrary writes a library whose first two tracks share audio
// content behind different tag headers and whose third track is unrelated.
func writeDuplicateLibrary(t *testing.T) duplicateLibrary {
	t.Helper()
	dir := t.TempDir()
	payload := testsupport.Pattern(900000, 11)
	lib := duplicateLibrary{
		path:   filepath.Join(dir, "iTunes Library.xml"),
		first:  filepath.Join(dir, "Music", "Artist", "Song.mp3"),
		second: filepath.Join(dir, "Music", "Artist", "Song 1.mp3"),
	}
	unique := filepath.Join(dir, "Music", "Other", "Else.mp3")
	testsupport.WriteMedia(t, lib.first, testsupport.Pattern(2048, 1), payload)
	testsupport.WriteMedia(t, lib.second, testsupport.Pattern(2048, 2), payload)
	testsupport.WriteMedia(t, unique, testsupport.Pattern(2048, 3), testsupport.Pattern(900000, 12))
	testsupport.WriteLibrary(t, lib.path,
		testsupport.TrackEntry{Name: "Song", Artist: "Artist", Album: "Record", TotalTime: 241000, Location: testsupport.FileURL(lib.first)},
		testsupport.TrackEntry{Name: "Song", Artist: "Artist", Album: "Record", TotalTime: 241000, Location: testsupport.FileURL(lib.second)},
		testsupport.TrackEntry{Name: "Else", Artist: "Other", Album: "Elsewhere", TotalTime: 180000, Location: testsupport.FileURL(unique)},
	)
	return lib
}
