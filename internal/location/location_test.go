package location

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"localhost url", "file://localhost/Users/listener/Music/iTunes/Blue%20Train.mp3", "/Users/listener/Music/iTunes/Blue Train.mp3"},
		{"empty host", "file:///home/me/music/a.flac", "/home/me/music/a.flac"},
		{"unicode escapes", "file://localhost/music/Bj%C3%B6rk/J%C3%B3ga.m4a", "/music/Björk/Jóga.m4a"},
		{"windows drive", "file://localhost/C:/Music/song.mp3", "C:/Music/song.mp3"},
		{"bare path", "/srv/music/a%20b.mp3", "/srv/music/a b.mp3"},
	}

	var r Resolver
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "   ", ErrEmpty},
		{"http", "http://example.com/song.mp3", ErrUnsupportedScheme},
		{"remote host", "file://nas/music/song.mp3", ErrRemoteHost},
		{"no path", "file://localhost", ErrEmpty},
	}

	var r Resolver
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := r.Resolve("file://localhost/bad%zzescape"); err == nil {
		t.Fatal("expected malformed escape to fail")
	}
}

func TestResolveRewrites(t *testing.T) {
	r := NewResolver([]Rewrite{
		{From: "", To: "/ignored"},
		{From: "/Users/listener/Music", To: "/mnt/music"},
		{From: "/Users", To: "/home"},
	})

	got, err := r.Resolve("file://localhost/Users/listener/Music/iTunes/a.mp3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/mnt/music/iTunes/a.mp3" {
		t.Fatalf("Resolve = %q", got)
	}

	got, _ = r.Resolve("file://localhost/Users/other/a.mp3")
	if got != "/home/other/a.mp3" {
		t.Fatalf("second rewrite = %q", got)
	}
}
