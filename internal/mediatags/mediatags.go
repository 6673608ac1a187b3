// Package mediatags reads embedded audio tags for files compared outside a
// library export.
package mediatags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.senan.xyz/taglib"

	"tunedupe/internal/track"
)

// Read returns the title, artist, album, and duration embedded in the file
// at path. A file without tags yields blank strings, not an error.
func Read(path string) (track.FileMeta, error) {
	if strings.TrimSpace(path) == "" {
		return track.FileMeta{}, errors.New("media path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return track.FileMeta{}, fmt.Errorf("stat media file: %w", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		return track.FileMeta{}, fmt.Errorf("read tags %s: %w", path, err)
	}
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return track.FileMeta{}, fmt.Errorf("read properties %s: %w", path, err)
	}

	return track.FileMeta{
		Name:     firstTag(tags, taglib.Title),
		Artist:   firstTag(tags, taglib.Artist),
		Album:    firstTag(tags, taglib.Album),
		Duration: props.Length,
	}, nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
