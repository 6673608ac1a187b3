package track

import (
	"strings"
	"time"
)

// FileMeta is metadata read from a media file's embedded tags.
type FileMeta struct {
	Name     string
	Artist   string
	Album    string
	Duration time.Duration
}

// BuildFromFile builds a record for a media file outside any library, using
// embedded tag metadata in place of a track block. Blank tags are treated as
// absent, and the same file gate and fingerprint as Build apply.
func (b *Builder) BuildFromFile(path string, meta FileMeta) *Record {
	rec := &Record{Tags: make(map[string]string, 4)}
	for field, value := range map[string]string{
		FieldName:   meta.Name,
		FieldArtist: meta.Artist,
		FieldAlbum:  meta.Album,
	} {
		if strings.TrimSpace(value) != "" {
			rec.Tags[field] = value
		}
	}
	if strings.TrimSpace(path) == "" {
		return rec.invalid(ReasonMissingLocation)
	}
	rec.Tags[FieldLocation] = path

	millis := meta.Duration.Milliseconds()
	if millis == 0 {
		return rec.invalid(ReasonMissingTotalTime)
	}
	rec.TotalTime = MillisToSeconds(millis)
	rec.FilePath = path

	if reason := b.probe(path); reason != ReasonNone {
		return rec.invalid(reason)
	}
	digest, err := b.hash(path)
	if err != nil {
		return rec.invalid(ReasonFingerprintFailed)
	}
	rec.FileHash = digest
	rec.Valid = true
	return rec
}
