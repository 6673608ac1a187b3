package track

import (
	"math"
	"os"
	"strings"

	"tunedupe/internal/fingerprint"
	"tunedupe/internal/plist"
)

// Resolver converts a Location value into a local file path.
type Resolver interface {
	Resolve(raw string) (string, error)
}

// HashFunc computes the content fingerprint of a file.
type HashFunc func(path string) (fingerprint.Digest, error)

// StatFunc reports file metadata.
type StatFunc func(path string) (os.FileInfo, error)

// Builder turns track blocks into records.
type Builder struct {
	resolver Resolver
	hash     HashFunc
	stat     StatFunc
}

// Option customizes a Builder.
type Option func(*Builder)

// WithHashFunc overrides the fingerprint function.
func WithHashFunc(fn HashFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.hash = fn
		}
	}
}

// WithStatFunc overrides the filesystem probe.
func WithStatFunc(fn StatFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.stat = fn
		}
	}
}

// NewBuilder returns a builder that resolves locations with resolver and
// fingerprints files with fingerprint.Compute.
func NewBuilder(resolver Resolver, opts ...Option) *Builder {
	b := &Builder{
		resolver: resolver,
		hash:     fingerprint.Compute,
		stat:     os.Stat,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	stringFields  = []string{FieldName, FieldArtist, FieldAlbum, FieldLocation}
	integerFields = []string{FieldTotalTime, FieldRating, FieldPlayCount}
)

type rawFields struct {
	strings  map[string]string
	integers map[string]int64
}

func scanFields(lines []string) rawFields {
	raw := rawFields{
		strings:  make(map[string]string, len(stringFields)+1),
		integers: make(map[string]int64, len(integerFields)),
	}
	for _, line := range lines {
		for _, field := range stringFields {
			if value, ok := plist.Extract(line, field, plist.ShapeString); ok {
				raw.strings[field] = value
			}
		}
		for _, field := range integerFields {
			if value, ok := plist.ExtractInt(line, field); ok {
				raw.integers[field] = value
			}
		}
		if value, ok := plist.Extract(line, FieldDateAdded, plist.ShapeDate); ok {
			raw.strings[FieldDateAdded] = value
		}
	}
	return raw
}

// Build parses one track block. Later declarations of a field overwrite
// earlier ones.
func (b *Builder) Build(lines []string) *Record {
	raw := scanFields(lines)

	rec := &Record{Tags: make(map[string]string, len(raw.strings))}
	for field, value := range raw.strings {
		rec.Tags[field] = value
	}
	if date, ok := rec.Tags[FieldDateAdded]; ok {
		before, _, _ := strings.Cut(date, "T")
		rec.Tags[FieldDateAdded] = before
	}
	if rating, ok := raw.integers[FieldRating]; ok {
		rec.Rating = int(rating / 20)
	}
	rec.PlayCount = raw.integers[FieldPlayCount]

	if loc, ok := rec.Tags[FieldLocation]; !ok || loc == "" {
		return rec.invalid(ReasonMissingLocation)
	}
	millis, ok := raw.integers[FieldTotalTime]
	if !ok || millis == 0 {
		return rec.invalid(ReasonMissingTotalTime)
	}
	rec.TotalTime = MillisToSeconds(millis)

	if b.resolver == nil {
		return rec.invalid(ReasonUnresolvable)
	}
	path, err := b.resolver.Resolve(rec.Tags[FieldLocation])
	if err != nil || path == "" {
		return rec.invalid(ReasonUnresolvable)
	}
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

func (b *Builder) probe(path string) Reason {
	info, err := b.stat(path)
	if err != nil {
		return ReasonFileMissing
	}
	if !info.Mode().IsRegular() {
		return ReasonNotRegularFile
	}
	if info.Size() == 0 {
		return ReasonEmptyFile
	}
	return ReasonNone
}

func (r *Record) invalid(reason Reason) *Record {
	r.Valid = false
	r.Reason = reason
	r.FileHash = fingerprint.Digest{}
	return r
}

// MillisToSeconds converts a library duration to seconds, rounding halves
// away from zero.
func MillisToSeconds(millis int64) int64 {
	return int64(math.Round(float64(millis) / 1000.0))
}
