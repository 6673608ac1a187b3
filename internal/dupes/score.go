package dupes

import (
	"tunedupe/internal/textutil"
	"tunedupe/internal/track"
)

// Score values assigned by the comparison policy.
const (
	ScoreIdentical          = 100
	ScoreAllFields          = 95
	ScoreThreeWithName      = 90
	ScoreNameAndArtistAlbum = 75
	ScoreThreeWithoutName   = 40
	ScoreTwoWeak            = 25
	ScoreOneField           = 3
	ScoreNone               = 0
)

// TimeTolerance is the largest length difference, in seconds, still counted
// as a match.
const TimeTolerance = 1

// Field names reported in Comparison.Matched.
const (
	MatchTime   = "time"
	MatchName   = "name"
	MatchArtist = "artist"
	MatchAlbum  = "album"
)

// Comparison is the outcome of comparing two records.
type Comparison struct {
	Score       int
	SameContent bool
	TimeMatch   bool
	NameMatch   bool
	ArtistMatch bool
	AlbumMatch  bool
}

// Matched lists the fields that matched, in a stable order.
func (c Comparison) Matched() []string {
	if c.SameContent {
		return []string{"content"}
	}
	var out []string
	if c.NameMatch {
		out = append(out, MatchName)
	}
	if c.ArtistMatch {
		out = append(out, MatchArtist)
	}
	if c.AlbumMatch {
		out = append(out, MatchAlbum)
	}
	if c.TimeMatch {
		out = append(out, MatchTime)
	}
	return out
}

func (c Comparison) count() int {
	n := 0
	for _, ok := range []bool{c.TimeMatch, c.NameMatch, c.ArtistMatch, c.AlbumMatch} {
		if ok {
			n++
		}
	}
	return n
}

// Compare evaluates a and b. Both records are expected to be valid.
func Compare(a, b *track.Record) Comparison {
	if a.FileHash == b.FileHash {
		return Comparison{Score: ScoreIdentical, SameContent: true}
	}

	c := Comparison{
		TimeMatch:   timesMatch(a.TotalTime, b.TotalTime),
		NameMatch:   tagsMatch(a, b, track.FieldName),
		ArtistMatch: tagsMatch(a, b, track.FieldArtist),
		AlbumMatch:  tagsMatch(a, b, track.FieldAlbum),
	}
	c.Score = policyScore(c)
	return c
}

// Score returns the 0-100 duplicate confidence for a and b.
func Score(a, b *track.Record) int {
	return Compare(a, b).Score
}

func policyScore(c Comparison) int {
	switch c.count() {
	case 4:
		return ScoreAllFields
	case 3:
		if c.NameMatch {
			return ScoreThreeWithName
		}
		return ScoreThreeWithoutName
	case 2:
		if c.NameMatch && (c.ArtistMatch || c.AlbumMatch) {
			return ScoreNameAndArtistAlbum
		}
		return ScoreTwoWeak
	case 1:
		return ScoreOneField
	default:
		return ScoreNone
	}
}

func timesMatch(a, b int64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= TimeTolerance
}

// tagsMatch never counts a field that either record lacks.
func tagsMatch(a, b *track.Record, field string) bool {
	av, aok := a.Tag(field)
	bv, bok := b.Tag(field)
	if !aok || !bok {
		return false
	}
	return textutil.FoldEqual(av, bv)
}
