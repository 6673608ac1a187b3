package track

import "tunedupe/internal/fingerprint"

// Library field names recognized inside a track block.
const (
	FieldName      = "Name"
	FieldArtist    = "Artist"
	FieldAlbum     = "Album"
	FieldLocation  = "Location"
	FieldTotalTime = "Total Time"
	FieldRating    = "Rating"
	FieldPlayCount = "Play Count"
	FieldDateAdded = "Date Added"
)

// Reason explains why a record is invalid.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMissingLocation   Reason = "missing_location"
	ReasonMissingTotalTime  Reason = "missing_total_time"
	ReasonUnresolvable      Reason = "unresolvable_location"
	ReasonFileMissing       Reason = "file_missing"
	ReasonNotRegularFile    Reason = "not_regular_file"
	ReasonEmptyFile         Reason = "empty_file"
	ReasonFingerprintFailed Reason = "fingerprint_failed"
)

// Record is one library entry. Records are not modified after Build returns.
type Record struct {
	// Tags holds the string-valued fields present in the block: Name,
	// Artist, Album, Location, and Date Added (date portion only).
	Tags map[string]string
	// TotalTime is the track length in whole seconds.
	TotalTime int64
	// Rating is on a 0-5 scale.
	Rating    int
	PlayCount int64

	FilePath string
	FileHash fingerprint.Digest

	Valid  bool
	Reason Reason
}

// Tag returns a string field and whether the block declared it.
func (r *Record) Tag(field string) (string, bool) {
	if r == nil || r.Tags == nil {
		return "", false
	}
	value, ok := r.Tags[field]
	return value, ok
}

// Name returns the track title, or "" when absent.
func (r *Record) Name() string {
	value, _ := r.Tag(FieldName)
	return value
}

// Artist returns the track artist, or "" when absent.
func (r *Record) Artist() string {
	value, _ := r.Tag(FieldArtist)
	return value
}

// Album returns the track album, or "" when absent.
func (r *Record) Album() string {
	value, _ := r.Tag(FieldAlbum)
	return value
}

// DateAdded returns the date the track was added (YYYY-MM-DD), or "".
func (r *Record) DateAdded() string {
	value, _ := r.Tag(FieldDateAdded)
	return value
}
