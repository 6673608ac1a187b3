package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tunedupe/internal/dupes"
	"tunedupe/internal/logging"
	"tunedupe/internal/mediatags"
	"tunedupe/internal/report"
	"tunedupe/internal/track"
)

type compareFile struct {
	Path string `json:"path"`
	report.Track
	Fingerprint string `json:"fingerprint"`
}

type compareResult struct {
	Score       int         `json:"score"`
	SameContent bool        `json:"same_content"`
	Matched     []string    `json:"matched"`
	New         compareFile `json:"new"`
	Existing    compareFile `json:"existing"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "compare <new-file> <existing-file>",
		Short: "Score two media files against each other using their embedded tags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "compare")
			builder := track.NewBuilder(nil)
			newRec, err := recordForFile(builder, args[0])
			if err != nil {
				return err
			}
			existingRec, err := recordForFile(builder, args[1])
			if err != nil {
				return err
			}

			cmp := dupes.Compare(newRec, existingRec)
			logger.Debug("files compared",
				logging.Int(logging.FieldScore, cmp.Score),
				logging.String(logging.FieldPath, newRec.FilePath),
				logging.String("existing", existingRec.FilePath),
			)
			matched := cmp.Matched()
			if matched == nil {
				matched = []string{}
			}
			result := compareResult{
				Score:       cmp.Score,
				SameContent: cmp.SameContent,
				Matched:     matched,
				New:         describeRecord(newRec),
				Existing:    describeRecord(existingRec),
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Confidence: %d%%\n", result.Score)
			if result.SameContent {
				fmt.Fprintln(out, "Audio content is identical")
			} else if len(result.Matched) > 0 {
				fmt.Fprintf(out, "Matched: %s\n", strings.Join(result.Matched, ", "))
			} else {
				fmt.Fprintln(out, "Matched: nothing")
			}
			for _, f := range []compareFile{result.New, result.Existing} {
				fmt.Fprintf(out, "%s\n  %s / %s / %s (%ds) %s\n",
					f.Path, orDash(f.Name), orDash(f.Artist), orDash(f.Album), f.Seconds, f.Fingerprint)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func recordForFile(builder *track.Builder, path string) (*track.Record, error) {
	meta, err := mediatags.Read(path)
	if err != nil {
		return nil, err
	}
	rec := builder.BuildFromFile(path, meta)
	if !rec.Valid {
		return nil, fmt.Errorf("%s: cannot compare (%s)", path, rec.Reason)
	}
	return rec, nil
}

func describeRecord(rec *track.Record) compareFile {
	return compareFile{
		Path:        rec.FilePath,
		Track:       report.TrackFromRecord(rec),
		Fingerprint: rec.FileHash.String(),
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
