package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"tunedupe/internal/dupes"
	"tunedupe/internal/library"
	"tunedupe/internal/location"
	"tunedupe/internal/logging"
	"tunedupe/internal/report"
	"tunedupe/internal/track"
)

// ErrLibraryUnavailable is returned when the library export cannot be opened.
var ErrLibraryUnavailable = errors.New("library not found or unable to be opened")

// Options configures a scan.
type Options struct {
	LibraryPath string
	Cutoff      int
	Rewrites    []location.Rewrite
	Sink        report.Sink
	Logger      *slog.Logger

	// RunID overrides the generated run identifier.
	RunID string
	// BuilderOptions are passed to track.NewBuilder.
	BuilderOptions []track.Option
	Now            func() time.Time
}

// Run scans the library at opts.LibraryPath and reports duplicates to
// opts.Sink. Invalid tracks are counted in the summary and logged at debug.
func Run(ctx context.Context, opts Options) (report.Summary, error) {
	if opts.Sink == nil {
		return report.Summary{}, errors.New("scan requires a report sink")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := logging.NewComponentLogger(opts.Logger, "scan").With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldLibrary, opts.LibraryPath),
	)

	file, err := os.Open(opts.LibraryPath)
	if err != nil {
		return report.Summary{}, fmt.Errorf("%w: %w", ErrLibraryUnavailable, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return report.Summary{}, fmt.Errorf("%w: %w", ErrLibraryUnavailable, err)
	}
	if info.IsDir() {
		return report.Summary{}, fmt.Errorf("%w: %s is a directory", ErrLibraryUnavailable, opts.LibraryPath)
	}

	runInfo := report.RunInfo{
		RunID:   runID,
		Library: opts.LibraryPath,
		Cutoff:  opts.Cutoff,
		Started: now(),
	}
	if err := opts.Sink.Begin(ctx, runInfo); err != nil {
		return report.Summary{}, fmt.Errorf("begin report: %w", err)
	}

	builder := track.NewBuilder(location.NewResolver(opts.Rewrites), opts.BuilderOptions...)
	session := dupes.NewSession(opts.Cutoff)
	logger.Debug("scan started", logging.Int("cutoff", session.Cutoff()))
	summary := report.Summary{Reasons: map[string]int{}}

	stats, scanErr := library.Scan(file, func(block []string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := builder.Build(block)
		if !rec.Valid {
			summary.Invalid++
			summary.Reasons[string(rec.Reason)]++
			loc, _ := rec.Tag(track.FieldLocation)
			logger.Debug("track skipped",
				logging.String(logging.FieldReason, string(rec.Reason)),
				logging.String("name", rec.Name()),
				logging.String("location", loc),
				logging.String(logging.FieldPath, rec.FilePath),
			)
			return nil
		}
		summary.Valid++
		return session.Add(rec, func(m dupes.Match) error {
			summary.Pairs++
			logger.Debug("duplicate found",
				logging.Int(logging.FieldScore, m.Score),
				logging.String(logging.FieldPath, m.New.FilePath),
				logging.String("existing", m.Existing.FilePath),
			)
			return opts.Sink.Pair(ctx, report.PairFromMatch(m))
		})
	})
	summary.Lines = stats.Lines
	summary.Blocks = stats.Blocks
	if len(summary.Reasons) == 0 {
		summary.Reasons = nil
	}
	if scanErr != nil {
		return summary, fmt.Errorf("scan library: %w", scanErr)
	}
	if !stats.SectionFound {
		logger.Info("no tracks section found", logging.Int("lines", stats.Lines))
	}

	summary.Finished = now()
	if err := opts.Sink.End(ctx, summary); err != nil {
		return summary, fmt.Errorf("finish report: %w", err)
	}

	attrs := []logging.Attr{
		logging.Int("tracks", summary.Blocks),
		logging.Int("valid", summary.Valid),
		logging.Int("invalid", summary.Invalid),
		logging.Int("pairs", summary.Pairs),
		logging.String("duration", summary.Finished.Sub(runInfo.Started).Round(time.Millisecond).String()),
	}
	for _, reason := range summary.ReasonKeys() {
		attrs = append(attrs, logging.Int("invalid_"+reason, summary.Reasons[reason]))
	}
	logger.Info("scan complete", logging.Args(attrs...)...)
	return summary, nil
}
