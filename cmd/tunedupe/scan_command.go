package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tunedupe/internal/config"
	"tunedupe/internal/location"
	"tunedupe/internal/logging"
	"tunedupe/internal/report"
	"tunedupe/internal/reportdb"
	"tunedupe/internal/scan"
)

type scanFlags struct {
	cutoff   int
	format   string
	color    string
	database string
	noDB     bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cutoff, "cutoff", 0, "Minimum confidence (0-100) to report; overrides scan.cutoff")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Report format: text, json, or table")
	cmd.Flags().StringVar(&f.color, "color", "", "Text report color: auto, always, or never")
	cmd.Flags().StringVar(&f.database, "db", "", "Archive the run in this SQLite file; overrides report.database")
	cmd.Flags().BoolVar(&f.noDB, "no-db", false, "Skip the report archive even if one is configured")
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	flags := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan [library.xml]",
		Short: "Scan a library export and report likely duplicate tracks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, ctx, flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func runScan(cmd *cobra.Command, ctx *commandContext, flags *scanFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	libraryPath := cfg.Scan.LibraryPath
	if len(args) > 0 {
		libraryPath = strings.TrimSpace(args[0])
	}
	if libraryPath == "" {
		printUsage(cmd.OutOrStdout())
		return nil
	}

	settings, err := resolveScanSettings(cmd, cfg, flags)
	if err != nil {
		return err
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var sink report.Sink
	switch settings.format {
	case config.FormatJSON:
		sink = report.NewJSONSink(out)
	case config.FormatTable:
		sink = report.NewTableSink(out)
	default:
		sink = report.NewTextSink(out, report.ShouldColorize(out, settings.color))
	}

	if settings.database != "" {
		store, err := reportdb.Open(cmd.Context(), settings.database)
		if err != nil {
			return fmt.Errorf("open report archive: %w", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Warn("close report archive failed", logging.Error(closeErr))
			}
		}()
		sink = report.Multi{sink, store}
	}

	_, err = scan.Run(cmd.Context(), scan.Options{
		LibraryPath: libraryPath,
		Cutoff:      settings.cutoff,
		Rewrites:    locationRewrites(cfg),
		Sink:        sink,
		Logger:      logger,
	})
	if errors.Is(err, scan.ErrLibraryUnavailable) {
		logger.Debug("library open failed", logging.String(logging.FieldLibrary, libraryPath), logging.Error(err))
		fmt.Fprintf(out, "%s not found or unable to be opened.\n", libraryPath)
		return nil
	}
	return err
}

type scanSettings struct {
	cutoff   int
	format   string
	color    string
	database string
}

func resolveScanSettings(cmd *cobra.Command, cfg *config.Config, flags *scanFlags) (scanSettings, error) {
	settings := scanSettings{
		cutoff:   cfg.Scan.Cutoff,
		format:   cfg.Report.Format,
		color:    cfg.Report.Color,
		database: cfg.Report.Database,
	}

	changed := cmd.Flags().Changed
	if changed("cutoff") {
		if flags.cutoff < 0 || flags.cutoff > 100 {
			return settings, fmt.Errorf("--cutoff must be between 0 and 100 (got %d)", flags.cutoff)
		}
		settings.cutoff = flags.cutoff
	}
	if changed("format") {
		format := strings.ToLower(strings.TrimSpace(flags.format))
		switch format {
		case config.FormatText, config.FormatJSON, config.FormatTable:
		default:
			return settings, fmt.Errorf("--format: unsupported value %q (use text, json, or table)", flags.format)
		}
		settings.format = format
	}
	if changed("color") {
		color := strings.ToLower(strings.TrimSpace(flags.color))
		switch color {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
		default:
			return settings, fmt.Errorf("--color: unsupported value %q (use auto, always, or never)", flags.color)
		}
		settings.color = color
	}
	if changed("db") {
		expanded, err := config.ExpandPath(strings.TrimSpace(flags.database))
		if err != nil {
			return settings, fmt.Errorf("resolve --db path: %w", err)
		}
		settings.database = expanded
	}
	if flags.noDB {
		settings.database = ""
	}
	return settings, nil
}

func locationRewrites(cfg *config.Config) []location.Rewrite {
	rewrites := make([]location.Rewrite, 0, len(cfg.Location.Rewrites))
	for _, rw := range cfg.Location.Rewrites {
		rewrites = append(rewrites, location.Rewrite{From: rw.From, To: rw.To})
	}
	return rewrites
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tunedupe path_to_XML_library_file")
	fmt.Fprintln(w, "On macOS, XML library files are usually found in ~/Music/iTunes/")
	fmt.Fprintln(w, "Run 'tunedupe --help' for all commands and flags.")
}
