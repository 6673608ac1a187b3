package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tunedupe/internal/config"
	"tunedupe/internal/report"
	"tunedupe/internal/reportdb"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived scan runs, or the pairs of one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Report.Database
			if strings.TrimSpace(dbPath) != "" {
				if path, err = config.ExpandPath(strings.TrimSpace(dbPath)); err != nil {
					return fmt.Errorf("resolve --db path: %w", err)
				}
			}
			if path == "" {
				return errors.New("no report archive configured (set report.database or pass --db)")
			}

			store, err := reportdb.Open(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("open report archive: %w", err)
			}
			defer store.Close()

			if runID = strings.TrimSpace(runID); runID != "" {
				pairs, err := store.Pairs(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if jsonOutput {
					if pairs == nil {
						pairs = []report.Pair{}
					}
					return writeJSON(cmd, pairs)
				}
				if len(pairs) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No pairs recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(pairs))
				for _, p := range pairs {
					rows = append(rows, []string{strconv.Itoa(p.Score) + "%", p.NewPath, p.ExistingPath, strings.Join(p.Matched, ", ")})
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable(
					[]string{"Confidence", "Track", "Duplicate Of", "Matched"},
					rows,
					[]report.Alignment{report.AlignRight, report.AlignLeft, report.AlignLeft, report.AlignLeft},
				))
				return nil
			}

			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []reportdb.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs archived")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Started.Local().Format(time.DateTime),
					run.Library,
					strconv.Itoa(run.Cutoff),
					strconv.Itoa(run.Valid) + "/" + strconv.Itoa(run.Blocks),
					strconv.Itoa(run.Pairs),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable(
				[]string{"Run", "Started", "Library", "Cutoff", "Valid", "Pairs"},
				rows,
				[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Archive path; overrides report.database")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the pairs recorded for this run ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
