package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Alignment positions a table column's cells.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableSink renders all pairs as a table at End, followed by a one-line
// summary.
type TableSink struct {
	w    io.Writer
	info RunInfo
	rows [][]string
}

// NewTableSink returns a table sink writing to w.
func NewTableSink(w io.Writer) *TableSink {
	return &TableSink{w: w}
}

func (s *TableSink) Begin(_ context.Context, info RunInfo) error {
	s.info = info
	s.rows = nil
	return nil
}

func (s *TableSink) Pair(_ context.Context, pair Pair) error {
	s.rows = append(s.rows, []string{
		strconv.Itoa(pair.Score) + "%",
		pair.NewPath,
		pair.ExistingPath,
		strings.Join(pair.Matched, ", "),
	})
	return nil
}

func (s *TableSink) End(_ context.Context, summary Summary) error {
	if len(s.rows) == 0 {
		if _, err := fmt.Fprintf(s.w, "No duplicates at or above %d%% in %s\n", s.info.Cutoff, s.info.Library); err != nil {
			return err
		}
	} else {
		headers := []string{"Confidence", "Track", "Duplicate Of", "Matched"}
		aligns := []Alignment{AlignRight, AlignLeft, AlignLeft, AlignLeft}
		if _, err := fmt.Fprintln(s.w, RenderTable(headers, s.rows, aligns)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.w, "%d tracks scanned, %d valid, %d skipped, %d pairs reported\n",
		summary.Blocks, summary.Valid, summary.Invalid, summary.Pairs)
	return err
}

// RenderTable renders rows under headers with rounded borders. Short rows
// are padded with empty cells; missing alignments default to left.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(toRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(toRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range configs {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func toRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
