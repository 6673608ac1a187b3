package report

import (
	"context"
	"encoding/json"
	"io"
)

// JSONSink writes the whole run as one indented JSON document at End.
type JSONSink struct {
	w   io.Writer
	doc jsonDocument
}

type jsonDocument struct {
	RunInfo
	Pairs   []Pair  `json:"pairs"`
	Summary Summary `json:"summary"`
}

// NewJSONSink returns a JSON sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

func (s *JSONSink) Begin(_ context.Context, info RunInfo) error {
	s.doc = jsonDocument{RunInfo: info, Pairs: []Pair{}}
	return nil
}

func (s *JSONSink) Pair(_ context.Context, pair Pair) error {
	s.doc.Pairs = append(s.doc.Pairs, pair)
	return nil
}

func (s *JSONSink) End(_ context.Context, summary Summary) error {
	s.doc.Summary = summary
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.doc)
}
