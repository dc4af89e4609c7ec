// Package dataset reads, augments, and writes tabular review data as CSV.
//
// A Table is a header row plus string rows. Augment runs the text pipeline
// over one column and appends the stage outputs as the columns
// clean, norm, stop, token, stem and sentimen, the layout of the exported
// "hasil_sentimen.csv" file.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/tokenizer"
)

// Names of the columns added by Augment, in order.
const (
	ColClean     = "clean"
	ColNorm      = "norm"
	ColStop      = "stop"
	ColToken     = "token"
	ColStem      = "stem"
	ColSentiment = "sentimen"
)

// AugmentColumns lists the columns added by Augment, in order.
var AugmentColumns = []string{ColClean, ColNorm, ColStop, ColToken, ColStem, ColSentiment}

// ErrMissingColumn matches any *MissingColumnError via errors.Is.
var ErrMissingColumn = errors.New("dataset: missing column")

// MissingColumnError reports that a requested column is not in the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset: column %q not found", e.Column)
}

// Is reports whether target is ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Table is an in-memory CSV table. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of column name in the header, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.Header, name)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Read parses CSV from r. The first record is the header. Short rows are
// padded with empty cells and long rows are truncated to the header width.
// A leading UTF-8 byte order mark is ignored.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("dataset: empty input, header row required")
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, fit(rec, len(header)))
	}
	return t, nil
}

// fit pads or truncates rec to n cells.
func fit(rec []string, n int) []string {
	if len(rec) == n {
		return rec
	}
	if len(rec) > n {
		return rec[:n]
	}
	out := make([]string, n)
	copy(out, rec)
	return out
}

// Write writes t as CSV with a header row. Fields holding commas, quotes
// or newlines are quoted.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("dataset: write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("dataset: write rows: %w", err)
	}
	return nil
}

// Column returns the values of column name, one per row.
func Column(t *Table, name string) ([]string, error) {
	i := t.Index(name)
	if i < 0 {
		return nil, &MissingColumnError{Column: name}
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// BatchProcessor runs the text pipeline over many texts, preserving order.
// *pipeline.Pipeline implements it.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, texts []string, workers int) ([]pipeline.Result, error)
}

// Augment runs p over column and returns a new table with the stage outputs
// appended. Columns that already exist under an output name are
// overwritten in place. If column is absent, a *MissingColumnError is
// returned and no rows are processed. t is not modified.
func Augment(ctx context.Context, p BatchProcessor, t *Table, column string, workers int) (*Table, error) {
	texts, err := Column(t, column)
	if err != nil {
		return nil, err
	}
	results, err := p.ProcessBatch(ctx, texts, workers)
	if err != nil {
		return nil, fmt.Errorf("dataset: augment %q: %w", column, err)
	}

	header := slices.Clone(t.Header)
	pos := make([]int, len(AugmentColumns))
	for i, name := range AugmentColumns {
		pos[i] = slices.Index(header, name)
		if pos[i] < 0 {
			pos[i] = len(header)
			header = append(header, name)
		}
	}

	out := &Table{Header: header, Rows: make([][]string, len(t.Rows))}
	for r, row := range t.Rows {
		res := results[r]
		next := make([]string, len(header))
		copy(next, row)
		values := [...]string{
			res.Lower,
			res.Norm,
			res.Stop,
			tokenizer.Format(res.Tokens),
			res.Stem,
			res.Sentiment.Label(),
		}
		for i, v := range values {
			next[pos[i]] = v
		}
		out.Rows[r] = next
	}
	return out, nil
}
