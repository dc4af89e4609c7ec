package review

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing the "at" field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// rawReview is one entry of a Google Play scraper export.
type rawReview struct {
	UserName string          `json:"userName"`
	Score    int             `json:"score"`
	At       json.RawMessage `json:"at"`
	Content  string          `json:"content"`
}

// FileSource serves reviews from scraper exports stored as
// <Dir>/<package id>.json, each a JSON array of objects with the fields
// userName, score, at and content. A missing file yields no records.
type FileSource struct {
	Dir string
}

// Fetch reads the export for q.PackageID, keeps records matching
// q.FilterScore, orders them newest first (records without a date last) and
// returns at most q.Count of them.
func (s *FileSource) Fetch(ctx context.Context, q Query) ([]Record, error) {
	q = q.WithDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.Dir, q.PackageID+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("review: open export: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("review: %s: %w", q.PackageID, err)
	}
	return Select(records, q), nil
}

// Decode parses a scraper export. Dates that cannot be parsed become nil.
func Decode(r io.Reader) ([]Record, error) {
	var raw []rawReview
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode export: %w", err)
	}
	records := make([]Record, len(raw))
	for i, rr := range raw {
		records[i] = Record{
			User:   rr.UserName,
			Rating: rr.Score,
			Date:   parseDate(rr.At),
			Text:   rr.Content,
		}
	}
	return records, nil
}

// parseDate accepts a JSON string in one of dateLayouts or a Unix timestamp
// in seconds.
func parseDate(raw json.RawMessage) *time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var sec int64
		if err := json.Unmarshal(raw, &sec); err != nil {
			return nil
		}
		t := time.Unix(sec, 0).UTC()
		return &t
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Select applies the score filter, the newest-first order and the count
// limit of q to records. q should already have defaults applied.
func Select(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.FilterScore != 0 && r.Rating != q.FilterScore {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, newestFirst)
	if q.Count > 0 && len(out) > q.Count {
		out = out[:q.Count]
	}
	return out
}

func newestFirst(a, b Record) int {
	switch {
	case a.Date == nil && b.Date == nil:
		return 0
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	}
	return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
}
