// Package review models app-store reviews and the sources that supply them.
//
// A Source returns Records for a Query. Records carry the reviewer, the star
// rating, the review date and the review text; only the text feeds the
// sentiment pipeline. A record whose date cannot be parsed keeps a nil Date
// and stays in the result. An empty result is not an error.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Query defaults and limits.
const (
	DefaultPackageID = "blibli.mobile.commerce"
	DefaultLang      = "id"
	DefaultCountry   = "id"
	DefaultCount     = 500
	MinCount         = 100
	MaxCount         = 10000
)

// SortOrder selects the order reviews are requested in.
type SortOrder string

const (
	SortNewest       SortOrder = "NEWEST"
	SortMostRelevant SortOrder = "MOST_RELEVANT"
)

// Record is one review.
type Record struct {
	User   string     `json:"user"`
	Rating int        `json:"rating"`
	Date   *time.Time `json:"date"` // nil when the source date was unparseable
	Text   string     `json:"text"`
}

// Query selects reviews from a Source.
type Query struct {
	PackageID   string    `json:"package_id"`
	Lang        string    `json:"lang"`
	Country     string    `json:"country"`
	Count       int       `json:"count"`
	Sort        SortOrder `json:"sort"`
	FilterScore int       `json:"filter_score"` // 0 means all ratings, else 1..5
}

// WithDefaults returns q with empty fields filled in and Count clamped to
// [MinCount, MaxCount].
func (q Query) WithDefaults() Query {
	if q.PackageID == "" {
		q.PackageID = DefaultPackageID
	}
	if q.Lang == "" {
		q.Lang = DefaultLang
	}
	if q.Country == "" {
		q.Country = DefaultCountry
	}
	switch {
	case q.Count == 0:
		q.Count = DefaultCount
	case q.Count < MinCount:
		q.Count = MinCount
	case q.Count > MaxCount:
		q.Count = MaxCount
	}
	if strings.EqualFold(string(q.Sort), string(SortNewest)) || q.Sort == "" {
		q.Sort = SortNewest
	} else {
		q.Sort = SortMostRelevant
	}
	return q
}

// Validate reports whether q can be sent to a Source.
func (q Query) Validate() error {
	if q.FilterScore < 0 || q.FilterScore > 5 {
		return fmt.Errorf("review: filter score %d out of range 1..5", q.FilterScore)
	}
	if strings.ContainsAny(q.PackageID, `/\`) || strings.Contains(q.PackageID, "..") {
		return fmt.Errorf("review: invalid package id %q", q.PackageID)
	}
	return nil
}

// Source fetches reviews.
type Source interface {
	Fetch(ctx context.Context, q Query) ([]Record, error)
}
