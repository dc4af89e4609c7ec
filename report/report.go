// Package report summarizes labeled review tables into per-app sentiment
// distributions.
//
// Labeled exports are matched to an e-commerce app by file name, the label
// column is detected by name, and labels are counted case-insensitively.
package report

import (
	"slices"
	"strconv"
	"strings"

	"github.com/az-ai-labs/ulasan/dataset"
	"github.com/az-ai-labs/ulasan/sentiment"
)

// Apps lists the apps recognized by GuessApp, in report order.
var Apps = []string{"Blibli", "Tokopedia", "Lazada", "Shopee"}

// appPatterns maps an app to the lowercase file-name fragments that
// identify it, including common misspellings.
var appPatterns = map[string][]string{
	"Blibli":    {"blibli", "bli-bli", "bli bli"},
	"Tokopedia": {"tokopedia", "toko pedia", "t0kopedia"},
	"Lazada":    {"lazada", "lzd"},
	"Shopee":    {"shopee", "shoppe", "shope", "sopee", "sope", "sopi", "sopy", "shoppee"},
}

// labelCandidates are the label column names tried by DetectLabelColumn.
var labelCandidates = []string{"label", "sentiment", "kelas", "target", "y", "sentimen"}

// GuessApp returns the app a file name refers to.
func GuessApp(filename string) (string, bool) {
	name := strings.ToLower(filename)
	for _, app := range Apps {
		for _, key := range appPatterns[app] {
			if strings.Contains(name, key) {
				return app, true
			}
		}
	}
	return "", false
}

// DetectLabelColumn returns the header name of t's label column: the first
// candidate name present (case-insensitive), otherwise the last text
// column, otherwise the last column. A text column has at least one
// non-empty cell that does not parse as a number. It returns "" for a table
// with no columns.
func DetectLabelColumn(t *dataset.Table) string {
	lower := make(map[string]string, len(t.Header))
	for _, h := range t.Header {
		k := strings.ToLower(strings.TrimSpace(h))
		if _, ok := lower[k]; !ok {
			lower[k] = h
		}
	}
	for _, c := range labelCandidates {
		if h, ok := lower[c]; ok {
			return h
		}
	}
	if len(t.Header) == 0 {
		return ""
	}
	for i := len(t.Header) - 1; i >= 0; i-- {
		if isTextColumn(t, i) {
			return t.Header[i]
		}
	}
	return t.Header[len(t.Header)-1]
}

// isTextColumn reports whether column i holds a non-empty, non-numeric cell.
func isTextColumn(t *dataset.Table, i int) bool {
	for _, row := range t.Rows {
		if i >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return true
		}
	}
	return false
}

// Distribution is the label count for one app.
type Distribution struct {
	App      string `json:"app"`
	Positive int    `json:"positif"`
	Negative int    `json:"negatif"`
	Neutral  int    `json:"netral"`
	Total    int    `json:"total"` // all rows, including unrecognized labels
}

// Count tallies the labels of t for app. Labels are trimmed and matched
// case-insensitively in Indonesian or English; other values only count
// toward Total.
func Count(app string, t *dataset.Table) Distribution {
	d := Distribution{App: app, Total: t.Len()}
	col := DetectLabelColumn(t)
	labels, err := dataset.Column(t, col)
	if err != nil {
		return d
	}
	for _, l := range labels {
		s, err := sentiment.Parse(l)
		if err != nil {
			continue
		}
		switch s {
		case sentiment.Positive:
			d.Positive++
		case sentiment.Negative:
			d.Negative++
		case sentiment.Neutral:
			d.Neutral++
		}
	}
	return d
}

// Header of the table produced by Distributions.
var Header = []string{"App", "Positif", "Negatif", "Netral", "Total"}

// Distributions renders ds as a table sorted by app name.
func Distributions(ds []Distribution) *dataset.Table {
	sorted := slices.Clone(ds)
	slices.SortStableFunc(sorted, func(a, b Distribution) int {
		return strings.Compare(a.App, b.App)
	})
	t := &dataset.Table{Header: slices.Clone(Header), Rows: make([][]string, len(sorted))}
	for i, d := range sorted {
		t.Rows[i] = []string{
			d.App,
			strconv.Itoa(d.Positive),
			strconv.Itoa(d.Negative),
			strconv.Itoa(d.Neutral),
			strconv.Itoa(d.Total),
		}
	}
	return t
}

// Missing returns the apps in Apps that have no entry in ds.
func Missing(ds []Distribution) []string {
	var out []string
	for _, app := range Apps {
		if !slices.ContainsFunc(ds, func(d Distribution) bool { return d.App == app }) {
			out = append(out, app)
		}
	}
	return out
}
