// Package stopword removes high-frequency Indonesian function words that
// carry no sentiment.
//
// The built-in set is the union of a base linguistic stopword list and a
// supplementary list tuned for app reviews. Note that the base list
// contains negators such as "tidak" and "bukan"; they are removed before
// classification.
//
// All functions are safe for concurrent use by multiple goroutines.
package stopword

import (
	"strings"

	"github.com/az-ai-labs/ulasan/data"
)

// Set is an immutable set of lowercase stopwords.
type Set struct {
	words map[string]struct{}
}

// New returns a Set containing words, lowercased. Duplicates are harmless.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return s
}

var defaultSet = New(parseList(data.Stopwords)...)

// parseList returns the non-empty, non-comment lines of raw.
func parseList(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Default returns the built-in stopword set.
func Default() *Set {
	return defaultSet
}

// Contains reports whether the lowercase form of word is a stopword.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct stopwords.
func (s *Set) Len() int {
	return len(s.words)
}

// Remove drops every whitespace-delimited token of text that is a stopword
// and joins the survivors with single spaces.
func (s *Set) Remove(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !s.Contains(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Remove drops built-in stopwords from text.
func Remove(text string) string {
	return defaultSet.Remove(text)
}
