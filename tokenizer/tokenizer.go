// Package tokenizer splits cleaned review text into word tokens.
//
// Input is expected to be the output of the cleaning stage, so punctuation
// is already gone and splitting on whitespace is enough.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import (
	"fmt"
	"strings"
)

// Words splits s on runs of Unicode whitespace.
// Returns nil for empty or whitespace-only input.
func Words(s string) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	return words
}

// Join concatenates words with single spaces.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// Format renders words as a list literal, e.g. ['kurir', 'retur'], the form
// used for the token column of exported tables.
func Format(words []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, w := range words {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(w))
	}
	b.WriteByte(']')
	return b.String()
}

// quote wraps w in single quotes, switching to double quotes when w holds a
// single quote and no double quote.
func quote(w string) string {
	if strings.ContainsRune(w, '\'') && !strings.ContainsRune(w, '"') {
		return `"` + w + `"`
	}
	return fmt.Sprintf("'%s'", strings.ReplaceAll(w, `'`, `\'`))
}
