// Package normalize rewrites informal Indonesian tokens (slang and
// abbreviations such as "yg", "gak", "bgt") to their canonical forms.
//
// The substitution table is an ordered list of pairs. Normalize applies the
// pairs one after another in table order, replacing every occurrence of the
// informal form with the canonical form.
//
// Two matching policies are provided:
//
//   - MatchSubstring (default) replaces every substring occurrence, so a
//     short key also fires inside longer words ("saja" -> "ssaja" via
//     "aja"). An earlier replacement can also produce text that a later key
//     matches. Both effects are kept for compatibility with existing
//     labeled data.
//   - MatchToken replaces only whole whitespace-delimited tokens.
//
// Callers using MatchSubstring are expected to pad the input with a leading
// and trailing space.
//
// All functions are safe for concurrent use by multiple goroutines.
package normalize

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/az-ai-labs/ulasan/data"
)

// Match selects how table keys are matched against text.
type Match int

const (
	MatchSubstring Match = iota // replace every substring occurrence
	MatchToken                  // replace whole whitespace-delimited tokens only
)

// String returns the policy name.
func (m Match) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchToken:
		return "token"
	default:
		return fmt.Sprintf("Match(%d)", int(m))
	}
}

// ParseMatch returns the policy named s ("substring" or "token").
func ParseMatch(s string) (Match, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "token":
		return MatchToken, nil
	default:
		return 0, fmt.Errorf("normalize: unknown match policy: %q", s)
	}
}

// Pair is one table entry.
type Pair struct {
	From string // informal token
	To   string // canonical token
}

// Table is an ordered substitution table. It is never modified after
// construction.
type Table []Pair

// ParseTable reads "informal<TAB>canonical" lines. Blank lines and lines
// starting with '#' are skipped.
func ParseTable(r io.Reader) (Table, error) {
	var t Table
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		from, to, ok := strings.Cut(text, "\t")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || strings.ContainsAny(from, " \t") {
			return nil, fmt.Errorf("normalize: line %d: malformed entry %q", line, text)
		}
		t = append(t, Pair{From: from, To: to})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("normalize: read table: %w", err)
	}
	return t, nil
}

var defaultTable = mustParse(data.SlangTable)

func mustParse(raw string) Table {
	t, err := ParseTable(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns the built-in slang table. The returned slice is shared
// and must not be modified.
func DefaultTable() Table {
	return defaultTable
}

// Normalizer applies a Table under a Match policy.
type Normalizer struct {
	table Table
	match Match
}

// New returns a Normalizer for table. A nil table means the built-in one.
func New(table Table, match Match) *Normalizer {
	if table == nil {
		table = defaultTable
	}
	return &Normalizer{table: table, match: match}
}

var defaultNormalizer = New(nil, MatchSubstring)

// Normalize rewrites slang in text with the built-in table and substring
// matching.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize rewrites slang in text according to the normalizer's table and
// policy.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}
	if n.match == MatchToken {
		return n.replaceTokens(text)
	}
	for _, p := range n.table {
		text = strings.ReplaceAll(text, p.From, p.To)
	}
	return text
}

// Match returns the normalizer's policy.
func (n *Normalizer) Match() Match {
	return n.match
}

// replaceTokens substitutes whole tokens pair by pair, in table order,
// and rejoins them with single spaces.
func (n *Normalizer) replaceTokens(text string) string {
	words := strings.Fields(text)
	for _, p := range n.table {
		for i, w := range words {
			if w == p.From {
				words[i] = p.To
			}
		}
	}
	return strings.Join(words, " ")
}
