// Package morph reduces Indonesian words to their root form.
//
// The stemmer follows the Enhanced Confix Stripping approach: inflectional
// and derivational suffixes are removed first, then up to three derivational
// prefixes, checking the root-word dictionary after every step. Prefix
// allomorphs (meN-, peN-, ber-, ter-) are tried in the order given by an
// explicit rule table, including recoded readings such as
// "menulis" -> "me" + "tulis". When nothing matches, removed suffixes are
// restored one at a time and prefix removal is retried. A word that never
// reaches a dictionary root is returned lowercased but otherwise unchanged.
//
// Known limitations:
//   - Infix forms (-el-, -em-, -er-) are not handled.
//   - The dictionary is the only source of truth; an unknown root is never
//     guessed.
//
// All functions are safe for concurrent use by multiple goroutines.
package morph

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxWordBytes caps the input length processed by Stem and Analyze.
// Longer input is returned unchanged.
const maxWordBytes = 256

// minWordRunes is the shortest word that is searched for affixes.
const minWordRunes = 4

// minRootLen is the shortest remainder accepted after removing an affix.
const minRootLen = 2

// maxPrefixes is the maximum number of derivational prefixes removed.
const maxPrefixes = 3

// AffixKind classifies a removed affix.
type AffixKind int

const (
	Prefix       AffixKind = iota + 1 // di-, ke-, se-, ber-, ter-, meN-, peN-
	Particle                          // -lah, -kah, -tah, -pun
	Possessive                        // -ku, -mu, -nya
	Derivational                      // -i, -kan, -an
	Reduplication                     // X-X plurals
)

var affixKindNames = [...]string{
	Prefix:        "prefix",
	Particle:      "particle",
	Possessive:    "possessive",
	Derivational:  "derivational",
	Reduplication: "reduplication",
}

// String returns the lowercase kind name.
func (k AffixKind) String() string {
	if k > 0 && int(k) < len(affixKindNames) {
		return affixKindNames[k]
	}
	return fmt.Sprintf("AffixKind(%d)", int(k))
}

// Removal records one affix removed from a word.
type Removal struct {
	Affix string    // surface form, e.g. "meng" or "kan"
	Rule  string    // name of the rule that matched, e.g. "mengV"
	Kind  AffixKind // prefix or suffix class
}

// Analysis is the result of stemming a single word.
type Analysis struct {
	Word     string    // lowercased input
	Root     string    // dictionary root; empty when none was found
	Removals []Removal // in reading order: prefixes, then suffixes
}

// Found reports whether a dictionary root was reached.
func (a Analysis) Found() bool {
	return a.Root != ""
}

// String renders the analysis as "word -> root [affixes]".
func (a Analysis) String() string {
	if !a.Found() {
		return a.Word + " -> ?"
	}
	if len(a.Removals) == 0 {
		return a.Word + " -> " + a.Root
	}
	parts := make([]string, len(a.Removals))
	for i, r := range a.Removals {
		switch r.Kind {
		case Prefix:
			parts[i] = r.Affix + "-"
		case Reduplication:
			parts[i] = r.Affix
		default:
			parts[i] = "-" + r.Affix
		}
	}
	return a.Word + " -> " + a.Root + " [" + strings.Join(parts, " ") + "]"
}

// Stem returns the root of word, or the lowercased word when no root is
// found.
//
//	morph.Stem("pengiriman") // "kirim"
//	morph.Stem("barangnya")  // "barang"
//	morph.Stem("nanggung")   // "nanggung"
func Stem(word string) string {
	a := Analyze(word)
	if a.Found() {
		return a.Root
	}
	return a.Word
}

// Stems stems every word and joins the results with single spaces.
func Stems(words []string) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Stem(w)
	}
	return strings.Join(out, " ")
}

// Analyze stems word and reports the affixes that were removed.
func Analyze(word string) Analysis {
	w := strings.ToLower(word)
	a := Analysis{Word: w}
	if w == "" || len(w) > maxWordBytes {
		return a
	}
	if IsRoot(w) {
		a.Root = w
		return a
	}
	if strings.Contains(w, "-") {
		return analyzePlural(a)
	}
	if utf8.RuneCountInString(w) < minWordRunes || strings.IndexFunc(w, notLetter) >= 0 {
		return a
	}
	if root, rem, ok := search(w); ok {
		a.Root, a.Removals = root, rem
	}
	return a
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r)
}

// analyzePlural handles reduplicated plurals such as "buku-buku" and
// "buku-bukunya": both halves must reduce to the same root.
func analyzePlural(a Analysis) Analysis {
	first, second, _ := strings.Cut(a.Word, "-")
	if first == "" || second == "" || strings.Contains(second, "-") {
		return a
	}
	r1, r2 := Analyze(first), Analyze(second)
	root1, root2 := r1.Root, r2.Root
	if !r1.Found() {
		root1 = first
	}
	if !r2.Found() {
		root2 = second
	}
	if root1 != root2 || (!r1.Found() && !r2.Found()) {
		return a
	}
	a.Root = root1
	a.Removals = append(slices.Clone(r1.Removals), Removal{Affix: "-" + second, Rule: "plural", Kind: Reduplication})
	return a
}

// suffixState is w after removing the first n suffix classes.
type suffixState struct {
	word     string
	removals []Removal
	deriv    string // derivational suffix removed to reach this state
}

// suffixStates removes particle, possessive and derivational suffixes in
// order. states[0] is w itself; each later state removes one more suffix.
func suffixStates(w string) []suffixState {
	states := []suffixState{{word: w}}
	cur := w
	var rem []Removal
	deriv := ""
	for _, rule := range suffixRules {
		for _, suf := range rule.suffixes {
			if !strings.HasSuffix(cur, suf) || len(cur)-len(suf) < minRootLen {
				continue
			}
			cur = cur[:len(cur)-len(suf)]
			// Suffixes are peeled from the outside in; keep the list in
			// reading order (innermost last).
			rem = append([]Removal{{Affix: suf, Rule: rule.name, Kind: rule.kind}}, rem...)
			if rule.kind == Derivational {
				deriv = suf
			}
			states = append(states, suffixState{word: cur, removals: rem, deriv: deriv})
			break
		}
	}
	return states
}

// search runs the full stemming procedure on a lowercase, letters-only word
// that is not itself a root.
func search(w string) (string, []Removal, bool) {
	if hasPrecedence(w) {
		if root, rem, ok := stripPrefixes(w, "", acceptWithSuffixes); ok {
			return root, rem, true
		}
	}

	states := suffixStates(w)
	for _, st := range states[1:] {
		if IsRoot(st.word) {
			return st.word, st.removals, true
		}
	}

	last := states[len(states)-1]
	if root, rem, ok := stripPrefixes(last.word, last.deriv, acceptRoot); ok {
		return root, append(rem, last.removals...), true
	}

	// Restore suffixes innermost first and retry prefix removal.
	for i := len(states) - 1; i >= 1; i-- {
		st, prev := states[i], states[i-1]
		if st.deriv == "kan" && strings.HasSuffix(prev.word, "kan") {
			withK := st.word + "k"
			rem := append([]Removal{{Affix: "an", Rule: "kan->k", Kind: Derivational}}, prev.removals...)
			if IsRoot(withK) {
				return withK, rem, true
			}
			if root, p, ok := stripPrefixes(withK, "", acceptRoot); ok {
				return root, append(p, rem...), true
			}
		}
		if root, p, ok := stripPrefixes(prev.word, "", acceptRoot); ok {
			return root, append(p, prev.removals...), true
		}
	}
	return "", nil, false
}

// acceptFunc decides whether a prefix-stripped remainder completes the
// search, returning the root and any further removals.
type acceptFunc func(rest string) (string, []Removal, bool)

func acceptRoot(rest string) (string, []Removal, bool) {
	if IsRoot(rest) {
		return rest, nil, true
	}
	return "", nil, false
}

func acceptWithSuffixes(rest string) (string, []Removal, bool) {
	for _, st := range suffixStates(rest) {
		if IsRoot(st.word) {
			return st.word, st.removals, true
		}
	}
	return "", nil, false
}

// stripPrefixes removes up to maxPrefixes prefixes from w, depth first over
// the rule table. deriv, when non-empty, rules out prefixes that cannot
// combine with that derivational suffix.
func stripPrefixes(w, deriv string, accept acceptFunc) (string, []Removal, bool) {
	return prefixSearch(w, deriv, accept, 0, 0, nil)
}

func prefixSearch(w, deriv string, accept acceptFunc, depth int, prev prefixKind, path []Removal) (string, []Removal, bool) {
	if depth == maxPrefixes {
		return "", nil, false
	}
	for i := range prefixRules {
		rule := &prefixRules[i]
		if rule.kind == prev || (deriv != "" && isDisallowed(rule.kind, deriv)) {
			continue
		}
		for _, c := range rule.apply(w) {
			if len(c.rest) < minRootLen {
				continue
			}
			p := append(slices.Clip(path), Removal{Affix: c.prefix, Rule: rule.name, Kind: Prefix})
			if root, extra, ok := accept(c.rest); ok {
				return root, append(p, extra...), true
			}
			if root, rem, ok := prefixSearch(c.rest, deriv, accept, depth+1, rule.kind, p); ok {
				return root, rem, true
			}
		}
	}
	return "", nil, false
}
