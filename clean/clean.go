// Package clean strips noise from raw Indonesian review text.
//
// Clean applies a fixed sequence of rules, each operating on the output of
// the previous one:
//
//  1. @mentions, #hashtags and URLs (http://, https://, www.) become a space.
//  2. Digit runs become a space.
//  3. Filler and promotional expressions (hehe, wkwk, promo, diskon, ...)
//     become a space when they stand as whole words. Matching is
//     case-sensitive, so "PROMO" survives this step.
//  4. Every rune that is not a letter, number, underscore or whitespace
//     becomes a space. This removes punctuation, symbols and emoji.
//  5. Runs of three or more identical runes collapse to one ("baguuuus" ->
//     "bagus").
//  6. Whitespace is collapsed, the text is lowercased and trimmed.
//
// Input is composed to Unicode NFC first so that decomposed accented letters
// are kept as letters by step 4.
//
// Known limitations:
//
//   - Clean is not idempotent when the text holds a filler in any case
//     other than lowercase. A capitalized filler at the start of a
//     sentence ("Promo mantap", "Haha") survives step 3, is lowercased in
//     step 6 and is removed by a second pass. De-elongation can also
//     assemble a new filler ("hahaaa") or a new run ("AAa"). Text without
//     such fillers or mixed-case runs comes out unchanged on a second pass.
//   - Step 5 collapses any repeated rune, so legitimate triples such as
//     "www" or "zzz" are shortened too.
//
// All functions are safe for concurrent use by multiple goroutines.
package clean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/az-ai-labs/ulasan/data"
)

// minElongation is the run length at which repeated runes are collapsed.
const minElongation = 3

var (
	mentionRe = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	urlRe     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	digitRe   = regexp.MustCompile(`\p{Nd}+`)
)

// fillerRe matches any filler expression; word boundaries are checked
// separately because RE2 only knows ASCII word boundaries.
var fillerRe = regexp.MustCompile(fillerPattern(data.Fillers))

// fillerPattern builds an alternation from the embedded filler list,
// preserving file order so that longer forms listed first win.
func fillerPattern(raw string) string {
	var alts []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(line))
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

// Clean removes mentions, hashtags, URLs, digits, filler words, symbols and
// elongated characters from text, then collapses whitespace, lowercases and
// trims. It always returns a string, possibly empty.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)

	text = mentionRe.ReplaceAllString(text, " ")
	text = hashtagRe.ReplaceAllString(text, " ")
	text = urlRe.ReplaceAllString(text, " ")
	text = digitRe.ReplaceAllString(text, " ")
	text = removeFillers(text)
	text = strings.Map(symbolToSpace, text)
	text = Deelongate(text)

	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Lower returns the lowercase form of s. It is exposed as its own pipeline
// stage so that callers can display it separately.
func Lower(s string) string {
	return strings.ToLower(s)
}

// Deelongate collapses every run of three or more identical runes in s to a
// single rune. Shorter runs are kept as they are.
func Deelongate(s string) string {
	runes := []rune(s)
	if len(runes) < minElongation {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= minElongation {
			b.WriteRune(runes[i])
		} else {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}
	return b.String()
}

// removeFillers replaces every filler expression that is not glued to a
// word rune on either side with a single space.
func removeFillers(s string) string {
	matches := fillerRe.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if !isBoundary(s, start, end) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteByte(' ')
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// isBoundary reports whether s[start:end] is delimited by non-word runes or
// the string edges.
func isBoundary(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune reports whether r counts as a word character: a letter, a
// number or an underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// symbolToSpace maps every rune outside word characters and whitespace to
// a space.
func symbolToSpace(r rune) rune {
	if isWordRune(r) || unicode.IsSpace(r) {
		return r
	}
	return ' '
}
