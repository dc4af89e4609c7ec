package morph

import "strings"

// prefixKind groups prefix rules by the morpheme they remove. Two rules of
// the same kind are never applied in a row, and some kinds cannot combine
// with certain derivational suffixes.
type prefixKind int

const (
	kindDi prefixKind = iota + 1
	kindKe
	kindSe
	kindBe
	kindTe
	kindMe
	kindPe
)

// candidate is one way of reading a prefix: the surface that was removed
// and the remainder, which may have a recoded initial consonant
// (menulis -> me + tulis).
type candidate struct {
	prefix string
	rest   string
}

// prefixRule describes one prefix pattern. apply returns the candidate
// readings in priority order, or nil when the pattern does not match.
type prefixRule struct {
	name  string
	kind  prefixKind
	apply func(w string) []candidate
}

// suffixRule removes one suffix class.
type suffixRule struct {
	name     string
	kind     AffixKind
	suffixes []string // longest first
}

// Suffix classes in removal order: inflectional particle, inflectional
// possessive pronoun, then derivational suffix.
var suffixRules = []suffixRule{
	{name: "particle", kind: Particle, suffixes: []string{"lah", "kah", "tah", "pun"}},
	{name: "possessive", kind: Possessive, suffixes: []string{"nya", "ku", "mu"}},
	{name: "derivational", kind: Derivational, suffixes: []string{"kan", "an", "i"}},
}

// disallowed lists prefix/derivational-suffix pairs that never form a
// confix in Indonesian.
var disallowed = map[prefixKind][]string{
	kindBe: {"i"},
	kindDi: {"an"},
	kindKe: {"i", "kan"},
	kindMe: {"an"},
	kindSe: {"i", "kan"},
	kindTe: {"an"},
}

func isDisallowed(kind prefixKind, suffix string) bool {
	for _, s := range disallowed[kind] {
		if s == suffix {
			return true
		}
	}
	return false
}

// precedencePatterns are confix shapes for which prefixes are removed
// before suffixes: be-lah, be-an, me-i, di-i, pe-i, ter-i.
var precedencePatterns = []struct{ prefix, suffix string }{
	{"be", "lah"},
	{"be", "an"},
	{"me", "i"},
	{"di", "i"},
	{"pe", "i"},
	{"ter", "i"},
}

func hasPrecedence(w string) bool {
	for _, p := range precedencePatterns {
		if len(w) > len(p.prefix)+len(p.suffix) &&
			strings.HasPrefix(w, p.prefix) && strings.HasSuffix(w, p.suffix) {
			return true
		}
	}
	return false
}

// prefixRules is the ordered prefix table. Within a rule, candidates are
// tried in order; across rules, every matching rule is tried.
var prefixRules = []prefixRule{
	// Plain prefixes.
	{"di", kindDi, plain("di")},
	{"ke", kindKe, plain("ke")},
	{"se", kindSe, plain("se")},

	// ber- / be-
	{"berV", kindBe, func(w string) []candidate {
		if strings.HasPrefix(w, "ber") && isVowel(at(w, 3)) {
			return []candidate{{"ber", w[3:]}, {"be", w[2:]}}
		}
		return nil
	}},
	{"berCAP", kindBe, func(w string) []candidate {
		if strings.HasPrefix(w, "ber") && isConsonant(at(w, 3)) && at(w, 3) != 'r' && !hasAt(w, 5, "er") {
			return []candidate{{"ber", w[3:]}}
		}
		return nil
	}},
	{"berCAerV", kindBe, func(w string) []candidate {
		if strings.HasPrefix(w, "ber") && isConsonant(at(w, 3)) && at(w, 3) != 'r' && hasAt(w, 5, "er") && isVowel(at(w, 7)) {
			return []candidate{{"ber", w[3:]}}
		}
		return nil
	}},
	{"belajar", kindBe, func(w string) []candidate {
		if strings.HasPrefix(w, "belajar") {
			return []candidate{{"bel", w[3:]}}
		}
		return nil
	}},
	{"beCerC", kindBe, func(w string) []candidate {
		c := at(w, 2)
		if strings.HasPrefix(w, "be") && isConsonant(c) && c != 'r' && c != 'l' && hasAt(w, 3, "er") && isConsonant(at(w, 5)) {
			return []candidate{{"be", w[2:]}}
		}
		return nil
	}},

	// ter- / te-
	{"terV", kindTe, func(w string) []candidate {
		if strings.HasPrefix(w, "ter") && isVowel(at(w, 3)) {
			return []candidate{{"ter", w[3:]}, {"te", w[2:]}}
		}
		return nil
	}},
	{"terCerV", kindTe, func(w string) []candidate {
		if strings.HasPrefix(w, "ter") && isConsonant(at(w, 3)) && at(w, 3) != 'r' && hasAt(w, 4, "er") && isVowel(at(w, 6)) {
			return []candidate{{"ter", w[3:]}}
		}
		return nil
	}},
	{"terCP", kindTe, func(w string) []candidate {
		if strings.HasPrefix(w, "ter") && isConsonant(at(w, 3)) && at(w, 3) != 'r' && !hasAt(w, 4, "er") {
			return []candidate{{"ter", w[3:]}}
		}
		return nil
	}},
	{"terCerC", kindTe, func(w string) []candidate {
		if strings.HasPrefix(w, "ter") && isConsonant(at(w, 3)) && at(w, 3) != 'r' && hasAt(w, 4, "er") && isConsonant(at(w, 6)) {
			return []candidate{{"ter", w[3:]}}
		}
		return nil
	}},
	{"teCerC", kindTe, func(w string) []candidate {
		c := at(w, 2)
		if strings.HasPrefix(w, "te") && isConsonant(c) && c != 'r' && hasAt(w, 3, "er") && isConsonant(at(w, 5)) {
			return []candidate{{"te", w[2:]}}
		}
		return nil
	}},

	// me- and its nasal allomorphs
	{"me{lrwy}V", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "me") && strings.IndexByte("lrwy", at(w, 2)) >= 0 && isVowel(at(w, 3)) {
			return []candidate{{"me", w[2:]}}
		}
		return nil
	}},
	{"mem{bfv}", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "mem") && strings.IndexByte("bfv", at(w, 3)) >= 0 {
			return []candidate{{"mem", w[3:]}}
		}
		return nil
	}},
	{"mempe", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "mempe") {
			return []candidate{{"mem", w[3:]}}
		}
		return nil
	}},
	{"mem{rV|V}", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "mem") && (isVowel(at(w, 3)) || (at(w, 3) == 'r' && isVowel(at(w, 4)))) {
			return []candidate{{"me", w[2:]}, {"mem", "p" + w[3:]}}
		}
		return nil
	}},
	{"men{cdjsz}", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "men") && strings.IndexByte("cdjsz", at(w, 3)) >= 0 {
			return []candidate{{"men", w[3:]}}
		}
		return nil
	}},
	{"menV", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "men") && isVowel(at(w, 3)) {
			return []candidate{{"me", w[2:]}, {"men", "t" + w[3:]}}
		}
		return nil
	}},
	{"meng{ghqk}", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "meng") && strings.IndexByte("ghqk", at(w, 4)) >= 0 {
			return []candidate{{"meng", w[4:]}}
		}
		return nil
	}},
	{"mengV", kindMe, func(w string) []candidate {
		if !strings.HasPrefix(w, "meng") || !isVowel(at(w, 4)) {
			return nil
		}
		out := []candidate{{"meng", w[4:]}, {"meng", "k" + w[4:]}}
		if at(w, 4) == 'e' {
			out = append(out, candidate{"menge", w[5:]})
		}
		return append(out, candidate{"me", w[2:]})
	}},
	{"menyV", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "meny") && isVowel(at(w, 4)) {
			return []candidate{{"meny", "s" + w[4:]}, {"me", w[2:]}}
		}
		return nil
	}},
	{"mempA", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "memp") && isVowel(at(w, 4)) && at(w, 4) != 'e' {
			return []candidate{{"mem", w[3:]}}
		}
		return nil
	}},
	{"mempC", kindMe, func(w string) []candidate {
		if strings.HasPrefix(w, "memp") && isConsonant(at(w, 4)) {
			return []candidate{{"mem", w[3:]}}
		}
		return nil
	}},

	// pe- and its allomorphs
	{"pe{wy}V", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pe") && (at(w, 2) == 'w' || at(w, 2) == 'y') && isVowel(at(w, 3)) {
			return []candidate{{"pe", w[2:]}}
		}
		return nil
	}},
	{"perV", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "per") && isVowel(at(w, 3)) {
			return []candidate{{"per", w[3:]}, {"pe", w[2:]}}
		}
		return nil
	}},
	{"perCAP", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "per") && isConsonant(at(w, 3)) && at(w, 3) != 'r' {
			return []candidate{{"per", w[3:]}}
		}
		return nil
	}},
	{"pem{bfv}", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pem") && strings.IndexByte("bfv", at(w, 3)) >= 0 {
			return []candidate{{"pem", w[3:]}}
		}
		return nil
	}},
	{"pem{rV|V}", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pem") && (isVowel(at(w, 3)) || (at(w, 3) == 'r' && isVowel(at(w, 4)))) {
			return []candidate{{"pe", w[2:]}, {"pem", "p" + w[3:]}}
		}
		return nil
	}},
	{"pempC", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pemp") && isConsonant(at(w, 4)) {
			return []candidate{{"pem", w[3:]}}
		}
		return nil
	}},
	{"pen{cdjz}", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pen") && strings.IndexByte("cdjz", at(w, 3)) >= 0 {
			return []candidate{{"pen", w[3:]}}
		}
		return nil
	}},
	{"penV", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pen") && isVowel(at(w, 3)) {
			return []candidate{{"pe", w[2:]}, {"pen", "t" + w[3:]}}
		}
		return nil
	}},
	{"pengC", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "peng") && isConsonant(at(w, 4)) {
			return []candidate{{"peng", w[4:]}}
		}
		return nil
	}},
	{"pengV", kindPe, func(w string) []candidate {
		if !strings.HasPrefix(w, "peng") || !isVowel(at(w, 4)) {
			return nil
		}
		out := []candidate{{"peng", w[4:]}, {"peng", "k" + w[4:]}}
		if at(w, 4) == 'e' {
			out = append(out, candidate{"penge", w[5:]})
		}
		return out
	}},
	{"penyV", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "peny") && isVowel(at(w, 4)) {
			return []candidate{{"peny", "s" + w[4:]}, {"pe", w[2:]}}
		}
		return nil
	}},
	{"pelV", kindPe, func(w string) []candidate {
		if strings.HasPrefix(w, "pelajar") {
			return []candidate{{"pel", w[3:]}}
		}
		if strings.HasPrefix(w, "pel") && isVowel(at(w, 3)) {
			return []candidate{{"pe", w[2:]}}
		}
		return nil
	}},
	{"peC", kindPe, func(w string) []candidate {
		c := at(w, 2)
		if strings.HasPrefix(w, "pe") && isConsonant(c) && strings.IndexByte("rwylmn", c) < 0 {
			return []candidate{{"pe", w[2:]}}
		}
		return nil
	}},
}

// plain returns a rule body that strips p with no recoding.
func plain(p string) func(string) []candidate {
	return func(w string) []candidate {
		if strings.HasPrefix(w, p) {
			return []candidate{{p, w[len(p):]}}
		}
		return nil
	}
}

// at returns the byte at index i, or 0 past the end.
func at(w string, i int) byte {
	if i < len(w) {
		return w[i]
	}
	return 0
}

// hasAt reports whether w contains sub starting at byte index i.
func hasAt(w string, i int, sub string) bool {
	return i <= len(w) && strings.HasPrefix(w[i:], sub)
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

func isConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}
