package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/az-ai-labs/ulasan/data"
	"github.com/az-ai-labs/ulasan/normalize"
)

// Lexicon polarity tags in lexicon.txt.
const (
	tagPositive     = "pos"
	tagNegative     = "neg"
	tagHardNegative = "neg!"
)

// Lexicon holds the term lists used for classification. HardNegative is a
// subset of Negative. A Lexicon is never modified after construction.
type Lexicon struct {
	Positive     []string
	Negative     []string
	HardNegative []string
}

// ParseLexicon reads "tag<TAB>term" lines where tag is pos, neg or neg!.
// Blank lines and lines starting with '#' are skipped. Terms are lowercased
// and may contain spaces ("tidak sesuai").
func ParseLexicon(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		tag, term, ok := strings.Cut(text, "\t")
		term = strings.ToLower(strings.Join(strings.Fields(term), " "))
		if !ok || term == "" {
			return nil, fmt.Errorf("sentiment: line %d: malformed entry %q", line, text)
		}
		switch strings.TrimSpace(tag) {
		case tagPositive:
			lex.Positive = append(lex.Positive, term)
		case tagNegative:
			lex.Negative = append(lex.Negative, term)
		case tagHardNegative:
			lex.Negative = append(lex.Negative, term)
			lex.HardNegative = append(lex.HardNegative, term)
		default:
			return nil, fmt.Errorf("sentiment: line %d: unknown tag %q", line, tag)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sentiment: read lexicon: %w", err)
	}
	return lex, nil
}

// defaultLexicon is parsed once from the embedded lexicon.txt.
var defaultLexicon = mustParseLexicon(data.SentimentLexicon)

func mustParseLexicon(raw string) *Lexicon {
	lex, err := ParseLexicon(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return lex
}

// DefaultLexicon returns the built-in lexicon. It is shared and must not be
// modified.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// LexiconClassifier counts lexicon terms in text. It implements Classifier.
type LexiconClassifier struct {
	lex   *Lexicon
	match normalize.Match
}

// NewLexiconClassifier returns a classifier over lex. A nil lex means the
// built-in lexicon. Under normalize.MatchToken, terms match only whole
// tokens or whole token sequences.
func NewLexiconClassifier(lex *Lexicon, match normalize.Match) *LexiconClassifier {
	if lex == nil {
		lex = defaultLexicon
	}
	return &LexiconClassifier{lex: lex, match: match}
}

// Classify returns the sentiment label of text.
func (c *LexiconClassifier) Classify(text string) Sentiment {
	return c.Analyze(text).Sentiment
}

// Analyze returns the label of text together with the term counts behind it.
func (c *LexiconClassifier) Analyze(text string) Result {
	text = strings.ToLower(text)
	contains := strings.Contains
	if c.match == normalize.MatchToken {
		text = " " + strings.Join(strings.Fields(text), " ") + " "
		contains = containsToken
	}

	r := Result{
		Positive: countTerms(text, c.lex.Positive, contains),
		Negative: countTerms(text, c.lex.Negative, contains),
	}
	for _, term := range c.lex.HardNegative {
		if contains(text, term) {
			r.HardNegative = true
			break
		}
	}

	switch {
	case r.HardNegative:
		r.Sentiment = Negative
		r.Score = -1
	case r.Positive > r.Negative:
		r.Sentiment = Positive
	case r.Negative > r.Positive:
		r.Sentiment = Negative
	}
	if !r.HardNegative && r.Positive+r.Negative > 0 {
		r.Score = float64(r.Positive-r.Negative) / float64(r.Positive+r.Negative)
	}
	return r
}

// countTerms returns how many distinct terms occur in text.
func countTerms(text string, terms []string, contains func(string, string) bool) int {
	n := 0
	for _, term := range terms {
		if contains(text, term) {
			n++
		}
	}
	return n
}

// containsToken reports whether term occurs in padded as whole tokens.
// padded must be space-joined with a leading and trailing space.
func containsToken(padded, term string) bool {
	return strings.Contains(padded, " "+term+" ")
}
