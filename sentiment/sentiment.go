// Package sentiment labels Indonesian review text as positive, negative, or
// neutral using a fixed term lexicon.
//
// Classification counts how many positive and negative lexicon terms occur
// in the lowercased text. More positive terms means Positive, more negative
// terms means Negative, and a tie (including no matches) means Neutral. A
// small set of hard-negative terms (profanity, "sampah") forces a Negative
// label regardless of the counts.
//
// Each distinct term counts once, however often it occurs. Under the default
// substring policy a term also matches inside longer words, so "cepat"
// fires on "secepatnya".
//
// Limitations:
//   - No negation handling ("tidak bagus" counts "bagus" as positive).
//   - No intensity or sarcasm detection.
//
// All functions are safe for concurrent use by multiple goroutines.
package sentiment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/az-ai-labs/ulasan/normalize"
)

// Sentiment represents the sentiment polarity.
type Sentiment int

const (
	Negative Sentiment = -1
	Neutral  Sentiment = 0
	Positive Sentiment = 1
)

// sentimentNames maps Sentiment values to their string names.
var sentimentNames = map[Sentiment]string{
	Negative: "Negative",
	Neutral:  "Neutral",
	Positive: "Positive",
}

// sentimentLabels maps Sentiment values to the Indonesian labels used in
// exported datasets.
var sentimentLabels = map[Sentiment]string{
	Negative: "Negatif",
	Neutral:  "Netral",
	Positive: "Positif",
}

// sentimentFromName maps lowercase English and Indonesian names back to
// Sentiment values.
var sentimentFromName = map[string]Sentiment{
	"negative": Negative,
	"neutral":  Neutral,
	"positive": Positive,
	"negatif":  Negative,
	"netral":   Neutral,
	"positif":  Positive,
}

// String returns the name of the sentiment polarity.
func (s Sentiment) String() string {
	if name, ok := sentimentNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sentiment(%d)", int(s))
}

// Label returns the Indonesian label: "Positif", "Negatif" or "Netral".
func (s Sentiment) Label() string {
	if label, ok := sentimentLabels[s]; ok {
		return label
	}
	return s.String()
}

// Parse returns the Sentiment named s. English and Indonesian names are
// accepted, case-insensitively.
func Parse(s string) (Sentiment, error) {
	v, ok := sentimentFromName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Neutral, fmt.Errorf("sentiment: unknown sentiment: %q", s)
	}
	return v, nil
}

// MarshalJSON encodes the sentiment as a JSON string.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string into a Sentiment.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Classifier maps text to a sentiment. Implementations must be total and
// safe for concurrent use.
type Classifier interface {
	Classify(text string) Sentiment
}

// Result holds the sentiment analysis output.
type Result struct {
	Sentiment    Sentiment `json:"sentiment"`
	Score        float64   `json:"score"`         // -1.0 to +1.0
	Positive     int       `json:"positive"`      // distinct positive terms found
	Negative     int       `json:"negative"`      // distinct negative terms found
	HardNegative bool      `json:"hard_negative"` // a hard-negative term was found
}

// String returns a debug representation of the result.
func (r Result) String() string {
	return fmt.Sprintf("%s(score=%.2f, pos=%d, neg=%d, hard=%t)",
		r.Sentiment, r.Score, r.Positive, r.Negative, r.HardNegative)
}

var defaultClassifier = NewLexiconClassifier(nil, normalize.MatchSubstring)

// Analyze returns detailed sentiment analysis of text using the built-in
// lexicon and substring matching.
func Analyze(text string) Result {
	return defaultClassifier.Analyze(text)
}

// Classify returns the sentiment of text using the built-in lexicon and
// substring matching.
func Classify(text string) Sentiment {
	return defaultClassifier.Classify(text)
}

// Score returns the aggregate sentiment score (-1.0 to +1.0).
func Score(text string) float64 {
	return Analyze(text).Score
}

// IsPositive returns true if overall sentiment is positive.
func IsPositive(text string) bool {
	return Classify(text) == Positive
}
