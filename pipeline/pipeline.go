// Package pipeline chains the text stages into one review-processing step:
//
//	clean -> lower -> normalize -> stopword -> tokenize -> stem -> classify
//
// Every stage is a pure function of the previous stage's output, so a
// Pipeline is safe for concurrent use and a batch can be split across
// workers freely. ProcessBatch keeps results in input order.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/az-ai-labs/ulasan/clean"
	"github.com/az-ai-labs/ulasan/morph"
	"github.com/az-ai-labs/ulasan/normalize"
	"github.com/az-ai-labs/ulasan/sentiment"
	"github.com/az-ai-labs/ulasan/stopword"
	"github.com/az-ai-labs/ulasan/tokenizer"
)

// Result holds the output of every stage for one input text.
type Result struct {
	Text      string              `json:"text"`
	Clean     string              `json:"clean"`
	Lower     string              `json:"lower"`
	Norm      string              `json:"norm"`
	Stop      string              `json:"stop"`
	Tokens    []string            `json:"tokens"`
	Stem      string              `json:"stem"`
	Sentiment sentiment.Sentiment `json:"sentiment"`
}

// Label returns the Indonesian sentiment label.
func (r Result) Label() string {
	return r.Sentiment.Label()
}

// Pipeline runs the stages with a fixed set of tables.
type Pipeline struct {
	normalizer *normalize.Normalizer
	stopwords  *stopword.Set
	classifier sentiment.Classifier
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNormalizer replaces the slang normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) { p.normalizer = n }
}

// WithStopwords replaces the stopword set.
func WithStopwords(s *stopword.Set) Option {
	return func(p *Pipeline) { p.stopwords = s }
}

// WithClassifier replaces the sentiment classifier.
func WithClassifier(c sentiment.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithMatch sets the matching policy for both the default normalizer and
// the default lexicon classifier. Options applied later take precedence.
func WithMatch(m normalize.Match) Option {
	return func(p *Pipeline) {
		p.normalizer = normalize.New(nil, m)
		p.classifier = sentiment.NewLexiconClassifier(nil, m)
	}
}

// New returns a Pipeline using the built-in tables unless overridden.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: normalize.New(nil, normalize.MatchSubstring),
		stopwords:  stopword.Default(),
		classifier: sentiment.NewLexiconClassifier(nil, normalize.MatchSubstring),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs every stage on text.
//
//	r := pipeline.New().Process("KURIR YG RETUR PENGGUNA YG NANGGUNG APLIKASI TOLOL")
//	r.Stem      // "kurir retur guna nanggung aplikasi tolol"
//	r.Sentiment // sentiment.Negative
func (p *Pipeline) Process(text string) Result {
	r := Result{Text: text}
	r.Clean = clean.Clean(text)
	r.Lower = clean.Lower(r.Clean)
	r.Norm = p.normalizer.Normalize(" " + r.Lower + " ")
	r.Stop = p.stopwords.Remove(r.Norm)
	r.Tokens = tokenizer.Words(r.Stop)
	r.Stem = morph.Stems(r.Tokens)
	r.Sentiment = p.classifier.Classify(r.Stem)
	return r
}

// Classify runs the full pipeline and returns only the label.
func (p *Pipeline) Classify(text string) sentiment.Sentiment {
	return p.Process(text).Sentiment
}

// ProcessBatch runs Process on every text using at most workers goroutines.
// workers <= 0 means runtime.NumCPU(). Results are in input order. If ctx is
// canceled, no further texts are started and ctx.Err() is returned.
func (p *Pipeline) ProcessBatch(ctx context.Context, texts []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(texts))

	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i] = p.Process(text)
		}()
	}

	wg.Wait()
	return results, nil
}
