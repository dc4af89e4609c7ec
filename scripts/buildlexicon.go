//go:build ignore

// buildlexicon evaluates the sentiment lexicon against a rated review export
// and finds candidate terms for lexicon expansion using Log-Likelihood Ratio.
// Run from the project root:
//
//	go run scripts/buildlexicon.go -reviews data/reviews/blibli.mobile.commerce.json
//
// Outputs:
//   - data/lexicon_candidates.tsv: top candidate stems sorted by LLR, each
//     with a suggested pos or neg tag
//   - data/lexicon_evaluation.txt: human-readable evaluation report
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/review"
	"github.com/az-ai-labs/ulasan/sentiment"
)

const (
	candidatesPath = "data/lexicon_candidates.tsv"
	evaluationPath = "data/lexicon_evaluation.txt"
	minDocs        = 10
	minClassFreq   = 5
	llrThreshold   = 10.83
	maxCandidates  = 500
)

// classes in confusion-matrix order.
var classes = []sentiment.Sentiment{sentiment.Positive, sentiment.Neutral, sentiment.Negative}

func classIndex(s sentiment.Sentiment) int {
	for i, c := range classes {
		if c == s {
			return i
		}
	}
	return 1
}

// doc is one processed review.
type doc struct {
	stems     []string // deduplicated stems
	actual    sentiment.Sentiment
	predicted sentiment.Sentiment
}

type stemStats struct {
	posCount int
	negCount int
	neuCount int
}

type candidate struct {
	stem     string
	tag      string
	posCount int
	negCount int
	neuCount int
	llr      float64
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[buildlexicon] ")

	reviewsPath := flag.String("reviews", "data/reviews/"+review.DefaultPackageID+".json", "rated review export (JSON)")
	flag.Parse()

	lex := sentiment.DefaultLexicon()
	known := make(map[string]struct{}, len(lex.Positive)+len(lex.Negative))
	for _, t := range append(append([]string{}, lex.Positive...), lex.Negative...) {
		known[t] = struct{}{}
	}
	log.Printf("loaded lexicon with %d terms", len(known))

	f, err := os.Open(*reviewsPath)
	if err != nil {
		log.Fatalf("cannot open reviews: %v", err)
	}
	records, err := review.Decode(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("cannot decode reviews: %v", err)
	}

	p := pipeline.New()
	docs := make([]doc, 0, len(records))
	for _, r := range records {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		res := p.Process(r.Text)
		docs = append(docs, doc{
			stems:     dedupe(strings.Fields(res.Stem)),
			actual:    ratingToClass(r.Rating),
			predicted: res.Sentiment,
		})
	}

	var totalPos, totalNeg, totalNeu int
	var confusion [3][3]int
	stats := make(map[string]*stemStats, 4096)
	for _, d := range docs {
		confusion[classIndex(d.actual)][classIndex(d.predicted)]++
		switch d.actual {
		case sentiment.Positive:
			totalPos++
		case sentiment.Negative:
			totalNeg++
		default:
			totalNeu++
		}
		for _, stem := range d.stems {
			s, ok := stats[stem]
			if !ok {
				s = &stemStats{}
				stats[stem] = s
			}
			switch d.actual {
			case sentiment.Positive:
				s.posCount++
			case sentiment.Negative:
				s.negCount++
			default:
				s.neuCount++
			}
		}
	}
	log.Printf("loaded %d reviews (%d positive, %d negative, %d neutral)",
		len(docs), totalPos, totalNeg, totalNeu)

	var candidates []candidate
	for stem, s := range stats {
		if _, inLex := known[stem]; inLex {
			continue
		}
		if s.posCount+s.negCount+s.neuCount < minDocs {
			continue
		}
		if max(s.posCount, s.negCount) < minClassFreq {
			continue
		}
		g := llr(
			float64(s.posCount), float64(totalPos-s.posCount),
			float64(s.negCount), float64(totalNeg-s.negCount),
		)
		if g < llrThreshold {
			continue
		}
		tag := "pos"
		if s.negCount > s.posCount {
			tag = "neg"
		}
		candidates = append(candidates, candidate{
			stem: stem, tag: tag,
			posCount: s.posCount, negCount: s.negCount, neuCount: s.neuCount,
			llr: g,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].llr != candidates[j].llr {
			return candidates[i].llr > candidates[j].llr
		}
		return candidates[i].stem < candidates[j].stem
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	log.Printf("found %d candidates", len(candidates))

	if err := writeCandidates(candidatesPath, candidates); err != nil {
		log.Fatalf("cannot write candidates: %v", err)
	}
	log.Printf("wrote candidates to %s", candidatesPath)

	if err := writeEvaluation(evaluationPath, confusion, len(docs), len(known)); err != nil {
		log.Fatalf("cannot write evaluation: %v", err)
	}
	log.Printf("wrote evaluation to %s", evaluationPath)
}

// ratingToClass maps a 1-5 star rating to a class.
func ratingToClass(rating int) sentiment.Sentiment {
	switch {
	case rating <= 2:
		return sentiment.Negative
	case rating >= 4:
		return sentiment.Positive
	default:
		return sentiment.Neutral
	}
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// llr computes the Log-Likelihood Ratio (G-test) for a 2x2 contingency table.
// a = positive reviews containing stem
// b = positive reviews not containing stem
// c = negative reviews containing stem
// d = negative reviews not containing stem
func llr(a, b, c, d float64) float64 {
	n := a + b + c + d
	if n == 0 {
		return 0
	}
	var g float64
	for _, cell := range []struct{ obs, row, col float64 }{
		{a, a + b, a + c},
		{b, a + b, b + d},
		{c, c + d, a + c},
		{d, c + d, b + d},
	} {
		if cell.obs == 0 {
			continue
		}
		expected := cell.row * cell.col / n
		if expected == 0 {
			continue
		}
		g += cell.obs * math.Log(cell.obs/expected)
	}
	return 2 * g
}

func writeCandidates(path string, candidates []candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, "# Lexicon expansion candidates, generated by buildlexicon.go.")
	fmt.Fprintln(bw, "# stem\ttag\tpos_docs\tneg_docs\tneu_docs\tllr")
	for _, c := range candidates {
		fmt.Fprintf(bw, "%s\t%s\t%d\t%d\t%d\t%.4f\n",
			c.stem, c.tag, c.posCount, c.negCount, c.neuCount, c.llr)
	}
	return bw.Flush()
}

func writeEvaluation(path string, confusion [3][3]int, total, lexSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, "Lexicon Evaluation Report")
	fmt.Fprintln(bw, "=========================")
	fmt.Fprintf(bw, "Reviews:       %d\n", total)
	fmt.Fprintf(bw, "Lexicon terms: %d\n\n", lexSize)

	fmt.Fprintln(bw, "Confusion matrix (rows: rating class, columns: predicted):")
	fmt.Fprintf(bw, "%10s", "")
	for _, c := range classes {
		fmt.Fprintf(bw, "%10s", c.Label())
	}
	fmt.Fprintln(bw)
	correct := 0
	for i, row := range confusion {
		fmt.Fprintf(bw, "%10s", classes[i].Label())
		for j, n := range row {
			fmt.Fprintf(bw, "%10d", n)
			if i == j {
				correct += n
			}
		}
		fmt.Fprintln(bw)
	}
	if total > 0 {
		fmt.Fprintf(bw, "\nAccuracy: %.1f%%\n", float64(correct)/float64(total)*100)
	}
	return bw.Flush()
}
