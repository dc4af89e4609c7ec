// Command smoketest runs the review pipeline over every CSV file under a
// directory and prints per-file label counts and stemmer coverage.
//
//	go run ./cmd/smoketest -column review ./exports
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/az-ai-labs/ulasan/dataset"
	"github.com/az-ai-labs/ulasan/morph"
	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/report"
	"github.com/az-ai-labs/ulasan/sentiment"
)

const maxWorkers = 4

type fileStats struct {
	path    string
	app     string
	rows    int
	empty   int
	tokens  int
	stemmed int
	counts  map[sentiment.Sentiment]int
	err     error
	took    time.Duration
}

type Stats struct {
	mu      sync.Mutex
	files   []fileStats
	failed  int
	rows    int
	tokens  int
	stemmed int
	counts  map[sentiment.Sentiment]int
}

func main() {
	column := flag.String("column", "review", "text column to analyze")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-column name] <directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var filePaths []string
	err := filepath.WalkDir(flag.Arg(0), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	p := pipeline.New()
	stats := &Stats{counts: make(map[sentiment.Sentiment]int)}
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, path := range filePaths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			stats.merge(processFile(p, path, *column))
		}(path)
	}
	wg.Wait()

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
	if stats.failed > 0 {
		os.Exit(1)
	}
}

func processFile(p *pipeline.Pipeline, path, column string) fileStats {
	fs := fileStats{path: path, counts: make(map[sentiment.Sentiment]int)}
	fs.app, _ = report.GuessApp(filepath.Base(path))
	start := time.Now()
	defer func() { fs.took = time.Since(start) }()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fs.err = err
		return fs
	}
	defer func() { _ = f.Close() }()

	t, err := dataset.Read(f)
	if err != nil {
		fs.err = err
		return fs
	}
	texts, err := dataset.Column(t, column)
	if err != nil {
		fs.err = err
		return fs
	}

	results, err := p.ProcessBatch(context.Background(), texts, 1)
	if err != nil {
		fs.err = err
		return fs
	}
	for _, r := range results {
		fs.rows++
		if len(r.Tokens) == 0 {
			fs.empty++
		}
		for _, tok := range r.Tokens {
			fs.tokens++
			if morph.Analyze(tok).Found() {
				fs.stemmed++
			}
		}
		fs.counts[r.Sentiment]++
	}
	return fs
}

func (s *Stats) merge(fs fileStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = append(s.files, fs)
	if fs.err != nil {
		s.failed++
		fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", fs.path, fs.err)
		return
	}
	fmt.Fprintf(os.Stderr, "DONE  %s: %d rows in %s\n",
		filepath.Base(fs.path), fs.rows, fs.took.Round(time.Millisecond))
	s.rows += fs.rows
	s.tokens += fs.tokens
	s.stemmed += fs.stemmed
	for k, v := range fs.counts {
		s.counts[k] += v
	}
}

func printStats(stats *Stats) {
	sort.Slice(stats.files, func(i, j int) bool { return stats.files[i].path < stats.files[j].path })

	fmt.Printf("%-40s %-10s %7s %7s %7s %7s %7s %8s\n",
		"File", "App", "Rows", "Empty", "Positif", "Negatif", "Netral", "Stemmed")
	for _, fs := range stats.files {
		if fs.err != nil {
			continue
		}
		app := fs.app
		if app == "" {
			app = "-"
		}
		fmt.Printf("%-40s %-10s %7d %7d %7d %7d %7d %7.1f%%\n",
			filepath.Base(fs.path), app, fs.rows, fs.empty,
			fs.counts[sentiment.Positive], fs.counts[sentiment.Negative], fs.counts[sentiment.Neutral],
			percent(fs.stemmed, fs.tokens))
	}
	fmt.Println()
	fmt.Printf("Files scanned:   %d (%d failed)\n", len(stats.files), stats.failed)
	fmt.Printf("Rows:            %d\n", stats.rows)
	fmt.Printf("Tokens:          %d\n", stats.tokens)
	fmt.Printf("Stem coverage:   %.1f%%\n", percent(stats.stemmed, stats.tokens))
	fmt.Println()
	fmt.Println("Label distribution:")
	for _, s := range []sentiment.Sentiment{sentiment.Positive, sentiment.Negative, sentiment.Neutral} {
		fmt.Printf("  %-10s %d  (%.1f%%)\n", s.Label()+":", stats.counts[s], percent(stats.counts[s], stats.rows))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
