// Command sentimen runs the review pipeline from the command line.
//
// Analyze one text and print every stage:
//
//	sentimen -text "barangnya bagus banget, pengiriman cepat"
//
// Augment a CSV file with the stage columns:
//
//	sentimen -in ulasan.csv -column review -out hasil_sentimen.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/az-ai-labs/ulasan/dataset"
	"github.com/az-ai-labs/ulasan/internal/logging"
	"github.com/az-ai-labs/ulasan/morph"
	"github.com/az-ai-labs/ulasan/normalize"
	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/tokenizer"
)

func main() {
	var (
		text     = flag.String("text", "", "analyze a single text")
		in       = flag.String("in", "", "input CSV file (- for stdin)")
		out      = flag.String("out", "hasil_sentimen.csv", "output CSV file (- for stdout)")
		column   = flag.String("column", "review", "text column of the input CSV")
		workers  = flag.Int("workers", runtime.NumCPU(), "batch worker goroutines")
		match    = flag.String("match", "substring", "slang and lexicon matching: substring or token")
		verbose  = flag.Bool("v", false, "with -text, show how each token was stemmed")
		logLevel = flag.String("log-level", "warn", "log level: debug, info, warn or error")
	)
	flag.Parse()

	if err := logging.Init(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "sentimen: %v\n", err)
		os.Exit(2)
	}
	m, err := normalize.ParseMatch(*match)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sentimen: %v\n", err)
		os.Exit(2)
	}
	p := pipeline.New(pipeline.WithMatch(m))

	switch {
	case *text != "":
		printResult(os.Stdout, p.Process(*text), *verbose)
	case *in != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := augment(ctx, p, *in, *out, *column, *workers); err != nil {
			var mce *dataset.MissingColumnError
			if errors.As(err, &mce) {
				fmt.Fprintf(os.Stderr, "Kolom '%s' tidak ditemukan.\n", mce.Column)
			} else {
				fmt.Fprintf(os.Stderr, "sentimen: %v\n", err)
			}
			stop()
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printResult(w io.Writer, r pipeline.Result, verbose bool) {
	fmt.Fprintf(w, "clean:     %s\n", r.Clean)
	fmt.Fprintf(w, "lower:     %s\n", r.Lower)
	fmt.Fprintf(w, "norm:      %s\n", strings.TrimSpace(r.Norm))
	fmt.Fprintf(w, "stop:      %s\n", r.Stop)
	fmt.Fprintf(w, "token:     %s\n", tokenizer.Format(r.Tokens))
	fmt.Fprintf(w, "stem:      %s\n", r.Stem)
	fmt.Fprintf(w, "sentimen:  %s\n", r.Label())
	if verbose {
		for _, tok := range r.Tokens {
			fmt.Fprintf(w, "  %s\n", morph.Analyze(tok))
		}
	}
}

func augment(ctx context.Context, p *pipeline.Pipeline, inPath, outPath, column string, workers int) error {
	var r io.Reader = os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	t, err := dataset.Read(r)
	if err != nil {
		return err
	}

	res, err := dataset.Augment(ctx, p, t, column, workers)
	if err != nil {
		return err
	}

	if outPath == "-" {
		return res.Write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := res.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("augmented",
		slog.String("in", inPath),
		slog.String("out", outPath),
		slog.String("column", column),
		slog.Int("rows", res.Len()))
	return nil
}
