// Command rootgen generates data/rootwords.txt from the kaikki.org
// Indonesian dictionary dump (JSONL format).
//
// Download the dump from https://kaikki.org/dictionary/Indonesian/
// then run:
//
//	go run ./cmd/rootgen -input kaikki.org-dictionary-Indonesian.jsonl
//
// Output: data/rootwords.txt (commit this file). Entries already in the
// output file are kept, so hand-added roots survive a regeneration.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"
)

const (
	defaultInput   = "data/dictionary/kaikki.org-dictionary-Indonesian.jsonl"
	defaultOutput  = "data/rootwords.txt"
	scannerBufSize = 1 << 20 // 1 MB
	minRootRunes   = 2
	header         = "# Indonesian root words (kata dasar), one per line, byte-sorted."
)

// kaikkiEntry holds only the fields needed from each JSONL line.
type kaikkiEntry struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
}

// derivedSuffixes mark a headword as derived when stripping one leaves
// another headword in the set.
var derivedSuffixes = []string{"nya", "kan", "an", "i", "lah", "kah"}

// derivedPrefixes are checked the same way. Nasal prefixes are not listed
// because their stem changes are left to the stemmer.
var derivedPrefixes = []string{"di", "ke", "se", "ber", "ter", "per"}

func main() {
	inputPath := flag.String("input", defaultInput, "path to kaikki.org JSONL dump")
	outputPath := flag.String("output", defaultOutput, "output path for rootwords.txt")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: rootgen -input <file> [-output <file>]\n")
		os.Exit(1)
	}

	seen, err := readExisting(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rootgen: read existing: %v\n", err)
		os.Exit(1)
	}
	kept := len(seen)

	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rootgen: open input: %v\n", err)
		os.Exit(1)
	}

	scanner := bufio.NewScanner(f)
	buf := make([]byte, scannerBufSize)
	scanner.Buffer(buf, scannerBufSize)

	added := make(map[string]struct{})
	for scanner.Scan() {
		var entry kaikkiEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if !wantPOS(entry.POS) {
			continue
		}
		word := strings.ToLower(entry.Word)
		if !isAcceptable(word) {
			continue
		}
		if _, ok := seen[word]; !ok {
			added[word] = struct{}{}
		}
	}

	scanErr := scanner.Err()
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "rootgen: close input: %v\n", err)
		os.Exit(1)
	}
	if scanErr != nil {
		fmt.Fprintf(os.Stderr, "rootgen: scan error: %v\n", scanErr)
		os.Exit(1)
	}

	all := make(map[string]struct{}, len(seen)+len(added))
	for w := range seen {
		all[w] = struct{}{}
	}
	for w := range added {
		all[w] = struct{}{}
	}
	dropped := filterDerived(added, all)

	lines := make([]string, 0, len(seen)+len(added))
	for w := range seen {
		lines = append(lines, w)
	}
	for w := range added {
		lines = append(lines, w)
	}
	sort.Strings(lines)

	if err := writeRoots(*outputPath, lines); err != nil {
		fmt.Fprintf(os.Stderr, "rootgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Total roots:   %d\n", len(lines))
	fmt.Fprintf(os.Stderr, "  kept:        %d\n", kept)
	fmt.Fprintf(os.Stderr, "  added:       %d\n", len(added))
	fmt.Fprintf(os.Stderr, "  derived:     %d (skipped)\n", dropped)
	fmt.Fprintf(os.Stderr, "Output file: %s\n", *outputPath)
}

// wantPOS reports whether entries with the kaikki POS tag can be roots.
func wantPOS(pos string) bool {
	switch pos {
	case "noun", "verb", "adj", "adv", "num", "pron":
		return true
	}
	return false
}

// isAcceptable reports whether a lowercased headword is a single ASCII
// word of at least minRootRunes letters.
func isAcceptable(word string) bool {
	if len(word) < minRootRunes {
		return false
	}
	for _, r := range word {
		if r > unicode.MaxASCII || !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// filterDerived removes from added every word that is a prefixed or
// suffixed form of another word in all. It returns the number removed.
func filterDerived(added, all map[string]struct{}) int {
	var toDelete []string
	for w := range added {
		if isDerived(w, all) {
			toDelete = append(toDelete, w)
		}
	}
	for _, w := range toDelete {
		delete(added, w)
	}
	return len(toDelete)
}

func isDerived(w string, all map[string]struct{}) bool {
	for _, suf := range derivedSuffixes {
		stem, ok := strings.CutSuffix(w, suf)
		if ok && len(stem) >= minRootRunes {
			if _, found := all[stem]; found {
				return true
			}
		}
	}
	for _, pre := range derivedPrefixes {
		stem, ok := strings.CutPrefix(w, pre)
		if ok && len(stem) >= minRootRunes {
			if _, found := all[stem]; found {
				return true
			}
		}
	}
	return false
}

// readExisting loads the roots already in path. A missing file is empty.
func readExisting(path string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return seen, nil
	}
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seen[line] = struct{}{}
	}
	return seen, nil
}

func writeRoots(path string, lines []string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, header)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			_ = out.Close()
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return fmt.Errorf("flush: %w", err)
	}
	return out.Close()
}
