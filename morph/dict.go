package morph

import (
	"bytes"
	"sort"

	"github.com/az-ai-labs/ulasan/data"
)

// minLineLen is the shortest root accepted from rootwords.txt.
const minLineLen = 2

// rootWords holds the sorted root dictionary, populated by init().
var rootWords []string

func init() {
	rootWords = parseRoots(data.RootWords)
}

// parseRoots reads one root per line, skipping comments and blank lines.
// The file is kept byte-sorted by cmd/rootgen; the slice is sorted again
// so that a hand-edited file cannot break binary search.
func parseRoots(raw []byte) []string {
	lines := bytes.Split(raw, []byte("\n"))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) < minLineLen || line[0] == '#' {
			continue
		}
		out = append(out, string(line))
	}
	if !sort.StringsAreSorted(out) {
		sort.Strings(out)
	}
	return out
}

// IsRoot reports whether s is a known root word.
// Expects lowercase input.
func IsRoot(s string) bool {
	if s == "" {
		return false
	}
	i := sort.SearchStrings(rootWords, s)
	return i < len(rootWords) && rootWords[i] == s
}
