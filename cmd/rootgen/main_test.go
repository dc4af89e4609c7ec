package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsAcceptable(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"makan", true},
		{"ab", true},
		{"a", false},
		{"kupu-kupu", false},
		{"rumah sakit", false},
		{"mp3", false},
		{"café", false},
	}
	for _, tt := range tests {
		if got := isAcceptable(tt.word); got != tt.want {
			t.Errorf("isAcceptable(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestFilterDerived(t *testing.T) {
	all := map[string]struct{}{
		"makan": {}, "makanan": {}, "dimakan": {}, "baru": {}, "bersih": {}, "sih": {},
	}
	added := map[string]struct{}{
		"makanan": {}, "dimakan": {}, "baru": {}, "bersih": {},
	}
	// "bersih" strips to "sih", which is also a headword.
	if n := filterDerived(added, all); n != 3 {
		t.Errorf("filterDerived removed %d, want 3", n)
	}
	if _, ok := added["baru"]; !ok || len(added) != 1 {
		t.Errorf("added = %v, want only baru", added)
	}
}

func TestReadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.txt")
	if err := os.WriteFile(path, []byte("# comment\nabad\n\nacara\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	seen, err := readExisting(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Errorf("seen = %v, want abad and acara", seen)
	}

	seen, err = readExisting(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil || len(seen) != 0 {
		t.Errorf("missing file: %v, %v", seen, err)
	}
}
