package morph

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Stem
// ---------------------------------------------------------------------------

func TestStem(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// -- Roots and short words --
		{"root", "aplikasi", "aplikasi"},
		{"root uppercase", "BARANG", "barang"},
		{"unknown word", "nanggung", "nanggung"},
		{"short word", "yg", "yg"},
		{"empty", "", ""},

		// -- Suffixes only --
		{"possessive nya", "barangnya", "barang"},
		{"kan", "masukkan", "masuk"},

		// -- Plain prefixes --
		{"di-kan", "dikirimkan", "kirim"},
		{"ke-an", "kekecewaan", "kecewa"},

		// -- ber- / ter- --
		{"berCAP", "bersama", "sama"},
		{"ber before be-", "berbelanja", "belanja"},
		{"belajar", "belajar", "ajar"},
		{"ber-lah precedence", "bermainlah", "main"},
		{"terCP", "terlambat", "lambat"},

		// -- meN- allomorphs --
		{"mem{bfv}", "membeli", "beli"},
		{"mem recoded to p", "memuaskan", "puas"},
		{"mempe", "memperhatikan", "perhati"},
		{"memp before consonant", "memproses", "proses"},
		{"men recoded to t", "menunggu", "tunggu"},
		{"men recoded to t 2", "menulis", "tulis"},
		{"meny recoded to s", "menyenangkan", "senang"},
		{"meng recoded to k", "mengecewakan", "kecewa"},
		{"mem before b", "membaca", "baca"},

		// -- peN- allomorphs --
		{"peng recoded to k", "pengiriman", "kirim"},
		{"peng before consonant", "pengguna", "guna"},
		{"pem before b", "pembayaran", "bayar"},
		{"pemp before consonant", "pemprosesan", "proses"},
		{"pen before j", "penjual", "jual"},
		{"pel", "pelayanan", "layan"},
		{"stacked suffixes", "pengirimannya", "kirim"},

		// -- Stacked prefixes --
		{"ke-ber-an", "kebersamaan", "sama"},

		// -- Backtracking --
		{"root ends in kan", "dimakan", "makan"},

		// -- Plurals --
		{"plural", "buku-buku", "buku"},
		{"plural with suffix", "buku-bukunya", "buku"},
		{"not a plural", "buku-barang", "buku-barang"},

		// -- Non-words --
		{"digits", "abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stem(tt.input); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStemReviewVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want string
	}{
		{"ditanam", "tanam"},
		{"tabungan", "tabung"},
		{"pelatihan", "latih"},
		{"penggemar", "gemar"},
		{"memproses", "proses"},
	}
	for _, tt := range tests {
		if got := Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestStems(t *testing.T) {
	tests := []struct {
		input []string
		want  string
	}{
		{nil, ""},
		{[]string{"barangnya", "bagus", "banget"}, "barang bagus banget"},
		{[]string{"kurir", "retur", "pengguna", "nanggung", "aplikasi", "tolol"}, "kurir retur guna nanggung aplikasi tolol"},
		{[]string{"pengiriman", "cepat", "murah"}, "kirim cepat murah"},
	}
	for _, tt := range tests {
		if got := Stems(tt.input); got != tt.want {
			t.Errorf("Stems(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaxWordBytes(t *testing.T) {
	long := "meng" + strings.Repeat("a", maxWordBytes)
	if got := Stem(long); got != long {
		t.Errorf("Stem(%d bytes) changed the word", len(long))
	}
}

func TestStemConcurrent(t *testing.T) {
	const goroutines = 16
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Stem("pengiriman"); got != "kirim" {
				t.Errorf("Stem = %q", got)
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// Analyze
// ---------------------------------------------------------------------------

func TestAnalyze(t *testing.T) {
	tests := []struct {
		input   string
		root    string
		affixes []string
		rules   []string
	}{
		{"pengiriman", "kirim", []string{"peng", "an"}, []string{"pengV", "derivational"}},
		{"pengirimannya", "kirim", []string{"peng", "an", "nya"}, []string{"pengV", "derivational", "possessive"}},
		{"bermainlah", "main", []string{"ber", "lah"}, []string{"berCAP", "particle"}},
		{"dimakan", "makan", []string{"di"}, []string{"di"}},
		{"barang", "barang", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a := Analyze(tt.input)
			if !a.Found() {
				t.Fatalf("Analyze(%q): no root found", tt.input)
			}
			if a.Root != tt.root {
				t.Errorf("Root = %q, want %q", a.Root, tt.root)
			}
			if len(a.Removals) != len(tt.affixes) {
				t.Fatalf("Removals = %+v, want affixes %q", a.Removals, tt.affixes)
			}
			for i, r := range a.Removals {
				if r.Affix != tt.affixes[i] || r.Rule != tt.rules[i] {
					t.Errorf("Removals[%d] = %s/%s, want %s/%s", i, r.Affix, r.Rule, tt.affixes[i], tt.rules[i])
				}
			}
		})
	}
}

func TestAnalyzeNotFound(t *testing.T) {
	a := Analyze("Nanggung")
	if a.Found() {
		t.Errorf("Analyze(nanggung) found root %q", a.Root)
	}
	if a.Word != "nanggung" {
		t.Errorf("Word = %q, want lowercased input", a.Word)
	}
	if s := a.String(); s != "nanggung -> ?" {
		t.Errorf("String() = %q", s)
	}
}

func TestAffixKindString(t *testing.T) {
	if s := Prefix.String(); s != "prefix" {
		t.Errorf("Prefix.String() = %q", s)
	}
	if s := AffixKind(42).String(); s != "AffixKind(42)" {
		t.Errorf("AffixKind(42).String() = %q", s)
	}
}

// ---------------------------------------------------------------------------
// Rule helpers
// ---------------------------------------------------------------------------

func TestSuffixStates(t *testing.T) {
	states := suffixStates("pengirimannya")
	want := []string{"pengirimannya", "pengiriman", "pengirim"}
	if len(states) != len(want) {
		t.Fatalf("suffixStates = %+v", states)
	}
	for i, w := range want {
		if states[i].word != w {
			t.Errorf("states[%d] = %q, want %q", i, states[i].word, w)
		}
	}
	if states[2].deriv != "an" {
		t.Errorf("deriv = %q, want %q", states[2].deriv, "an")
	}
}

func TestHasPrecedence(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"bermainlah", true},
		{"membeli", true},
		{"diakhiri", true},
		{"pengiriman", false},
		{"mei", false},
	}
	for _, tt := range tests {
		if got := hasPrecedence(tt.word); got != tt.want {
			t.Errorf("hasPrecedence(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsDisallowed(t *testing.T) {
	if !isDisallowed(kindMe, "an") {
		t.Error("me-an should be disallowed")
	}
	if isDisallowed(kindPe, "an") {
		t.Error("pe-an should be allowed")
	}
}

func BenchmarkStem(b *testing.B) {
	for b.Loop() {
		Stem("pengirimannya")
	}
}

func BenchmarkStems(b *testing.B) {
	words := strings.Fields("barangnya bagus banget pengiriman cepat murah memuaskan pelayanan")
	for b.Loop() {
		Stems(words)
	}
}

// ---------------------------------------------------------------------------
// Golden tests
// ---------------------------------------------------------------------------

type goldenEntry struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}

var updateGolden = flag.Bool("update", false, "update golden test file")

func TestGolden(t *testing.T) {
	data, err := os.ReadFile("../data/golden/morph.json")
	if err != nil {
		t.Skipf("golden file not found: %v", err)
	}
	var entries []goldenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parse golden file: %v", err)
	}

	if *updateGolden {
		for i := range entries {
			entries[i].Stem = Stem(entries[i].Word)
		}
		out, _ := json.MarshalIndent(entries, "", "  ")
		if err := os.WriteFile("../data/golden/morph.json", out, 0644); err != nil {
			t.Fatalf("write golden file: %v", err)
		}
		t.Log("golden file updated")
		return
	}

	for _, e := range entries {
		t.Run(e.Word, func(t *testing.T) {
			if got := Stem(e.Word); got != e.Stem {
				t.Errorf("Stem(%q) = %q, want %q", e.Word, got, e.Stem)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Fuzz tests
// ---------------------------------------------------------------------------

func FuzzStem(f *testing.F) {
	f.Add("pengirimannya")
	f.Add("memperhatikan")
	f.Add("buku-bukunya")
	f.Add("")
	f.Add("a")
	f.Add("-")
	f.Add("meng")
	f.Fuzz(func(t *testing.T, word string) {
		got := Stem(word)
		if word != "" && got == "" {
			t.Errorf("Stem(%q) returned empty for non-empty input", word)
		}
		if again := Stem(word); again != got {
			t.Errorf("Stem(%q) not deterministic: %q then %q", word, got, again)
		}
	})
}

// ---------------------------------------------------------------------------
// Examples
// ---------------------------------------------------------------------------

func ExampleStem() {
	fmt.Println(Stem("pengiriman"))
	fmt.Println(Stem("barangnya"))
	fmt.Println(Stem("nanggung"))
	// Output:
	// kirim
	// barang
	// nanggung
}

func ExampleAnalyze() {
	fmt.Println(Analyze("pengirimannya"))
	// Output:
	// pengirimannya -> kirim [peng- -an -nya]
}

func ExampleStems() {
	fmt.Println(Stems([]string{"barangnya", "bagus", "memuaskan"}))
	// Output:
	// barang bagus puas
}
