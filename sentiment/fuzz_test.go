package sentiment

import (
	"math"
	"testing"
)

func FuzzAnalyze(f *testing.F) {
	f.Add("barang bagus banget kirim cepat murah")
	f.Add("kurir retur guna nanggung aplikasi tolol")
	f.Add("")
	f.Add("123 456")
	f.Add("bagus jelek bagus")
	f.Add("\xff\xfe")

	f.Fuzz(func(t *testing.T, s string) {
		r := Analyze(s)

		if r.Score < -1.0 || r.Score > 1.0 {
			t.Errorf("Score out of range: %.3f", r.Score)
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			t.Errorf("Score is NaN or Inf: %v", r.Score)
		}

		switch r.Sentiment {
		case Negative, Neutral, Positive:
		default:
			t.Errorf("invalid Sentiment: %d", r.Sentiment)
		}

		if r.HardNegative && r.Sentiment != Negative {
			t.Errorf("hard negative but Sentiment %v", r.Sentiment)
		}
		if !r.HardNegative {
			want := Neutral
			switch {
			case r.Positive > r.Negative:
				want = Positive
			case r.Negative > r.Positive:
				want = Negative
			}
			if r.Sentiment != want {
				t.Errorf("counts pos=%d neg=%d but Sentiment %v", r.Positive, r.Negative, r.Sentiment)
			}
		}

		if r.Score > 0 && r.Sentiment != Positive {
			t.Errorf("Score %.3f but Sentiment %v", r.Score, r.Sentiment)
		}
		if r.Score < 0 && r.Sentiment != Negative {
			t.Errorf("Score %.3f but Sentiment %v", r.Score, r.Sentiment)
		}
	})
}
