package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/review"
)

const export = `[
  {"userName": "Ani", "score": 5, "at": "2024-03-01 10:00:00", "content": "barangnya bagus banget"},
  {"userName": "Budi", "score": 1, "at": "2024-02-01 10:00:00", "content": "KURIR YG RETUR PENGGUNA YG NANGGUNG APLIKASI TOLOL"}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, review.DefaultPackageID+".json"), []byte(export), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return NewServer(pipeline.New(), &review.FileSource{Dir: dir}, Options{
		Workers: 2,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

type upload struct {
	name, body string
}

func multipartBody(t *testing.T, field string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(part, f.body); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func readCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("response is not CSV: %v\n%s", err, body)
	}
	return records
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
	if rec.Header().Get(HeaderRunID) != "" {
		t.Error("health check should not carry a run ID")
	}
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"text": "barangnya bagus banget, pengiriman cepat dan murah"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(HeaderRunID) == "" {
		t.Error("missing run ID header")
	}
	var got struct {
		Stem      string   `json:"stem"`
		Tokens    []string `json:"tokens"`
		Sentiment string   `json:"sentiment"`
		Label     string   `json:"label"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Stem != "barang bagus banget kirim cepat murah" {
		t.Errorf("stem = %q", got.Stem)
	}
	if len(got.Tokens) != 6 {
		t.Errorf("tokens = %q", got.Tokens)
	}
	if got.Sentiment != "Positive" || got.Label != "Positif" {
		t.Errorf("sentiment = %q, label = %q", got.Sentiment, got.Label)
	}
}

func TestAnalyzeBadBody(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBatch(t *testing.T) {
	srv := newTestServer(t)
	body, ct := multipartBody(t, "file", upload{"ulasan.csv",
		"id,review\n1,KURIR YG RETUR PENGGUNA YG NANGGUNG APLIKASI TOLOL\n2,\"oke saja, tidak ada yang spesial\"\n"})
	req := httptest.NewRequest(http.MethodPost, "/api/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, batchFilename) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	records := readCSV(t, rec.Body.Bytes())
	wantHeader := []string{"id", "review", "clean", "norm", "stop", "token", "stem", "sentimen"}
	if !slices.Equal(records[0], wantHeader) {
		t.Fatalf("header = %q, want %q", records[0], wantHeader)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 2", len(records)-1)
	}
	if got := records[1][7]; got != "Negatif" {
		t.Errorf("row 1 sentimen = %q, want Negatif", got)
	}
	if got := records[2][7]; got != "Netral" {
		t.Errorf("row 2 sentimen = %q, want Netral", got)
	}
	if got := records[1][6]; got != "kurir retur guna nanggung aplikasi tolol" {
		t.Errorf("row 1 stem = %q", got)
	}
}

func TestBatchColumnParam(t *testing.T) {
	srv := newTestServer(t)
	body, ct := multipartBody(t, "file", upload{"data.csv", "content\nmantap\n"})
	req := httptest.NewRequest(http.MethodPost, "/api/batch?column=content", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
}

func TestBatchMissingColumn(t *testing.T) {
	srv := newTestServer(t)
	body, ct := multipartBody(t, "file", upload{"data.csv", "content\nmantap\n"})
	req := httptest.NewRequest(http.MethodPost, "/api/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Kolom 'review' tidak ditemukan.") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestBatchNoFile(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/batch", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBatchTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(pipeline.New(), &review.FileSource{Dir: t.TempDir()}, Options{
		MaxUploadBytes: 64,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	body, ct := multipartBody(t, "file", upload{"big.csv", "review\n" + strings.Repeat("bagus ", 100) + "\n"})
	req := httptest.NewRequest(http.MethodPost, "/api/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReviews(t *testing.T) {
	srv := newTestServer(t)

	t.Run("default query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews/analyze", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, reviewsFilename) {
			t.Errorf("Content-Disposition = %q", cd)
		}
		records := readCSV(t, rec.Body.Bytes())
		if want := []string{"user", "rating", "date", "text"}; !slices.Equal(records[0][:4], want) {
			t.Errorf("header = %q", records[0])
		}
		if len(records) != 3 {
			t.Fatalf("rows = %d, want 2", len(records)-1)
		}
		last := len(records[0]) - 1
		if records[1][0] != "Ani" || records[1][last] != "Positif" {
			t.Errorf("row 1 = %q", records[1])
		}
		if records[2][0] != "Budi" || records[2][last] != "Negatif" {
			t.Errorf("row 2 = %q", records[2])
		}
	})

	t.Run("filter score", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/reviews/analyze", strings.NewReader(`{"filter_score": 1}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}
		if records := readCSV(t, rec.Body.Bytes()); len(records) != 2 || records[1][0] != "Budi" {
			t.Errorf("records = %q", records)
		}
	})

	t.Run("invalid score", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/reviews/analyze", strings.NewReader(`{"filter_score": 7}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDistribution(t *testing.T) {
	srv := newTestServer(t)
	files := []upload{
		{"hasil_shopee.csv", "review,label\na,positif\nb,negatif\nc,Positif\n"},
		{"tokopedia_labeled.csv", "text,sentimen\na,Netral\n"},
		{"sopi_lama.csv", "review,label\na,positif\n"},
		{"bukalapak.csv", "review,label\na,positif\n"},
	}

	t.Run("json", func(t *testing.T) {
		body, ct := multipartBody(t, "files", files...)
		req := httptest.NewRequest(http.MethodPost, "/api/distribution", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		var got distributionResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got.Distributions) != 2 {
			t.Fatalf("distributions = %+v", got.Distributions)
		}
		shopee := got.Distributions[0]
		if shopee.App != "Shopee" || shopee.Positive != 2 || shopee.Negative != 1 || shopee.Total != 3 {
			t.Errorf("Shopee = %+v", shopee)
		}
		if toko := got.Distributions[1]; toko.App != "Tokopedia" || toko.Neutral != 1 {
			t.Errorf("Tokopedia = %+v", toko)
		}
		if want := []string{"Blibli", "Lazada"}; !slices.Equal(got.Missing, want) {
			t.Errorf("missing = %q, want %q", got.Missing, want)
		}
		if want := []string{"sopi_lama.csv", "bukalapak.csv"}; !slices.Equal(got.Unmapped, want) {
			t.Errorf("unmapped = %q, want %q", got.Unmapped, want)
		}
	})

	t.Run("csv", func(t *testing.T) {
		body, ct := multipartBody(t, "files", files...)
		req := httptest.NewRequest(http.MethodPost, "/api/distribution?format=csv", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}
		records := readCSV(t, rec.Body.Bytes())
		want := [][]string{
			{"App", "Positif", "Negatif", "Netral", "Total"},
			{"Shopee", "2", "1", "0", "3"},
			{"Tokopedia", "0", "0", "1", "1"},
		}
		if len(records) != len(want) {
			t.Fatalf("records = %q", records)
		}
		for i := range want {
			if !slices.Equal(records[i], want[i]) {
				t.Errorf("row %d = %q, want %q", i, records[i], want[i])
			}
		}
	})

	t.Run("no files", func(t *testing.T) {
		body, ct := multipartBody(t, "other", upload{"x.csv", "a\n"})
		req := httptest.NewRequest(http.MethodPost, "/api/distribution", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
