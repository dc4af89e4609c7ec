package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/az-ai-labs/ulasan/dataset"
	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/report"
	"github.com/az-ai-labs/ulasan/review"
)

// Download file names.
const (
	batchFilename        = "hasil_sentimen.csv"
	reviewsFilename      = "hasil_scraping_google_play.csv"
	distributionFilename = "tabel_distribusi_sentimen_4_aplikasi.csv"
)

// defaultColumn is the text column used when the batch request names none.
const defaultColumn = "review"

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	pipeline.Result
	Label string `json:"label"`
}

type distributionResponse struct {
	Distributions []report.Distribution `json:"distributions"`
	Missing       []string              `json:"missing"`
	Unmapped      []string              `json:"unmapped"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	r := s.pipeline.Process(req.Text)
	c.JSON(http.StatusOK, analyzeResponse{Result: r, Label: r.Label()})
}

func (s *Server) handleBatch(c *gin.Context) {
	column := c.DefaultQuery("column", defaultColumn)
	fh, err := c.FormFile("file")
	if err != nil {
		s.badRequest(c, fmt.Errorf("missing CSV upload in field \"file\": %w", err))
		return
	}
	tbl, err := readUpload(fh)
	if err != nil {
		s.badRequest(c, err)
		return
	}

	out, err := dataset.Augment(c.Request.Context(), s.pipeline, tbl, column, s.workers)
	var mce *dataset.MissingColumnError
	switch {
	case errors.As(err, &mce):
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Kolom '%s' tidak ditemukan.", mce.Column)})
		return
	case err != nil:
		s.serverError(c, err)
		return
	}
	s.log.Info("batch processed",
		slog.String("run_id", c.GetString(runIDKey)),
		slog.String("file", fh.Filename),
		slog.String("column", column),
		slog.Int("rows", out.Len()))
	s.sendCSV(c, batchFilename, out)
}

func (s *Server) handleReviews(c *gin.Context) {
	var q review.Query
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&q); err != nil && !errors.Is(err, io.EOF) {
			s.badRequest(c, fmt.Errorf("invalid query: %w", err))
			return
		}
	}
	q = q.WithDefaults()
	if err := q.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	records, err := s.source.Fetch(c.Request.Context(), q)
	if err != nil {
		s.serverError(c, err)
		return
	}
	out, err := dataset.Augment(c.Request.Context(), s.pipeline, review.ToTable(records), review.ColText, s.workers)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.log.Info("reviews processed",
		slog.String("run_id", c.GetString(runIDKey)),
		slog.String("package_id", q.PackageID),
		slog.Int("count", q.Count),
		slog.Int("rows", out.Len()))
	s.sendCSV(c, reviewsFilename, out)
}

func (s *Server) handleDistribution(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.badRequest(c, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		s.badRequest(c, errors.New("no files uploaded in field \"files\""))
		return
	}

	resp := distributionResponse{Unmapped: []string{}}
	seen := make(map[string]bool, len(report.Apps))
	for _, fh := range files {
		app, ok := report.GuessApp(fh.Filename)
		if !ok || seen[app] {
			resp.Unmapped = append(resp.Unmapped, fh.Filename)
			continue
		}
		tbl, err := readUpload(fh)
		if err != nil {
			s.badRequest(c, fmt.Errorf("read %s: %w", fh.Filename, err))
			return
		}
		seen[app] = true
		resp.Distributions = append(resp.Distributions, report.Count(app, tbl))
	}
	resp.Missing = report.Missing(resp.Distributions)
	if resp.Missing == nil {
		resp.Missing = []string{}
	}

	s.log.Info("distribution computed",
		slog.String("run_id", c.GetString(runIDKey)),
		slog.Int("apps", len(resp.Distributions)),
		slog.Int("unmapped", len(resp.Unmapped)))

	if c.Query("format") == "csv" {
		s.sendCSV(c, distributionFilename, report.Distributions(resp.Distributions))
		return
	}
	slices.SortStableFunc(resp.Distributions, func(a, b report.Distribution) int {
		return strings.Compare(a.App, b.App)
	})
	if resp.Distributions == nil {
		resp.Distributions = []report.Distribution{}
	}
	c.JSON(http.StatusOK, resp)
}

// readUpload parses an uploaded CSV file.
func readUpload(fh *multipart.FileHeader) (*dataset.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()
	return dataset.Read(f)
}

// sendCSV writes t as a CSV attachment named filename.
func (s *Server) sendCSV(c *gin.Context, filename string, t *dataset.Table) {
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		s.serverError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
