// Package api exposes the review pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /api/analyze           {"text": "..."} -> every stage and the label
//	POST /api/batch?column=...  multipart "file" (CSV) -> augmented CSV
//	POST /api/reviews/analyze   review query (JSON) -> augmented CSV
//	POST /api/distribution      multipart "files" (labeled CSVs) -> counts per app
//
// Every /api response carries an X-Run-ID header identifying the run in
// the server log.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/review"
)

// HeaderRunID is the response header holding the run ID.
const HeaderRunID = "X-Run-ID"

const runIDKey = "run_id"

// Options tunes a Server. Zero values select defaults.
type Options struct {
	Workers        int          // batch worker goroutines; 0 means NumCPU
	MaxUploadBytes int64        // request body limit; 0 means 32 MiB
	Logger         *slog.Logger // nil means slog.Default()
}

// Server serves the HTTP API.
type Server struct {
	pipeline  *pipeline.Pipeline
	source    review.Source
	workers   int
	maxUpload int64
	log       *slog.Logger
	engine    *gin.Engine
}

// NewServer builds a Server running p and fetching reviews from src.
func NewServer(p *pipeline.Pipeline, src review.Source, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		pipeline:  p,
		source:    src,
		workers:   opts.Workers,
		maxUpload: opts.MaxUploadBytes,
		log:       opts.Logger,
	}

	r := gin.New()
	r.MaxMultipartMemory = s.maxUpload
	r.Use(gin.Recovery(), s.requestLogger(), s.limitBody())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api", s.runID())
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/batch", s.handleBatch)
		api.POST("/reviews/analyze", s.handleReviews)
		api.POST("/distribution", s.handleDistribution)
	}

	s.engine = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// runID tags the request with a fresh UUID.
func (s *Server) runID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(runIDKey, id)
		c.Header(HeaderRunID, id)
		c.Next()
	}
}

// limitBody caps the request body at the configured upload size.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if id := c.GetString(runIDKey); id != "" {
			attrs = append(attrs, slog.String("run_id", id))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
			s.log.Warn("request failed", attrs...)
			return
		}
		s.log.Info("request", attrs...)
	}
}
