// Command server serves the review pipeline over HTTP.
//
//	go run ./cmd/server -env dev
//
// Settings come from config/envs/.env.<env> and the ULASAN_* environment
// variables; see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/az-ai-labs/ulasan/internal/api"
	"github.com/az-ai-labs/ulasan/internal/config"
	"github.com/az-ai-labs/ulasan/internal/logging"
	"github.com/az-ai-labs/ulasan/pipeline"
	"github.com/az-ai-labs/ulasan/review"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := flag.String("env", os.Getenv("APP_ENV"), "environment name selecting config/envs/.env.<env>")
	flag.Parse()

	if err := run(*env); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	srv := api.NewServer(
		pipeline.New(pipeline.WithMatch(cfg.Match)),
		&review.FileSource{Dir: cfg.ReviewsDir},
		api.Options{Workers: cfg.Workers, MaxUploadBytes: cfg.MaxUploadBytes()},
	)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("listening",
			slog.String("addr", cfg.Addr),
			slog.Int("workers", cfg.Workers),
			slog.String("match", cfg.Match.String()),
			slog.String("reviews_dir", cfg.ReviewsDir))
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
