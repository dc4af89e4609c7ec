// Package config loads runtime settings from an optional env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/az-ai-labs/ulasan/normalize"
)

// Environment variable names.
const (
	EnvAddr        = "ULASAN_ADDR"
	EnvWorkers     = "ULASAN_WORKERS"
	EnvMatch       = "ULASAN_MATCH"
	EnvLogLevel    = "ULASAN_LOG_LEVEL"
	EnvMaxUploadMB = "ULASAN_MAX_UPLOAD_MB"
	EnvReviewsDir  = "ULASAN_REVIEWS_DIR"
)

// EnvDir holds the per-environment files, named .env.<env>.
const EnvDir = "config/envs"

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Addr        string          // listen address
	Workers     int             // batch worker goroutines
	Match       normalize.Match // slang and lexicon matching policy
	LogLevel    string          // debug, info, warn or error
	MaxUploadMB int             // multipart upload limit
	ReviewsDir  string          // directory of scraper exports for review.FileSource
}

// Defaults fills zero fields with sane values.
func (c *Config) Defaults() {
	if c.Addr == "" {
		c.Addr = ":8090"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 32
	}
	if c.ReviewsDir == "" {
		c.ReviewsDir = "data/reviews"
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load reads EnvDir/.env.<env> into the environment when env is non-empty
// and the file exists, then builds a Config from the environment. Variables
// already set in the environment win over the file.
func Load(env string) (Config, error) {
	if env != "" {
		path := EnvDir + "/.env." + env
		if err := gotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
			slog.Warn("no env file found, using OS environment", slog.String("path", path))
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup to read variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var c Config
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	c.Addr = get(EnvAddr)
	c.LogLevel = get(EnvLogLevel)
	c.ReviewsDir = get(EnvReviewsDir)

	var err error
	if c.Workers, err = atoi(EnvWorkers, get(EnvWorkers)); err != nil {
		return Config{}, err
	}
	if c.MaxUploadMB, err = atoi(EnvMaxUploadMB, get(EnvMaxUploadMB)); err != nil {
		return Config{}, err
	}
	if c.Match, err = normalize.ParseMatch(get(EnvMatch)); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", EnvMatch, err)
	}

	c.Defaults()
	return c, nil
}

func atoi(key, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
