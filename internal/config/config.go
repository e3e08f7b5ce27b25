// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package config loads and validates application configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (CONFIG_PATH or default search paths)
//  3. Environment variables (SERVER_PORT, RECOMMEND_CACHE_TTL, ...)
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" json:"server"`
	Database  DatabaseConfig  `koanf:"database" json:"database"`
	Recommend RecommendConfig `koanf:"recommend" json:"recommend"`
	Logging   LoggingConfig   `koanf:"logging" json:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" json:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" json:"port" validate:"gte=1,lte=65535"`

	// Timeout is the per-request read/write timeout.
	Timeout time.Duration `koanf:"timeout" json:"timeout" validate:"gt=0"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins"`

	// RateLimitReqs is the request budget per RateLimitWindow per client IP.
	RateLimitReqs int `koanf:"rate_limit_reqs" json:"rate_limit_reqs" validate:"gte=1"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" json:"rate_limit_window" validate:"gt=0"`
}

// DatabaseConfig contains DuckDB settings for the catalog/ratings store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" is accepted for tests.
	Path string `koanf:"path" json:"path" validate:"required"`

	// MaxMemory is the DuckDB memory limit (e.g. "1GB").
	MaxMemory string `koanf:"max_memory" json:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads" json:"threads" validate:"gte=0"`

	// MoviesCSV and GenomeCSV are the MovieLens source files consumed by
	// the trainer. RatingsCSV seeds the ratings table when present.
	MoviesCSV  string `koanf:"movies_csv" json:"movies_csv"`
	GenomeCSV  string `koanf:"genome_csv" json:"genome_csv"`
	RatingsCSV string `koanf:"ratings_csv" json:"ratings_csv"`
}

// RecommendConfig contains recommendation engine settings.
type RecommendConfig struct {
	// ArtifactsDir is where the trainer writes (and the server reads)
	// the similarity artifact set.
	ArtifactsDir string `koanf:"artifacts_dir" json:"artifacts_dir" validate:"required"`

	// GenreWeight scales the TF-IDF genre block of each feature vector.
	GenreWeight float64 `koanf:"genre_weight" json:"genre_weight" validate:"gte=0"`

	// GenomeWeight scales the genome relevance block.
	GenomeWeight float64 `koanf:"genome_weight" json:"genome_weight" validate:"gte=0"`

	// VocabularyCap bounds the TF-IDF genre vocabulary size.
	VocabularyCap int `koanf:"vocabulary_cap" json:"vocabulary_cap" validate:"gte=1"`

	// LikeThreshold is the minimum rating for a movie to act as a seed.
	LikeThreshold float64 `koanf:"like_threshold" json:"like_threshold" validate:"gte=0.5,lte=5"`

	// DefaultLimit and MaxLimit bound the per-request recommendation count.
	DefaultLimit int `koanf:"default_limit" json:"default_limit" validate:"gte=1"`
	MaxLimit     int `koanf:"max_limit" json:"max_limit" validate:"gte=1"`

	// FallbackScore is the neutral placeholder score for non-personalized
	// fallback recommendations.
	FallbackScore float64 `koanf:"fallback_score" json:"fallback_score" validate:"gte=0,lte=1"`

	// CacheTTL is the freshness window for cached recommendation lists.
	CacheTTL time.Duration `koanf:"cache_ttl" json:"cache_ttl" validate:"gt=0"`

	// CacheStore selects the cache backend: "memory" or "badger".
	CacheStore string `koanf:"cache_store" json:"cache_store" validate:"oneof=memory badger"`

	// CachePath is the badger directory when CacheStore is "badger".
	CachePath string `koanf:"cache_path" json:"cache_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8310,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path:       "/data/reelist.duckdb",
			MaxMemory:  "1GB",
			Threads:    0,
			MoviesCSV:  "/data/ml/movies.csv",
			GenomeCSV:  "/data/ml/genome-scores.csv",
			RatingsCSV: "",
		},
		Recommend: RecommendConfig{
			ArtifactsDir:  "/data/artifacts",
			GenreWeight:   0.3,
			GenomeWeight:  0.7,
			VocabularyCap: 100,
			LikeThreshold: 4.0,
			DefaultLimit:  10,
			MaxLimit:      50,
			FallbackScore: 0.5,
			CacheTTL:      24 * time.Hour,
			CacheStore:    "memory",
			CachePath:     "/data/reccache",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var validate = validator.New()

// Validate checks the configuration for internal consistency. Tag-level
// constraints run first, followed by cross-field checks the tags cannot
// express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Recommend.GenreWeight == 0 && c.Recommend.GenomeWeight == 0 {
		return fmt.Errorf("invalid configuration: genre_weight and genome_weight cannot both be zero")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("invalid configuration: max_limit (%d) < default_limit (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	if c.Recommend.CacheStore == "badger" && c.Recommend.CachePath == "" {
		return fmt.Errorf("invalid configuration: cache_path required when cache_store is badger")
	}

	return nil
}
