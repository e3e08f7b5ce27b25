// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// AggregatePolicy names how per-seed similarity scores combine into one
// candidate score.
type AggregatePolicy string

// AggregateMean averages a candidate's similarity across all seed
// movies. The policy is fixed; it is named so tests and documentation
// can refer to it explicitly, since mean vs. max vs. sum changes
// rankings.
const AggregateMean AggregatePolicy = "mean"

// Entry is a single ranked recommendation.
type Entry struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"similarity_score"`
}

// UserRecommendations is the typed per-user recommendation record, also
// used as the cache value.
type UserRecommendations struct {
	UserID      int64     `json:"user_id"`
	Entries     []Entry   `json:"recommendations"`
	GeneratedAt time.Time `json:"generated_at"`

	// Fallback marks a non-personalized list served to users without
	// usable rating history.
	Fallback bool `json:"fallback,omitempty"`
}

// ErrIndexNotLoaded is returned when the similarity artifacts are
// missing or failed consistency validation. Requests that depend on the
// index must fail loudly rather than degrade to empty results.
var ErrIndexNotLoaded = errors.New("similarity index not loaded")

// NotFoundError reports an unknown movie, title, or movie absent from
// the feature space. It is distinct from a valid query with zero
// matches, which yields an empty list.
type NotFoundError struct {
	Kind string // "movie" or "title"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RatingsSource supplies a user's rating history. Implemented by the
// storage layer.
type RatingsSource interface {
	RatingsForUser(ctx context.Context, userID int64) ([]models.Rating, error)
}

// Catalog resolves titles to catalog entries for similar-by-title
// queries. Implemented by the storage layer; everything else the engine
// needs about a movie is already in the loaded index.
type Catalog interface {
	FindMovieByTitle(ctx context.Context, title string) (*models.Movie, error)
}

// Config contains all tunables for the recommendation engine.
type Config struct {
	// GenreWeight and GenomeWeight scale the two feature blocks before
	// concatenation. They need not sum to 1 but cannot both be zero.
	GenreWeight  float64 `json:"genre_weight"`
	GenomeWeight float64 `json:"genome_weight"`

	// VocabularyCap bounds the TF-IDF genre vocabulary size. The genre
	// vocabulary is small and closed, so the cap rarely binds.
	VocabularyCap int `json:"vocabulary_cap"`

	// LikeThreshold is the minimum rating for a movie to become a seed.
	LikeThreshold float64 `json:"like_threshold"`

	// DefaultLimit and MaxLimit bound the requested recommendation count.
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`

	// FallbackScore is the neutral placeholder attached to every entry
	// of a non-personalized fallback list.
	FallbackScore float64 `json:"fallback_score"`

	// CacheTTL is the freshness window for cached recommendations.
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		GenreWeight:   0.3,
		GenomeWeight:  0.7,
		VocabularyCap: 100,
		LikeThreshold: 4.0,
		DefaultLimit:  10,
		MaxLimit:      50,
		FallbackScore: 0.5,
		CacheTTL:      24 * time.Hour,
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.GenreWeight < 0 {
		return fmt.Errorf("genre_weight must be non-negative, got %f", c.GenreWeight)
	}
	if c.GenomeWeight < 0 {
		return fmt.Errorf("genome_weight must be non-negative, got %f", c.GenomeWeight)
	}
	if c.GenreWeight == 0 && c.GenomeWeight == 0 {
		return fmt.Errorf("genre_weight and genome_weight cannot both be zero")
	}
	if c.VocabularyCap < 1 {
		return fmt.Errorf("vocabulary_cap must be positive, got %d", c.VocabularyCap)
	}
	if c.LikeThreshold < 0.5 || c.LikeThreshold > 5.0 {
		return fmt.Errorf("like_threshold %f out of range [0.5, 5.0]", c.LikeThreshold)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.FallbackScore < 0 || c.FallbackScore > 1 {
		return fmt.Errorf("fallback_score %f out of range [0, 1]", c.FallbackScore)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	return nil
}

// ClampLimit resolves a requested limit against the configured bounds.
// Zero or negative requests fall back to DefaultLimit; oversized
// requests are capped at MaxLimit.
func (c *Config) ClampLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}
