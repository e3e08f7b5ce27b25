// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package models defines the shared data types exchanged between the
// store, the recommendation engine, and the HTTP API.
package models

import (
	"time"
)

// Movie is a catalog entry from the MovieLens movies dataset.
//
// Genres holds the pipe-split genre tokens from the source file. Movies
// tagged "(no genres listed)" carry an empty slice and are excluded from
// the feature space entirely, so they never appear in similarity
// results.
type Movie struct {
	ID     int64    `json:"movie_id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// Rating is a single user rating on the 0.5 to 5.0 star scale.
type Rating struct {
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// GenomeScore is a genome tag relevance value for one movie. Relevance
// is in [0, 1]; movies absent from the genome file implicitly score 0
// for every tag.
type GenomeScore struct {
	MovieID   int64   `json:"movie_id"`
	TagID     int64   `json:"tag_id"`
	Relevance float64 `json:"relevance"`
}

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: server time when the response was generated
//   - QueryTimeMS: handler execution time in milliseconds
//   - Cached: whether the payload was served from the recommendation cache
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: unknown movie, title, or user
//   - INDEX_UNAVAILABLE: similarity artifacts missing or failed to load
//   - INTERNAL_ERROR: unexpected server-side failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
