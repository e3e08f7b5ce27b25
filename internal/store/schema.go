// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package store

import (
	"context"
	"fmt"
)

// schemaStatements creates the three core tables. Genres are stored as
// the raw pipe-delimited MovieLens string and split on read.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		movie_id BIGINT PRIMARY KEY,
		title    VARCHAR NOT NULL,
		genres   VARCHAR NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id  BIGINT NOT NULL,
		movie_id BIGINT NOT NULL,
		rating   DOUBLE NOT NULL,
		rated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS genome_scores (
		movie_id  BIGINT NOT NULL,
		tag_id    BIGINT NOT NULL,
		relevance DOUBLE NOT NULL,
		PRIMARY KEY (movie_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_genome_movie ON genome_scores (movie_id)`,
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
