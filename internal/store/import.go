// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/metrics"
)

// ImportMovies loads the MovieLens movies.csv file into the movies
// table, replacing rows that share a movie_id. Returns the number of
// rows now present in the table.
func (s *Store) ImportMovies(ctx context.Context, csvPath string) (int64, error) {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO movies (movie_id, title, genres)
		SELECT CAST(movieId AS BIGINT), title, genres
		FROM read_csv_auto(?, header = true)`, csvPath)
	metrics.RecordDBQuery("INSERT", "movies", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to import movies from %s: %w", csvPath, err)
	}
	return s.countRows(ctx, "movies")
}

// ImportGenomeScores loads the MovieLens genome-scores.csv file.
func (s *Store) ImportGenomeScores(ctx context.Context, csvPath string) (int64, error) {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO genome_scores (movie_id, tag_id, relevance)
		SELECT CAST(movieId AS BIGINT), CAST(tagId AS BIGINT), CAST(relevance AS DOUBLE)
		FROM read_csv_auto(?, header = true)`, csvPath)
	metrics.RecordDBQuery("INSERT", "genome_scores", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to import genome scores from %s: %w", csvPath, err)
	}
	return s.countRows(ctx, "genome_scores")
}

// ImportRatings loads the MovieLens ratings.csv file. The source
// timestamp column holds epoch seconds.
func (s *Store) ImportRatings(ctx context.Context, csvPath string) (int64, error) {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO ratings (user_id, movie_id, rating, rated_at)
		SELECT CAST(userId AS BIGINT), CAST(movieId AS BIGINT),
		       CAST(rating AS DOUBLE),
		       CAST(to_timestamp(CAST("timestamp" AS BIGINT)) AS TIMESTAMP)
		FROM read_csv_auto(?, header = true)`, csvPath)
	metrics.RecordDBQuery("INSERT", "ratings", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to import ratings from %s: %w", csvPath, err)
	}
	return s.countRows(ctx, "ratings")
}

func (s *Store) countRows(ctx context.Context, table string) (int64, error) {
	var count int64
	// table names come from the fixed schema, never from user input
	err := s.conn.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
