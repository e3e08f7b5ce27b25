// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/metrics"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// noGenres is the MovieLens placeholder for movies without genre tags.
const noGenres = "(no genres listed)"

// SplitGenres converts the raw pipe-delimited genre string into tokens.
// The "(no genres listed)" placeholder yields an empty slice.
func SplitGenres(raw string) []string {
	if raw == "" || raw == noGenres {
		return nil
	}
	return strings.Split(raw, "|")
}

// GetMovieByID returns a single movie or ErrNotFound.
func (s *Store) GetMovieByID(ctx context.Context, movieID int64) (*models.Movie, error) {
	start := time.Now()
	var (
		m      models.Movie
		genres string
	)
	err := s.conn.QueryRowContext(ctx,
		"SELECT movie_id, title, genres FROM movies WHERE movie_id = ?", movieID,
	).Scan(&m.ID, &m.Title, &genres)
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}
	m.Genres = SplitGenres(genres)
	return &m, nil
}

// FindMovieByTitle returns the movie whose title matches exactly,
// case-insensitively. When several titles collide the lowest movie ID
// wins so repeated lookups stay deterministic.
func (s *Store) FindMovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	start := time.Now()
	var (
		m      models.Movie
		genres string
	)
	err := s.conn.QueryRowContext(ctx, `
		SELECT movie_id, title, genres FROM movies
		WHERE lower(title) = lower(?)
		ORDER BY movie_id
		LIMIT 1`, title,
	).Scan(&m.ID, &m.Title, &genres)
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), ignoreNoRows(err))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie by title %q: %w", title, err)
	}
	m.Genres = SplitGenres(genres)
	return &m, nil
}

// ListMovies returns the full catalog ordered by ascending movie ID.
func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx,
		"SELECT movie_id, title, genres FROM movies ORDER BY movie_id")
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var (
			m      models.Movie
			genres string
		)
		if err := rows.Scan(&m.ID, &m.Title, &genres); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		m.Genres = SplitGenres(genres)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie row iteration failed: %w", err)
	}
	return movies, nil
}

// ListGenomeScores returns all genome scores ordered by movie then tag.
func (s *Store) ListGenomeScores(ctx context.Context) ([]models.GenomeScore, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx,
		"SELECT movie_id, tag_id, relevance FROM genome_scores ORDER BY movie_id, tag_id")
	metrics.RecordDBQuery("SELECT", "genome_scores", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list genome scores: %w", err)
	}
	defer rows.Close()

	var scores []models.GenomeScore
	for rows.Next() {
		var gs models.GenomeScore
		if err := rows.Scan(&gs.MovieID, &gs.TagID, &gs.Relevance); err != nil {
			return nil, fmt.Errorf("failed to scan genome row: %w", err)
		}
		scores = append(scores, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genome row iteration failed: %w", err)
	}
	return scores, nil
}

// RatingsForUser returns all ratings by one user ordered by movie ID.
// An unknown user yields an empty slice, not an error.
func (s *Store) RatingsForUser(ctx context.Context, userID int64) ([]models.Rating, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `
		SELECT user_id, movie_id, rating, rated_at FROM ratings
		WHERE user_id = ?
		ORDER BY movie_id`, userID)
	metrics.RecordDBQuery("SELECT", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Rating, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating row iteration failed: %w", err)
	}
	return ratings, nil
}

// ignoreNoRows keeps "no rows" out of the query error metric since it
// is an expected lookup outcome.
func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
