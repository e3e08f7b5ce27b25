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
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// UpsertRating inserts or replaces a user's rating for a movie and
// notifies rating-change listeners. The rating must be on the half-star
// scale between 0.5 and 5.0.
func (s *Store) UpsertRating(ctx context.Context, r models.Rating) error {
	if r.Rating < 0.5 || r.Rating > 5.0 {
		return fmt.Errorf("rating %.1f out of range [0.5, 5.0]", r.Rating)
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	if _, err := s.GetMovieByID(ctx, r.MovieID); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	start := time.Now()
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO ratings (user_id, movie_id, rating, rated_at)
		VALUES (?, ?, ?, ?)`,
		r.UserID, r.MovieID, r.Rating, r.Timestamp)
	metrics.RecordDBQuery("INSERT", "ratings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert rating for user %d movie %d: %w", r.UserID, r.MovieID, err)
	}

	s.notifyRatingsChanged(r.UserID)
	return nil
}

// DeleteRating removes a user's rating for a movie. Deleting a rating
// that does not exist returns ErrNotFound.
func (s *Store) DeleteRating(ctx context.Context, userID, movieID int64) error {
	start := time.Now()
	res, err := s.conn.ExecContext(ctx,
		"DELETE FROM ratings WHERE user_id = ? AND movie_id = ?", userID, movieID)
	metrics.RecordDBQuery("DELETE", "ratings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete rating for user %d movie %d: %w", userID, movieID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.notifyRatingsChanged(userID)
	return nil
}
