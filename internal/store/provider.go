// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package store

import (
	"context"
	"errors"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/recommend"
)

// RecommendProvider adapts the store to the recommendation engine's
// collaborator interfaces, translating the store's not-found sentinel
// into the engine's typed error.
type RecommendProvider struct {
	store *Store
}

// NewRecommendProvider creates the adapter.
func NewRecommendProvider(s *Store) *RecommendProvider {
	return &RecommendProvider{store: s}
}

// RatingsForUser implements recommend.RatingsSource.
func (p *RecommendProvider) RatingsForUser(ctx context.Context, userID int64) ([]models.Rating, error) {
	return p.store.RatingsForUser(ctx, userID)
}

// FindMovieByTitle implements recommend.Catalog.
func (p *RecommendProvider) FindMovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	m, err := p.store.FindMovieByTitle(ctx, title)
	if errors.Is(err, ErrNotFound) {
		return nil, &recommend.NotFoundError{Kind: "title", Key: title}
	}
	return m, err
}
