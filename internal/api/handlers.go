// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package api provides the HTTP serving layer: chi routing, request
// handling, and the standardized response envelope.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/recommend"
)

// RecommendationService is the slice of the recommender the handlers
// consume. Declared here so tests can stub it.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64, limit int, forceRefresh bool) (*recommend.UserRecommendations, bool, error)
	SimilarByID(ctx context.Context, movieID int64, limit int) ([]recommend.Entry, error)
	SimilarByTitle(ctx context.Context, title string, limit int) ([]recommend.Entry, error)
	InvalidateUser(userID int64)
}

// Pinger reports storage liveness for the health endpoints.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyChecker reports whether the similarity index is loaded.
type ReadyChecker interface {
	Ready() bool
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	svc   RecommendationService
	db    Pinger
	index ReadyChecker
}

// NewHandler creates the handler set.
func NewHandler(svc RecommendationService, db Pinger, index ReadyChecker) *Handler {
	return &Handler{svc: svc, db: db, index: index}
}

// GetRecommendations handles GET /api/v1/recommendations/user/{userID}.
// Query parameters: limit (bounded server-side), refresh (forces
// regeneration when true).
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}

	limit := getIntParam(r, "limit", 0)
	refresh := getBoolParam(r, "refresh")

	start := time.Now()
	rec, cached, err := h.svc.GetRecommendations(r.Context(), userID, limit, refresh)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   rec,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

// RefreshRecommendations handles POST /api/v1/recommendations/user/{userID}/refresh.
// Equivalent to GET with refresh=true.
func (h *Handler) RefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	rec, _, err := h.svc.GetRecommendations(r.Context(), userID, limit, true)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   rec,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// InvalidateCache handles DELETE /api/v1/recommendations/user/{userID}/cache.
// Exposed for the ratings collaborator boundary; in-process rating
// writes invalidate automatically through the store hook.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}

	h.svc.InvalidateUser(userID)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]int64{"user_id": userID},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// GetSimilarMovies handles GET /api/v1/movies/{movieID}/similar.
func (h *Handler) GetSimilarMovies(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieID", "movie ID")
	if !ok {
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	entries, err := h.svc.SimilarByID(r.Context(), movieID, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"movie_id": movieID, "similar": entries},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GetSimilarByTitle handles GET /api/v1/movies/similar?title=...
// The title must match exactly (case-insensitive).
func (h *Handler) GetSimilarByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		respondError(w, r, http.StatusBadRequest, errCodeValidation, "title parameter is required", nil)
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	entries, err := h.svc.SimilarByTitle(r.Context(), title, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"title": title, "similar": entries},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HealthLive handles GET /api/v1/health/live. Always succeeds while the
// process serves traffic.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires both
// a reachable database and a loaded similarity index; a missing index
// degrades the recommendation capability and must be visible here
// rather than as empty results.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "index": "ok"}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if !h.index.Ready() {
		checks["index"] = "similarity index not loaded"
		status = http.StatusServiceUnavailable
	}

	respStatus := "success"
	if status != http.StatusOK {
		respStatus = "error"
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   respStatus,
		Data:     checks,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondServiceError maps recommender errors onto HTTP status codes:
// unknown movie/title to 404, missing index to 503, everything else to
// 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case recommend.IsNotFound(err):
		respondError(w, r, http.StatusNotFound, errCodeNotFound, err.Error(), nil)
	case errors.Is(err, recommend.ErrIndexNotLoaded):
		respondError(w, r, http.StatusServiceUnavailable, errCodeIndexUnavailable,
			"recommendation index unavailable", err)
	default:
		respondError(w, r, http.StatusInternalServerError, errCodeInternal,
			"failed to process request", err)
	}
}

// pathID parses a positive integer chi path parameter, writing a 400 on
// failure.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		respondError(w, r, http.StatusBadRequest, errCodeValidation, "invalid "+label, nil)
		return 0, false
	}
	return id, true
}
