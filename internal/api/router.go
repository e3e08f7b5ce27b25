// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/config"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/middleware"
)

// NewRouter assembles the full route tree with the global middleware
// stack.
func NewRouter(cfg *config.ServerConfig, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.RateLimitReqs,
			cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
		r.Use(middleware.PrometheusMetrics)

		r.Route("/recommendations/user/{userID}", func(r chi.Router) {
			r.Get("/", handler.GetRecommendations)
			r.Post("/refresh", handler.RefreshRecommendations)
			r.Delete("/cache", handler.InvalidateCache)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/similar", handler.GetSimilarByTitle)
			r.Get("/{movieID}/similar", handler.GetSimilarMovies)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
