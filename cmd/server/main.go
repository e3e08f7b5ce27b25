// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package main is the entry point for the Reelist recommendation server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Store: DuckDB catalog/ratings store
//  4. Similarity index: lazy-loaded artifact set from the trainer
//  5. Recommender: per-user TTL cache (memory or BadgerDB) over the index
//  6. HTTP server: chi REST API plus /metrics
//
// Recommendation requests fail with 503 when no artifact set was
// available at startup; the load outcome is sticky, so after running
// the trainer the server must be restarted to pick up the new set.
// Health and metrics endpoints keep working so the broken state is
// observable rather than masked by empty results.
//
// Shutdown on SIGINT/SIGTERM is graceful: the listener stops accepting,
// in-flight requests get 10 seconds to finish, then the cache store and
// database are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/api"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/config"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/recommend"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("artifacts_dir", cfg.Recommend.ArtifactsDir).
		Str("cache_store", cfg.Recommend.CacheStore).
		Msg("starting reelist server")

	db, err := store.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing database")
		}
	}()

	cache, err := recommend.NewCacheStore(cfg.Recommend.CacheStore, cfg.Recommend.CachePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize recommendation cache")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing cache store")
		}
	}()

	recCfg := &recommend.Config{
		GenreWeight:   cfg.Recommend.GenreWeight,
		GenomeWeight:  cfg.Recommend.GenomeWeight,
		VocabularyCap: cfg.Recommend.VocabularyCap,
		LikeThreshold: cfg.Recommend.LikeThreshold,
		DefaultLimit:  cfg.Recommend.DefaultLimit,
		MaxLimit:      cfg.Recommend.MaxLimit,
		FallbackScore: cfg.Recommend.FallbackScore,
		CacheTTL:      cfg.Recommend.CacheTTL,
	}
	if err := recCfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid recommendation configuration")
	}

	index := recommend.NewIndex(cfg.Recommend.ArtifactsDir)
	provider := store.NewRecommendProvider(db)
	recommender := recommend.NewRecommender(recCfg, index, provider, provider, cache)

	// every rating mutation drops the user's cached recommendations
	db.OnRatingsChanged(recommender.InvalidateUser)

	// warm the index in the background; a failure here is sticky and
	// surfaces through /health/ready and 503s on recommendation routes
	go func() {
		if err := index.Load(); err != nil {
			logging.Warn().Err(err).Msg("similarity index unavailable, run the trainer to publish artifacts")
		}
	}()

	handler := api.NewHandler(recommender, db, index)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(&cfg.Server, handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("http server listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http server shutdown failed")
	}
	logging.Info().Msg("server stopped")
}
