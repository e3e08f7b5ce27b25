// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package main is the Reelist offline trainer.
//
// The trainer imports the MovieLens CSV files into DuckDB, builds the
// weighted TF-IDF plus genome feature vectors, computes the dense
// cosine similarity matrix, and atomically publishes the artifact set
// the server loads on demand. It is meant to run as a batch job
// whenever the catalog or genome data changes; the server picks up the
// new artifact set on its next restart.
//
// A missing source CSV aborts the run with the offending path in the
// error so operators can fix the mount rather than serve a silently
// stale or empty model.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("movies_csv", cfg.Database.MoviesCSV).
		Str("genome_csv", cfg.Database.GenomeCSV).
		Str("artifacts_dir", cfg.Recommend.ArtifactsDir).
		Msg("starting trainer run")

	db, err := store.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing database")
		}
	}()

	movieCount, err := db.ImportMovies(ctx, cfg.Database.MoviesCSV)
	if err != nil {
		logging.Fatal().Err(err).Msg("movies import failed")
	}
	logging.Info().Int64("rows", movieCount).Msg("movies imported")

	genomeCount, err := db.ImportGenomeScores(ctx, cfg.Database.GenomeCSV)
	if err != nil {
		logging.Fatal().Err(err).Msg("genome scores import failed")
	}
	logging.Info().Int64("rows", genomeCount).Msg("genome scores imported")

	if cfg.Database.RatingsCSV != "" {
		ratingCount, err := db.ImportRatings(ctx, cfg.Database.RatingsCSV)
		if err != nil {
			logging.Fatal().Err(err).Msg("ratings import failed")
		}
		logging.Info().Int64("rows", ratingCount).Msg("ratings imported")
	}

	movies, err := db.ListMovies(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to read movie catalog")
	}
	scores, err := db.ListGenomeScores(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to read genome scores")
	}

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

	manifest, err := recommend.NewPipeline(recCfg).Run(ctx, movies, scores, cfg.Recommend.ArtifactsDir)
	if err != nil {
		logging.Fatal().Err(err).Msg("training pipeline failed")
	}

	logging.Info().
		Str("version", manifest.Version).
		Int("movies", manifest.Movies).
		Int("dimensions", manifest.Dimensions).
		Dur("elapsed", time.Since(start)).
		Msg("trainer run complete")
}
