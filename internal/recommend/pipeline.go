// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/metrics"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// Pipeline runs the offline feature and similarity computation and
// publishes the artifact set. It is a single-machine batch job; the
// dense matrix bounds the catalog to the low tens of thousands of
// movies.
type Pipeline struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewPipeline creates a pipeline. A nil cfg uses defaults.
func NewPipeline(cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logging.With().Str("component", "pipeline").Logger(),
	}
}

// Run builds features, computes the similarity matrix, and atomically
// publishes the artifact set to artifactsDir. An empty corpus publishes
// an empty artifact set rather than failing.
func (p *Pipeline) Run(ctx context.Context, movies []models.Movie, scores []models.GenomeScore, artifactsDir string) (*Manifest, error) {
	manifest, err := p.run(ctx, movies, scores, artifactsDir)
	metrics.RecordPipelineRun(err)
	return manifest, err
}

func (p *Pipeline) run(ctx context.Context, movies []models.Movie, scores []models.GenomeScore, artifactsDir string) (*Manifest, error) {
	start := time.Now()
	builder := NewFeatureBuilder(p.cfg)
	fs, err := builder.Build(movies, scores)
	if err != nil {
		return nil, err
	}
	metrics.RecordPipelineStage("features", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	matrix := ComputeSimilarity(fs.Vectors)
	metrics.RecordPipelineStage("similarity", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	manifest, err := SaveArtifacts(artifactsDir, fs, matrix)
	if err != nil {
		return nil, err
	}
	metrics.RecordPipelineStage("persist", time.Since(start))

	p.logger.Info().
		Str("version", manifest.Version).
		Int("movies", manifest.Movies).
		Int("dimensions", manifest.Dimensions).
		Str("dir", artifactsDir).
		Msg("artifact set published")
	return manifest, nil
}
