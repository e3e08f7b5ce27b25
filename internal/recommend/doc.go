// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package recommend implements the content-based movie recommendation
// engine.
//
// # Architecture
//
// The engine has an offline and an online half:
//
//   - Offline pipeline: FeatureBuilder turns movie genres and genome tag
//     relevance scores into L2-normalized feature vectors, the
//     similarity computer multiplies the feature matrix with its
//     transpose to produce a dense cosine similarity matrix, and the
//     artifact writer persists the matrix together with the id/index
//     mapping and movie metadata as one atomic artifact set.
//   - Online service: Index loads the artifact set once (lazily, guarded
//     so concurrent first use initializes exactly once) and exposes
//     read-only lookups. Recommender answers similar-by-id,
//     similar-by-title, and personalized recommendation queries on top
//     of the index, writing through a per-user TTL cache.
//
// # Design Principles
//
//   - Deterministic: same inputs produce identical outputs; ties break
//     on ascending movie ID everywhere.
//   - Read-mostly: the loaded index is immutable and shared without
//     locking; only the cache mutates at request time.
//   - Decoupled: rating history and catalog lookups arrive through the
//     RatingsSource and Catalog interfaces so the engine carries no
//     dependency on the storage layer.
//
// # Usage
//
//	idx := recommend.NewIndex(cfg.ArtifactsDir)
//	rec := recommend.NewRecommender(cfg, idx, ratings, catalog, cache)
//
//	recs, cached, err := rec.GetRecommendations(ctx, userID, 10, false)
//
// # Thread Safety
//
// All exported types are safe for concurrent use. Personalized
// generation serializes per user so concurrent requests for the same
// user cannot interleave cache writes; requests for different users do
// not block each other.
package recommend
