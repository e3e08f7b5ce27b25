// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/metrics"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// Recommender answers similarity and personalized recommendation
// queries over a loaded Index, writing through a per-user TTL cache.
// It is safe for concurrent use.
type Recommender struct {
	cfg     *Config
	index   *Index
	ratings RatingsSource
	catalog Catalog
	cache   CacheStore
	logger  zerolog.Logger

	// userLocks serializes generation per user so concurrent requests
	// for the same user cannot interleave cache writes. Requests for
	// different users never contend.
	userLocks sync.Map
}

// NewRecommender wires the recommender. A nil cfg uses defaults; a nil
// cache falls back to the in-memory store.
func NewRecommender(cfg *Config, index *Index, ratings RatingsSource, catalog Catalog, cache CacheStore) *Recommender {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cache == nil {
		cache = NewMemoryCacheStore()
	}
	return &Recommender{
		cfg:     cfg,
		index:   index,
		ratings: ratings,
		catalog: catalog,
		cache:   cache,
		logger:  logging.With().Str("component", "recommend").Logger(),
	}
}

// SimilarByID returns the top-limit movies most similar to the seed,
// excluding the seed itself. An unknown seed, or one dropped from the
// feature space for lacking genres, yields a NotFoundError rather than
// an empty list; an empty list is reserved for valid seeds with no
// candidates.
func (r *Recommender) SimilarByID(ctx context.Context, movieID int64, limit int) ([]Entry, error) {
	start := time.Now()
	limit = r.cfg.ClampLimit(limit)

	seedRow, err := r.index.IndexFor(movieID)
	if err != nil {
		return nil, err
	}

	entries := r.similarEntries(seedRow, limit, nil)
	metrics.RecordRecommendation("similar", time.Since(start))
	return entries, nil
}

// SimilarByTitle resolves an exact title match and delegates to
// SimilarByID.
func (r *Recommender) SimilarByTitle(ctx context.Context, title string, limit int) ([]Entry, error) {
	movie, err := r.catalog.FindMovieByTitle(ctx, title)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("title lookup failed: %w", err)
	}
	return r.SimilarByID(ctx, movie.ID, limit)
}

// similarEntries ranks every candidate against one seed row. Candidates
// in excluded are skipped, as is the seed itself. Sorting is score
// descending with ties broken by ascending movie ID so repeated calls
// are byte-identical.
func (r *Recommender) similarEntries(seedRow, limit int, excluded map[int64]bool) []Entry {
	set := r.index.set
	row := set.Matrix[seedRow]

	candidates := make([]int, 0, len(row))
	for j := range row {
		if j == seedRow {
			continue
		}
		if excluded != nil && excluded[set.MovieIDs[j]] {
			continue
		}
		candidates = append(candidates, j)
	}

	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if row[ca] != row[cb] {
			return row[ca] > row[cb]
		}
		return set.MovieIDs[ca] < set.MovieIDs[cb]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	entries := make([]Entry, len(candidates))
	for i, j := range candidates {
		entries[i] = Entry{MovieID: set.MovieIDs[j], Title: set.Titles[j], Score: row[j]}
	}
	return entries
}

// GetRecommendations serves a personalized recommendation list from the
// cache when fresh, regenerating otherwise. The second return value
// reports whether the response came from the cache. limit is clamped to
// the configured bounds; the cache always holds the full MaxLimit list
// so different limits share one cached record.
func (r *Recommender) GetRecommendations(ctx context.Context, userID int64, limit int, forceRefresh bool) (*UserRecommendations, bool, error) {
	limit = r.cfg.ClampLimit(limit)

	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if !forceRefresh {
		rec, err := r.cache.Get(userID)
		hit := err == nil && r.fresh(rec)
		metrics.RecordCacheLookup(hit)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			r.logger.Warn().Err(err).Int64("user_id", userID).Msg("cache read failed, regenerating")
		}
		if hit {
			return truncated(rec, limit), true, nil
		}
	}

	rec, err := r.generate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(userID, rec); err != nil {
		r.logger.Warn().Err(err).Int64("user_id", userID).Msg("cache write failed")
	}
	return truncated(rec, limit), false, nil
}

// InvalidateUser drops the user's cached recommendations. Wired to the
// ratings store so every rating create, update, or delete invalidates.
// It takes the same per-user lock as GetRecommendations: an invalidation
// arriving while a generation is in flight must land after that
// generation's cache write, otherwise the record computed from the old
// rating history survives as a fresh-looking cache entry.
func (r *Recommender) InvalidateUser(userID int64) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := r.cache.Delete(userID); err != nil {
		r.logger.Warn().Err(err).Int64("user_id", userID).Msg("cache invalidation failed")
		return
	}
	metrics.RecCacheInvalidations.Inc()
}

// generate computes the full MaxLimit-length recommendation record for
// one user.
//
// Seed selection: movies rated at or above the like threshold that are
// present in the feature space. A user whose ratings all fall below the
// threshold gets their single highest-rated movie as the only seed
// (ties broken by lowest movie ID). A user with no ratings, or none of
// whose rated movies survive in the feature space, gets the
// deterministic non-personalized fallback list instead.
//
// Aggregation follows AggregateMean: a candidate's score is the
// arithmetic mean of its similarity to every seed. Every rated movie is
// excluded from the output regardless of its rating value.
func (r *Recommender) generate(ctx context.Context, userID int64) (*UserRecommendations, error) {
	start := time.Now()

	if err := r.index.Load(); err != nil {
		return nil, err
	}

	history, err := r.ratings.RatingsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings for user %d: %w", userID, err)
	}

	rated := make(map[int64]bool, len(history))
	for _, rt := range history {
		rated[rt.MovieID] = true
	}

	seedRows := r.selectSeeds(history)
	if len(seedRows) == 0 {
		rec := r.fallback(userID, rated)
		metrics.RecordRecommendation("fallback", time.Since(start))
		r.logger.Debug().Int64("user_id", userID).Int("ratings", len(history)).Msg("served fallback recommendations")
		return rec, nil
	}

	set := r.index.set
	n := len(set.MovieIDs)
	sums := make([]float64, n)
	for _, row := range seedRows {
		simRow := set.Matrix[row]
		for j := 0; j < n; j++ {
			sums[j] += simRow[j]
		}
	}

	seedCount := float64(len(seedRows))
	candidates := make([]int, 0, n)
	for j := 0; j < n; j++ {
		if rated[set.MovieIDs[j]] {
			continue
		}
		sums[j] /= seedCount
		candidates = append(candidates, j)
	}

	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if sums[ca] != sums[cb] {
			return sums[ca] > sums[cb]
		}
		return set.MovieIDs[ca] < set.MovieIDs[cb]
	})
	if len(candidates) > r.cfg.MaxLimit {
		candidates = candidates[:r.cfg.MaxLimit]
	}

	entries := make([]Entry, len(candidates))
	for i, j := range candidates {
		entries[i] = Entry{MovieID: set.MovieIDs[j], Title: set.Titles[j], Score: sums[j]}
	}

	metrics.RecordRecommendation("personalized", time.Since(start))
	r.logger.Debug().
		Int64("user_id", userID).
		Int("seeds", len(seedRows)).
		Int("entries", len(entries)).
		Dur("elapsed", time.Since(start)).
		Msg("generated recommendations")

	return &UserRecommendations{
		UserID:      userID,
		Entries:     entries,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// selectSeeds maps the rating history to matrix rows. Ratings for
// movies outside the feature space are ignored.
func (r *Recommender) selectSeeds(history []models.Rating) []int {
	var seedRows []int
	for _, rt := range history {
		if rt.Rating < r.cfg.LikeThreshold {
			continue
		}
		if row, ok := r.index.indexFor[rt.MovieID]; ok {
			seedRows = append(seedRows, row)
		}
	}
	if len(seedRows) > 0 {
		return seedRows
	}

	// Nothing liked: the single highest-rated movie stands in as the
	// seed, ties going to the lowest movie ID.
	best := -1
	var bestRating float64
	var bestID int64
	for _, rt := range history {
		row, ok := r.index.indexFor[rt.MovieID]
		if !ok {
			continue
		}
		if best == -1 || rt.Rating > bestRating || (rt.Rating == bestRating && rt.MovieID < bestID) {
			best = row
			bestRating = rt.Rating
			bestID = rt.MovieID
		}
	}
	if best >= 0 {
		return []int{best}
	}
	return nil
}

// fallback builds the deterministic non-personalized list: the first
// movies of the index in ascending ID order, skipping anything the user
// already rated, each carrying the neutral placeholder score.
func (r *Recommender) fallback(userID int64, rated map[int64]bool) *UserRecommendations {
	set := r.index.set
	entries := make([]Entry, 0, r.cfg.MaxLimit)
	for j := 0; j < len(set.MovieIDs) && len(entries) < r.cfg.MaxLimit; j++ {
		if rated[set.MovieIDs[j]] {
			continue
		}
		entries = append(entries, Entry{
			MovieID: set.MovieIDs[j],
			Title:   set.Titles[j],
			Score:   r.cfg.FallbackScore,
		})
	}
	return &UserRecommendations{
		UserID:      userID,
		Entries:     entries,
		GeneratedAt: time.Now().UTC(),
		Fallback:    true,
	}
}

// fresh reports whether a cached record is within the TTL window. A
// zero timestamp is treated as stale, not as an error.
func (r *Recommender) fresh(rec *UserRecommendations) bool {
	if rec == nil || rec.GeneratedAt.IsZero() {
		return false
	}
	return time.Since(rec.GeneratedAt) < r.cfg.CacheTTL
}

// truncated returns a copy of rec limited to the first limit entries.
// The cached record itself is never mutated.
func truncated(rec *UserRecommendations, limit int) *UserRecommendations {
	out := *rec
	if len(out.Entries) > limit {
		out.Entries = out.Entries[:limit]
	}
	return &out
}

func (r *Recommender) userLock(userID int64) *sync.Mutex {
	lock, _ := r.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
