// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// FeatureSet is the atomic output of the feature pipeline: row-aligned
// movie identifiers, metadata, and L2-normalized feature vectors. The
// three slices always share one ordering; using any of them against a
// differently ordered structure is an error.
type FeatureSet struct {
	MovieIDs []int64
	Titles   []string
	Genres   [][]string
	Vectors  [][]float64
}

// Size returns the number of movies in the feature space.
func (fs *FeatureSet) Size() int {
	return len(fs.MovieIDs)
}

// FeatureBuilder turns raw movie metadata and genome relevance scores
// into the combined feature matrix.
type FeatureBuilder struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewFeatureBuilder creates a feature builder. A nil cfg uses defaults.
func NewFeatureBuilder(cfg *Config) *FeatureBuilder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &FeatureBuilder{
		cfg:    cfg,
		logger: logging.With().Str("component", "features").Logger(),
	}
}

// Build produces the feature set for all movies that carry at least one
// genre token. Movies without genre information are dropped from the
// feature space entirely; they cannot be recommended or used as seeds.
// Rows are ordered by ascending movie ID so repeated builds over the
// same input are identical. An empty corpus yields an empty feature set,
// not an error.
func (b *FeatureBuilder) Build(movies []models.Movie, scores []models.GenomeScore) (*FeatureSet, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	kept := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if len(m.Genres) > 0 {
			kept = append(kept, m)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })

	fs := &FeatureSet{
		MovieIDs: make([]int64, len(kept)),
		Titles:   make([]string, len(kept)),
		Genres:   make([][]string, len(kept)),
	}
	for i, m := range kept {
		fs.MovieIDs[i] = m.ID
		fs.Titles[i] = m.Title
		fs.Genres[i] = m.Genres
	}

	if len(kept) == 0 {
		b.logger.Warn().Int("input_movies", len(movies)).Msg("empty corpus, producing empty feature set")
		fs.Vectors = [][]float64{}
		return fs, nil
	}

	genreBlock := b.buildTFIDF(kept)
	genomeBlock := b.buildGenomeMatrix(kept, scores)

	fs.Vectors = make([][]float64, len(kept))
	for i := range kept {
		vec := make([]float64, 0, len(genreBlock[i])+len(genomeBlock[i]))
		for _, v := range genreBlock[i] {
			vec = append(vec, b.cfg.GenreWeight*v)
		}
		for _, v := range genomeBlock[i] {
			vec = append(vec, b.cfg.GenomeWeight*v)
		}
		normalize(vec)
		fs.Vectors[i] = vec
	}

	b.logger.Info().
		Int("movies", len(kept)).
		Int("dropped", len(movies)-len(kept)).
		Int("dimensions", len(fs.Vectors[0])).
		Msg("feature matrix built")
	return fs, nil
}

// buildTFIDF fits a TF-IDF vectorizer over the genre token corpus and
// returns one row per movie. Term frequency is the token count divided
// by the document length; inverse document frequency is
// log(1 + N/(1+df)). The vocabulary keeps the most frequent terms up to
// the configured cap, ties broken alphabetically, and columns are laid
// out in alphabetical term order.
func (b *FeatureBuilder) buildTFIDF(movies []models.Movie) [][]float64 {
	docs := make([][]string, len(movies))
	df := make(map[string]int)
	for i, m := range movies {
		tokens := make([]string, 0, len(m.Genres))
		seen := make(map[string]bool, len(m.Genres))
		for _, g := range m.Genres {
			tok := strings.ToLower(strings.TrimSpace(g))
			if tok == "" {
				continue
			}
			tokens = append(tokens, tok)
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
		docs[i] = tokens
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > b.cfg.VocabularyCap {
		terms = terms[:b.cfg.VocabularyCap]
	}
	sort.Strings(terms)

	col := make(map[string]int, len(terms))
	for i, t := range terms {
		col[t] = i
	}

	n := float64(len(movies))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		idf[i] = math.Log(1 + n/(1+float64(df[t])))
	}

	rows := make([][]float64, len(movies))
	for i, tokens := range docs {
		row := make([]float64, len(terms))
		if len(tokens) > 0 {
			counts := make(map[string]int, len(tokens))
			for _, tok := range tokens {
				counts[tok]++
			}
			docLen := float64(len(tokens))
			for tok, cnt := range counts {
				if j, ok := col[tok]; ok {
					row[j] = (float64(cnt) / docLen) * idf[j]
				}
			}
		}
		rows[i] = row
	}
	return rows
}

// buildGenomeMatrix pivots the sparse (movie, tag) relevance relation
// into a dense block restricted to the surviving movie set. Columns are
// the distinct tag IDs in ascending order; missing combinations are 0.
func (b *FeatureBuilder) buildGenomeMatrix(movies []models.Movie, scores []models.GenomeScore) [][]float64 {
	rowFor := make(map[int64]int, len(movies))
	for i, m := range movies {
		rowFor[m.ID] = i
	}

	tagSet := make(map[int64]bool)
	for _, gs := range scores {
		if _, ok := rowFor[gs.MovieID]; ok {
			tagSet[gs.TagID] = true
		}
	}
	tags := make([]int64, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	colFor := make(map[int64]int, len(tags))
	for i, t := range tags {
		colFor[t] = i
	}

	rows := make([][]float64, len(movies))
	for i := range rows {
		rows[i] = make([]float64, len(tags))
	}
	for _, gs := range scores {
		i, ok := rowFor[gs.MovieID]
		if !ok {
			continue
		}
		rows[i][colFor[gs.TagID]] = gs.Relevance
	}
	return rows
}

// normalize scales vec to unit L2 norm in place. All-zero vectors stay
// zero rather than dividing by zero.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
