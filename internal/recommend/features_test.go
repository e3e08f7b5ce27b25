// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

func testMovies() []models.Movie {
	return []models.Movie{
		{ID: 3, Title: "Heat (1995)", Genres: []string{"Action", "Crime", "Thriller"}},
		{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{ID: 2, Title: "Jumanji (1995)", Genres: []string{"Adventure", "Children", "Fantasy"}},
		{ID: 4, Title: "Ghost Note (2017)", Genres: nil},
	}
}

func testGenomeScores() []models.GenomeScore {
	return []models.GenomeScore{
		{MovieID: 1, TagID: 10, Relevance: 0.8},
		{MovieID: 1, TagID: 20, Relevance: 0.2},
		{MovieID: 2, TagID: 10, Relevance: 0.7},
		{MovieID: 3, TagID: 20, Relevance: 0.9},
		{MovieID: 4, TagID: 10, Relevance: 0.5}, // dropped movie, must be ignored
	}
}

func TestBuildDropsGenrelessMovies(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	if want := []int64{1, 2, 3}; !reflect.DeepEqual(fs.MovieIDs, want) {
		t.Errorf("MovieIDs = %v, want %v", fs.MovieIDs, want)
	}
	if fs.Size() != 3 {
		t.Errorf("Size = %d, want 3", fs.Size())
	}
}

func TestBuildRowOrderIsAscendingByID(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if fs.Titles[0] != "Toy Story (1995)" || fs.Titles[2] != "Heat (1995)" {
		t.Errorf("Titles = %v, rows not ordered by movie ID", fs.Titles)
	}
}

func TestBuildVectorsAreUnitNorm(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	for i, vec := range fs.Vectors {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		if math.Abs(math.Sqrt(sum)-1.0) > 1e-9 {
			t.Errorf("row %d norm = %f, want 1.0", i, math.Sqrt(sum))
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewFeatureBuilder(nil)
	a, err := b.Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	c, err := b.Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if !reflect.DeepEqual(a, c) {
		t.Error("two builds over identical input differ")
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(nil, nil)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if fs.Size() != 0 {
		t.Errorf("Size = %d, want 0", fs.Size())
	}
	if len(fs.Vectors) != 0 {
		t.Errorf("Vectors = %v, want empty", fs.Vectors)
	}
}

func TestBuildAllGenreless(t *testing.T) {
	movies := []models.Movie{
		{ID: 1, Title: "A", Genres: nil},
		{ID: 2, Title: "B", Genres: nil},
	}
	fs, err := NewFeatureBuilder(nil).Build(movies, nil)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if fs.Size() != 0 {
		t.Errorf("Size = %d, want 0", fs.Size())
	}
}

func TestBuildVocabularyCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VocabularyCap = 2
	cfg.GenomeWeight = 0 // genre block only

	// "drama" appears in all three movies, "comedy" in two, the rest in
	// one each; the capped vocabulary keeps drama and comedy.
	movies := []models.Movie{
		{ID: 1, Title: "A", Genres: []string{"Drama", "Comedy", "War"}},
		{ID: 2, Title: "B", Genres: []string{"Drama", "Comedy"}},
		{ID: 3, Title: "C", Genres: []string{"Drama", "Romance"}},
	}
	fs, err := NewFeatureBuilder(cfg).Build(movies, nil)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	for i, vec := range fs.Vectors {
		if len(vec) != 2 {
			t.Errorf("row %d dimension = %d, want 2", i, len(vec))
		}
	}
	// movie 3's "romance" fell outside the vocabulary, but its drama
	// component keeps the vector non-zero
	var sum float64
	for _, v := range fs.Vectors[2] {
		sum += v * v
	}
	if sum == 0 {
		t.Error("movie 3 vector is all-zero, want drama component")
	}
}

func TestBuildGenomeIgnoresDroppedMovies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenreWeight = 0 // genome block only

	movies := []models.Movie{
		{ID: 1, Title: "A", Genres: []string{"Drama"}},
		{ID: 2, Title: "B", Genres: []string{"Drama"}},
	}
	scores := []models.GenomeScore{
		{MovieID: 1, TagID: 10, Relevance: 0.9},
		{MovieID: 99, TagID: 30, Relevance: 1.0}, // not in the movie set
	}
	fs, err := NewFeatureBuilder(cfg).Build(movies, scores)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	// only tag 10 survives, so the genome block has one column
	if len(fs.Vectors[0]) != 1 {
		t.Errorf("dimension = %d, want 1", len(fs.Vectors[0]))
	}
	// movie 2 has no genome data and a zero genre weight: zero vector
	if fs.Vectors[1][0] != 0 {
		t.Errorf("movie 2 vector = %v, want zero", fs.Vectors[1])
	}
}
