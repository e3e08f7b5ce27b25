// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"math"
	"testing"
)

func TestComputeSimilaritySymmetry(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	matrix := ComputeSimilarity(fs.Vectors)
	n := len(matrix)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if matrix[i][j] != matrix[j][i] {
				t.Errorf("matrix[%d][%d] = %f != matrix[%d][%d] = %f", i, j, matrix[i][j], j, i, matrix[j][i])
			}
		}
	}
}

func TestComputeSimilaritySelfSimilarity(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	matrix := ComputeSimilarity(fs.Vectors)
	for i := range matrix {
		if math.Abs(matrix[i][i]-1.0) > 1e-9 {
			t.Errorf("matrix[%d][%d] = %f, want 1.0", i, i, matrix[i][i])
		}
	}
}

func TestComputeSimilarityScoreBounds(t *testing.T) {
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	matrix := ComputeSimilarity(fs.Vectors)
	for i := range matrix {
		for j := range matrix[i] {
			if matrix[i][j] < 0 || matrix[i][j] > 1+1e-9 {
				t.Errorf("matrix[%d][%d] = %f out of [0, 1]", i, j, matrix[i][j])
			}
		}
	}
}

func TestComputeSimilarityZeroVector(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0, 0}, // degenerate all-zero vector
	}
	matrix := ComputeSimilarity(vectors)

	if matrix[1][1] != 0 {
		t.Errorf("zero vector self-similarity = %f, want 0", matrix[1][1])
	}
	if matrix[0][1] != 0 || matrix[1][0] != 0 {
		t.Errorf("zero vector similarity = %f/%f, want 0", matrix[0][1], matrix[1][0])
	}
	for i := range matrix {
		for j := range matrix[i] {
			if math.IsNaN(matrix[i][j]) {
				t.Fatalf("matrix[%d][%d] is NaN", i, j)
			}
		}
	}
}

func TestComputeSimilarityEmpty(t *testing.T) {
	matrix := ComputeSimilarity(nil)
	if len(matrix) != 0 {
		t.Errorf("len = %d, want 0", len(matrix))
	}
}
