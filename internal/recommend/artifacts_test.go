// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func buildTestArtifacts(t *testing.T, dir string) *Manifest {
	t.Helper()
	fs, err := NewFeatureBuilder(nil).Build(testMovies(), testGenomeScores())
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	matrix := ComputeSimilarity(fs.Vectors)
	manifest, err := SaveArtifacts(dir, fs, matrix)
	if err != nil {
		t.Fatalf("SaveArtifacts error = %v", err)
	}
	return manifest
}

func TestArtifactsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	manifest := buildTestArtifacts(t, dir)

	set, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatalf("LoadArtifacts error = %v", err)
	}

	if set.Manifest.Version != manifest.Version {
		t.Errorf("version = %q, want %q", set.Manifest.Version, manifest.Version)
	}
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(set.MovieIDs, want) {
		t.Errorf("MovieIDs = %v, want %v", set.MovieIDs, want)
	}
	if len(set.Matrix) != 3 {
		t.Errorf("matrix rows = %d, want 3", len(set.Matrix))
	}
}

func TestSaveArtifactsReplacesPreviousRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	first := buildTestArtifacts(t, dir)
	second := buildTestArtifacts(t, dir)

	if first.Version == second.Version {
		t.Error("two runs produced the same version")
	}

	set, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatalf("LoadArtifacts error = %v", err)
	}
	if set.Manifest.Version != second.Version {
		t.Errorf("loaded version = %q, want latest %q", set.Manifest.Version, second.Version)
	}
}

func TestLoadArtifactsMissingDir(t *testing.T) {
	_, err := LoadArtifacts(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("LoadArtifacts succeeded, want error")
	}
	if !strings.Contains(err.Error(), manifestFile) {
		t.Errorf("error %q does not name the missing artifact", err)
	}
}

func TestLoadArtifactsInconsistentMatrix(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	buildTestArtifacts(t, dir)

	// overwrite the matrix with one that no longer matches the manifest
	bad := [][]float64{{1.0}}
	if err := writeGob(filepath.Join(dir, matrixFile), bad); err != nil {
		t.Fatalf("writeGob error = %v", err)
	}

	_, err := LoadArtifacts(dir)
	if err == nil {
		t.Fatal("LoadArtifacts succeeded, want consistency error")
	}
	if !strings.Contains(err.Error(), matrixFile) {
		t.Errorf("error %q does not name the offending artifact", err)
	}
}

func TestSaveArtifactsEmptyCorpus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	fs, err := NewFeatureBuilder(nil).Build(nil, nil)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if _, err := SaveArtifacts(dir, fs, ComputeSimilarity(fs.Vectors)); err != nil {
		t.Fatalf("SaveArtifacts error = %v", err)
	}

	set, err := LoadArtifacts(dir)
	if err != nil {
		t.Fatalf("LoadArtifacts error = %v", err)
	}
	if set.Manifest.Movies != 0 || len(set.Matrix) != 0 {
		t.Errorf("empty corpus artifacts: movies = %d, matrix rows = %d", set.Manifest.Movies, len(set.Matrix))
	}
}
