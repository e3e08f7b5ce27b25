// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Artifact file names inside the artifacts directory. The three files
// are produced together by one pipeline run; loading them from mixed
// runs is prevented by the manifest consistency checks.
const (
	manifestFile = "manifest.json"
	moviesFile   = "movies.gob"
	matrixFile   = "matrix.gob"
)

// Manifest describes one pipeline run's artifact set.
type Manifest struct {
	Version    string    `json:"version"`
	Movies     int       `json:"movies"`
	Dimensions int       `json:"dimensions"`
	CreatedAt  time.Time `json:"created_at"`
}

// movieTable is the persisted movie metadata, row-aligned with the
// similarity matrix.
type movieTable struct {
	MovieIDs []int64
	Titles   []string
	Genres   [][]string
}

// ArtifactSet is a fully loaded and validated artifact set.
type ArtifactSet struct {
	Manifest Manifest
	MovieIDs []int64
	Titles   []string
	Genres   [][]string
	Matrix   [][]float64
}

// SaveArtifacts persists the feature set and similarity matrix to dir.
// The write is atomic at the directory level: everything lands in a
// temporary sibling directory first, which then replaces dir, so a
// crashed pipeline run can never leave a half-written artifact set
// behind.
func SaveArtifacts(dir string, fs *FeatureSet, matrix [][]float64) (*Manifest, error) {
	if len(matrix) != fs.Size() {
		return nil, fmt.Errorf("matrix rows (%d) do not match feature set size (%d)", len(matrix), fs.Size())
	}

	dimensions := 0
	if fs.Size() > 0 {
		dimensions = len(fs.Vectors[0])
	}
	manifest := &Manifest{
		Version:    uuid.New().String(),
		Movies:     fs.Size(),
		Dimensions: dimensions,
		CreatedAt:  time.Now().UTC(),
	}

	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return nil, fmt.Errorf("failed to clear temp artifact dir: %w", err)
	}
	if err := os.MkdirAll(tmp, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create temp artifact dir: %w", err)
	}

	table := movieTable{MovieIDs: fs.MovieIDs, Titles: fs.Titles, Genres: fs.Genres}
	if err := writeGob(filepath.Join(tmp, moviesFile), table); err != nil {
		return nil, err
	}
	if err := writeGob(filepath.Join(tmp, matrixFile), matrix); err != nil {
		return nil, err
	}

	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, manifestFile), manifestBytes, 0o640); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", manifestFile, err)
	}

	old := dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return nil, fmt.Errorf("failed to clear old artifact dir: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, old); err != nil {
			return nil, fmt.Errorf("failed to move previous artifact dir aside: %w", err)
		}
	}
	if err := os.Rename(tmp, dir); err != nil {
		return nil, fmt.Errorf("failed to publish artifact dir: %w", err)
	}
	_ = os.RemoveAll(old)

	return manifest, nil
}

// LoadArtifacts reads and validates the artifact set in dir. Every
// failure names the offending artifact so a broken deployment is
// diagnosable from the error alone.
func LoadArtifacts(dir string) (*ArtifactSet, error) {
	manifestBytes, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s in %s: %w", manifestFile, dir, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", manifestFile, err)
	}

	var table movieTable
	if err := readGob(filepath.Join(dir, moviesFile), &table); err != nil {
		return nil, err
	}
	var matrix [][]float64
	if err := readGob(filepath.Join(dir, matrixFile), &matrix); err != nil {
		return nil, err
	}

	set := &ArtifactSet{
		Manifest: manifest,
		MovieIDs: table.MovieIDs,
		Titles:   table.Titles,
		Genres:   table.Genres,
		Matrix:   matrix,
	}
	if err := set.validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// validate checks structural consistency across the three artifacts.
func (s *ArtifactSet) validate() error {
	n := s.Manifest.Movies
	if len(s.MovieIDs) != n {
		return fmt.Errorf("artifact %s inconsistent: %d movies, manifest says %d", moviesFile, len(s.MovieIDs), n)
	}
	if len(s.Titles) != n || len(s.Genres) != n {
		return fmt.Errorf("artifact %s inconsistent: titles (%d) and genres (%d) must both have %d rows",
			moviesFile, len(s.Titles), len(s.Genres), n)
	}
	if len(s.Matrix) != n {
		return fmt.Errorf("artifact %s inconsistent: %d rows, manifest says %d", matrixFile, len(s.Matrix), n)
	}
	for i, row := range s.Matrix {
		if len(row) != n {
			return fmt.Errorf("artifact %s inconsistent: row %d has %d columns, want %d", matrixFile, i, len(row), n)
		}
	}
	seen := make(map[int64]bool, n)
	for _, id := range s.MovieIDs {
		if seen[id] {
			return fmt.Errorf("artifact %s inconsistent: duplicate movie id %d", moviesFile, id)
		}
		seen[id] = true
	}
	return nil
}

func writeGob(path string, v interface{}) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("failed to create artifact %s: %w", filepath.Base(path), err)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode artifact %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
