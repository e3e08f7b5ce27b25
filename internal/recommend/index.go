// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"fmt"
	"sync"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/metrics"
)

// Index holds the loaded similarity artifact set. It is loaded lazily
// on first use; the load happens exactly once even under concurrent
// first access, and a load failure is recorded and returned to every
// caller rather than retried or hidden. After a successful load the
// index is immutable and shared without locking.
type Index struct {
	dir string

	once sync.Once
	err  error

	set      *ArtifactSet
	indexFor map[int64]int
}

// NewIndex creates an index over the artifact directory. No I/O happens
// until the first lookup or an explicit Load.
func NewIndex(dir string) *Index {
	return &Index{dir: dir}
}

// NewIndexFromArtifacts creates an index directly from an in-memory
// artifact set, bypassing disk. Intended for tests and for the trainer,
// which already holds the set it just built.
func NewIndexFromArtifacts(set *ArtifactSet) (*Index, error) {
	if err := set.validate(); err != nil {
		return nil, err
	}
	idx := &Index{dir: ""}
	idx.once.Do(func() { idx.install(set) })
	return idx, nil
}

// Load forces initialization and reports the load outcome. Safe to call
// concurrently and repeatedly.
func (x *Index) Load() error {
	x.once.Do(func() {
		set, err := LoadArtifacts(x.dir)
		if err != nil {
			x.err = fmt.Errorf("%w: %v", ErrIndexNotLoaded, err)
			metrics.SetIndexState(false, 0)
			logging.Error().Err(err).Str("dir", x.dir).Msg("similarity index load failed")
			return
		}
		x.install(set)
	})
	return x.err
}

func (x *Index) install(set *ArtifactSet) {
	x.set = set
	x.indexFor = make(map[int64]int, len(set.MovieIDs))
	for i, id := range set.MovieIDs {
		x.indexFor[id] = i
	}
	metrics.SetIndexState(true, len(set.MovieIDs))
	logging.Info().
		Int("movies", len(set.MovieIDs)).
		Str("version", set.Manifest.Version).
		Msg("similarity index loaded")
}

// Ready reports whether the index loaded successfully.
func (x *Index) Ready() bool {
	return x.Load() == nil
}

// Size returns the number of movies in the index.
func (x *Index) Size() (int, error) {
	if err := x.Load(); err != nil {
		return 0, err
	}
	return len(x.set.MovieIDs), nil
}

// Version returns the manifest version of the loaded artifact set.
func (x *Index) Version() (string, error) {
	if err := x.Load(); err != nil {
		return "", err
	}
	return x.set.Manifest.Version, nil
}

// IndexFor maps a movie ID to its matrix row, or a NotFoundError when
// the movie is absent from the feature space.
func (x *Index) IndexFor(movieID int64) (int, error) {
	if err := x.Load(); err != nil {
		return 0, err
	}
	i, ok := x.indexFor[movieID]
	if !ok {
		return 0, &NotFoundError{Kind: "movie", Key: fmt.Sprintf("%d", movieID)}
	}
	return i, nil
}

// MovieIDFor maps a matrix row back to its movie ID.
func (x *Index) MovieIDFor(row int) (int64, error) {
	if err := x.Load(); err != nil {
		return 0, err
	}
	if row < 0 || row >= len(x.set.MovieIDs) {
		return 0, fmt.Errorf("row %d out of range [0, %d)", row, len(x.set.MovieIDs))
	}
	return x.set.MovieIDs[row], nil
}

// TitleFor returns the title of a movie in the index.
func (x *Index) TitleFor(movieID int64) (string, error) {
	i, err := x.IndexFor(movieID)
	if err != nil {
		return "", err
	}
	return x.set.Titles[i], nil
}

// Row returns one similarity matrix row. Callers must treat the slice
// as read-only; it aliases the shared loaded matrix.
func (x *Index) Row(row int) ([]float64, error) {
	if err := x.Load(); err != nil {
		return nil, err
	}
	if row < 0 || row >= len(x.set.Matrix) {
		return nil, fmt.Errorf("row %d out of range [0, %d)", row, len(x.set.Matrix))
	}
	return x.set.Matrix[row], nil
}
