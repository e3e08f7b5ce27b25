// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func TestIndexLoadAndLookups(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	buildTestArtifacts(t, dir)

	idx := NewIndex(dir)
	if !idx.Ready() {
		t.Fatal("index not ready after load")
	}

	size, err := idx.Size()
	if err != nil {
		t.Fatalf("Size error = %v", err)
	}
	if size != 3 {
		t.Errorf("Size = %d, want 3", size)
	}

	row, err := idx.IndexFor(2)
	if err != nil {
		t.Fatalf("IndexFor(2) error = %v", err)
	}
	if row != 1 {
		t.Errorf("IndexFor(2) = %d, want 1", row)
	}

	id, err := idx.MovieIDFor(1)
	if err != nil {
		t.Fatalf("MovieIDFor(1) error = %v", err)
	}
	if id != 2 {
		t.Errorf("MovieIDFor(1) = %d, want 2", id)
	}

	title, err := idx.TitleFor(3)
	if err != nil {
		t.Fatalf("TitleFor(3) error = %v", err)
	}
	if title != "Heat (1995)" {
		t.Errorf("TitleFor(3) = %q, want Heat (1995)", title)
	}
}

func TestIndexUnknownMovie(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	buildTestArtifacts(t, dir)

	idx := NewIndex(dir)
	_, err := idx.IndexFor(999)
	if !IsNotFound(err) {
		t.Errorf("IndexFor(999) error = %v, want NotFoundError", err)
	}
}

func TestIndexLoadFailurePropagatesToAllWaiters(t *testing.T) {
	idx := NewIndex(filepath.Join(t.TempDir(), "missing"))

	const waiters = 8
	errs := make([]error, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = idx.Load()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, ErrIndexNotLoaded) {
			t.Errorf("waiter %d error = %v, want ErrIndexNotLoaded", i, err)
		}
	}
}

func TestIndexLoadFailureIsSticky(t *testing.T) {
	idx := NewIndex(filepath.Join(t.TempDir(), "missing"))

	first := idx.Load()
	second := idx.Load()
	if !errors.Is(first, ErrIndexNotLoaded) || !errors.Is(second, ErrIndexNotLoaded) {
		t.Errorf("errors = %v / %v, want ErrIndexNotLoaded both times", first, second)
	}
	if idx.Ready() {
		t.Error("Ready() = true after failed load")
	}
}

func TestNewIndexFromArtifactsRejectsInconsistentSet(t *testing.T) {
	set := &ArtifactSet{
		Manifest: Manifest{Movies: 2},
		MovieIDs: []int64{1},
		Titles:   []string{"A"},
		Genres:   [][]string{nil},
		Matrix:   [][]float64{{1.0}},
	}
	if _, err := NewIndexFromArtifacts(set); err == nil {
		t.Error("NewIndexFromArtifacts accepted inconsistent set")
	}
}
