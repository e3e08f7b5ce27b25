// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"runtime"
	"sync"
)

// ComputeSimilarity multiplies the L2-normalized feature matrix with its
// transpose, producing the dense N x N cosine similarity matrix. Rows
// are unit-norm, so the dot product is the cosine similarity directly;
// an all-zero feature vector yields 0 everywhere, including on the
// diagonal.
//
// The computation is O(N^2 * D) and holds the full matrix in memory,
// which is acceptable only while N stays in the low tens of thousands.
// Only the upper triangle is computed; the lower triangle is mirrored,
// so symmetry holds exactly rather than up to floating point error.
func ComputeSimilarity(vectors [][]float64) [][]float64 {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	if n == 0 {
		return matrix
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	rowCh := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowCh {
				for j := i; j < n; j++ {
					s := dot(vectors[i], vectors[j])
					matrix[i][j] = s
					matrix[j][i] = s
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rowCh <- i
	}
	close(rowCh)
	wg.Wait()

	return matrix
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
