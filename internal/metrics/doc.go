// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments:
  - HTTP request latency and throughput
  - DuckDB query performance
  - Recommendation cache hit/miss rates and invalidations
  - Similarity index load state and size
  - Recommendation computation latency by kind
  - Training pipeline stage durations

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8310/metrics

Collectors are registered via promauto at package init, so importing the
package is enough to make them visible to the default registry.
*/
package metrics
