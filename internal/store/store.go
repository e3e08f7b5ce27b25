// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

// Package store provides the DuckDB-backed catalog and ratings store.
//
// The store owns three tables: movies, ratings, and genome_scores. Bulk
// data arrives via DuckDB's read_csv_auto over the MovieLens CSV files;
// individual ratings are written through UpsertRating and DeleteRating,
// which notify registered rating-change listeners so dependent caches
// can invalidate.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/config"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// RatingsListener is notified after a user's ratings change.
type RatingsListener func(userID int64)

// Store wraps the DuckDB connection and provides data access methods.
type Store struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger

	listenerMu sync.RWMutex
	listeners  []RatingsListener
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Disable extension auto-install to avoid network access on startup.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		conn:   conn,
		cfg:    cfg,
		logger: logging.With().Str("component", "store").Logger(),
	}

	if err := s.initSchema(context.Background()); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.logger.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("database opened")
	return s, nil
}

// Close flushes the WAL with a best-effort CHECKPOINT and closes the
// connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		s.logger.Warn().Err(err).Msg("checkpoint before close failed")
	}

	return s.conn.Close()
}

// Ping checks if the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.conn.PingContext(ctx)
}

// OnRatingsChanged registers a listener invoked after every rating
// mutation for the affected user. Listeners run synchronously on the
// mutating goroutine.
func (s *Store) OnRatingsChanged(fn RatingsListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notifyRatingsChanged(userID int64) {
	s.listenerMu.RLock()
	defer s.listenerMu.RUnlock()
	for _, fn := range s.listeners {
		fn(userID)
	}
}

// closeQuietly closes a resource in an error path where Close errors
// are not actionable.
func closeQuietly(conn *sql.DB) {
	if conn != nil {
		_ = conn.Close()
	}
}
