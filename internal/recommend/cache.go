// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
)

// ErrCacheMiss is returned by CacheStore.Get when no record exists for
// the user.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore persists per-user recommendation records. Implementations
// must be safe for concurrent use. Freshness is not a store concern;
// the Recommender checks GeneratedAt against the TTL on read.
type CacheStore interface {
	Get(userID int64) (*UserRecommendations, error)
	Set(userID int64, rec *UserRecommendations) error
	Delete(userID int64) error
	Close() error
}

// NewCacheStore builds a cache store from configuration. Supported
// kinds are "memory" and "badger"; badger requires a directory path.
func NewCacheStore(kind, path string) (CacheStore, error) {
	switch kind {
	case "memory", "":
		return NewMemoryCacheStore(), nil
	case "badger":
		if path == "" {
			return nil, fmt.Errorf("badger cache store requires a path")
		}
		return NewBadgerCacheStore(path)
	default:
		return nil, fmt.Errorf("unknown cache store %q", kind)
	}
}

// MemoryCacheStore is the default in-process cache store.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	records map[int64]*UserRecommendations
}

// NewMemoryCacheStore creates an empty in-memory store.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{records: make(map[int64]*UserRecommendations)}
}

// Get returns the cached record or ErrCacheMiss. The returned record is
// shared and must be treated as immutable.
func (s *MemoryCacheStore) Get(userID int64) (*UserRecommendations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return rec, nil
}

// Set stores or overwrites the record for a user.
func (s *MemoryCacheStore) Set(userID int64, rec *UserRecommendations) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = rec
	return nil
}

// Delete drops the record for a user. Deleting an absent record is a
// no-op.
func (s *MemoryCacheStore) Delete(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
	return nil
}

// Close releases nothing for the in-memory store.
func (s *MemoryCacheStore) Close() error {
	return nil
}

// recKeyPrefix namespaces recommendation records inside BadgerDB.
const recKeyPrefix = "rec:"

// BadgerCacheStore persists recommendation records in BadgerDB so a
// restart does not cold-start every user. Records carry a storage TTL
// well past the freshness TTL; stale-but-present records are detected
// by the Recommender and regenerated in place.
type BadgerCacheStore struct {
	db *badger.DB
}

// NewBadgerCacheStore opens (or creates) a BadgerDB at dir.
func NewBadgerCacheStore(dir string) (*BadgerCacheStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache at %s: %w", dir, err)
	}
	return &BadgerCacheStore{db: db}, nil
}

func recKey(userID int64) []byte {
	return []byte(recKeyPrefix + strconv.FormatInt(userID, 10))
}

// Get retrieves a record or ErrCacheMiss.
func (s *BadgerCacheStore) Get(userID int64) (*UserRecommendations, error) {
	var rec UserRecommendations
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCacheMiss
		}
		if err != nil {
			return fmt.Errorf("get cached recommendations: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set stores a record with a 7-day storage TTL.
func (s *BadgerCacheStore) Set(userID int64, rec *UserRecommendations) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cached recommendations: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(recKey(userID), data).WithTTL(7 * 24 * time.Hour)
		return txn.SetEntry(entry)
	})
}

// Delete drops the record for a user.
func (s *BadgerCacheStore) Delete(userID int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(recKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close closes the underlying BadgerDB.
func (s *BadgerCacheStore) Close() error {
	return s.db.Close()
}
