// Package cache owns the per-title detail records for the duration of a
// run, with cache-first lookup semantics: once a record is stored it is
// never re-fetched.
package cache

import (
	"context"
	"strconv"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/steamrisk/internal/model"
)

// FetchFunc fetches the detail record for one app id. The bool result
// reports whether the store marked the lookup successful.
type FetchFunc func(ctx context.Context, appID int) (*model.AppDetails, bool, error)

// Store maps app ids to fetched detail records
type Store struct {
	mem *gocache.Cache
}

// NewStore creates an empty store; records never expire
func NewStore() *Store {
	return &Store{mem: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns the stored record for an app id, if present
func (s *Store) Get(appID int) (*model.AppDetails, bool) {
	if v, ok := s.mem.Get(strconv.Itoa(appID)); ok {
		return v.(*model.AppDetails), true
	}
	return nil, false
}

// Put inserts a record. Records are immutable after insertion.
func (s *Store) Put(appID int, d *model.AppDetails) {
	s.mem.Set(strconv.Itoa(appID), d, gocache.NoExpiration)
}

// Len returns the number of stored records
func (s *Store) Len() int {
	return s.mem.ItemCount()
}

// Lookup is the cache-first access path. A hit returns the stored record
// with no network access. On a miss the fetch callback runs; only
// successful records populate the store, so a transient store-side failure
// is retried on the next run rather than cached as a permanent miss.
// The bool result reports whether a live fetch occurred (used for pacing).
func (s *Store) Lookup(ctx context.Context, appID int, fetch FetchFunc) (*model.AppDetails, bool, error) {
	if d, ok := s.Get(appID); ok {
		return d, false, nil
	}

	d, success, err := fetch(ctx, appID)
	if err != nil {
		return nil, true, err
	}
	if !success || d == nil {
		return nil, true, nil
	}

	s.Put(appID, d)
	return d, true, nil
}
