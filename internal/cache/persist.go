package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/steamrisk/internal/model"
)

const (
	persistAttempts = 5
	persistBackoff  = 200 * time.Millisecond
)

// persistSleep is overridden in tests
var persistSleep = time.Sleep

// PersistenceError wraps a cache save failure. Never fatal: the run's
// in-memory results are unaffected and the caller logs a warning.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist cache to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Load reads a persisted store from path. The on-disk form is a single
// JSON document keyed by the string form of the app id. A missing,
// unreadable, or corrupt file yields an empty store; warming the cache is
// never a reason to fail a run.
func Load(path string) *Store {
	s := NewStore()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var records map[string]*model.AppDetails
	if err := json.Unmarshal(data, &records); err != nil {
		return s
	}

	for key, d := range records {
		if d == nil {
			continue
		}
		s.mem.Set(key, d, gocache.NoExpiration)
	}

	return s
}

// Save writes the store to path atomically: serialize to a temporary file
// in the same directory, then rename over the destination. Both steps get
// a bounded retry with backoff to ride out concurrent readers and AV
// scanners holding the file.
func (s *Store) Save(path string) error {
	records := make(map[string]*model.AppDetails, s.mem.ItemCount())
	for key, item := range s.mem.Items() {
		records[key] = item.Object.(*model.AppDetails)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	tmp := filepath.Join(filepath.Dir(path), filepath.Base(path)+".tmp")

	if err := withRetry(func() error { return os.WriteFile(tmp, data, 0644) }); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := withRetry(func() error { return os.Rename(tmp, path) }); err != nil {
		_ = os.Remove(tmp)
		return &PersistenceError{Path: path, Err: err}
	}

	return nil
}

func withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		persistSleep(persistBackoff * time.Duration(attempt+1))
	}
	return err
}
