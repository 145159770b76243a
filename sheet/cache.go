// ABOUTME: In-process snapshot cache of the normalized contact list
// ABOUTME: Fetched at most once per process; Invalidate forces a re-fetch on next Get
package sheet

import (
	"context"
	"sync"

	"github.com/intempus/phonetree/models"
)

// FetchFunc produces the raw rows backing a snapshot.
type FetchFunc func(ctx context.Context) ([]Row, error)

// Cache holds one immutable contact snapshot per process. The snapshot
// is a pure function of stable remote data, so callers share it freely;
// the mutex only serializes the initial fetch.
type Cache struct {
	mu       sync.Mutex
	fetch    FetchFunc
	loaded   bool
	contacts []models.Contact
	warnings []string
}

// NewCache creates a cache backed by the given row fetcher.
func NewCache(fetch FetchFunc) *Cache {
	return &Cache{fetch: fetch}
}

// Get returns the cached snapshot, fetching and normalizing it on first
// use. The warnings are the normalizer warnings from that fetch.
func (c *Cache) Get(ctx context.Context) ([]models.Contact, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.contacts, c.warnings, nil
	}

	rows, err := c.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.contacts, c.warnings = Normalize(rows)
	c.loaded = true
	return c.contacts, c.warnings, nil
}

// Invalidate drops the snapshot so the next Get re-fetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.contacts = nil
	c.warnings = nil
}

// Lookup finds a contact by canonical name in the cached snapshot.
// Absence is not an error; the second return reports it.
func (c *Cache) Lookup(ctx context.Context, name string) (*models.Contact, bool, error) {
	contacts, _, err := c.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range contacts {
		if contacts[i].Name == name {
			return &contacts[i], true, nil
		}
	}
	return nil, false, nil
}
