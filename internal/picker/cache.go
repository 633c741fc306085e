package picker

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/internal-tools/org-activity-reports/internal/models"
	"golang.org/x/sync/singleflight"
)

// Key derives the order-independent cache key for a group scope: the labels
// are lowercased, deduplicated, and sorted before joining, so any permutation
// of the same effective set resolves to the same key.
func Key(groups []models.GroupTag) string {
	if len(groups) == 0 {
		groups = models.CanonicalGroups()
	}
	seen := map[string]struct{}{}
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		label := strings.ToLower(string(g))
		if _, exists := seen[label]; exists {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return strings.Join(labels, "+")
}

type entryKey struct {
	key   string
	scope models.Scope
}

// Cache stores fetched member lists keyed by (groupsKey, scope). It is
// explicitly constructed and injected so tests can run isolated instances.
// Entries are immutable once stored and live for the lifetime of the cache;
// there is no TTL because the underlying directory is low-churn. Concurrent
// fetches for the same key and scope are collapsed into one call.
type Cache struct {
	mu      sync.Mutex
	entries map[entryKey][]models.Member
	flight  singleflight.Group

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[entryKey][]models.Member{}}
}

// GetOrFetch returns the cached member list for (key, scope), invoking fetch
// on a miss. The second return value reports whether the result came from the
// cache. A failed fetch is never stored, so the next call retries.
func (c *Cache) GetOrFetch(ctx context.Context, key string, scope models.Scope, fetch func(ctx context.Context) ([]models.Member, error)) ([]models.Member, bool, error) {
	ek := entryKey{key: key, scope: scope}

	c.mu.Lock()
	if members, ok := c.entries[ek]; ok {
		c.hits++
		c.mu.Unlock()
		return members, true, nil
	}
	c.mu.Unlock()

	members, hit, err := c.fetchShared(ctx, ek, fetch)

	c.mu.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if err != nil {
		return nil, false, err
	}
	return members, hit, nil
}

type flightResult struct {
	members []models.Member
	hit     bool
}

// fetchShared collapses concurrent fetches for one entry. A caller whose
// entry was stored by another goroutine while it waited is reported as a hit
// without invoking fetch.
func (c *Cache) fetchShared(ctx context.Context, ek entryKey, fetch func(ctx context.Context) ([]models.Member, error)) ([]models.Member, bool, error) {
	result, err, _ := c.flight.Do(ek.key+"|"+string(ek.scope), func() (interface{}, error) {
		c.mu.Lock()
		if members, ok := c.entries[ek]; ok {
			c.mu.Unlock()
			return flightResult{members: members, hit: true}, nil
		}
		c.mu.Unlock()

		members, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}

		c.mu.Lock()
		c.entries[ek] = members
		c.mu.Unlock()
		return flightResult{members: members}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := result.(flightResult)
	return res.members, res.hit, nil
}

// Peek returns the cached list without fetching.
func (c *Cache) Peek(key string, scope models.Scope) ([]models.Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	members, ok := c.entries[entryKey{key: key, scope: scope}]
	return members, ok
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits int, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
