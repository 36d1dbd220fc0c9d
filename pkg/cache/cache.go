// Package cache bounds the number of dataset values the snapshot store keeps
// in memory. When inserting over capacity, the least-recently-touched entry
// is spilled to durable storage before being dropped, so a failed spill
// aborts the insert instead of losing data.
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"

	"github.com/oneconcern/checkpoint/pkg/errors"
	"github.com/oneconcern/checkpoint/pkg/model"
)

// DefaultCapacity of a cache when none is configured
const DefaultCapacity = 5

// StateKey identifies a cached dataset value
type StateKey struct {
	Branch       string
	CheckpointID string
}

// SpillFunc persists an entry about to be evicted. Returning an error keeps
// the entry resident and fails the triggering operation.
type SpillFunc func(ctx context.Context, key StateKey, ds *model.Dataset) error

// Option to build a cache
type Option func(*Cache)

// Capacity sets the fixed number of resident entries (default 5)
func Capacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Logger sets a zap logger on the cache
func Logger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.l = l
		}
	}
}

// Cache is a fixed-capacity LRU of in-memory dataset values. It is not
// safe for concurrent use: the store serializes all access.
type Cache struct {
	capacity int
	spill    SpillFunc
	order    *lru.LRU[StateKey, *model.Dataset]
	l        *zap.Logger
}

// New builds a cache spilling evicted entries through spill
func New(spill SpillFunc, opts ...Option) (*Cache, error) {
	if spill == nil {
		return nil, errors.New("cache requires a spill function")
	}
	c := &Cache{
		capacity: DefaultCapacity,
		spill:    spill,
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	order, err := lru.NewLRU[StateKey, *model.Dataset](c.capacity, nil)
	if err != nil {
		return nil, err
	}
	c.order = order
	return c, nil
}

// Capacity of this cache
func (c *Cache) Capacity() int { return c.capacity }

// Len is the number of resident entries
func (c *Cache) Len() int { return c.order.Len() }

// Resident tells whether key is held in memory, without touching recency
func (c *Cache) Resident(key StateKey) bool {
	return c.order.Contains(key)
}

// Put inserts or replaces the value for key and refreshes its recency.
// The cache owns a private clone of ds. If inserting a new key would exceed
// capacity, the least-recently-touched entry is spilled first; insertion
// order breaks recency ties.
func (c *Cache) Put(ctx context.Context, key StateKey, ds *model.Dataset) error {
	if !c.order.Contains(key) {
		for c.order.Len() >= c.capacity {
			victim, evicted, ok := c.order.GetOldest()
			if !ok {
				break
			}
			if err := c.spill(ctx, victim, evicted); err != nil {
				return err
			}
			c.order.Remove(victim)
			c.l.Debug("evicted cached state",
				zap.String("branch", victim.Branch),
				zap.String("checkpoint", victim.CheckpointID),
			)
		}
	}
	c.order.Add(key, ds.Clone())
	return nil
}

// Get returns a copy of the value for key and refreshes its recency, or
// ok=false on a miss. The caller decides whether to consult durable storage.
func (c *Cache) Get(key StateKey) (*model.Dataset, bool) {
	ds, ok := c.order.Get(key)
	if !ok {
		return nil, false
	}
	return ds.Clone(), true
}

// DropBranch discards every resident entry of a branch, without spilling
func (c *Cache) DropBranch(branch string) {
	for _, key := range c.order.Keys() {
		if key.Branch == branch {
			c.order.Remove(key)
		}
	}
}

// Purge discards every resident entry, without spilling
func (c *Cache) Purge() {
	c.order.Purge()
}
