package planner

import (
	"container/list"
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// warmStartKey identifies a single decision variable's cached hint
// value: a ("worker"|"stock", entity id, job id) triple, per §9's
// process-wide warm-start cache design note.
type warmStartKey struct {
	kind     string
	entityID uuid.UUID
	jobID    uuid.UUID
}

func (k warmStartKey) redisField() string {
	return k.kind + ":" + k.entityID.String() + ":" + k.jobID.String()
}

// WarmStartCache is a process-wide, mutex-guarded map from
// (kind, entity_id, job_id) to the last solved integer value, bounded by
// an LRU eviction policy. §9 flags that the original's cache grows
// without bound since stale entries are never invalidated when the
// fleet changes; this resolves that open question with an explicit size
// limit rather than silently leaving it unbounded.
//
// An optional Redis client backs the cache for cross-process warm
// starts when the planner runs on more than one node, read through on
// miss and written through on update — the same pattern
// sessionRepository uses for session lookups.
type WarmStartCache struct {
	mu       sync.Mutex
	capacity int
	values   map[warmStartKey]int
	order    *list.List
	elems    map[warmStartKey]*list.Element

	redisClient *redis.Client
	redisKey    string
}

// NewWarmStartCache creates an in-process LRU cache with the given
// capacity (entries, not bytes). A nil redisClient disables the
// secondary store.
func NewWarmStartCache(capacity int, redisClient *redis.Client) *WarmStartCache {
	if capacity <= 0 {
		capacity = 10000
	}
	return &WarmStartCache{
		capacity:    capacity,
		values:      make(map[warmStartKey]int),
		order:       list.New(),
		elems:       make(map[warmStartKey]*list.Element),
		redisClient: redisClient,
		redisKey:    "fieldplan:warmstart",
	}
}

// Get returns the cached hint for key, defaulting to 0 if absent — the
// same default the original's _previous_solution.get(..., 0) uses.
func (c *WarmStartCache) Get(key warmStartKey) int {
	c.mu.Lock()
	if v, ok := c.values[key]; ok {
		c.order.MoveToFront(c.elems[key])
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	if c.redisClient == nil {
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	raw, err := c.redisClient.HGet(ctx, c.redisKey, key.redisField()).Result()
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

// Replace atomically clears the cache and installs the given entries —
// the "rebuild the warm-start cache from the solution" step the
// solution extractor performs on every successful solve. A nil update
// leaves the previous cache untouched, matching the rule that
// INFEASIBLE/UNKNOWN solves never overwrite the cache; an empty non-nil
// update clears it.
func (c *WarmStartCache) Replace(entries map[warmStartKey]int) {
	if entries == nil {
		return
	}

	c.mu.Lock()
	c.values = make(map[warmStartKey]int, len(entries))
	c.order = list.New()
	c.elems = make(map[warmStartKey]*list.Element)
	for k, v := range entries {
		c.values[k] = v
		c.elems[k] = c.order.PushFront(k)
		c.evictIfNeededLocked()
	}
	c.mu.Unlock()

	if c.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	fields := make(map[string]interface{}, len(entries))
	for k, v := range entries {
		fields[k.redisField()] = v
	}
	c.redisClient.Del(ctx, c.redisKey)
	if len(fields) > 0 {
		c.redisClient.HSet(ctx, c.redisKey, fields)
	}
}

// evictIfNeededLocked drops the least-recently-used entry once the
// cache exceeds capacity. Caller must hold c.mu.
func (c *WarmStartCache) evictIfNeededLocked() {
	for len(c.values) > c.capacity {
		back := c.order.Back()
		if back == nil {
			return
		}
		key := back.Value.(warmStartKey)
		c.order.Remove(back)
		delete(c.elems, key)
		delete(c.values, key)
	}
}

// Len reports the number of entries currently cached in-process.
func (c *WarmStartCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
