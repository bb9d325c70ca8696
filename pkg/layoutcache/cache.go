// Package layoutcache implements the concurrent, bounded LRU cache that
// sits in front of the layout engines (spec.md §4.4): it lets a caller
// skip recomputing layout for subtrees that have not changed since their
// last reflow, and holds a FIFO of nodes to precompute speculatively.
package layoutcache

import (
	"container/list"
	"sync"

	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
)

// Entry is one cached node's resolved geometry plus enough tree shape to
// support subtree invalidation without consulting the live node tree
// (spec.md §4.4: "transitively, every descendant reachable via the
// cache's own stored child lists").
type Entry struct {
	X, Y                        float64
	Width, Height               float64
	ContentWidth, ContentHeight float64

	Parent   layout.NodeID
	Children []layout.NodeID
}

// FromGeometry builds a cache Entry from a resolved layout.Geometry plus
// the tree-shape fields the cache needs for subtree invalidation.
func FromGeometry(g layout.Geometry, parent layout.NodeID, children []layout.NodeID) Entry {
	return Entry{
		X: g.X, Y: g.Y, Width: g.Width, Height: g.Height,
		ContentWidth: g.ContentWidth, ContentHeight: g.ContentHeight,
		Parent: parent, Children: children,
	}
}

type record struct {
	id    layout.NodeID
	entry Entry
}

// Stats is a point-in-time snapshot of cache occupancy and hit/miss
// counts (spec.md §4.4's `stats()` contract).
type Stats struct {
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
	HitRate  float64
}

// Cache is a capacity-bounded, least-recently-used cache of layout
// entries, safe for concurrent use by multiple goroutines (spec.md §5:
// "fully concurrent ... a single reentrant mutex over all cache state is
// acceptable"). It also holds a FIFO precache queue.
//
// Grounded on the teacher's fontLRU (pkg/render/font_lru.go): a
// container/list order tracks recency, a map gives O(1) lookup, and one
// mutex protects both plus the added stats counters and precache queue.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[layout.NodeID]*list.Element
	order    *list.List

	hits   uint64
	misses uint64

	precache []layout.NodeID
}

// New creates a cache bounded to capacity entries. A capacity below 1 is
// raised to 1.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[layout.NodeID]*list.Element),
		order:    list.New(),
	}
}

// Put inserts or overwrites node's entry. An existing entry is updated in
// place and marked most-recently-used with no eviction; a new entry may
// evict the least-recently-used entry if the cache is at capacity
// (spec.md §4.4: "If put is called on an id already present, overwrite in
// place (no eviction)").
func (c *Cache) Put(id layout.NodeID, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id]; ok {
		el.Value.(*record).entry = e
		c.order.MoveToBack(el)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOldestLocked()
	}

	el := c.order.PushBack(&record{id: id, entry: e})
	c.items[id] = el
}

func (c *Cache) evictOldestLocked() {
	oldest := c.order.Front()
	if oldest == nil {
		return
	}
	r := oldest.Value.(*record)
	delete(c.items, r.id)
	c.order.Remove(oldest)
}

// Get returns node's cached entry, touching it as most-recently-used, and
// records a hit or miss in the stats counters.
func (c *Cache) Get(id layout.NodeID) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if !ok {
		c.misses++
		return Entry{}, false
	}
	c.order.MoveToBack(el)
	c.hits++
	return el.Value.(*record).entry, true
}

// Has reports whether node is cached without affecting hit/miss stats
// (spec.md §4.4: "read without counting as hit/miss"). It still counts as
// an access for LRU ordering purposes.
func (c *Cache) Has(id layout.NodeID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id]
	if ok {
		c.order.MoveToBack(el)
	}
	return ok
}

// Invalidate removes node from the cache. Absent ids are a no-op.
func (c *Cache) Invalidate(id layout.NodeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cache) removeLocked(id layout.NodeID) {
	el, ok := c.items[id]
	if !ok {
		return
	}
	delete(c.items, id)
	c.order.Remove(el)
}

// InvalidateSubtree removes root and every descendant reachable via the
// cache's own stored child lists, transitively. A descendant not present
// in the cache is simply not visited further down that branch (spec.md
// §4.4: "Descendants not in the cache are a no-op").
func (c *Cache) InvalidateSubtree(root layout.NodeID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stack := []layout.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		el, ok := c.items[id]
		if !ok {
			continue
		}
		children := el.Value.(*record).entry.Children
		c.removeLocked(id)
		stack = append(stack, children...)
	}
}

// Clear drops every entry and resets the hit/miss counters (the precache
// queue is left untouched; it is a distinct, independently-drained
// structure).
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[layout.NodeID]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

// EnqueuePrecache appends ids to the FIFO precache queue.
func (c *Cache) EnqueuePrecache(ids []layout.NodeID) {
	if len(ids) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.precache = append(c.precache, ids...)
}

// DrainPrecacheQueue atomically removes and returns the current queue
// contents, leaving the queue empty.
func (c *Cache) DrainPrecacheQueue() []layout.NodeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.precache) == 0 {
		return nil
	}
	drained := c.precache
	c.precache = nil
	return drained
}

// Stats returns a consistent snapshot of size, capacity and hit/miss
// counts. Safe to call concurrently with any other operation.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:     c.order.Len(),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
