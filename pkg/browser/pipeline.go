package browser

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
	"github.com/nyanrus/dop-browser-sub001/pkg/layoutcache"
)

// Pipeline owns one document's tables, its layout cache, and a mutex that
// serializes every engine invocation — foreground reflows and the
// background precache worker alike — over those tables, per spec.md §5's
// single-threaded-per-pass rule for the layout engines. The cache itself
// stays fully concurrent; only engine invocation is serialized.
type Pipeline struct {
	mu  sync.Mutex
	doc *layout.Document

	cache  *layoutcache.Cache
	idmap  *IDMap
	log    *zap.Logger
	stopCh chan struct{}
	wake   chan struct{}
}

// NewPipeline wires a fresh document, a cache bounded to cacheCapacity
// entries, and starts the background precache worker. Callers must call
// Close when done to stop the worker.
func NewPipeline(doc *layout.Document, idmap *IDMap, cacheCapacity int, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pipeline{
		doc:    doc,
		cache:  layoutcache.New(cacheCapacity),
		idmap:  idmap,
		log:    log,
		stopCh: make(chan struct{}),
		wake:   make(chan struct{}, 1),
	}
	go p.precacheWorker()
	return p
}

// Close stops the precache worker. Safe to call once.
func (p *Pipeline) Close() {
	close(p.stopCh)
}

// Reflow runs the normal-flow engine over the whole document, then the
// flexbox/grid engines over every flex/grid container found, and finally
// refreshes every node's entry in the cache. It holds the engine
// mutex for its entire duration (spec.md §5: engines are single-threaded
// per pass; the precache worker must not run concurrently with this).
func (p *Pipeline) Reflow() {
	traceID := uuid.New().String()
	log := p.log.With(zap.String("trace_id", traceID))
	log.Debug("reflow start", zap.Int("nodes", p.doc.Tree.Len()))

	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc.ComputeLayout()
	p.runFlexAndGridContainers()

	for id := layout.NodeID(1); int(id) <= p.doc.Tree.Len(); id++ {
		p.cacheNodeLocked(id)
	}
	log.Debug("reflow done")
}

// runFlexAndGridContainers dispatches ComputeFlexboxLayout/
// ComputeGridLayout for every node whose resolved display calls for it.
// Containers are visited in id order, which (given the tree-builder's
// parent-before-children id invariant) guarantees an outer flex/grid
// container's own content box is resolved by ComputeLayout before any
// engine reads it, but says nothing about nesting order between two
// unrelated containers — spec.md §5 leaves that order free.
func (p *Pipeline) runFlexAndGridContainers() {
	st, t := p.doc.Style, p.doc.Tree
	for id := layout.NodeID(1); int(id) <= t.Len(); id++ {
		switch st.GetDisplay(id) {
		case layout.DisplayFlex, layout.DisplayInlineFlex:
			p.doc.ComputeFlexboxLayout(id)
		case layout.DisplayGrid, layout.DisplayInlineGrid:
			p.doc.ComputeGridLayout(id)
		}
	}
}

func (p *Pipeline) cacheNodeLocked(id layout.NodeID) {
	g := p.doc.Layout.Get(id)
	children := p.doc.Tree.Children(id)
	p.cache.Put(id, layoutcache.FromGeometry(g, p.doc.Tree.Parent(id), children))
}

// InvalidateSubtree marks id and its descendants dirty for the next
// Reflow and evicts them from the cache immediately.
func (p *Pipeline) InvalidateSubtree(id layout.NodeID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.markSubtreeDirtyLocked(id)
	p.cache.InvalidateSubtree(id)
}

// markSubtreeDirtyLocked is the recursive step of InvalidateSubtree; it
// assumes the engine mutex is already held.
func (p *Pipeline) markSubtreeDirtyLocked(id layout.NodeID) {
	p.doc.Layout.MarkDirty(id)
	for _, c := range p.doc.Tree.Children(id) {
		p.markSubtreeDirtyLocked(c)
	}
}

// EnqueuePrecache appends ids to the cache's precache FIFO and wakes the
// background worker.
func (p *Pipeline) EnqueuePrecache(ids []layout.NodeID) {
	p.cache.EnqueuePrecache(ids)
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Cache exposes the underlying cache for read-only inspection (stats,
// has) by callers that do not need to hold the engine mutex.
func (p *Pipeline) Cache() *layoutcache.Cache {
	return p.cache
}

// precacheWorker drains the cache's precache queue and computes layout
// for those ids against the live tables, matching the teacher's pattern
// of a simple `go func() { ... }()` background loop driving network
// fetches (cmd/l14/main.go). It holds the same engine mutex Reflow does,
// so it never races a foreground reflow over the same tables.
func (p *Pipeline) precacheWorker() {
	for {
		select {
		case <-p.stopCh:
			return
		case <-p.wake:
		}

		ids := p.cache.DrainPrecacheQueue()
		if len(ids) == 0 {
			continue
		}

		p.mu.Lock()
		for _, id := range ids {
			if !p.doc.Layout.IsDirty(id) {
				continue
			}
			p.doc.ComputeLayout()
			p.runFlexAndGridContainers()
			p.cacheNodeLocked(id)
		}
		p.mu.Unlock()
	}
}
