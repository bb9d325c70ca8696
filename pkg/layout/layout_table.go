package layout

// LayoutTable is the computed-output SoA: x, y, width, height,
// content_width, content_height and the dirty flag, one record per id
// (spec.md §3). Only the layout engines in this package write these
// fields; clients observe them read-only after a compute pass.
type LayoutTable struct {
	n int

	x, y                           []float64
	width, height                  []float64
	contentWidth, contentHeight    []float64
	dirty                          []bool
}

// NewLayoutTable allocates a layout table sized for n nodes, all dirty
// (a fresh table has never been laid out).
func NewLayoutTable(n int) *LayoutTable {
	lt := &LayoutTable{}
	lt.Resize(n)
	return lt
}

// Resize grows or shrinks the table. Every node is marked dirty, matching
// a full tree rebuild (spec.md §3: "Ids ... may be reassigned only on full
// tree rebuilds").
func (lt *LayoutTable) Resize(n int) {
	if n < 0 {
		n = 0
	}
	lt.n = n
	sz := n + 1
	lt.x = make([]float64, sz)
	lt.y = make([]float64, sz)
	lt.width = make([]float64, sz)
	lt.height = make([]float64, sz)
	lt.contentWidth = make([]float64, sz)
	lt.contentHeight = make([]float64, sz)
	lt.dirty = make([]bool, sz)
	for i := range lt.dirty {
		lt.dirty[i] = true
	}
}

func (lt *LayoutTable) inRange(id NodeID) bool {
	return id != NoNode && int(id) <= lt.n
}

// Get returns id's resolved geometry. Out-of-range ids return the zero
// Geometry.
func (lt *LayoutTable) Get(id NodeID) Geometry {
	if !lt.inRange(id) {
		return Geometry{}
	}
	return Geometry{
		X: lt.x[id], Y: lt.y[id],
		Width: lt.width[id], Height: lt.height[id],
		ContentWidth: lt.contentWidth[id], ContentHeight: lt.contentHeight[id],
	}
}

// Geometry is the read-only snapshot of one node's layout table record.
type Geometry struct {
	X, Y                        float64
	Width, Height                float64
	ContentWidth, ContentHeight float64
}

// IsDirty reports whether id's inputs have changed since its last
// successful layout.
func (lt *LayoutTable) IsDirty(id NodeID) bool {
	if !lt.inRange(id) {
		return false
	}
	return lt.dirty[id]
}

// markDirty sets id's dirty flag. Called by StyleTable setters; out-of-
// range ids are silent no-ops.
func (lt *LayoutTable) markDirty(id NodeID) {
	if !lt.inRange(id) {
		return
	}
	lt.dirty[id] = true
}

// MarkDirty is the public form, for clients (e.g. a style producer
// driving many setters at once, or a JS DOM-mutation hook) that want to
// mark a node dirty directly rather than through a StyleTable setter.
func (lt *LayoutTable) MarkDirty(id NodeID) {
	lt.markDirty(id)
}

func (lt *LayoutTable) setGeometry(id NodeID, g Geometry) {
	if !lt.inRange(id) {
		return
	}
	lt.x[id], lt.y[id] = g.X, g.Y
	lt.width[id], lt.height[id] = g.Width, g.Height
	lt.contentWidth[id], lt.contentHeight[id] = g.ContentWidth, g.ContentHeight
}

func (lt *LayoutTable) clearDirty(id NodeID) {
	if !lt.inRange(id) {
		return
	}
	lt.dirty[id] = false
}
