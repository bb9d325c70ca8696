package layout

// Document bundles the node tree with its style and layout tables and the
// viewport frame, mirroring the teacher's LayoutEngine but operating over
// SoA tables instead of a Box pointer tree. It is the receiver for the
// three compute_* operations of spec.md §6.
type Document struct {
	Tree   *Tree
	Style  *StyleTable
	Layout *LayoutTable

	viewportWidth  float64
	viewportHeight float64
}

// NewDocument creates a document sized for n nodes with the given
// viewport. Node 1, if present, is treated as the root; its frame is used
// as the initial containing block when no positioned ancestor exists
// (spec.md §4.1).
func NewDocument(n int, viewportWidth, viewportHeight float64) *Document {
	return &Document{
		Tree:           NewTree(n),
		Style:          NewStyleTable(n),
		Layout:         NewLayoutTable(n),
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// NewDocumentWithTree wraps an already-built tree (as pkg/browser.BuildTree
// produces from a DOM) with fresh style/layout tables sized to match, under
// the given viewport. Used when the tree's shape comes from outside the
// package instead of being built up node-by-node via AppendChild.
func NewDocumentWithTree(tree *Tree, viewportWidth, viewportHeight float64) *Document {
	n := tree.Len()
	return &Document{
		Tree:           tree,
		Style:          NewStyleTable(n),
		Layout:         NewLayoutTable(n),
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// Resize grows or shrinks every table to n nodes. Used on a full tree
// rebuild (spec.md §3's lifecycle).
func (d *Document) Resize(n int) {
	d.Tree.Resize(n)
	d.Style.Resize(n)
	d.Layout.Resize(n)
}

// SetViewport updates the viewport frame used as the containing block of
// last resort.
func (d *Document) SetViewport(width, height float64) {
	d.viewportWidth = width
	d.viewportHeight = height
}

func (d *Document) viewportFrame() Geometry {
	if d.Tree.Len() >= 1 {
		// id 1 is the root; if it has been laid out, its frame is the
		// initial containing block (spec.md §4.1: "viewport uses (0,0,
		// viewport_width,viewport_height) or the root node's size if id 1
		// is the root").
		g := d.Layout.Get(1)
		if g.Width != 0 || g.Height != 0 {
			return Geometry{X: 0, Y: 0, Width: g.Width, Height: g.Height}
		}
	}
	return Geometry{X: 0, Y: 0, Width: d.viewportWidth, Height: d.viewportHeight}
}
