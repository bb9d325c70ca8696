// Package browser bridges the teacher's DOM parser (pkg/html) and CSS
// cascade (pkg/css) — kept as external collaborators, per the layout
// core's own design — into the core's node tree and style table
// (pkg/layout), and orchestrates reflow over the result.
package browser

import (
	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
)

// IDMap records the correspondence between DOM nodes and the dense layout
// ids BuildTree assigned them. Text nodes are not assigned ids: the core's
// Non-goals exclude inline text flow, so only element nodes become layout
// boxes.
type IDMap struct {
	nodeToID map[*html.Node]layout.NodeID
	idToNode []*html.Node // index 0 unused, index i is the node for id i
}

// NodeID returns the layout id assigned to node, or layout.NoNode if node
// was not an element node reachable from the tree BuildTree walked.
func (m *IDMap) NodeID(node *html.Node) layout.NodeID {
	return m.nodeToID[node]
}

// Node returns the DOM node behind id, or nil if id is out of range.
func (m *IDMap) Node(id layout.NodeID) *html.Node {
	if int(id) <= 0 || int(id) >= len(m.idToNode) {
		return nil
	}
	return m.idToNode[id]
}

// Len returns N, the number of ids assigned (also the size the layout
// tables were built for).
func (m *IDMap) Len() int {
	return len(m.idToNode) - 1
}

// BuildTree walks doc in parent-before-children document order (a
// requirement of the core's id-ordering invariant, spec.md §5) and
// assigns each element node a dense id starting at 1, wiring the result
// into a fresh layout.Tree. Text nodes are skipped; an element with only
// text children becomes a childless layout node.
func BuildTree(doc *html.Document) (*layout.Tree, *IDMap) {
	idmap := &IDMap{
		nodeToID: make(map[*html.Node]layout.NodeID),
		idToNode: []*html.Node{nil},
	}

	// First pass: count and assign ids in document order (pre-order),
	// since the tree-builder invariant requires parents to receive a
	// smaller id than any of their descendants.
	var assign func(n *html.Node)
	assign = func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		id := layout.NodeID(len(idmap.idToNode))
		idmap.nodeToID[n] = id
		idmap.idToNode = append(idmap.idToNode, n)
		for _, c := range n.Children {
			assign(c)
		}
	}
	assign(doc.Root)

	n := idmap.Len()
	tree := layout.NewTree(n)

	var wire func(n *html.Node)
	wire = func(n *html.Node) {
		id := idmap.nodeToID[n]
		for _, c := range n.Children {
			if c.Type != html.ElementNode {
				continue
			}
			tree.AppendChild(id, idmap.nodeToID[c])
			wire(c)
		}
	}
	wire(doc.Root)

	return tree, idmap
}

// ApplyComputedStyles reads each element's cascade-resolved css.Style
// through its typed getters and writes the core's typed StyleTable
// fields, marking every changed node dirty. generations tracks, per
// element node, the cascade generation last applied, so a node whose
// resolved style is unchanged across reflows (same *css.Style pointer)
// is not marked dirty again — satisfying the "Style producer... must ...
// set dirty[i] = true for every node whose style changed" contract of
// spec.md §4.5 without forcing a full relayout on every cascade run.
func ApplyComputedStyles(computed map[*html.Node]*css.Style, idmap *IDMap, st *layout.StyleTable, lt *layout.LayoutTable, generations map[layout.NodeID]*css.Style) {
	for id := layout.NodeID(1); int(id) <= idmap.Len(); id++ {
		node := idmap.Node(id)
		style, ok := computed[node]
		if !ok {
			continue
		}
		if generations[id] == style {
			continue
		}
		generations[id] = style
		applyOne(style, st, lt, id)
	}
}

func applyOne(s *css.Style, st *layout.StyleTable, lt *layout.LayoutTable, id layout.NodeID) {
	st.SetDisplay(lt, id, toDisplay(s.GetDisplay()))

	pos := toPosition(s.GetPosition())
	st.SetPosition(lt, id, pos)
	off := s.GetPositionOffset()
	st.SetOffset(lt, id, "top", toLength(off.Top, !off.HasTop))
	st.SetOffset(lt, id, "right", toLength(off.Right, !off.HasRight))
	st.SetOffset(lt, id, "bottom", toLength(off.Bottom, !off.HasBottom))
	st.SetOffset(lt, id, "left", toLength(off.Left, !off.HasLeft))
	if z, isSet := s.GetZIndexAuto(); isSet {
		st.SetZIndex(lt, id, int32(z))
	}

	st.SetFloatClear(lt, id, toFloat(s.GetFloat()), toClear(s.GetClear()))

	m := s.GetMargin()
	st.SetMargin(lt, id, layout.Edges{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left})
	p := s.GetPadding()
	st.SetPadding(lt, id, layout.Edges{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left})

	for _, side := range []string{"top", "right", "bottom", "left"} {
		w, bs, r, g, b := s.GetBorderSide(side)
		st.SetBorderSide(lt, id, side, w, toBorderStyle(bs), layout.RGBA8{R: r, G: g, B: b, A: 255})
	}

	wv, wAuto := s.GetWidthAuto()
	st.SetWidth(lt, id, toLength(wv, wAuto))
	hv, hAuto := s.GetHeightAuto()
	st.SetHeight(lt, id, toLength(hv, hAuto))

	minW, minWAuto := s.GetMinWidthAuto()
	maxW, maxWAuto := s.GetMaxWidthAuto()
	st.SetMinMaxWidth(lt, id, toLength(minW, minWAuto), toLength(maxW, maxWAuto))
	minH, minHAuto := s.GetMinHeightAuto()
	maxH, maxHAuto := s.GetMaxHeightAuto()
	st.SetMinMaxHeight(lt, id, toLength(minH, minHAuto), toLength(maxH, maxHAuto))

	if r, g, b, a, isSet := s.GetBackgroundColorRGBA(); isSet {
		st.SetBackground(lt, id, layout.RGBA8{R: r, G: g, B: b, A: a})
	}

	st.SetVisibility(lt, id, s.GetVisibility())
	st.SetOverflow(lt, id, toOverflow(s.GetOverflow()))

	st.SetFlexDirection(lt, id, toFlexDirection(s.GetFlexDirection()))
	st.SetFlexWrap(lt, id, toFlexWrap(s.GetFlexWrap()))
	st.SetJustifyContent(lt, id, toJustifyContent(s.GetJustifyContent()))
	st.SetAlignItems(lt, id, toAlignItems(s.GetAlignItems()))
	st.SetAlignContent(lt, id, toAlignContent(s.GetAlignContent()))

	cols, rows := s.GetGridTemplate()
	st.SetGrid(lt, id, cols, rows)
}

func toLength(v float64, auto bool) layout.Length {
	return layout.Length{Value: v, Auto: auto}
}

func toDisplay(d css.DisplayType) layout.Display {
	switch d {
	case css.DisplayInline:
		return layout.DisplayInline
	case css.DisplayInlineBlock:
		return layout.DisplayInlineBlock
	case css.DisplayNone:
		return layout.DisplayNone
	case css.DisplayFlex:
		return layout.DisplayFlex
	case css.DisplayInlineFlex:
		return layout.DisplayInlineFlex
	case css.DisplayGrid:
		return layout.DisplayGrid
	case css.DisplayInlineGrid:
		return layout.DisplayInlineGrid
	default:
		return layout.DisplayBlock
	}
}

func toPosition(p css.PositionType) layout.Position {
	switch p {
	case css.PositionRelative:
		return layout.PositionRelative
	case css.PositionAbsolute:
		return layout.PositionAbsolute
	case css.PositionFixed:
		return layout.PositionFixed
	default:
		return layout.PositionStatic
	}
}

func toFloat(f css.FloatType) layout.Float {
	switch f {
	case css.FloatLeft:
		return layout.FloatLeft
	case css.FloatRight:
		return layout.FloatRight
	default:
		return layout.FloatNone
	}
}

func toClear(c css.ClearType) layout.Clear {
	switch c {
	case css.ClearLeft:
		return layout.ClearLeft
	case css.ClearRight:
		return layout.ClearRight
	case css.ClearBoth:
		return layout.ClearBoth
	default:
		return layout.ClearNone
	}
}

func toBorderStyle(b css.BorderStyleType) layout.BorderStyle {
	switch b {
	case css.BorderStyleSolid:
		return layout.BorderStyleSolid
	case css.BorderStyleDotted:
		return layout.BorderStyleDotted
	case css.BorderStyleDashed:
		return layout.BorderStyleDashed
	default:
		return layout.BorderStyleNone
	}
}

func toOverflow(o css.OverflowType) layout.Overflow {
	if o == css.OverflowHidden {
		return layout.OverflowHidden
	}
	return layout.OverflowVisible
}

func toFlexDirection(f css.FlexDirectionType) layout.FlexDirection {
	switch f {
	case css.FlexDirectionRowReverse:
		return layout.FlexDirectionRowReverse
	case css.FlexDirectionColumn:
		return layout.FlexDirectionColumn
	case css.FlexDirectionColumnReverse:
		return layout.FlexDirectionColumnReverse
	default:
		return layout.FlexDirectionRow
	}
}

func toFlexWrap(f css.FlexWrapType) layout.FlexWrap {
	switch f {
	case css.FlexWrapWrap:
		return layout.FlexWrapWrap
	case css.FlexWrapWrapReverse:
		return layout.FlexWrapWrapReverse
	default:
		return layout.FlexWrapNowrap
	}
}

func toJustifyContent(j css.JustifyContentType) layout.JustifyContent {
	switch j {
	case css.JustifyContentEnd:
		return layout.JustifyEnd
	case css.JustifyContentCenter:
		return layout.JustifyCenter
	case css.JustifyContentSpaceBetween:
		return layout.JustifySpaceBetween
	case css.JustifyContentSpaceAround:
		return layout.JustifySpaceAround
	case css.JustifyContentSpaceEvenly:
		return layout.JustifySpaceEvenly
	default:
		return layout.JustifyStart
	}
}

func toAlignItems(a css.AlignItemsType) layout.AlignItems {
	switch a {
	case css.AlignItemsEnd:
		return layout.AlignItemsEnd
	case css.AlignItemsCenter:
		return layout.AlignItemsCenter
	case css.AlignItemsBaseline:
		return layout.AlignItemsBaseline
	case css.AlignItemsStretch:
		return layout.AlignItemsStretch
	default:
		return layout.AlignItemsStart
	}
}

func toAlignContent(a css.AlignContentType) layout.AlignContent {
	switch a {
	case css.AlignContentEnd:
		return layout.AlignContentEnd
	case css.AlignContentCenter:
		return layout.AlignContentCenter
	case css.AlignContentSpaceBetween:
		return layout.AlignContentSpaceBetween
	case css.AlignContentSpaceAround:
		return layout.AlignContentSpaceAround
	case css.AlignContentStretch:
		return layout.AlignContentStretch
	default:
		return layout.AlignContentStart
	}
}
