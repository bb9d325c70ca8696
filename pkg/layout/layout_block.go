package layout

// ComputeLayout runs the normal-flow engine (spec.md §4.1): a bottom-up
// sizing pass followed by a top-down positioning pass, over every dirty
// node. It is idempotent and safe to call repeatedly with no intervening
// mutation.
func (d *Document) ComputeLayout() {
	d.sizePass()
	d.positionPass()
}

// sizePass is pass 1: iterate ids from N down to 1, skipping non-dirty
// nodes, resolving content size and (for auto width/height) the box size
// from children already resolved in this same pass (children always have
// a larger id than their parent, given the tree-builder invariant that
// ids are assigned parent-before-children).
//
// Flex and grid children are sized here too: this gives them a hypothetical
// box (explicit width/height, or content-derived when auto) that
// ComputeFlexboxLayout/ComputeGridLayout then take as input and override on
// the main axis per distribution (spec.md §4.2, §4.3). Their x/y is never
// set here; positionPass leaves them untouched except when absolutely or
// fixed positioned.
func (d *Document) sizePass() {
	t, st, lt := d.Tree, d.Style, d.Layout
	for i := t.Len(); i >= 1; i-- {
		id := NodeID(i)
		if !lt.IsDirty(id) {
			continue
		}
		if st.GetDisplay(id) == DisplayNone {
			lt.setGeometry(id, Geometry{})
			continue
		}

		var blockAccum, floatAccum, widthAccum float64
		for c := t.FirstChild(id); c != NoNode; c = t.NextSibling(c) {
			if st.GetDisplay(c) == DisplayNone {
				continue
			}
			cg := lt.Get(c)
			cm := st.GetMargin(c)
			if st.GetFloat(c) != FloatNone {
				h := cm.Top + cg.Height + cm.Bottom
				if h > floatAccum {
					floatAccum = h
				}
				continue
			}
			if !isInFlow(st, c) {
				continue
			}
			blockAccum += cm.Top + cg.Height + cm.Bottom
			w := cm.Left + cg.Width + cm.Right
			if w > widthAccum {
				widthAccum = w
			}
		}

		padding := st.GetPadding(id)
		contentWidth := widthAccum
		contentHeight := maxFloat(blockAccum, floatAccum)

		width := contentWidth + padding.Left + padding.Right
		if sw := st.GetWidth(id); !sw.Auto {
			width = sw.Value
			// The concrete-width case must still satisfy the data model's
			// content-box invariant (spec.md §3): content_width is derived
			// from the resolved width, not from the children accumulation.
			contentWidth = maxFloat(0, width-padding.Left-padding.Right)
		}
		height := contentHeight + padding.Top + padding.Bottom
		if sh := st.GetHeight(id); !sh.Auto {
			height = sh.Value
			contentHeight = maxFloat(0, height-padding.Top-padding.Bottom)
		}

		lt.setGeometry(id, Geometry{
			Width: width, Height: height,
			ContentWidth: contentWidth, ContentHeight: contentHeight,
		})
	}
}

// positionPass is pass 2: iterate ids from 1 to N, skipping non-dirty
// nodes, dispatching each node's position resolution on its own position/
// float style, and clearing dirty on completion.
func (d *Document) positionPass() {
	t, st, lt := d.Tree, d.Style, d.Layout
	for i := 1; i <= t.Len(); i++ {
		id := NodeID(i)
		if !lt.IsDirty(id) {
			continue
		}
		if isFlexOrGridChild(t, st, id) {
			continue
		}
		if st.GetDisplay(id) == DisplayNone {
			g := lt.Get(id)
			g.X, g.Y = 0, 0
			lt.setGeometry(id, g)
			lt.clearDirty(id)
			continue
		}

		pos := st.GetPosition(id)
		switch {
		case pos == PositionAbsolute || pos == PositionFixed:
			d.placeAbsolute(id)
		case st.GetFloat(id) != FloatNone:
			d.placeFloat(id)
		case pos == PositionRelative:
			x, y := d.staticFlowPosition(id)
			top, right, bottom, left := st.GetOffsets(id)
			if !left.Auto {
				x += left.Value
			} else if !right.Auto {
				x -= right.Value
			}
			if !top.Auto {
				y += top.Value
			} else if !bottom.Auto {
				y -= bottom.Value
			}
			d.setPosition(id, x, y)
		default:
			x, y := d.staticFlowPosition(id)
			d.setPosition(id, x, y)
		}
		lt.clearDirty(id)
	}
}

func (d *Document) setPosition(id NodeID, x, y float64) {
	g := d.Layout.Get(id)
	g.X, g.Y = x, y
	d.Layout.setGeometry(id, g)
}

// parentContentOrigin returns the (x, y, paddingLeft, paddingTop) of id's
// parent content box, treating the viewport as the implicit parent of a
// node with no parent (the root).
func (d *Document) parentContentOrigin(id NodeID) (x, y, padLeft, padTop float64) {
	parent := d.Tree.Parent(id)
	if parent == NoNode {
		return 0, 0, 0, 0
	}
	pg := d.Layout.Get(parent)
	pp := d.Style.GetPadding(parent)
	return pg.X, pg.Y, pp.Left, pp.Top
}

// staticFlowPosition computes normal block flow placement for id (spec.md
// §4.1 "Normal block flow"): x is the parent's content-box left edge plus
// id's own left margin; y is the parent's content-box top edge plus the
// sum of preceding in-flow, non-floated siblings' outer heights, plus id's
// own top margin, then pushed down to satisfy `clear`.
func (d *Document) staticFlowPosition(id NodeID) (x, y float64) {
	st := d.Style
	px, py, padLeft, padTop := d.parentContentOrigin(id)
	margin := st.GetMargin(id)

	x = px + padLeft + margin.Left

	var precedingHeights float64
	for _, sib := range d.Tree.PrecedingSiblings(id) {
		if st.GetDisplay(sib) == DisplayNone {
			continue
		}
		if st.GetFloat(sib) != FloatNone || !isInFlow(st, sib) {
			continue
		}
		sg := d.Layout.Get(sib)
		sm := st.GetMargin(sib)
		precedingHeights += sm.Top + sg.Height + sm.Bottom
	}
	y = py + padTop + precedingHeights + margin.Top

	y = d.applyClear(id, y)
	return x, y
}

// applyClear pushes y down so it clears the bottom edges of preceding
// floated siblings per id's `clear` property (spec.md §4.1 step 3).
func (d *Document) applyClear(id NodeID, y float64) float64 {
	st := d.Style
	clear := st.GetClear(id)
	if clear == ClearNone {
		return y
	}

	var maxLeft, maxRight float64
	haveLeft, haveRight := false, false
	for _, sib := range d.Tree.PrecedingSiblings(id) {
		f := st.GetFloat(sib)
		if f == FloatNone {
			continue
		}
		sg := d.Layout.Get(sib)
		sm := st.GetMargin(sib)
		bottom := sg.Y + sg.Height + sm.Bottom
		switch f {
		case FloatLeft:
			if !haveLeft || bottom > maxLeft {
				maxLeft = bottom
				haveLeft = true
			}
		case FloatRight:
			if !haveRight || bottom > maxRight {
				maxRight = bottom
				haveRight = true
			}
		}
	}

	if (clear == ClearLeft || clear == ClearBoth) && haveLeft && maxLeft > y+epsilon {
		y = maxLeft
	}
	if (clear == ClearRight || clear == ClearBoth) && haveRight && maxRight > y+epsilon {
		y = maxRight
	}
	return y
}

// placeFloat positions a floated node (spec.md §4.1 "Float placement"):
// walk preceding siblings in document order, advancing left_edge/
// right_edge past earlier floats on the same side and raising float_y to
// at least their top, then place the new float against the appropriate
// edge.
func (d *Document) placeFloat(id NodeID) {
	st := d.Style
	px, py, padLeft, padTop := d.parentContentOrigin(id)
	parent := d.Tree.Parent(id)
	parentWidth := 0.0
	parentPadRight := 0.0
	if parent != NoNode {
		parentWidth = d.Layout.Get(parent).Width
		parentPadRight = st.GetPadding(parent).Right
	}

	leftEdge := px + padLeft
	rightEdge := px + parentWidth - parentPadRight
	floatY := py + padTop

	for _, sib := range d.Tree.PrecedingSiblings(id) {
		f := st.GetFloat(sib)
		if f == FloatNone {
			continue
		}
		sg := d.Layout.Get(sib)
		sm := st.GetMargin(sib)
		switch f {
		case FloatLeft:
			edge := sg.X + sg.Width + sm.Right
			if edge > leftEdge+epsilon {
				leftEdge = edge
			}
		case FloatRight:
			edge := sg.X - sm.Left
			if edge < rightEdge-epsilon {
				rightEdge = edge
			}
		}
		if sg.Y > floatY+epsilon {
			floatY = sg.Y
		}
	}

	g := d.Layout.Get(id)
	margin := st.GetMargin(id)
	var x float64
	if st.GetFloat(id) == FloatLeft {
		x = leftEdge + margin.Left
	} else {
		x = rightEdge - g.Width - margin.Right
	}
	y := floatY + margin.Top
	d.setPosition(id, x, y)
}

// placeAbsolute positions an absolutely or fixed positioned node relative
// to its containing block (spec.md §4.1 "absolute or fixed").
func (d *Document) placeAbsolute(id NodeID) {
	st := d.Style
	cb := d.containingBlockFrame(id)
	top, right, bottom, left := st.GetOffsets(id)
	g := d.Layout.Get(id)

	var x float64
	switch {
	case !left.Auto:
		x = cb.X + left.Value
	case !right.Auto:
		x = cb.X + cb.Width - g.Width - right.Value
	default:
		x = cb.X
	}

	var y float64
	switch {
	case !top.Auto:
		y = cb.Y + top.Value
	case !bottom.Auto:
		y = cb.Y + cb.Height - g.Height - bottom.Value
	default:
		y = cb.Y
	}

	d.setPosition(id, x, y)
}

// isInFlow reports whether id is in-flow: position static or relative,
// and float none (spec.md Glossary).
func isInFlow(st *StyleTable, id NodeID) bool {
	pos := st.GetPosition(id)
	if pos != PositionStatic && pos != PositionRelative {
		return false
	}
	return st.GetFloat(id) == FloatNone
}

// isFlexOrGridChild reports whether id's parent is a flex or grid
// container, meaning id's own size/position is owned by
// ComputeFlexboxLayout/ComputeGridLayout rather than the normal-flow
// engine. Absolutely/fixed positioned children are excluded: spec.md §4.2
// has the normal-flow engine place those using the container as their
// containing block even inside a flex container.
func isFlexOrGridChild(t *Tree, st *StyleTable, id NodeID) bool {
	pos := st.GetPosition(id)
	if pos == PositionAbsolute || pos == PositionFixed {
		return false
	}
	parent := t.Parent(id)
	if parent == NoNode {
		return false
	}
	switch st.GetDisplay(parent) {
	case DisplayFlex, DisplayInlineFlex, DisplayGrid, DisplayInlineGrid:
		return true
	default:
		return false
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
