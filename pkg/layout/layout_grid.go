package layout

// ComputeGridLayout lays out a grid container's direct children into an
// equal-track grid_cols x grid_rows grid (spec.md §4.3). Children are
// placed row-major into cells in document order; extra children beyond
// grid_cols*grid_rows are clipped into the last cell.
func (d *Document) ComputeGridLayout(container NodeID) {
	st, t, lt := d.Style, d.Tree, d.Layout

	cols, rows := st.GetGrid(container)
	cg := lt.Get(container)
	colWidth := cg.ContentWidth / float64(cols)
	rowHeight := cg.ContentHeight / float64(rows)

	padding := st.GetPadding(container)
	originX := cg.X + padding.Left
	originY := cg.Y + padding.Top

	var children []NodeID
	for c := t.FirstChild(container); c != NoNode; c = t.NextSibling(c) {
		if st.GetDisplay(c) == DisplayNone {
			lt.setGeometry(c, Geometry{})
			lt.clearDirty(c)
			continue
		}
		if st.GetPosition(c) == PositionAbsolute || st.GetPosition(c) == PositionFixed {
			continue
		}
		children = append(children, c)
	}

	lastCell := cols*rows - 1
	for i, c := range children {
		cell := i
		if cell > lastCell {
			cell = lastCell
		}
		row := cell / cols
		col := cell % cols

		margin := st.GetMargin(c)
		x := originX + float64(col)*colWidth + margin.Left
		y := originY + float64(row)*rowHeight + margin.Top
		w := colWidth - margin.Left - margin.Right
		h := rowHeight - margin.Top - margin.Bottom

		minW, maxW := st.GetMinMaxWidth(c)
		w = clampLength(w, minW, maxW)
		minH, maxH := st.GetMinMaxHeight(c)
		h = clampLength(h, minH, maxH)

		padding := st.GetPadding(c)
		g := Geometry{
			X: x, Y: y, Width: w, Height: h,
			ContentWidth:  maxFloat(0, w-padding.Left-padding.Right),
			ContentHeight: maxFloat(0, h-padding.Top-padding.Bottom),
		}
		lt.setGeometry(c, g)
		lt.clearDirty(c)
	}
}

func clampLength(v float64, min, max Length) float64 {
	if !min.Auto && v < min.Value {
		v = min.Value
	}
	if !max.Auto && v > max.Value {
		v = max.Value
	}
	return v
}
