package layout

// flexItem tracks one child during flex distribution (spec.md §4.2),
// mirroring the teacher's FlexItem but keyed by NodeID instead of *Box.
type flexItem struct {
	id                     NodeID
	mainSize, crossSize    float64
	mainMarginStart        float64
	mainMarginEnd          float64
	crossMarginStart       float64
	crossMarginEnd         float64
	minMain, maxMain       float64
	hasMinMain, hasMaxMain bool
	minCross, maxCross     Length

	mainPos  float64
	crossPos float64
}

// ComputeFlexboxLayout lays out one flex container's in-flow direct
// children (spec.md §4.2). Absolutely positioned children are left for
// ComputeLayout, which treats the container as their containing block.
func (d *Document) ComputeFlexboxLayout(container NodeID) {
	st, t, lt := d.Style, d.Tree, d.Layout

	dir, wrap, justify, alignItems, alignContent := st.GetFlexContainer(container)
	isRow := dir == FlexDirectionRow || dir == FlexDirectionRowReverse
	reverse := dir == FlexDirectionRowReverse || dir == FlexDirectionColumnReverse

	cg := lt.Get(container)
	mainSize := cg.ContentWidth
	crossSize := cg.ContentHeight
	if !isRow {
		mainSize, crossSize = cg.ContentHeight, cg.ContentWidth
	}

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
	if reverse {
		for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
			children[i], children[j] = children[j], children[i]
		}
	}

	if len(children) == 0 {
		return
	}

	items := make([]*flexItem, len(children))
	for i, c := range children {
		items[i] = d.buildFlexItem(c, isRow)
	}

	lines := collectFlexLines(items, mainSize, wrap)
	d.clampFlexMinMax(lines)

	crossOffsets := distributeLinesCross(lines, crossSize, alignContent, len(lines) > 1 && wrap != FlexWrapNowrap)

	for li, line := range lines {
		d.justifyLine(line, mainSize, justify)
		d.alignLineCross(line, crossOffsets[li].size, alignItems)
		d.placeLine(container, line, crossOffsets[li].start, isRow)
	}

	for _, it := range items {
		lt.clearDirty(it.id)
	}
}

func (d *Document) buildFlexItem(id NodeID, isRow bool) *flexItem {
	st, lt := d.Style, d.Layout
	g := lt.Get(id)
	m := st.GetMargin(id)

	it := &flexItem{id: id}
	if isRow {
		it.mainSize = g.Width
		it.crossSize = g.Height
		it.mainMarginStart, it.mainMarginEnd = m.Left, m.Right
		it.crossMarginStart, it.crossMarginEnd = m.Top, m.Bottom
		minW, maxW := st.GetMinMaxWidth(id)
		if !minW.Auto {
			it.minMain, it.hasMinMain = minW.Value, true
		}
		if !maxW.Auto {
			it.maxMain, it.hasMaxMain = maxW.Value, true
		}
		it.minCross, it.maxCross = st.GetMinMaxHeight(id)
	} else {
		it.mainSize = g.Height
		it.crossSize = g.Width
		it.mainMarginStart, it.mainMarginEnd = m.Top, m.Bottom
		it.crossMarginStart, it.crossMarginEnd = m.Left, m.Right
		minH, maxH := st.GetMinMaxHeight(id)
		if !minH.Auto {
			it.minMain, it.hasMinMain = minH.Value, true
		}
		if !maxH.Auto {
			it.maxMain, it.hasMaxMain = maxH.Value, true
		}
		it.minCross, it.maxCross = st.GetMinMaxWidth(id)
	}
	return it
}

func (it *flexItem) outerMain() float64 {
	return it.mainMarginStart + it.mainSize + it.mainMarginEnd
}

// flexLine is a single wrap line (spec.md §4.2 step 2).
type flexLine struct {
	items []*flexItem
}

// collectFlexLines splits items into lines so each line's summed main-axis
// outer size does not exceed mainSize, unless wrap is nowrap (one line).
func collectFlexLines(items []*flexItem, mainSize float64, wrap FlexWrap) []*flexLine {
	if wrap == FlexWrapNowrap {
		return []*flexLine{{items: items}}
	}

	var lines []*flexLine
	var cur []*flexItem
	var curSize float64
	for _, it := range items {
		o := it.outerMain()
		if len(cur) > 0 && curSize+o > mainSize {
			lines = append(lines, &flexLine{items: cur})
			cur = nil
			curSize = 0
		}
		cur = append(cur, it)
		curSize += o
	}
	if len(cur) > 0 {
		lines = append(lines, &flexLine{items: cur})
	}

	if wrap == FlexWrapWrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return lines
}

// clampFlexMinMax clamps each item's main size into [min, max] and
// redistributes the residual free space to remaining unclamped items
// proportionally, single-pass (spec.md §4.2: "single-pass is acceptable").
func (d *Document) clampFlexMinMax(lines []*flexLine) {
	for _, line := range lines {
		var residual float64
		var unclamped []*flexItem
		for _, it := range line.items {
			clamped := it.mainSize
			wasClamped := false
			if it.hasMinMain && clamped < it.minMain {
				residual += clamped - it.minMain
				clamped = it.minMain
				wasClamped = true
			}
			if it.hasMaxMain && clamped > it.maxMain {
				residual += clamped - it.maxMain
				clamped = it.maxMain
				wasClamped = true
			}
			it.mainSize = clamped
			if !wasClamped {
				unclamped = append(unclamped, it)
			}
		}
		if residual == 0 || len(unclamped) == 0 {
			continue
		}
		share := residual / float64(len(unclamped))
		for _, it := range unclamped {
			it.mainSize += share
			if it.mainSize < 0 {
				it.mainSize = 0
			}
		}
	}
}

// justifyLine distributes free space along the main axis per
// justify-content (spec.md §4.2 step 3), recording each item's main-axis
// start position relative to the container's content box.
func (d *Document) justifyLine(line *flexLine, mainSize float64, justify JustifyContent) {
	n := len(line.items)
	var used float64
	for _, it := range line.items {
		used += it.outerMain()
	}
	free := mainSize - used

	var start, gap float64
	switch justify {
	case JustifyStart:
		start = 0
	case JustifyEnd:
		start = free
	case JustifyCenter:
		start = free / 2
	case JustifySpaceBetween:
		if n > 1 {
			gap = free / float64(n-1)
		}
	case JustifySpaceAround:
		if n > 0 {
			gap = free / float64(n)
			start = gap / 2
		}
	case JustifySpaceEvenly:
		if n > 0 {
			gap = free / float64(n+1)
			start = gap
		}
	}

	pos := start
	for _, it := range line.items {
		it.mainPos = pos + it.mainMarginStart
		pos += it.outerMain() + gap
	}
}
