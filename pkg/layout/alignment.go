package layout

// lineCross describes one flex line's cross-axis placement: its start
// offset within the container's cross size and the size it was stretched
// (or left) to occupy.
type lineCross struct {
	start float64
	size  float64
}

// distributeLinesCross places each line along the cross axis per
// align-content (spec.md §4.2 step 5). A single, non-wrapping line always
// occupies the whole cross size (there is nothing to distribute).
func distributeLinesCross(lines []*flexLine, crossSize float64, alignContent AlignContent, multiLine bool) []lineCross {
	out := make([]lineCross, len(lines))
	if !multiLine {
		if len(lines) == 1 {
			out[0] = lineCross{start: 0, size: crossSize}
		}
		return out
	}

	naturalSizes := make([]float64, len(lines))
	var used float64
	for i, line := range lines {
		naturalSizes[i] = lineNaturalCrossSize(line)
		used += naturalSizes[i]
	}
	free := crossSize - used
	n := len(lines)

	var start, gap float64
	sizes := naturalSizes
	switch alignContent {
	case AlignContentStart:
		start = 0
	case AlignContentEnd:
		start = free
	case AlignContentCenter:
		start = free / 2
	case AlignContentSpaceBetween:
		if n > 1 {
			gap = free / float64(n-1)
		}
	case AlignContentSpaceAround:
		if n > 0 {
			gap = free / float64(n)
			start = gap / 2
		}
	case AlignContentStretch:
		extra := 0.0
		if n > 0 {
			extra = free / float64(n)
		}
		sizes = make([]float64, n)
		for i := range sizes {
			sizes[i] = naturalSizes[i] + extra
		}
	}

	pos := start
	for i := range lines {
		out[i] = lineCross{start: pos, size: sizes[i]}
		pos += sizes[i] + gap
	}
	return out
}

func lineNaturalCrossSize(line *flexLine) float64 {
	var max float64
	for _, it := range line.items {
		o := it.crossMarginStart + it.crossSize + it.crossMarginEnd
		if o > max {
			max = o
		}
	}
	return max
}

// alignLineCross positions each item within its line's cross size per
// align-items (spec.md §4.2 step 4). baseline falls back to start, since
// this core has no text baseline model (spec.md §9).
func (d *Document) alignLineCross(line *flexLine, lineCrossSize float64, alignItems AlignItems) {
	for _, it := range line.items {
		switch alignItems {
		case AlignItemsStart, AlignItemsBaseline:
			it.crossPos = it.crossMarginStart
		case AlignItemsEnd:
			it.crossPos = lineCrossSize - it.crossMarginEnd - it.crossSize
		case AlignItemsCenter:
			outer := it.crossMarginStart + it.crossSize + it.crossMarginEnd
			it.crossPos = (lineCrossSize-outer)/2 + it.crossMarginStart
		case AlignItemsStretch:
			it.crossSize = clampLength(lineCrossSize-it.crossMarginStart-it.crossMarginEnd, it.minCross, it.maxCross)
			it.crossPos = it.crossMarginStart
		}
	}
}

// placeLine writes each item's final x/y/width/height into the layout
// table from its resolved main/cross position and size.
func (d *Document) placeLine(container NodeID, line *flexLine, crossStart float64, isRow bool) {
	cg := d.Layout.Get(container)
	style := d.Style.GetPadding(container)
	originX := cg.X + style.Left
	originY := cg.Y + style.Top

	for _, it := range line.items {
		var x, y, w, h float64
		if isRow {
			x = originX + it.mainPos
			y = originY + crossStart + it.crossPos
			w, h = it.mainSize, it.crossSize
		} else {
			y = originY + it.mainPos
			x = originX + crossStart + it.crossPos
			w, h = it.crossSize, it.mainSize
		}
		g := d.Layout.Get(it.id)
		g.X, g.Y, g.Width, g.Height = x, y, w, h
		padding := d.Style.GetPadding(it.id)
		g.ContentWidth = maxFloat(0, w-padding.Left-padding.Right)
		g.ContentHeight = maxFloat(0, h-padding.Top-padding.Bottom)
		d.Layout.setGeometry(it.id, g)
	}
}
