package layout

// StyleTable is the style input SoA: one record's worth of fields per id,
// stored as parallel slices for cache-friendly iteration (spec.md §3).
// Every setter is idempotent and marks the node dirty in the paired
// LayoutTable it is constructed with.
type StyleTable struct {
	n int

	display []Display

	position []Position
	top      []Length
	right    []Length
	bottom   []Length
	left     []Length
	zIndex   []int32

	float []Float
	clear []Clear

	marginTop, marginRight, marginBottom, marginLeft       []float64
	paddingTop, paddingRight, paddingBottom, paddingLeft   []float64
	borderTopWidth, borderRightWidth, borderBottomWidth, borderLeftWidth []float64
	borderTopStyle, borderRightStyle, borderBottomStyle, borderLeftStyle []BorderStyle
	borderTopColor, borderRightColor, borderBottomColor, borderLeftColor []RGBA8

	width, height       []Length
	minWidth, minHeight []Length
	maxWidth, maxHeight []Length

	backgroundColor []RGBA8
	hasBackground   []bool

	visibility []bool
	overflow   []Overflow

	flexDirection  []FlexDirection
	flexWrap       []FlexWrap
	justifyContent []JustifyContent
	alignItems     []AlignItems
	alignContent   []AlignContent

	gridCols []int
	gridRows []int
}

// NewStyleTable allocates a style table sized for n nodes (ids 1..n), with
// every field at its zero/default value: display=block, position=static,
// offsets auto, width/height auto, overflow visible, visibility visible,
// grid 1x1.
func NewStyleTable(n int) *StyleTable {
	st := &StyleTable{}
	st.Resize(n)
	return st
}

// Resize grows or shrinks the table, resetting all fields to defaults.
func (st *StyleTable) Resize(n int) {
	if n < 0 {
		n = 0
	}
	st.n = n
	sz := n + 1

	st.display = make([]Display, sz)
	for i := range st.display {
		st.display[i] = DisplayBlock
	}
	st.position = make([]Position, sz)
	st.top = make([]Length, sz)
	st.right = make([]Length, sz)
	st.bottom = make([]Length, sz)
	st.left = make([]Length, sz)
	st.zIndex = make([]int32, sz)
	st.float = make([]Float, sz)
	st.clear = make([]Clear, sz)

	st.marginTop = make([]float64, sz)
	st.marginRight = make([]float64, sz)
	st.marginBottom = make([]float64, sz)
	st.marginLeft = make([]float64, sz)
	st.paddingTop = make([]float64, sz)
	st.paddingRight = make([]float64, sz)
	st.paddingBottom = make([]float64, sz)
	st.paddingLeft = make([]float64, sz)

	st.borderTopWidth = make([]float64, sz)
	st.borderRightWidth = make([]float64, sz)
	st.borderBottomWidth = make([]float64, sz)
	st.borderLeftWidth = make([]float64, sz)
	st.borderTopStyle = make([]BorderStyle, sz)
	st.borderRightStyle = make([]BorderStyle, sz)
	st.borderBottomStyle = make([]BorderStyle, sz)
	st.borderLeftStyle = make([]BorderStyle, sz)
	st.borderTopColor = make([]RGBA8, sz)
	st.borderRightColor = make([]RGBA8, sz)
	st.borderBottomColor = make([]RGBA8, sz)
	st.borderLeftColor = make([]RGBA8, sz)

	st.width = make([]Length, sz)
	st.height = make([]Length, sz)
	st.minWidth = make([]Length, sz)
	st.minHeight = make([]Length, sz)
	st.maxWidth = make([]Length, sz)
	st.maxHeight = make([]Length, sz)
	for i := range st.width {
		st.width[i] = Length{Auto: true}
		st.height[i] = Length{Auto: true}
		st.minWidth[i] = Length{Auto: true}
		st.minHeight[i] = Length{Auto: true}
		st.maxWidth[i] = Length{Auto: true}
		st.maxHeight[i] = Length{Auto: true}
		st.top[i] = Length{Auto: true}
		st.right[i] = Length{Auto: true}
		st.bottom[i] = Length{Auto: true}
		st.left[i] = Length{Auto: true}
	}

	st.backgroundColor = make([]RGBA8, sz)
	st.hasBackground = make([]bool, sz)
	st.visibility = make([]bool, sz)
	for i := range st.visibility {
		st.visibility[i] = true
	}
	st.overflow = make([]Overflow, sz)

	st.flexDirection = make([]FlexDirection, sz)
	st.flexWrap = make([]FlexWrap, sz)
	st.justifyContent = make([]JustifyContent, sz)
	st.alignItems = make([]AlignItems, sz)
	st.alignContent = make([]AlignContent, sz)

	st.gridCols = make([]int, sz)
	st.gridRows = make([]int, sz)
	for i := range st.gridCols {
		st.gridCols[i] = 1
		st.gridRows[i] = 1
	}
}

func (st *StyleTable) inRange(id NodeID) bool {
	return id != NoNode && int(id) <= st.n
}

// --- Display ---

// GetDisplay returns id's display, or DisplayNone if out of range.
func (st *StyleTable) GetDisplay(id NodeID) Display {
	if !st.inRange(id) {
		return DisplayNone
	}
	return st.display[id]
}

// SetDisplay sets id's display and marks it dirty.
func (st *StyleTable) SetDisplay(lt *LayoutTable, id NodeID, d Display) {
	if !st.inRange(id) {
		return
	}
	st.display[id] = d
	lt.markDirty(id)
}

// --- Positioning ---

func (st *StyleTable) GetPosition(id NodeID) Position {
	if !st.inRange(id) {
		return PositionStatic
	}
	return st.position[id]
}

func (st *StyleTable) SetPosition(lt *LayoutTable, id NodeID, p Position) {
	if !st.inRange(id) {
		return
	}
	st.position[id] = p
	lt.markDirty(id)
}

func (st *StyleTable) GetOffsets(id NodeID) (top, right, bottom, left Length) {
	if !st.inRange(id) {
		return Length{Auto: true}, Length{Auto: true}, Length{Auto: true}, Length{Auto: true}
	}
	return st.top[id], st.right[id], st.bottom[id], st.left[id]
}

// SetOffset sets one of the four positioning offsets ("top"/"right"/
// "bottom"/"left") and marks id dirty. An unrecognized side is a no-op.
func (st *StyleTable) SetOffset(lt *LayoutTable, id NodeID, side string, v Length) {
	if !st.inRange(id) {
		return
	}
	switch side {
	case "top":
		st.top[id] = v
	case "right":
		st.right[id] = v
	case "bottom":
		st.bottom[id] = v
	case "left":
		st.left[id] = v
	default:
		return
	}
	lt.markDirty(id)
}

func (st *StyleTable) GetZIndex(id NodeID) int32 {
	if !st.inRange(id) {
		return 0
	}
	return st.zIndex[id]
}

func (st *StyleTable) SetZIndex(lt *LayoutTable, id NodeID, z int32) {
	if !st.inRange(id) {
		return
	}
	st.zIndex[id] = z
	lt.markDirty(id)
}

// --- Float / clear ---

func (st *StyleTable) GetFloat(id NodeID) Float {
	if !st.inRange(id) {
		return FloatNone
	}
	return st.float[id]
}

func (st *StyleTable) GetClear(id NodeID) Clear {
	if !st.inRange(id) {
		return ClearNone
	}
	return st.clear[id]
}

func (st *StyleTable) SetFloatClear(lt *LayoutTable, id NodeID, f Float, c Clear) {
	if !st.inRange(id) {
		return
	}
	st.float[id] = f
	st.clear[id] = c
	lt.markDirty(id)
}

// --- Box model ---

func (st *StyleTable) GetMargin(id NodeID) Edges {
	if !st.inRange(id) {
		return Edges{}
	}
	return Edges{st.marginTop[id], st.marginRight[id], st.marginBottom[id], st.marginLeft[id]}
}

func (st *StyleTable) SetMargin(lt *LayoutTable, id NodeID, e Edges) {
	if !st.inRange(id) {
		return
	}
	st.marginTop[id], st.marginRight[id], st.marginBottom[id], st.marginLeft[id] = e.Top, e.Right, e.Bottom, e.Left
	lt.markDirty(id)
}

func (st *StyleTable) GetPadding(id NodeID) Edges {
	if !st.inRange(id) {
		return Edges{}
	}
	return Edges{st.paddingTop[id], st.paddingRight[id], st.paddingBottom[id], st.paddingLeft[id]}
}

func (st *StyleTable) SetPadding(lt *LayoutTable, id NodeID, e Edges) {
	if !st.inRange(id) {
		return
	}
	st.paddingTop[id], st.paddingRight[id], st.paddingBottom[id], st.paddingLeft[id] = e.Top, e.Right, e.Bottom, e.Left
	lt.markDirty(id)
}

func (st *StyleTable) GetBorderWidth(id NodeID) Edges {
	if !st.inRange(id) {
		return Edges{}
	}
	return Edges{st.borderTopWidth[id], st.borderRightWidth[id], st.borderBottomWidth[id], st.borderLeftWidth[id]}
}

// SetBorderSide sets one side's width, style and color and marks id dirty.
// side must be "top", "right", "bottom" or "left"; anything else is a
// no-op, and an out-of-range id is a no-op.
func (st *StyleTable) SetBorderSide(lt *LayoutTable, id NodeID, side string, width float64, style BorderStyle, color RGBA8) {
	if !st.inRange(id) {
		return
	}
	switch side {
	case "top":
		st.borderTopWidth[id], st.borderTopStyle[id], st.borderTopColor[id] = width, style, color
	case "right":
		st.borderRightWidth[id], st.borderRightStyle[id], st.borderRightColor[id] = width, style, color
	case "bottom":
		st.borderBottomWidth[id], st.borderBottomStyle[id], st.borderBottomColor[id] = width, style, color
	case "left":
		st.borderLeftWidth[id], st.borderLeftStyle[id], st.borderLeftColor[id] = width, style, color
	default:
		return
	}
	lt.markDirty(id)
}

func (st *StyleTable) GetBorderSide(id NodeID, side string) (width float64, style BorderStyle, color RGBA8) {
	if !st.inRange(id) {
		return 0, BorderStyleNone, RGBA8{}
	}
	switch side {
	case "top":
		return st.borderTopWidth[id], st.borderTopStyle[id], st.borderTopColor[id]
	case "right":
		return st.borderRightWidth[id], st.borderRightStyle[id], st.borderRightColor[id]
	case "bottom":
		return st.borderBottomWidth[id], st.borderBottomStyle[id], st.borderBottomColor[id]
	case "left":
		return st.borderLeftWidth[id], st.borderLeftStyle[id], st.borderLeftColor[id]
	}
	return 0, BorderStyleNone, RGBA8{}
}

// --- Intrinsic size ---

func (st *StyleTable) GetWidth(id NodeID) Length {
	if !st.inRange(id) {
		return Length{Auto: true}
	}
	return st.width[id]
}

func (st *StyleTable) GetHeight(id NodeID) Length {
	if !st.inRange(id) {
		return Length{Auto: true}
	}
	return st.height[id]
}

func (st *StyleTable) SetWidth(lt *LayoutTable, id NodeID, v Length) {
	if !st.inRange(id) {
		return
	}
	st.width[id] = v
	lt.markDirty(id)
}

func (st *StyleTable) SetHeight(lt *LayoutTable, id NodeID, v Length) {
	if !st.inRange(id) {
		return
	}
	st.height[id] = v
	lt.markDirty(id)
}

func (st *StyleTable) GetMinMaxWidth(id NodeID) (min, max Length) {
	if !st.inRange(id) {
		return Length{Auto: true}, Length{Auto: true}
	}
	return st.minWidth[id], st.maxWidth[id]
}

func (st *StyleTable) GetMinMaxHeight(id NodeID) (min, max Length) {
	if !st.inRange(id) {
		return Length{Auto: true}, Length{Auto: true}
	}
	return st.minHeight[id], st.maxHeight[id]
}

func (st *StyleTable) SetMinMaxWidth(lt *LayoutTable, id NodeID, min, max Length) {
	if !st.inRange(id) {
		return
	}
	st.minWidth[id], st.maxWidth[id] = min, max
	lt.markDirty(id)
}

func (st *StyleTable) SetMinMaxHeight(lt *LayoutTable, id NodeID, min, max Length) {
	if !st.inRange(id) {
		return
	}
	st.minHeight[id], st.maxHeight[id] = min, max
	lt.markDirty(id)
}

// --- Background / border colors / visibility / overflow ---

func (st *StyleTable) GetBackground(id NodeID) (RGBA8, bool) {
	if !st.inRange(id) {
		return RGBA8{}, false
	}
	return st.backgroundColor[id], st.hasBackground[id]
}

func (st *StyleTable) SetBackground(lt *LayoutTable, id NodeID, c RGBA8) {
	if !st.inRange(id) {
		return
	}
	st.backgroundColor[id] = c
	st.hasBackground[id] = true
	lt.markDirty(id)
}

func (st *StyleTable) GetVisibility(id NodeID) bool {
	if !st.inRange(id) {
		return true
	}
	return st.visibility[id]
}

func (st *StyleTable) SetVisibility(lt *LayoutTable, id NodeID, v bool) {
	if !st.inRange(id) {
		return
	}
	st.visibility[id] = v
	lt.markDirty(id)
}

func (st *StyleTable) GetOverflow(id NodeID) Overflow {
	if !st.inRange(id) {
		return OverflowVisible
	}
	return st.overflow[id]
}

func (st *StyleTable) SetOverflow(lt *LayoutTable, id NodeID, o Overflow) {
	if !st.inRange(id) {
		return
	}
	st.overflow[id] = o
	lt.markDirty(id)
}

// --- Flex container ---

func (st *StyleTable) GetFlexContainer(id NodeID) (dir FlexDirection, wrap FlexWrap, justify JustifyContent, alignItems AlignItems, alignContent AlignContent) {
	if !st.inRange(id) {
		return
	}
	return st.flexDirection[id], st.flexWrap[id], st.justifyContent[id], st.alignItems[id], st.alignContent[id]
}

func (st *StyleTable) SetFlexDirection(lt *LayoutTable, id NodeID, d FlexDirection) {
	if !st.inRange(id) {
		return
	}
	st.flexDirection[id] = d
	lt.markDirty(id)
}

func (st *StyleTable) SetFlexWrap(lt *LayoutTable, id NodeID, w FlexWrap) {
	if !st.inRange(id) {
		return
	}
	st.flexWrap[id] = w
	lt.markDirty(id)
}

func (st *StyleTable) SetJustifyContent(lt *LayoutTable, id NodeID, j JustifyContent) {
	if !st.inRange(id) {
		return
	}
	st.justifyContent[id] = j
	lt.markDirty(id)
}

func (st *StyleTable) SetAlignItems(lt *LayoutTable, id NodeID, a AlignItems) {
	if !st.inRange(id) {
		return
	}
	st.alignItems[id] = a
	lt.markDirty(id)
}

func (st *StyleTable) SetAlignContent(lt *LayoutTable, id NodeID, a AlignContent) {
	if !st.inRange(id) {
		return
	}
	st.alignContent[id] = a
	lt.markDirty(id)
}

// --- Grid container ---

func (st *StyleTable) GetGrid(id NodeID) (cols, rows int) {
	if !st.inRange(id) {
		return 1, 1
	}
	return st.gridCols[id], st.gridRows[id]
}

// SetGrid sets the grid container's column/row counts, clamped to a
// minimum of 1 (spec.md §3: "counts, >=1").
func (st *StyleTable) SetGrid(lt *LayoutTable, id NodeID, cols, rows int) {
	if !st.inRange(id) {
		return
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	st.gridCols[id] = cols
	st.gridRows[id] = rows
	lt.markDirty(id)
}
