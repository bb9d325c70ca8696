// Package layout implements the browser-style layout core: a
// structure-of-arrays node tree and style table, and the normal-flow,
// flexbox and grid engines that turn them into resolved geometry.
package layout

// NodeID identifies a node in a Tree. 0 is reserved ("none"/viewport).
type NodeID uint32

// NoNode is the sentinel id meaning "no node" (and, for containing-block
// resolution, "the viewport").
const NoNode NodeID = 0

// Display is the CSS display keyword driving which engine lays out a
// node's children.
type Display int

const (
	DisplayNone Display = iota
	DisplayBlock
	DisplayInline
	DisplayInlineBlock
	DisplayTable
	DisplayTableCell
	DisplayTableRow
	DisplayFlex
	DisplayInlineFlex
	DisplayGrid
	DisplayInlineGrid
)

// Position is the CSS position keyword.
type Position int

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// Float is the CSS float keyword.
type Float int

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

// Clear is the CSS clear keyword.
type Clear int

const (
	ClearNone Clear = iota
	ClearLeft
	ClearRight
	ClearBoth
)

// Overflow is the CSS overflow keyword. It does not affect layout geometry.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
)

// BorderStyle is the CSS border-style keyword for one edge.
type BorderStyle int

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleSolid
	BorderStyleDotted
	BorderStyleDashed
)

// FlexDirection is the flex container's flex-direction.
type FlexDirection int

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionRowReverse
	FlexDirectionColumn
	FlexDirectionColumnReverse
)

// FlexWrap is the flex container's flex-wrap.
type FlexWrap int

const (
	FlexWrapNowrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapWrapReverse
)

// JustifyContent distributes free space along the main axis.
type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems distributes a line's children along the cross axis.
type AlignItems int

const (
	AlignItemsStart AlignItems = iota
	AlignItemsEnd
	AlignItemsCenter
	AlignItemsStretch
	AlignItemsBaseline
)

// AlignContent distributes flex lines along the cross axis.
type AlignContent int

const (
	AlignContentStart AlignContent = iota
	AlignContentEnd
	AlignContentCenter
	AlignContentSpaceBetween
	AlignContentSpaceAround
	AlignContentStretch
)

// RGBA8 is an 8-bit-per-channel color.
type RGBA8 struct {
	R, G, B, A uint8
}

// Length is a CSS length input: either a concrete value or "auto".
type Length struct {
	Value float64
	Auto  bool
}

// Edges bundles a float value per box side (top/right/bottom/left).
type Edges struct {
	Top, Right, Bottom, Left float64
}

const epsilon = 0.01
