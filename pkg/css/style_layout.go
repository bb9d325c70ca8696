package css

import "strings"

// Phase 8: flexbox, grid and sized-box properties needed by the layout
// core bridge (pkg/browser). These follow the same string-keyed
// Properties map and typed-getter pattern as the rest of this file; they
// were not needed before the core gained flex and grid engines.

// FlexDirectionType is the flex-direction property value.
type FlexDirectionType string

const (
	FlexDirectionRow           FlexDirectionType = "row"
	FlexDirectionRowReverse    FlexDirectionType = "row-reverse"
	FlexDirectionColumn        FlexDirectionType = "column"
	FlexDirectionColumnReverse FlexDirectionType = "column-reverse"
)

// GetFlexDirection returns flex-direction (default: row).
func (s *Style) GetFlexDirection() FlexDirectionType {
	switch v, _ := s.Get("flex-direction"); v {
	case "row-reverse":
		return FlexDirectionRowReverse
	case "column":
		return FlexDirectionColumn
	case "column-reverse":
		return FlexDirectionColumnReverse
	}
	return FlexDirectionRow
}

// FlexWrapType is the flex-wrap property value.
type FlexWrapType string

const (
	FlexWrapNowrap      FlexWrapType = "nowrap"
	FlexWrapWrap        FlexWrapType = "wrap"
	FlexWrapWrapReverse FlexWrapType = "wrap-reverse"
)

// GetFlexWrap returns flex-wrap (default: nowrap).
func (s *Style) GetFlexWrap() FlexWrapType {
	switch v, _ := s.Get("flex-wrap"); v {
	case "wrap":
		return FlexWrapWrap
	case "wrap-reverse":
		return FlexWrapWrapReverse
	}
	return FlexWrapNowrap
}

// JustifyContentType is the justify-content property value.
type JustifyContentType string

const (
	JustifyContentStart        JustifyContentType = "start"
	JustifyContentEnd          JustifyContentType = "end"
	JustifyContentCenter       JustifyContentType = "center"
	JustifyContentSpaceBetween JustifyContentType = "space-between"
	JustifyContentSpaceAround  JustifyContentType = "space-around"
	JustifyContentSpaceEvenly  JustifyContentType = "space-evenly"
)

// GetJustifyContent returns justify-content (default: start). "flex-start"
// and "flex-end" are accepted as aliases for "start"/"end".
func (s *Style) GetJustifyContent() JustifyContentType {
	switch v, _ := s.Get("justify-content"); v {
	case "end", "flex-end":
		return JustifyContentEnd
	case "center":
		return JustifyContentCenter
	case "space-between":
		return JustifyContentSpaceBetween
	case "space-around":
		return JustifyContentSpaceAround
	case "space-evenly":
		return JustifyContentSpaceEvenly
	}
	return JustifyContentStart
}

// AlignItemsType is the align-items property value.
type AlignItemsType string

const (
	AlignItemsStart    AlignItemsType = "start"
	AlignItemsEnd      AlignItemsType = "end"
	AlignItemsCenter   AlignItemsType = "center"
	AlignItemsStretch  AlignItemsType = "stretch"
	AlignItemsBaseline AlignItemsType = "baseline"
)

// GetAlignItems returns align-items (default: stretch, the CSS initial
// value). "flex-start"/"flex-end" are accepted as aliases.
func (s *Style) GetAlignItems() AlignItemsType {
	switch v, _ := s.Get("align-items"); v {
	case "start", "flex-start":
		return AlignItemsStart
	case "end", "flex-end":
		return AlignItemsEnd
	case "center":
		return AlignItemsCenter
	case "baseline":
		return AlignItemsBaseline
	case "stretch", "":
		return AlignItemsStretch
	}
	return AlignItemsStretch
}

// AlignContentType is the align-content property value.
type AlignContentType string

const (
	AlignContentStart        AlignContentType = "start"
	AlignContentEnd          AlignContentType = "end"
	AlignContentCenter       AlignContentType = "center"
	AlignContentSpaceBetween AlignContentType = "space-between"
	AlignContentSpaceAround  AlignContentType = "space-around"
	AlignContentStretch      AlignContentType = "stretch"
)

// GetAlignContent returns align-content (default: stretch).
func (s *Style) GetAlignContent() AlignContentType {
	switch v, _ := s.Get("align-content"); v {
	case "start", "flex-start":
		return AlignContentStart
	case "end", "flex-end":
		return AlignContentEnd
	case "center":
		return AlignContentCenter
	case "space-between":
		return AlignContentSpaceBetween
	case "space-around":
		return AlignContentSpaceAround
	}
	return AlignContentStretch
}

// GetGridTemplate returns the grid's column and row counts. Only the
// fixed-track-count form is supported (matching the core's equal-track
// grid engine): "grid-template-columns: repeat(3, 1fr)" or a
// space-separated track list both resolve to a column count of 3; a
// literal "grid-cols"/"grid-rows" integer property is read first if
// present. Defaults to 1x1.
func (s *Style) GetGridTemplate() (cols, rows int) {
	cols = gridTrackCount(s, "grid-cols", "grid-template-columns")
	rows = gridTrackCount(s, "grid-rows", "grid-template-rows")
	return cols, rows
}

func gridTrackCount(s *Style, shortProp, templateProp string) int {
	if v, ok := s.Get(shortProp); ok {
		if n, ok := ParseLength(v); ok && n >= 1 {
			return int(n)
		}
	}
	v, ok := s.Get(templateProp)
	if !ok {
		return 1
	}
	if strings.HasPrefix(v, "repeat(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(v, "repeat("), ")")
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) == 2 {
			if n, ok := ParseLength(strings.TrimSpace(parts[0])); ok && n >= 1 {
				return int(n)
			}
		}
		return 1
	}
	n := len(strings.Fields(v))
	if n < 1 {
		return 1
	}
	return n
}

// GetWidthAuto / GetHeightAuto resolve a sized-box property, reporting
// whether the author left it at its "auto" initial value.
func (s *Style) GetWidthAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "width")
}

func (s *Style) GetHeightAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "height")
}

func (s *Style) GetMinWidthAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "min-width")
}

func (s *Style) GetMaxWidthAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "max-width")
}

func (s *Style) GetMinHeightAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "min-height")
}

func (s *Style) GetMaxHeightAuto() (value float64, auto bool) {
	return sizedOrAuto(s, "max-height")
}

func sizedOrAuto(s *Style, prop string) (float64, bool) {
	v, ok := s.Get(prop)
	if !ok || v == "auto" || v == "" {
		return 0, true
	}
	n, ok := ParseLength(v)
	if !ok {
		return 0, true
	}
	return n, false
}

// GetZIndexAuto reports z-index and whether it was set at all (an unset
// z-index does not create a stacking context in the rasterizer's paint
// order).
func (s *Style) GetZIndexAuto() (value int, isSet bool) {
	v, ok := s.Get("z-index")
	if !ok {
		return 0, false
	}
	n, ok := ParseLength(v)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// GetVisibility returns whether the node is visible (default: true;
// visibility:hidden or display:none both resolve layout-relevant
// visibility to false for the rasterizer, though display:none is handled
// upstream by the core itself).
func (s *Style) GetVisibility() bool {
	v, _ := s.Get("visibility")
	return v != "hidden"
}

// OverflowType is the overflow property value.
type OverflowType string

const (
	OverflowVisible OverflowType = "visible"
	OverflowHidden  OverflowType = "hidden"
)

// GetOverflow returns overflow (default: visible).
func (s *Style) GetOverflow() OverflowType {
	v, _ := s.Get("overflow")
	if v == "hidden" || v == "scroll" || v == "auto" {
		return OverflowHidden
	}
	return OverflowVisible
}

// GetBackgroundColorRGBA resolves background-color into RGBA with alpha
// 255, reporting whether one was set at all.
func (s *Style) GetBackgroundColorRGBA() (r, g, b, a uint8, isSet bool) {
	v, ok := s.Get("background-color")
	if !ok || v == "transparent" {
		return 0, 0, 0, 0, false
	}
	c, ok := ParseColor(v)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return c.R, c.G, c.B, 255, true
}

// BorderStyleType is a border-style keyword for one side.
type BorderStyleType string

const (
	BorderStyleNone   BorderStyleType = "none"
	BorderStyleSolid  BorderStyleType = "solid"
	BorderStyleDotted BorderStyleType = "dotted"
	BorderStyleDashed BorderStyleType = "dashed"
)

// GetBorderSide returns one side's resolved width, style and color,
// falling back from the per-side property to the border shorthand's
// expanded values, then to defaults (0, none, black).
func (s *Style) GetBorderSide(side string) (width float64, style BorderStyleType, r, g, b uint8) {
	width = s.getLengthOrZero("border-" + side + "-width")

	styleVal, ok := s.Get("border-" + side + "-style")
	if !ok {
		styleVal, _ = s.Get("border-style")
	}
	switch styleVal {
	case "solid":
		style = BorderStyleSolid
	case "dotted":
		style = BorderStyleDotted
	case "dashed":
		style = BorderStyleDashed
	default:
		style = BorderStyleNone
	}

	colorVal, ok := s.Get("border-" + side + "-color")
	if !ok {
		colorVal, ok = s.Get("border-color")
	}
	if ok {
		if c, ok := ParseColor(colorVal); ok {
			r, g, b = c.R, c.G, c.B
		}
	}
	return width, style, r, g, b
}
