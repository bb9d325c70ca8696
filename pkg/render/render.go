// Package render rasterizes a computed layout tree to an image, painting
// through gg.Context the way the teacher's renderer did: background first,
// then border, then content, walked in CSS 2.1 Appendix E stacking order.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/nyanrus/dop-browser-sub001/pkg/browser"
	"github.com/nyanrus/dop-browser-sub001/pkg/images"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
)

// Renderer paints a layout.Document onto a gg.Context. It never mutates the
// document's tables; painting always follows a completed reflow.
type Renderer struct {
	context      *gg.Context
	scrollY      float64
	imageFetcher images.ImageFetcher
}

// NewRenderer creates a renderer targeting a fresh width x height canvas.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// NewRendererForImage creates a renderer that paints directly onto target.
func NewRendererForImage(target *image.RGBA) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target)}
}

// SetImageFetcher sets the fetcher used to resolve network/relative image
// URIs encountered in <img> src attributes and background-image.
func (r *Renderer) SetImageFetcher(fetcher images.ImageFetcher) {
	r.imageFetcher = fetcher
}

// SetScrollY sets the viewport scroll offset. Fixed-positioned nodes ignore
// it; everything else is painted shifted up by this amount.
func (r *Renderer) SetScrollY(scrollY float64) {
	r.scrollY = scrollY
}

// Render paints doc's whole tree, using idmap to resolve each node's DOM
// counterpart for tag-driven content (currently just <img> src).
func (r *Renderer) Render(doc *layout.Document, idmap *browser.IDMap) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	if doc.Tree.Len() == 0 {
		return
	}

	root := layout.NodeID(1)
	r.drawCanvasBackground(doc, root)

	order := buildPaintOrder(doc, root)
	for _, id := range order {
		r.paintNode(doc, idmap, id)
	}
}

// drawCanvasBackground implements CSS 2.1 §14.2: if the root has no
// background, the viewport canvas is filled with its first child's
// background instead (typically <body>'s).
func (r *Renderer) drawCanvasBackground(doc *layout.Document, root layout.NodeID) {
	if bg, ok := doc.Style.GetBackground(root); ok && bg.A > 0 {
		r.fillRect(0, 0, float64(r.context.Width()), float64(r.context.Height()), bg)
		return
	}
	children := doc.Tree.Children(root)
	if len(children) == 0 {
		return
	}
	if bg, ok := doc.Style.GetBackground(children[0]); ok && bg.A > 0 {
		r.fillRect(0, 0, float64(r.context.Width()), float64(r.context.Height()), bg)
	}
}

func (r *Renderer) fillRect(x, y, w, h float64, c layout.RGBA8) {
	r.context.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
	r.context.DrawRectangle(x, y, w, h)
	r.context.Fill()
}

// buildPaintOrder walks the tree rooted at root in CSS 2.1 Appendix E order:
// negative z-index stacking contexts, then normal-flow descendants in
// document order (backgrounds/borders/content interleaved per node, since
// the core has no separate inline-content pass), then positioned
// descendants with z-index auto/0, then positive z-index stacking
// contexts. Grounded on the teacher's pkg/layout/stacking.go, collapsed to
// a flat id list since the rasterizer here has no text run content to
// interleave at a separate step.
func buildPaintOrder(doc *layout.Document, root layout.NodeID) []layout.NodeID {
	var negativeZ, normal, positioned, positiveZ []layout.NodeID
	var walk func(id layout.NodeID)
	walk = func(id layout.NodeID) {
		for _, child := range doc.Tree.Children(id) {
			if doc.Style.GetDisplay(child) == layout.DisplayNone {
				continue
			}
			switch {
			case createsStackingContext(doc.Style, child) && doc.Style.GetZIndex(child) < 0:
				negativeZ = append(negativeZ, child)
				collectFlat(doc, child, &negativeZ)
			case createsStackingContext(doc.Style, child) && doc.Style.GetZIndex(child) > 0:
				positiveZ = append(positiveZ, child)
				collectFlat(doc, child, &positiveZ)
			case doc.Style.GetPosition(child) != layout.PositionStatic:
				positioned = append(positioned, child)
				collectFlat(doc, child, &positioned)
			default:
				normal = append(normal, child)
				walk(child)
			}
		}
	}
	result := []layout.NodeID{root}
	walk(root)
	result = append(result, negativeZ...)
	result = append(result, normal...)
	result = append(result, positioned...)
	result = append(result, positiveZ...)
	return result
}

// collectFlat appends id's whole subtree (pre-order) to out; used once a
// node has been sorted into a stacking bucket, since its descendants paint
// together with it rather than being re-sorted into the parent's buckets.
func collectFlat(doc *layout.Document, id layout.NodeID, out *[]layout.NodeID) {
	for _, child := range doc.Tree.Children(id) {
		if doc.Style.GetDisplay(child) == layout.DisplayNone {
			continue
		}
		*out = append(*out, child)
		collectFlat(doc, child, out)
	}
}

// createsStackingContext reports whether id's position and z-index combine
// to form a CSS stacking context (z-index only applies to positioned
// elements, CSS 2.1 §9.9.1).
func createsStackingContext(st *layout.StyleTable, id layout.NodeID) bool {
	if st.GetPosition(id) == layout.PositionStatic {
		return false
	}
	return st.GetZIndex(id) != 0
}

func (r *Renderer) effectiveY(doc *layout.Document, id layout.NodeID, y float64) float64 {
	if doc.Style.GetPosition(id) == layout.PositionFixed {
		return y
	}
	return y - r.scrollY
}

func (r *Renderer) paintNode(doc *layout.Document, idmap *browser.IDMap, id layout.NodeID) {
	g := doc.Layout.Get(id)
	y := r.effectiveY(doc, id, g.Y)

	overflow := doc.Style.GetOverflow(id)
	if overflow == layout.OverflowHidden {
		r.context.Push()
		defer r.context.Pop()
		r.context.DrawRectangle(g.X, y, g.Width, g.Height)
		r.context.Clip()
	}

	if bg, ok := doc.Style.GetBackground(id); ok && bg.A > 0 {
		r.fillRect(g.X, y, g.Width, g.Height, bg)
	}

	r.drawBorder(doc, id, g, y)
	r.drawImageContent(doc, idmap, id, g, y)
}

func (r *Renderer) drawBorder(doc *layout.Document, id layout.NodeID, g layout.Geometry, y float64) {
	outerLeft, outerTop := g.X, y
	outerRight, outerBottom := g.X+g.Width, y+g.Height

	for _, side := range []string{"top", "right", "bottom", "left"} {
		width, style, c := doc.Style.GetBorderSide(id, side)
		if width <= 0 || style == layout.BorderStyleNone {
			continue
		}
		r.context.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
		r.context.SetLineWidth(width)
		switch side {
		case "top":
			r.context.DrawLine(outerLeft, outerTop+width/2, outerRight, outerTop+width/2)
		case "bottom":
			r.context.DrawLine(outerLeft, outerBottom-width/2, outerRight, outerBottom-width/2)
		case "left":
			r.context.DrawLine(outerLeft+width/2, outerTop, outerLeft+width/2, outerBottom)
		case "right":
			r.context.DrawLine(outerRight-width/2, outerTop, outerRight-width/2, outerBottom)
		}
		r.context.Stroke()
	}
}

// drawImageContent paints an <img> element's decoded source scaled to its
// content box. Nodes whose DOM counterpart is not an <img>, or that carry
// no resolvable src, paint nothing here.
func (r *Renderer) drawImageContent(doc *layout.Document, idmap *browser.IDMap, id layout.NodeID, g layout.Geometry, y float64) {
	if idmap == nil {
		return
	}
	node := idmap.Node(id)
	if node == nil || node.TagName != "img" {
		return
	}
	src, ok := node.GetAttribute("src")
	if !ok || src == "" {
		return
	}
	img, err := images.LoadImageWithFetcher(src, r.imageFetcher)
	if err != nil {
		r.drawImagePlaceholder(g, y)
		return
	}

	bounds := img.Bounds()
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	if imgW == 0 || imgH == 0 {
		return
	}

	r.context.Push()
	defer r.context.Pop()
	r.context.Translate(g.X, y)
	r.context.Scale(g.Width/imgW, g.Height/imgH)
	r.context.DrawImage(img, 0, 0)
}

func (r *Renderer) drawImagePlaceholder(g layout.Geometry, y float64) {
	r.context.SetRGB(0.9, 0.9, 0.9)
	r.context.DrawRectangle(g.X, y, g.Width, g.Height)
	r.context.Fill()

	r.context.SetRGB(0.5, 0.5, 0.5)
	r.context.SetLineWidth(2)
	r.context.DrawLine(g.X, y, g.X+g.Width, y+g.Height)
	r.context.DrawLine(g.X+g.Width, y, g.X, y+g.Height)
	r.context.Stroke()
}

// SavePNG writes the rendered canvas to filename.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
