package resource

import (
	"fmt"
	"image"
	"log"

	"github.com/nyanrus/dop-browser-sub001/pkg/browser"
	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/images"
	"github.com/nyanrus/dop-browser-sub001/pkg/js"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
	"github.com/nyanrus/dop-browser-sub001/pkg/render"
)

// Renderer renders HTML content onto an image.
type Renderer interface {
	Render(htmlContent string, target *image.RGBA) error
}

// PageRenderer drives the fetch -> parse -> cascade -> reflow -> paint
// pipeline: it parses HTML and its stylesheets, cascades CSS onto the DOM,
// bridges the result into the SoA layout core via pkg/browser, reflows,
// and rasterizes through pkg/render.
type PageRenderer struct {
	fetcher  Fetcher
	jsEngine *js.Engine // nil = skip JS execution
}

// SetJSEngine configures a JavaScript engine for DOM manipulation.
// When set, the renderer performs a two-pass render: first pass renders
// the initial state, then JS executes and mutates the DOM, then a
// second cascade+reflow+render pass produces the final output.
func (r *PageRenderer) SetJSEngine(engine *js.Engine) {
	r.jsEngine = engine
}

// NewPageRenderer creates a new PageRenderer with the given fetcher for
// external stylesheets and images.
func NewPageRenderer(fetcher Fetcher) *PageRenderer {
	return &PageRenderer{fetcher: fetcher}
}

// Render parses the HTML content, performs layout, and renders onto the target image.
// The viewport width and height are derived from the target image dimensions.
func (r *PageRenderer) Render(htmlContent string, target *image.RGBA) error {
	bounds := target.Bounds()
	viewportWidth := float64(bounds.Dx())
	viewportHeight := float64(bounds.Dy())

	var cssFetcher html.CSSFetcher
	var imageFetcher images.ImageFetcher
	if r.fetcher != nil {
		cssFetcher = func(uri string) (string, error) {
			if df, ok := r.fetcher.(*DefaultFetcher); ok {
				return df.FetchCSS(uri)
			}
			body, _, err := r.fetcher.Fetch(uri)
			if err != nil {
				return "", err
			}
			return string(body), nil
		}
		imageFetcher = func(uri string) ([]byte, error) {
			if df, ok := r.fetcher.(*DefaultFetcher); ok {
				return df.FetchImage(uri)
			}
			body, _, err := r.fetcher.Fetch(uri)
			if err != nil {
				return nil, err
			}
			return body, nil
		}
	}

	doc, err := html.ParseWithFetcher(htmlContent, cssFetcher)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	tree, idmap := browser.BuildTree(doc)
	ld := layout.NewDocumentWithTree(tree, viewportWidth, viewportHeight)
	generations := make(map[layout.NodeID]*css.Style)

	cascadeAndReflow := func(pipeline *browser.Pipeline) {
		computed := css.ApplyStylesToDocument(doc, viewportWidth, viewportHeight)
		browser.ApplyComputedStyles(computed, idmap, ld.Style, ld.Layout, generations)
		pipeline.Reflow()
	}

	pipeline := browser.NewPipeline(ld, idmap, idmap.Len(), nil)
	defer pipeline.Close()
	cascadeAndReflow(pipeline)

	renderer := render.NewRendererForImage(target)
	if imageFetcher != nil {
		renderer.SetImageFetcher(imageFetcher)
	}
	renderer.Render(ld, idmap)

	if r.jsEngine != nil && len(doc.Scripts) > 0 {
		if err := r.jsEngine.Execute(doc); err != nil {
			log.Printf("js: %v", err)
		}

		// DOM mutations change cascade inputs; re-cascading and reapplying
		// marks exactly the nodes whose resolved style actually changed
		// dirty (pkg/browser.ApplyComputedStyles's generation check), so
		// the second reflow only redoes the affected subtrees.
		cascadeAndReflow(pipeline)

		renderer2 := render.NewRendererForImage(target)
		if imageFetcher != nil {
			renderer2.SetImageFetcher(imageFetcher)
		}
		renderer2.Render(ld, idmap)
	}

	return nil
}
