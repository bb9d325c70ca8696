package visualtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyanrus/dop-browser-sub001/pkg/browser"
	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/images"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
	"github.com/nyanrus/dop-browser-sub001/pkg/render"
)

// RenderHTMLToFile renders HTML content to a PNG file
func RenderHTMLToFile(htmlContent string, outputPath string, width, height int) error {
	return RenderHTMLToFileWithBase(htmlContent, outputPath, width, height, "")
}

// RenderHTMLToFileWithBase renders HTML content to a PNG file with a base path for resolving relative image URLs
func RenderHTMLToFileWithBase(htmlContent string, outputPath string, width, height int, basePath string) error {
	doc, err := html.Parse(htmlContent)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	viewportWidth, viewportHeight := float64(width), float64(height)
	tree, idmap := browser.BuildTree(doc)
	ld := layout.NewDocumentWithTree(tree, viewportWidth, viewportHeight)
	computed := css.ApplyStylesToDocument(doc, viewportWidth, viewportHeight)
	browser.ApplyComputedStyles(computed, idmap, ld.Style, ld.Layout, make(map[layout.NodeID]*css.Style))

	pipeline := browser.NewPipeline(ld, idmap, idmap.Len(), nil)
	defer pipeline.Close()
	pipeline.Reflow()

	var fetcher images.ImageFetcher
	if basePath != "" {
		fetcher = createFileImageFetcher(basePath)
	}

	renderer := render.NewRenderer(width, height)
	if fetcher != nil {
		renderer.SetImageFetcher(fetcher)
	}
	renderer.Render(ld, idmap)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := renderer.SavePNG(outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}

	return nil
}

// createFileImageFetcher creates an ImageFetcher that loads images from the filesystem
// relative to the given base path
func createFileImageFetcher(basePath string) images.ImageFetcher {
	return func(uri string) ([]byte, error) {
		// Skip data URIs and absolute URLs
		if strings.HasPrefix(uri, "data:") || strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
			return nil, fmt.Errorf("unsupported URI scheme: %s", uri)
		}

		// Resolve relative path against base path
		imagePath := filepath.Join(basePath, uri)
		return os.ReadFile(imagePath)
	}
}

// RenderHTMLFile renders an HTML file to a PNG file
func RenderHTMLFile(htmlPath, outputPath string, width, height int) error {
	htmlContent, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}

	return RenderHTMLToFile(string(htmlContent), outputPath, width, height)
}

// UpdateReferenceImage generates a new reference image
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(htmlPath, referencePath string, width, height int) error {
	fmt.Printf("⚠️  Updating reference image: %s\n", referencePath)
	return RenderHTMLFile(htmlPath, referencePath, width, height)
}
