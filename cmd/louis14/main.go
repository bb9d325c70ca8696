package main

import (
	"fmt"
	"os"

	"github.com/nyanrus/dop-browser-sub001/pkg/browser"
	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
	"github.com/nyanrus/dop-browser-sub001/pkg/render"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.html> <output.png>\n", os.Args[0])
		os.Exit(1)
	}
	inputFile := os.Args[1]
	outputFile := os.Args[2]
	htmlContent, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	doc, err := html.Parse(string(htmlContent))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}
	viewportWidth := 800.0
	viewportHeight := 600.0

	tree, idmap := browser.BuildTree(doc)
	ld := layout.NewDocumentWithTree(tree, viewportWidth, viewportHeight)
	computed := css.ApplyStylesToDocument(doc, viewportWidth, viewportHeight)
	browser.ApplyComputedStyles(computed, idmap, ld.Style, ld.Layout, make(map[layout.NodeID]*css.Style))

	pipeline := browser.NewPipeline(ld, idmap, idmap.Len(), nil)
	defer pipeline.Close()
	pipeline.Reflow()

	renderer := render.NewRenderer(int(viewportWidth), int(viewportHeight))
	renderer.Render(ld, idmap)
	if err := renderer.SavePNG(outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully rendered %s to %s\n", inputFile, outputFile)
	fmt.Printf("Rendered %d nodes\n", idmap.Len())
}
