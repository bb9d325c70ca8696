package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nyanrus/dop-browser-sub001/pkg/browser"
	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
	"github.com/nyanrus/dop-browser-sub001/pkg/render"
)

// buildAndReflow parses htmlContent, cascades CSS onto it, bridges the
// result into the SoA layout core, and runs a reflow, mirroring what
// pkg/resource.PageRenderer does for a full page render.
func buildAndReflow(t *testing.T, htmlContent string, viewportWidth, viewportHeight float64) (*layout.Document, *browser.IDMap) {
	t.Helper()
	doc, err := html.Parse(htmlContent)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	tree, idmap := browser.BuildTree(doc)
	ld := layout.NewDocumentWithTree(tree, viewportWidth, viewportHeight)
	computed := css.ApplyStylesToDocument(doc, viewportWidth, viewportHeight)
	browser.ApplyComputedStyles(computed, idmap, ld.Style, ld.Layout, make(map[layout.NodeID]*css.Style))

	pipeline := browser.NewPipeline(ld, idmap, idmap.Len(), nil)
	defer pipeline.Close()
	pipeline.Reflow()

	return ld, idmap
}

func TestIntegration_SimpleHTMLToBoxes(t *testing.T) {
	htmlContent := `<div style="background-color: red; width: 100px; height: 100px;"></div>`

	doc, err := html.Parse(htmlContent)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(doc.Root.Children))
	}

	ld, idmap := buildAndReflow(t, htmlContent, 800, 600)
	if idmap.Len() != 2 {
		t.Fatalf("expected 2 nodes (document root + div), got %d", idmap.Len())
	}

	g := ld.Layout.Get(2)
	if g.Width != 100.0 {
		t.Errorf("expected width=100, got %f", g.Width)
	}
	if g.Height != 100.0 {
		t.Errorf("expected height=100, got %f", g.Height)
	}

	bg, ok := ld.Style.GetBackground(2)
	if !ok {
		t.Fatal("expected background to be set")
	}
	if bg.R != 255 || bg.G != 0 || bg.B != 0 {
		t.Errorf("expected red background, got %+v", bg)
	}
}

func TestIntegration_MultipleElements(t *testing.T) {
	htmlContent := `
		<div style="background-color: red; width: 200px; height: 100px;"></div>
		<div style="background-color: blue; width: 300px; height: 50px;"></div>
	`
	ld, idmap := buildAndReflow(t, htmlContent, 800, 600)
	if idmap.Len() != 3 {
		t.Fatalf("expected 3 nodes (document root + 2 divs), got %d", idmap.Len())
	}

	first, second := ld.Layout.Get(2), ld.Layout.Get(3)
	if first.Width != 200.0 {
		t.Errorf("node 2: expected width=200, got %f", first.Width)
	}
	if first.Y != 0.0 {
		t.Errorf("node 2: expected Y=0, got %f", first.Y)
	}
	if second.Width != 300.0 {
		t.Errorf("node 3: expected width=300, got %f", second.Width)
	}
	if second.Y != 100.0 {
		t.Errorf("node 3: expected Y=100, got %f", second.Y)
	}
}

func TestIntegration_EndToEndRender(t *testing.T) {
	htmlContent := `
		<div style="background-color: red; width: 200px; height: 100px;"></div>
		<div style="background-color: blue; width: 300px; height: 50px;"></div>
	`
	ld, idmap := buildAndReflow(t, htmlContent, 800, 600)

	renderer := render.NewRenderer(800, 600)
	renderer.Render(ld, idmap)

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.png")
	if err := renderer.SavePNG(tmpFile); err != nil {
		t.Fatalf("save error: %v", err)
	}

	info, err := os.Stat(tmpFile)
	if err != nil {
		t.Fatalf("file stat error: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG file")
	}

	content, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(content) < 8 {
		t.Fatal("file too small to be a valid PNG")
	}

	pngSignature := []byte{137, 80, 78, 71, 13, 10, 26, 10}
	for i := 0; i < 8; i++ {
		if content[i] != pngSignature[i] {
			t.Errorf("byte %d: expected %d, got %d (not a valid PNG)", i, pngSignature[i], content[i])
		}
	}
}

func TestIntegration_AllNamedColors(t *testing.T) {
	colors := []string{
		"red", "green", "blue", "yellow", "cyan", "magenta",
		"white", "black", "gray", "orange", "purple", "pink",
	}

	for _, color := range colors {
		t.Run(color, func(t *testing.T) {
			htmlContent := `<div style="background-color: ` + color + `; width: 100px; height: 50px;"></div>`
			ld, idmap := buildAndReflow(t, htmlContent, 800, 600)
			if idmap.Len() != 2 {
				t.Fatalf("expected 2 nodes (document root + div), got %d", idmap.Len())
			}
			if _, ok := ld.Style.GetBackground(2); !ok {
				t.Errorf("expected background-color to resolve for %q", color)
			}
		})
	}
}

func TestIntegration_EmptyHTML(t *testing.T) {
	ld, idmap := buildAndReflow(t, "", 800, 600)
	if idmap.Len() != 1 {
		t.Errorf("expected only the document root for empty HTML, got %d nodes", idmap.Len())
	}

	renderer := render.NewRenderer(800, 600)
	renderer.Render(ld, idmap)

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "empty.png")
	if err := renderer.SavePNG(tmpFile); err != nil {
		t.Fatalf("save error: %v", err)
	}

	info, err := os.Stat(tmpFile)
	if err != nil {
		t.Fatalf("file stat error: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG file even for empty HTML")
	}
}

func TestIntegration_DefaultDimensions(t *testing.T) {
	ld, idmap := buildAndReflow(t, `<div></div>`, 1024, 768)
	if idmap.Len() != 2 {
		t.Fatalf("expected 2 nodes (document root + div), got %d", idmap.Len())
	}

	g := ld.Layout.Get(2)
	if g.Width != 0.0 {
		t.Errorf("expected width=0 (auto, no children), got %f", g.Width)
	}
	if g.Height != 0.0 {
		t.Errorf("expected height=0 (auto, no children), got %f", g.Height)
	}
}

func TestIntegration_ManyBoxes(t *testing.T) {
	htmlContent := ""
	for i := 0; i < 50; i++ {
		htmlContent += `<div style="background-color: red; width: 100px; height: 20px;"></div>`
	}

	ld, idmap := buildAndReflow(t, htmlContent, 800, 600)
	if idmap.Len() != 51 {
		t.Fatalf("expected 51 nodes (document root + 50 divs), got %d", idmap.Len())
	}

	for i := 2; i <= 51; i++ {
		g := ld.Layout.Get(layout.NodeID(i))
		expectedY := float64((i - 2) * 20)
		if g.Y != expectedY {
			t.Errorf("node %d: expected Y=%f, got %f", i, expectedY, g.Y)
		}
	}

	renderer := render.NewRenderer(800, 600)
	renderer.Render(ld, idmap)
}

func TestIntegration_ParseError(t *testing.T) {
	htmlContent := `<div style="unclosed`

	_, err := html.Parse(htmlContent)
	if err == nil {
		t.Error("expected parse error for malformed HTML")
	}
}

func TestIntegration_VariousSizes(t *testing.T) {
	tests := []struct {
		name   string
		width  string
		height string
	}{
		{"small", "10px", "10px"},
		{"medium", "100px", "100px"},
		{"large", "500px", "400px"},
		{"wide", "800px", "50px"},
		{"tall", "50px", "600px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			htmlContent := `<div style="width: ` + tt.width + `; height: ` + tt.height + `;"></div>`
			ld, idmap := buildAndReflow(t, htmlContent, 800, 600)
			if idmap.Len() != 2 {
				t.Fatalf("expected 2 nodes (document root + div), got %d", idmap.Len())
			}

			renderer := render.NewRenderer(800, 600)
			renderer.Render(ld, idmap)
		})
	}
}
