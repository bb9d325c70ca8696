package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
)

func buildFlexDoc() (*layout.Document, *IDMap) {
	doc := html.NewDocument()
	container := &html.Node{Type: html.ElementNode, TagName: "div"}
	a := &html.Node{Type: html.ElementNode, TagName: "span"}
	b := &html.Node{Type: html.ElementNode, TagName: "span"}
	doc.Root.AddChild(container)
	container.AddChild(a)
	container.AddChild(b)

	tree, idmap := BuildTree(doc)
	st := layout.NewStyleTable(idmap.Len())
	lt := layout.NewLayoutTable(idmap.Len())

	containerStyle := css.NewStyle()
	containerStyle.Set("display", "flex")
	containerStyle.Set("width", "400px")
	containerStyle.Set("height", "100px")
	containerStyle.Set("justify-content", "space-between")

	aStyle := css.NewStyle()
	aStyle.Set("width", "100px")
	aStyle.Set("height", "50px")
	bStyle := css.NewStyle()
	bStyle.Set("width", "100px")
	bStyle.Set("height", "50px")

	computed := map[*html.Node]*css.Style{
		container: containerStyle,
		a:         aStyle,
		b:         bStyle,
	}
	ApplyComputedStyles(computed, idmap, st, lt, make(map[layout.NodeID]*css.Style))

	d := &layout.Document{Tree: tree, Style: st, Layout: lt}
	return d, idmap
}

func TestPipeline_ReflowPlacesFlexChildren(t *testing.T) {
	d, idmap := buildFlexDoc()
	p := NewPipeline(d, idmap, 16, nil)
	defer p.Close()

	p.Reflow()

	containerID := layout.NodeID(2)
	aID := layout.NodeID(3)
	bID := layout.NodeID(4)

	cg := d.Layout.Get(containerID)
	assert.Equal(t, 400.0, cg.Width)

	ag := d.Layout.Get(aID)
	bg := d.Layout.Get(bID)
	assert.Equal(t, 0.0, ag.X)
	assert.Equal(t, 300.0, bg.X) // space-between over two 100-wide items in 400
}

func TestPipeline_ReflowPopulatesCache(t *testing.T) {
	d, idmap := buildFlexDoc()
	p := NewPipeline(d, idmap, 16, nil)
	defer p.Close()

	p.Reflow()

	assert.True(t, p.Cache().Has(layout.NodeID(1)))
	stats := p.Cache().Stats()
	assert.Equal(t, idmap.Len(), stats.Size)
}

func TestPipeline_InvalidateSubtreeEvictsAndRedirties(t *testing.T) {
	d, idmap := buildFlexDoc()
	p := NewPipeline(d, idmap, 16, nil)
	defer p.Close()

	p.Reflow()
	containerID := layout.NodeID(2)
	assert.False(t, d.Layout.IsDirty(containerID))

	p.InvalidateSubtree(containerID)

	assert.False(t, p.Cache().Has(containerID))
	assert.True(t, d.Layout.IsDirty(containerID))

	p.Reflow()
	assert.True(t, p.Cache().Has(containerID))
}

func TestPipeline_PrecacheWorkerDrainsQueue(t *testing.T) {
	d, idmap := buildFlexDoc()
	p := NewPipeline(d, idmap, 16, nil)
	defer p.Close()

	p.Reflow()
	containerID := layout.NodeID(2)
	p.InvalidateSubtree(containerID)
	p.EnqueuePrecache([]layout.NodeID{containerID})

	assert.Eventually(t, func() bool {
		return p.Cache().Has(containerID)
	}, time.Second, 5*time.Millisecond)
}
