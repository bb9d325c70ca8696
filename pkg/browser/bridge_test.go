package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyanrus/dop-browser-sub001/pkg/css"
	"github.com/nyanrus/dop-browser-sub001/pkg/html"
	"github.com/nyanrus/dop-browser-sub001/pkg/layout"
)

func buildDoc() *html.Document {
	doc := html.NewDocument()
	div := &html.Node{Type: html.ElementNode, TagName: "div"}
	p := &html.Node{Type: html.ElementNode, TagName: "p"}
	span := &html.Node{Type: html.ElementNode, TagName: "span"}
	doc.Root.AddChild(div)
	div.AddChild(p)
	div.AppendText("ignored") // text nodes must not get a layout id
	p.AddChild(span)
	return doc
}

func TestBuildTree_AssignsIDsInDocumentOrderSkippingText(t *testing.T) {
	doc := buildDoc()
	tree, idmap := BuildTree(doc)

	assert.Equal(t, 4, idmap.Len()) // document root + div + p + span
	root := layout.NodeID(1)
	assert.Equal(t, doc.Root, idmap.Node(root))

	divID := idmap.NodeID(doc.Root.Children[0])
	assert.Equal(t, layout.NodeID(2), divID)

	children := tree.Children(root)
	assert.Equal(t, []layout.NodeID{divID}, children)
}

func TestBuildTree_ParentChildWiring(t *testing.T) {
	doc := buildDoc()
	tree, idmap := BuildTree(doc)

	div := doc.Root.Children[0]
	p := div.Children[0]
	span := p.Children[0]

	divID := idmap.NodeID(div)
	pID := idmap.NodeID(p)
	spanID := idmap.NodeID(span)

	assert.Equal(t, divID, tree.Parent(pID))
	assert.Equal(t, pID, tree.Parent(spanID))
	assert.Equal(t, []layout.NodeID{pID}, tree.Children(divID))
}

func TestApplyComputedStyles_WritesTypedFields(t *testing.T) {
	doc := buildDoc()
	tree, idmap := BuildTree(doc)
	st := layout.NewStyleTable(idmap.Len())
	lt := layout.NewLayoutTable(idmap.Len())
	_ = tree

	div := doc.Root.Children[0]
	s := css.NewStyle()
	s.Set("display", "flex")
	s.Set("width", "200px")
	s.Set("justify-content", "space-between")
	s.Set("background-color", "red")

	computed := map[*html.Node]*css.Style{div: s}
	gens := make(map[layout.NodeID]*css.Style)

	ApplyComputedStyles(computed, idmap, st, lt, gens)

	divID := idmap.NodeID(div)
	assert.Equal(t, layout.DisplayFlex, st.GetDisplay(divID))
	assert.False(t, st.GetWidth(divID).Auto)
	assert.Equal(t, 200.0, st.GetWidth(divID).Value)
	_, _, justify, _, _ := st.GetFlexContainer(divID)
	assert.Equal(t, layout.JustifySpaceBetween, justify)
	bg, hasBg := st.GetBackground(divID)
	assert.True(t, hasBg)
	assert.Equal(t, uint8(255), bg.R)
}

func TestApplyComputedStyles_SkipsUnchangedGeneration(t *testing.T) {
	doc := buildDoc()
	tree, idmap := BuildTree(doc)
	st := layout.NewStyleTable(idmap.Len())
	lt := layout.NewLayoutTable(idmap.Len())
	d := &layout.Document{Tree: tree, Style: st, Layout: lt}

	div := doc.Root.Children[0]
	s := css.NewStyle()
	s.Set("width", "100px")
	computed := map[*html.Node]*css.Style{div: s}
	gens := make(map[layout.NodeID]*css.Style)
	divID := idmap.NodeID(div)

	ApplyComputedStyles(computed, idmap, st, lt, gens)
	d.ComputeLayout() // clears dirty for every node, including divID
	assert.False(t, lt.IsDirty(divID))

	ApplyComputedStyles(computed, idmap, st, lt, gens) // same *css.Style pointer
	assert.False(t, lt.IsDirty(divID), "reapplying an unchanged cascade result must not re-mark dirty")

	s2 := css.NewStyle()
	s2.Set("width", "200px")
	computed[div] = s2
	ApplyComputedStyles(computed, idmap, st, lt, gens)
	assert.True(t, lt.IsDirty(divID), "a genuinely new cascade result must mark dirty")
}
