package layout

import "testing"

// S4 — 3x2 grid, container content box 300x200 at origin (10,20).
func TestComputeGridLayout_S4_ThreeByTwo(t *testing.T) {
	d := buildTestDoc(7, 800, 600)
	for i := NodeID(2); i <= 7; i++ {
		d.Tree.AppendChild(1, i)
	}

	d.Style.SetDisplay(d.Layout, 1, DisplayGrid)
	d.Style.SetGrid(d.Layout, 1, 3, 2)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 300})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 200})

	d.ComputeLayout() // resolves container content box from explicit width/height

	// Root has no parent to offset it, so pin its frame directly to the
	// scenario's (10,20) origin before running the grid pass.
	g := d.Layout.Get(1)
	g.X, g.Y = 10, 20
	d.Layout.setGeometry(1, g)

	d.ComputeGridLayout(1)

	wantX := []float64{10, 110, 210, 10, 110, 210}
	wantY := []float64{20, 20, 20, 120, 120, 120}
	for i, id := range []NodeID{2, 3, 4, 5, 6, 7} {
		cg := d.Layout.Get(id)
		if cg.X != wantX[i] || cg.Y != wantY[i] {
			t.Errorf("cell %d: expected (%v,%v), got (%v,%v)", id, wantX[i], wantY[i], cg.X, cg.Y)
		}
	}
}

func TestComputeGridLayout_ExtraChildrenClipToLastCell(t *testing.T) {
	d := buildTestDoc(6, 800, 600)
	for i := NodeID(2); i <= 6; i++ {
		d.Tree.AppendChild(1, i)
	}

	d.Style.SetDisplay(d.Layout, 1, DisplayGrid)
	d.Style.SetGrid(d.Layout, 1, 2, 2) // 4 cells, 5 children
	d.Style.SetWidth(d.Layout, 1, Length{Value: 200})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 200})

	d.ComputeLayout()
	d.ComputeGridLayout(1)

	last := d.Layout.Get(6) // 5th child, clipped into cell 3 (last cell)
	fourth := d.Layout.Get(5)
	if last.X != fourth.X || last.Y != fourth.Y {
		t.Fatalf("expected extra child clipped onto last cell, got (%v,%v) vs (%v,%v)",
			last.X, last.Y, fourth.X, fourth.Y)
	}
}

func TestComputeGridLayout_ChildClampedByMaxWidth(t *testing.T) {
	d := buildTestDoc(2, 800, 600)
	d.Tree.AppendChild(1, 2)

	d.Style.SetDisplay(d.Layout, 1, DisplayGrid)
	d.Style.SetGrid(d.Layout, 1, 1, 1)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 400})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 100})

	d.Style.SetMinMaxWidth(d.Layout, 2, Length{Auto: true}, Length{Value: 150})

	d.ComputeLayout()
	d.ComputeGridLayout(1)

	g := d.Layout.Get(2)
	if g.Width != 150 {
		t.Fatalf("expected child width clamped to max-width 150, got %v", g.Width)
	}
}

func TestComputeGridLayout_ZeroChildrenNoError(t *testing.T) {
	d := buildTestDoc(1, 800, 600)
	d.Style.SetDisplay(d.Layout, 1, DisplayGrid)
	d.Style.SetGrid(d.Layout, 1, 2, 2)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 200})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 200})

	d.ComputeLayout()
	d.ComputeGridLayout(1) // must not panic with no children
}
