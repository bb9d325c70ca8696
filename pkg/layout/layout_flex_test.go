package layout

import "testing"

// S3 — flex row, justify-content space-between, align-items center, three
// 100x40 children inside a 600x100 container.
func TestComputeFlexboxLayout_S3_RowSpaceBetweenCenter(t *testing.T) {
	d := buildTestDoc(4, 800, 600)
	d.Tree.AppendChild(1, 2)
	d.Tree.AppendChild(1, 3)
	d.Tree.AppendChild(1, 4)

	d.Style.SetDisplay(d.Layout, 1, DisplayFlex)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 600})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 100})
	d.Style.SetJustifyContent(d.Layout, 1, JustifySpaceBetween)
	d.Style.SetAlignItems(d.Layout, 1, AlignItemsCenter)

	for _, id := range []NodeID{2, 3, 4} {
		d.Style.SetWidth(d.Layout, id, Length{Value: 100})
	}
	d.Style.SetHeight(d.Layout, 2, Length{Value: 40})
	d.Style.SetHeight(d.Layout, 3, Length{Value: 40})
	d.Style.SetHeight(d.Layout, 4, Length{Value: 40})

	d.ComputeLayout()
	d.ComputeFlexboxLayout(1)

	wantX := []float64{0, 250, 500}
	for i, id := range []NodeID{2, 3, 4} {
		g := d.Layout.Get(id)
		if g.X != wantX[i] {
			t.Errorf("item %d: expected x=%v, got %v", id, wantX[i], g.X)
		}
		if g.Y != 30 {
			t.Errorf("item %d: expected y=30 (centered in 100 high container), got %v", id, g.Y)
		}
	}
}

func TestComputeFlexboxLayout_ColumnDirection(t *testing.T) {
	d := buildTestDoc(3, 800, 600)
	d.Tree.AppendChild(1, 2)
	d.Tree.AppendChild(1, 3)

	d.Style.SetDisplay(d.Layout, 1, DisplayFlex)
	d.Style.SetFlexDirection(d.Layout, 1, FlexDirectionColumn)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 200})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 300})

	d.Style.SetWidth(d.Layout, 2, Length{Value: 50})
	d.Style.SetHeight(d.Layout, 2, Length{Value: 100})
	d.Style.SetWidth(d.Layout, 3, Length{Value: 50})
	d.Style.SetHeight(d.Layout, 3, Length{Value: 100})

	d.ComputeLayout()
	d.ComputeFlexboxLayout(1)

	g2 := d.Layout.Get(2)
	g3 := d.Layout.Get(3)
	if g2.Y != 0 || g3.Y != 100 {
		t.Fatalf("expected column stacking at y=0,100; got y=%v,%v", g2.Y, g3.Y)
	}
}

func TestComputeFlexboxLayout_MinMaxClamping(t *testing.T) {
	d := buildTestDoc(3, 800, 600)
	d.Tree.AppendChild(1, 2)
	d.Tree.AppendChild(1, 3)

	d.Style.SetDisplay(d.Layout, 1, DisplayFlex)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 400})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 50})

	d.Style.SetWidth(d.Layout, 2, Length{Value: 350})
	d.Style.SetMinMaxWidth(d.Layout, 2, Length{Auto: true}, Length{Value: 200})
	d.Style.SetWidth(d.Layout, 3, Length{Value: 50})

	d.ComputeLayout()
	d.ComputeFlexboxLayout(1)

	g2 := d.Layout.Get(2)
	if g2.Width != 200 {
		t.Fatalf("expected item 2 clamped to max-width 200, got %v", g2.Width)
	}
}

func TestComputeFlexboxLayout_AbsoluteChildUsesContainerAsContainingBlock(t *testing.T) {
	d := buildTestDoc(3, 800, 600)
	d.Tree.AppendChild(1, 2)
	d.Tree.AppendChild(1, 3)

	d.Style.SetDisplay(d.Layout, 1, DisplayFlex)
	d.Style.SetPosition(d.Layout, 1, PositionRelative)
	d.Style.SetWidth(d.Layout, 1, Length{Value: 300})
	d.Style.SetHeight(d.Layout, 1, Length{Value: 200})

	d.Style.SetPosition(d.Layout, 2, PositionAbsolute)
	d.Style.SetOffset(d.Layout, 2, "top", Length{Value: 10})
	d.Style.SetOffset(d.Layout, 2, "left", Length{Value: 20})
	d.Style.SetWidth(d.Layout, 2, Length{Value: 50})
	d.Style.SetHeight(d.Layout, 2, Length{Value: 30})

	d.Style.SetWidth(d.Layout, 3, Length{Value: 100})
	d.Style.SetHeight(d.Layout, 3, Length{Value: 40})

	d.ComputeLayout()
	d.ComputeFlexboxLayout(1)

	g2 := d.Layout.Get(2)
	if g2.X != 20 || g2.Y != 10 {
		t.Fatalf("expected absolute child placed at (20,10) against flex container, got (%v,%v)", g2.X, g2.Y)
	}
}
