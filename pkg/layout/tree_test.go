package layout

import "testing"

func TestTree_AppendChildOrdersSiblings(t *testing.T) {
	tr := NewTree(4)
	tr.AppendChild(1, 2)
	tr.AppendChild(1, 3)
	tr.AppendChild(1, 4)

	got := tr.Children(1)
	want := []NodeID{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTree_PrecedingSiblingsExcludesSelfAndLater(t *testing.T) {
	tr := NewTree(4)
	tr.AppendChild(1, 2)
	tr.AppendChild(1, 3)
	tr.AppendChild(1, 4)

	pre := tr.PrecedingSiblings(3)
	if len(pre) != 1 || pre[0] != 2 {
		t.Fatalf("expected [2], got %v", pre)
	}

	pre = tr.PrecedingSiblings(2)
	if len(pre) != 0 {
		t.Fatalf("expected no preceding siblings for the first child, got %v", pre)
	}
}

func TestTree_OutOfRangeIsNoOp(t *testing.T) {
	tr := NewTree(2)
	tr.AppendChild(1, 99) // out of range child, no-op
	if got := tr.Children(1); len(got) != 0 {
		t.Fatalf("expected append with out-of-range child to be a no-op, got %v", got)
	}
	if p := tr.Parent(99); p != NoNode {
		t.Fatalf("expected NoNode for out-of-range id, got %v", p)
	}
}

func TestTree_Resize(t *testing.T) {
	tr := NewTree(2)
	tr.AppendChild(1, 2)
	tr.Resize(5)
	if tr.Len() != 5 {
		t.Fatalf("expected Len()=5 after resize, got %d", tr.Len())
	}
	if p := tr.Parent(2); p != NoNode {
		t.Fatalf("expected resize to reset all fields, got parent=%v", p)
	}
}
