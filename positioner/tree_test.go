package positioner

import (
	"testing"

	"github.com/lavenderwm/lavender/desktop"
	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Check creation of new empty tree
func TestTreeCreate(t *testing.T) {
	tree := NewTree()
	if tree.LastFocused == nil {
		t.Errorf("Last focused leaf is nil")
	}
	if tree.LastFocused != tree.Root.Leaf {
		t.Errorf("Last focused leaf is not the root leaf")
	}
	if tree.Root.Leaf.Window != nil {
		t.Errorf("Root leaf is not an empty slot")
	}
	if err := checkNode(&tree.Root); err != nil {
		t.Errorf("Invalid tree structure: %s", err)
	}
}

func TestTreeInsertReusesEmptySlot(t *testing.T) {
	st := surface.NewStore()
	tree := NewTree()
	w, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	tree.AddWindow(w)

	if tree.Root.Type != NodeTypeLeaf || tree.Root.Leaf.Window != w {
		t.Errorf("First window did not land in the root slot")
	}
	if tree.LastFocused.Window != w {
		t.Errorf("Last focused leaf not updated")
	}
	if err := checkNode(&tree.Root); err != nil {
		t.Errorf("Invalid tree structure: %s", err)
	}
}

func collectRects(tree *Tree, space geometry.Rect) map[*desktop.Window]geometry.Rect {
	rects := map[*desktop.Window]geometry.Rect{}
	tree.Apply(space, func(w *desktop.Window, r geometry.Rect) {
		rects[w] = r
	})
	return rects
}

func TestTreeSplitDirectionAlternates(t *testing.T) {
	st := surface.NewStore()
	tree := NewTree()
	w1, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	w2, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	w3, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	tree.AddWindow(w1)
	tree.AddWindow(w2)
	tree.AddWindow(w3)

	if err := checkNode(&tree.Root); err != nil {
		t.Fatalf("Invalid tree structure: %s", err)
	}

	space := geometry.RectAt(geometry.Point{}, geometry.Size{W: 100, H: 100})
	rects := collectRects(&tree, space)

	// First split stacks vertically, the second splits the bottom half
	// horizontally.
	if rects[w1] != geometry.RectAt(geometry.Point{}, geometry.Size{W: 100, H: 50}) {
		t.Errorf("First window at %+v", rects[w1])
	}
	if rects[w2] != geometry.RectAt(geometry.Point{Y: 50}, geometry.Size{W: 50, H: 50}) {
		t.Errorf("Second window at %+v", rects[w2])
	}
	if rects[w3] != geometry.RectAt(geometry.Point{X: 50, Y: 50}, geometry.Size{W: 50, H: 50}) {
		t.Errorf("Third window at %+v", rects[w3])
	}
}

func TestTreeRemovePromotesSibling(t *testing.T) {
	st := surface.NewStore()
	tree := NewTree()
	w1, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	w2, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	w3, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	tree.AddWindow(w1)
	tree.AddWindow(w2)
	tree.AddWindow(w3)

	tree.RemoveWindow(w1)
	if err := checkNode(&tree.Root); err != nil {
		t.Fatalf("Invalid tree structure after removal: %s", err)
	}

	space := geometry.RectAt(geometry.Point{}, geometry.Size{W: 100, H: 100})
	rects := collectRects(&tree, space)

	if _, ok := rects[w1]; ok {
		t.Errorf("Removed window still placed")
	}
	// The sibling branch takes the whole space.
	if rects[w2] != geometry.RectAt(geometry.Point{}, geometry.Size{W: 50, H: 100}) {
		t.Errorf("Promoted sibling's left window at %+v", rects[w2])
	}
	if rects[w3] != geometry.RectAt(geometry.Point{X: 50}, geometry.Size{W: 50, H: 100}) {
		t.Errorf("Promoted sibling's right window at %+v", rects[w3])
	}
}

func TestTreeRemoveLastKeepsEmptyRoot(t *testing.T) {
	st := surface.NewStore()
	tree := NewTree()
	w, _ := newMappedWindow(st, geometry.Size{W: 10, H: 10})
	tree.AddWindow(w)
	tree.RemoveWindow(w)

	if tree.Root.Type != NodeTypeLeaf || tree.Root.Leaf.Window != nil {
		t.Errorf("Removing the last window did not leave an empty root slot")
	}
	if tree.LastFocused != tree.Root.Leaf {
		t.Errorf("Last focused not reset to the empty slot")
	}
}
