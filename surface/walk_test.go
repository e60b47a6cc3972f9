package surface

import (
	"testing"

	"github.com/lavenderwm/lavender/geometry"
)

// Builds root -> (a -> a1, b), everything mapped.
func buildTree() (root, a, a1, b *fakeSurface) {
	root = newFakeSurface(RoleToplevel)
	a = root.attachChild(newFakeSurface(RoleSubsurface), geometry.Point{X: 10, Y: 0})
	a1 = a.attachChild(newFakeSurface(RoleSubsurface), geometry.Point{X: 5, Y: 5})
	b = root.attachChild(newFakeSurface(RoleSubsurface), geometry.Point{X: 0, Y: 30})
	for _, s := range []*fakeSurface{root, a, a1, b} {
		s.attachBuffer(geometry.Size{W: 20, H: 20})
	}
	return
}

func TestWalkOrderAndLocations(t *testing.T) {
	st := NewStore()
	root, a, a1, b := buildTree()

	var order []Surface
	locs := map[Surface]geometry.Point{}
	st.Walk(root, geometry.Point{X: 100, Y: 100}, func(s Surface, _ *Data, loc geometry.Point) WalkAction {
		order = append(order, s)
		locs[s] = loc
		return WalkDescend
	})

	want := []Surface{root, a, a1, b}
	if len(order) != len(want) {
		t.Fatalf("Visited %d surfaces, wanted %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Visit %d is wrong, depth-first with the topmost child first expected", i)
		}
	}

	if locs[a1] != (geometry.Point{X: 115, Y: 105}) {
		t.Errorf("Nested child location is %+v, positions should accumulate", locs[a1])
	}
	if locs[b] != (geometry.Point{X: 100, Y: 130}) {
		t.Errorf("Second child location is %+v", locs[b])
	}
}

func TestWalkSkipChildren(t *testing.T) {
	st := NewStore()
	root, a, a1, b := buildTree()

	var order []Surface
	st.Walk(root, geometry.Point{}, func(s Surface, _ *Data, _ geometry.Point) WalkAction {
		order = append(order, s)
		if s == Surface(a) {
			return WalkSkipChildren
		}
		return WalkDescend
	})

	for _, s := range order {
		if s == Surface(a1) {
			t.Errorf("Skipped subtree was still visited")
		}
	}
	if len(order) != 3 || order[2] != Surface(b) {
		t.Errorf("Siblings of a skipped node should still be visited")
	}
}

func TestWalkStop(t *testing.T) {
	st := NewStore()
	root, a, _, _ := buildTree()

	var count int
	st.Walk(root, geometry.Point{}, func(s Surface, _ *Data, _ geometry.Point) WalkAction {
		count++
		if s == Surface(a) {
			return WalkStop
		}
		return WalkDescend
	})
	if count != 2 {
		t.Errorf("Walk visited %d surfaces after a stop at the second", count)
	}
}

func TestWalkRejectsReentry(t *testing.T) {
	st := NewStore()
	root, _, _, _ := buildTree()

	var inner int
	st.Walk(root, geometry.Point{}, func(Surface, *Data, geometry.Point) WalkAction {
		st.Walk(root, geometry.Point{}, func(Surface, *Data, geometry.Point) WalkAction {
			inner++
			return WalkDescend
		})
		return WalkStop
	})
	if inner != 0 {
		t.Errorf("Re-entrant walk visited %d surfaces, should have been rejected", inner)
	}

	// The guard resets once the outer walk ends.
	var after int
	st.Walk(root, geometry.Point{}, func(Surface, *Data, geometry.Point) WalkAction {
		after++
		return WalkDescend
	})
	if after == 0 {
		t.Errorf("Walks stay rejected after the outer walk finished")
	}
}

func TestUpdateBuffersSkipsUnmappedSubtree(t *testing.T) {
	st := NewStore()
	root, a, a1, b := buildTree()
	a.hasBuffer = false

	st.UpdateBuffers(root)

	if _, ok := st.Lookup(a1); ok {
		t.Errorf("Child below an unmapped surface got a record")
	}
	if d, ok := st.Lookup(b); !ok {
		t.Errorf("Mapped sibling got no record")
	} else if _, mapped := d.Size(); !mapped {
		t.Errorf("Mapped sibling record has no buffer")
	}
	if d, ok := st.Lookup(a); !ok {
		t.Errorf("The unmapped surface itself should still get a record")
	} else if _, mapped := d.Size(); mapped {
		t.Errorf("Unmapped surface reports a buffer")
	}
}

func TestSurfaceAtPrefersTopmost(t *testing.T) {
	st := NewStore()
	root := newFakeSurface(RoleToplevel)
	root.attachBuffer(geometry.Size{W: 100, H: 100})
	// Topmost first: top overlaps bottom entirely.
	top := root.attachChild(newFakeSurface(RoleSubsurface), geometry.Point{X: 10, Y: 10})
	top.attachBuffer(geometry.Size{W: 30, H: 30})
	bottom := root.attachChild(newFakeSurface(RoleSubsurface), geometry.Point{X: 10, Y: 10})
	bottom.attachBuffer(geometry.Size{W: 30, H: 30})
	st.UpdateBuffers(root)

	s, loc, ok := st.SurfaceAt(root, geometry.Point{}, geometry.PointF{X: 15, Y: 15})
	if !ok {
		t.Fatalf("No surface found under the point")
	}
	if s != Surface(top) {
		t.Errorf("Hit the wrong surface, topmost child should win")
	}
	if loc != (geometry.Point{X: 10, Y: 10}) {
		t.Errorf("Hit location is %+v", loc)
	}

	if _, _, ok := st.SurfaceAt(root, geometry.Point{}, geometry.PointF{X: 200, Y: 200}); ok {
		t.Errorf("Found a surface outside the whole tree")
	}
}

func TestBoundingBoxUnionsMappedOnly(t *testing.T) {
	st := NewStore()
	root, a, _, _ := buildTree()
	st.UpdateBuffers(root)

	bbox := st.BoundingBox(root, geometry.Point{X: 100, Y: 100})
	// root covers 100..120, a reaches 130 on x via a1, b reaches 150 on y.
	want := geometry.RectAt(geometry.Point{X: 100, Y: 100}, geometry.Size{W: 35, H: 50})
	if bbox != want {
		t.Errorf("Bounding box is %+v, wanted %+v", bbox, want)
	}

	// Unmapping a hides its subtree from the box.
	a.hasBuffer = false
	st.UpdateBuffers(root)
	bbox = st.BoundingBox(root, geometry.Point{X: 100, Y: 100})
	want = geometry.RectAt(geometry.Point{X: 100, Y: 100}, geometry.Size{W: 20, H: 50})
	if bbox != want {
		t.Errorf("Bounding box with unmapped subtree is %+v, wanted %+v", bbox, want)
	}
}

func TestBoundingBoxEmptyTree(t *testing.T) {
	st := NewStore()
	root := newFakeSurface(RoleToplevel)

	bbox := st.BoundingBox(root, geometry.Point{X: 7, Y: 9})
	if bbox != geometry.RectAt(geometry.Point{X: 7, Y: 9}, geometry.Size{}) {
		t.Errorf("Unmapped tree should give a zero-size rect at the root location, got %+v", bbox)
	}
}
