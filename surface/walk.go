package surface

import "github.com/lavenderwm/lavender/geometry"

// WalkAction is returned by a visit callback to steer the traversal.
type WalkAction int

const (
	// WalkDescend continues into the node's sub-surfaces.
	WalkDescend WalkAction = iota
	// WalkSkipChildren visits the node's siblings but not its subtree.
	WalkSkipChildren
	// WalkStop ends the whole walk immediately.
	WalkStop
)

type walkItem struct {
	s   Surface
	loc geometry.Point
}

// Walk traverses the surface tree rooted at root depth-first, topmost
// sub-surfaces first, accumulating sub-surface positions into the location
// handed to the visit callback. The callback receives the surface's state
// record, or nil if none has been created yet.
//
// The traversal keeps an explicit worklist; visit callbacks must not start
// another walk of the same store.
func (st *Store) Walk(root Surface, loc geometry.Point, visit func(s Surface, d *Data, loc geometry.Point) WalkAction) {
	if !st.enterWalk() {
		return
	}
	defer st.leaveWalk()

	stack := []walkItem{{s: root, loc: loc}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d, _ := st.Lookup(item.s)
		switch visit(item.s, d, item.loc) {
		case WalkStop:
			return
		case WalkSkipChildren:
			continue
		}

		children := item.s.Children()
		// Push in reverse so the topmost child is visited first.
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			stack = append(stack, walkItem{
				s:   child,
				loc: item.loc.Add(child.Position()),
			})
		}
	}
}

// UpdateBuffers propagates the attached-buffer dimensions of every surface
// in the tree into its state record. A surface without a buffer hides its
// subtree, so traversal skips it.
func (st *Store) UpdateBuffers(root Surface) {
	st.Walk(root, geometry.Point{}, func(s Surface, d *Data, _ geometry.Point) WalkAction {
		if d == nil {
			d = st.Get(s)
		}
		d.RefreshBuffer(s)
		if _, ok := d.Size(); !ok {
			return WalkSkipChildren
		}
		return WalkDescend
	})
}

// SurfaceAt finds the first surface in descent order whose buffer contains
// the point, returning it together with its accumulated location.
func (st *Store) SurfaceAt(root Surface, rootLoc geometry.Point, p geometry.PointF) (Surface, geometry.Point, bool) {
	var (
		found    Surface
		foundLoc geometry.Point
	)
	st.Walk(root, rootLoc, func(s Surface, d *Data, loc geometry.Point) WalkAction {
		if d != nil && d.ContainsPoint(p.Sub(loc.ToF())) {
			found = s
			foundLoc = loc
			return WalkStop
		}
		return WalkDescend
	})
	if found == nil {
		return nil, geometry.Point{}, false
	}
	return found, foundLoc, true
}

// BoundingBox unions the geometry of every mapped surface in the tree,
// starting from a zero-size rect at the root location. Unmapped surfaces
// and their subtrees contribute nothing.
func (st *Store) BoundingBox(root Surface, rootLoc geometry.Point) geometry.Rect {
	bbox := geometry.RectAt(rootLoc, geometry.Size{})
	st.Walk(root, rootLoc, func(s Surface, d *Data, loc geometry.Point) WalkAction {
		if d == nil {
			return WalkSkipChildren
		}
		size, ok := d.Size()
		if !ok {
			return WalkSkipChildren
		}
		bbox = bbox.Merge(geometry.RectAt(loc, size))
		return WalkDescend
	})
	return bbox
}

// SendFrames fires and clears the queued frame callbacks of every surface
// in the tree, mapped or not.
func (st *Store) SendFrames(root Surface, timeMillis uint32) {
	st.Walk(root, geometry.Point{}, func(s Surface, d *Data, _ geometry.Point) WalkAction {
		if d != nil {
			d.flushFrames(timeMillis)
		}
		return WalkDescend
	})
}
