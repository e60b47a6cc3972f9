package geometry

import "testing"

func TestRectContainsEdgeExclusive(t *testing.T) {
	r := RectAt(Point{X: 10, Y: 10}, Size{W: 100, H: 50})

	if !r.Contains(PointF{X: 10, Y: 10}) {
		t.Errorf("Top-left corner should be inside")
	}
	if r.Contains(PointF{X: 110, Y: 10}) {
		t.Errorf("Right edge should be exclusive")
	}
	if r.Contains(PointF{X: 10, Y: 60}) {
		t.Errorf("Bottom edge should be exclusive")
	}
	if !r.Contains(PointF{X: 109.9, Y: 59.9}) {
		t.Errorf("Point just inside the bottom-right corner should be inside")
	}
	if r.Contains(PointF{X: 9.9, Y: 10}) {
		t.Errorf("Point left of the rect should be outside")
	}
}

func TestRectMerge(t *testing.T) {
	a := RectAt(Point{X: 0, Y: 0}, Size{W: 10, H: 10})
	b := RectAt(Point{X: 20, Y: 5}, Size{W: 10, H: 10})

	m := a.Merge(b)
	want := RectAt(Point{X: 0, Y: 0}, Size{W: 30, H: 15})
	if m != want {
		t.Errorf("Merged rect is %+v, wanted %+v", m, want)
	}
}

func TestRectMergeEmpty(t *testing.T) {
	empty := RectAt(Point{X: 100, Y: 100}, Size{})
	full := RectAt(Point{X: 0, Y: 0}, Size{W: 10, H: 10})

	if m := empty.Merge(full); m != full {
		t.Errorf("Empty rect grew the merge to %+v", m)
	}
	if m := full.Merge(empty); m != full {
		t.Errorf("Empty rect grew the merge to %+v", m)
	}
	if m := empty.Merge(empty); m != empty {
		t.Errorf("Merging two empty rects changed the result to %+v", m)
	}
}

func TestPointFRoundFloors(t *testing.T) {
	if p := (PointF{X: 1.7, Y: 2.2}).Round(); p != (Point{X: 1, Y: 2}) {
		t.Errorf("Positive round gave %+v", p)
	}
	if p := (PointF{X: -0.5, Y: -1.1}).Round(); p != (Point{X: -1, Y: -2}) {
		t.Errorf("Negative round gave %+v", p)
	}
	// Integral values must round to themselves, sign regardless.
	if p := (PointF{X: -10, Y: -10}).Round(); p != (Point{X: -10, Y: -10}) {
		t.Errorf("Integral negative round gave %+v", p)
	}
	if p := (PointF{X: 3, Y: 0}).Round(); p != (Point{X: 3, Y: 0}) {
		t.Errorf("Integral round gave %+v", p)
	}
}

func TestEdgesIntersects(t *testing.T) {
	if !EdgeTopLeft.Intersects(EdgeLeft) {
		t.Errorf("Top-left should intersect left")
	}
	if EdgeTopLeft.Intersects(EdgeBottom) {
		t.Errorf("Top-left should not intersect bottom")
	}
	if EdgeNone.Intersects(EdgeTop) {
		t.Errorf("No edges should intersect nothing")
	}
}
