package geometry

import "math"

// Integer point in the logical coordinate space.
type Point struct {
	X, Y int
}

// Floating point variant, used for pointer positions.
type PointF struct {
	X, Y float64
}

type Size struct {
	W, H int
}

// Rect is a location plus a size. Zero value is an empty rect at the origin.
type Rect struct {
	Loc  Point
	Size Size
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) ToF() PointF {
	return PointF{X: float64(p.X), Y: float64(p.Y)}
}

func (p PointF) Add(o PointF) PointF {
	return PointF{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p PointF) Sub(o PointF) PointF {
	return PointF{X: p.X - o.X, Y: p.Y - o.Y}
}

// Round floors both coordinates, so negative positions stay consistent
// with the integer grid instead of truncating toward zero.
func (p PointF) Round() Point {
	return Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

func RectAt(loc Point, size Size) Rect {
	return Rect{Loc: loc, Size: size}
}

func (r Rect) Empty() bool {
	return r.Size.Empty()
}

// Contains reports whether the point lies inside the rect. The right and
// bottom edges are exclusive.
func (r Rect) Contains(p PointF) bool {
	return p.X >= float64(r.Loc.X) && p.X < float64(r.Loc.X+r.Size.W) &&
		p.Y >= float64(r.Loc.Y) && p.Y < float64(r.Loc.Y+r.Size.H)
}

// Merge returns the smallest rect covering both r and o. Empty rects do not
// grow the result beyond their location.
func (r Rect) Merge(o Rect) Rect {
	if r.Empty() {
		if o.Empty() {
			return r
		}
		return o
	}
	if o.Empty() {
		return r
	}
	left := min(r.Loc.X, o.Loc.X)
	top := min(r.Loc.Y, o.Loc.Y)
	right := max(r.Loc.X+r.Size.W, o.Loc.X+o.Size.W)
	bottom := max(r.Loc.Y+r.Size.H, o.Loc.Y+o.Size.H)
	return Rect{
		Loc:  Point{X: left, Y: top},
		Size: Size{W: right - left, H: bottom - top},
	}
}

// Edges is a bitmask of the screen edges taking part in a resize.
type Edges uint32

const (
	EdgeNone   Edges = 0
	EdgeTop    Edges = 1 << 0
	EdgeBottom Edges = 1 << 1
	EdgeLeft   Edges = 1 << 2
	EdgeRight  Edges = 1 << 3

	EdgeTopLeft     = EdgeTop | EdgeLeft
	EdgeBottomLeft  = EdgeBottom | EdgeLeft
	EdgeTopRight    = EdgeTop | EdgeRight
	EdgeBottomRight = EdgeBottom | EdgeRight
)

func (e Edges) Intersects(o Edges) bool {
	return e&o != 0
}
