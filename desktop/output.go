package desktop

import (
	"errors"

	"gitlab.com/mstarongitlab/goutils/sliceutils"

	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// ErrNoOutput is returned by operations that require at least one active
// output. The compositor is not expected to run without one.
var ErrNoOutput = errors.New("no active output")

// Output is one display in the layout, owning its layer map.
type Output struct {
	Name string

	geometry geometry.Rect
	layers   *LayerMap
}

func NewOutput(store *surface.Store, name string, size geometry.Size) *Output {
	return &Output{
		Name:     name,
		geometry: geometry.RectAt(geometry.Point{}, size),
		layers:   NewLayerMap(store),
	}
}

func (o *Output) Geometry() geometry.Rect {
	return o.geometry
}

func (o *Output) SetGeometry(r geometry.Rect) {
	o.geometry = r
}

func (o *Output) Layers() *LayerMap {
	return o.layers
}

// ArrangeLayers runs a full layer arrangement pass for this output.
func (o *Output) ArrangeLayers() {
	o.layers.Arrange(o.geometry)
}

// UsableArea is the output geometry inset by the exclusive zones; the area
// normal windows may occupy.
func (o *Output) UsableArea() geometry.Rect {
	zone := o.layers.ExclusiveZone()
	r := o.geometry
	r.Loc.X += zone.Left
	r.Loc.Y += zone.Top
	r.Size.W -= zone.Left + zone.Right
	r.Size.H -= zone.Top + zone.Bottom
	if r.Size.W < 0 {
		r.Size.W = 0
	}
	if r.Size.H < 0 {
		r.Size.H = 0
	}
	return r
}

// OutputMap is the ordered set of active outputs, arranged left to right.
type OutputMap struct {
	outputs []*Output
}

// Add appends an output and assigns it the next free slot to the right.
func (om *OutputMap) Add(o *Output) {
	x := 0
	for _, cur := range om.outputs {
		x += cur.Geometry().Size.W
	}
	g := o.Geometry()
	g.Loc = geometry.Point{X: x}
	o.SetGeometry(g)
	om.outputs = append(om.outputs, o)
}

// Arrange re-lays outputs left to right: those named in order come first,
// in that order, everything else keeps relative order after them.
func (om *OutputMap) Arrange(order []string) {
	arranged := make([]*Output, 0, len(om.outputs))
	for _, name := range order {
		matches := sliceutils.Filter(om.outputs, func(o *Output) bool {
			return o.Name == name
		})
		arranged = append(arranged, matches...)
	}
	for _, o := range om.outputs {
		if !containsOutput(arranged, o) {
			arranged = append(arranged, o)
		}
	}

	x := 0
	for _, o := range arranged {
		g := o.Geometry()
		g.Loc = geometry.Point{X: x, Y: 0}
		o.SetGeometry(g)
		x += g.Size.W
	}
	om.outputs = arranged
}

func containsOutput(outputs []*Output, o *Output) bool {
	for _, cur := range outputs {
		if cur == o {
			return true
		}
	}
	return false
}

func (om *OutputMap) Len() int {
	return len(om.outputs)
}

func (om *OutputMap) All() []*Output {
	return om.outputs
}

// First returns the primary output, erroring when none exists.
func (om *OutputMap) First() (*Output, error) {
	if len(om.outputs) == 0 {
		return nil, ErrNoOutput
	}
	return om.outputs[0], nil
}

func (om *OutputMap) Find(name string) *Output {
	for _, o := range om.outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// FindAt returns the output whose geometry contains the point.
func (om *OutputMap) FindAt(p geometry.PointF) *Output {
	for _, o := range om.outputs {
		if o.Geometry().Contains(p) {
			return o
		}
	}
	return nil
}

func (om *OutputMap) Remove(name string) {
	for i, o := range om.outputs {
		if o.Name == name {
			om.outputs = append(om.outputs[:i], om.outputs[i+1:]...)
			return
		}
	}
}
