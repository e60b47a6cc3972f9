package desktop

import (
	"gitlab.com/mstarongitlab/goutils/sliceutils"

	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Anchor is the wlr-layer-shell anchor bitmask.
type Anchor uint32

const (
	AnchorTop    Anchor = 1 << 0
	AnchorBottom Anchor = 1 << 1
	AnchorLeft   Anchor = 1 << 2
	AnchorRight  Anchor = 1 << 3
)

func (a Anchor) Contains(o Anchor) bool {
	return a&o == o
}

// Tier is the layer-shell stacking tier, ordered bottom to top.
type Tier int

const (
	TierBackground Tier = iota
	TierBottom
	TierTop
	TierOverlay
)

func (t Tier) String() string {
	switch t {
	case TierBackground:
		return "background"
	case TierBottom:
		return "bottom"
	case TierTop:
		return "top"
	case TierOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// LayerShell is the boundary to a layer-shell protocol surface.
type LayerShell interface {
	Surface() surface.Surface
	Alive() bool

	Anchor() Anchor
	// ExclusiveZone is the requested exclusive edge thickness; zero or
	// negative means none requested.
	ExclusiveZone() int
	// RequestedSize is the client's desired size; a zero axis means the
	// compositor decides.
	RequestedSize() geometry.Size
	Tier() Tier

	SendConfigure(size geometry.Size)
	InitialConfigureSent() bool
}

// LayerSurface is one shell-chrome surface owned by an output's LayerMap.
type LayerSurface struct {
	shell LayerShell
	store *surface.Store

	location geometry.Point
	bbox     geometry.Rect
	tier     Tier

	// Size last sent in a configure by an arrangement pass.
	configured geometry.Size
}

func (ls *LayerSurface) Shell() LayerShell {
	return ls.shell
}

func (ls *LayerSurface) Location() geometry.Point {
	return ls.location
}

func (ls *LayerSurface) Geometry() geometry.Rect {
	return ls.bbox
}

func (ls *LayerSurface) Tier() Tier {
	return ls.tier
}

// SelfUpdate recomputes the bounding box and re-reads the tier, which the
// client may change between commits.
func (ls *LayerSurface) SelfUpdate() {
	if !ls.shell.Alive() {
		return
	}
	ls.bbox = ls.store.BoundingBox(ls.shell.Surface(), ls.location)
	ls.tier = ls.shell.Tier()
}

// SurfaceAt hit-tests this layer surface's tree at a layout-space point.
func (ls *LayerSurface) SurfaceAt(p geometry.PointF) (surface.Surface, geometry.Point, bool) {
	if !ls.shell.Alive() || !ls.bbox.Contains(p) {
		return nil, geometry.Point{}, false
	}
	return ls.store.SurfaceAt(ls.shell.Surface(), ls.location, p)
}

func (ls *LayerSurface) SendFrames(timeMillis uint32) {
	if !ls.shell.Alive() {
		return
	}
	ls.store.SendFrames(ls.shell.Surface(), timeMillis)
}

// ExclusiveZone accumulates the edge thickness reserved by anchored layer
// surfaces. Recomputed from scratch by every arrangement pass.
type ExclusiveZone struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// LayerMap holds the layer surfaces of one output, most recently inserted
// first within their tier.
type LayerMap struct {
	store         *surface.Store
	surfaces      []*LayerSurface
	exclusiveZone ExclusiveZone
}

func NewLayerMap(store *surface.Store) *LayerMap {
	return &LayerMap{store: store}
}

func (lm *LayerMap) ExclusiveZone() ExclusiveZone {
	return lm.exclusiveZone
}

func (lm *LayerMap) Len() int {
	return len(lm.surfaces)
}

// Insert wraps the shell surface at the default location and puts it at
// the front of the collection, newest on top within its tier.
func (lm *LayerMap) Insert(shell LayerShell) *LayerSurface {
	ls := &LayerSurface{
		shell: shell,
		store: lm.store,
		tier:  shell.Tier(),
	}
	ls.SelfUpdate()
	lm.surfaces = append([]*LayerSurface{ls}, lm.surfaces...)
	return ls
}

// Find returns the layer surface whose tree owns s.
func (lm *LayerMap) Find(s surface.Surface) *LayerSurface {
	for _, ls := range lm.surfaces {
		if ls.shell.Alive() && s.Root() == ls.shell.Surface() {
			return ls
		}
	}
	return nil
}

// FindTopmostAt returns the first surface of the tier, in insertion order,
// whose tree contains the point.
func (lm *LayerMap) FindTopmostAt(tier Tier, p geometry.PointF) (surface.Surface, geometry.Point, bool) {
	for _, ls := range lm.tierSurfaces(tier) {
		if s, loc, ok := ls.SurfaceAt(p); ok {
			return s, loc, true
		}
	}
	return nil, geometry.Point{}, false
}

// BottomToTop invokes f over the tier's surfaces oldest first, the order
// the renderer composes the visible stack in.
func (lm *LayerMap) BottomToTop(tier Tier, f func(*LayerSurface)) {
	tiered := lm.tierSurfaces(tier)
	for i := len(tiered) - 1; i >= 0; i-- {
		f(tiered[i])
	}
}

func (lm *LayerMap) tierSurfaces(tier Tier) []*LayerSurface {
	return sliceutils.Filter(lm.surfaces, func(ls *LayerSurface) bool {
		return ls.tier == tier
	})
}

// Refresh prunes dead surfaces and recomputes the survivors' boxes. The
// exclusive zone is left alone; only Arrange recomputes it.
func (lm *LayerMap) Refresh() {
	alive := lm.surfaces[:0]
	for _, ls := range lm.surfaces {
		if ls.shell.Alive() {
			ls.SelfUpdate()
			alive = append(alive, ls)
		}
	}
	lm.surfaces = alive
}

// Arrange assigns every layer surface its on-screen location inside the
// output rect, configures it, and rebuilds the exclusive-zone accumulators
// from scratch. Calling it twice with unchanged inputs yields identical
// results.
func (lm *LayerMap) Arrange(outputRect geometry.Rect) {
	lm.exclusiveZone = ExclusiveZone{}

	for _, ls := range lm.surfaces {
		if !ls.shell.Alive() {
			continue
		}

		anchor := ls.shell.Anchor()
		size := ls.shell.RequestedSize()

		// Unanchored or unsized surfaces center on the output by default.
		var x int
		switch {
		case size.W == 0 || anchor.Contains(AnchorLeft):
			x = outputRect.Loc.X
		case anchor.Contains(AnchorRight):
			x = outputRect.Loc.X + (outputRect.Size.W - size.W)
		default:
			x = outputRect.Loc.X + (outputRect.Size.W/2 - size.W/2)
		}

		var y int
		switch {
		case size.H == 0 || anchor.Contains(AnchorTop):
			y = outputRect.Loc.Y
		case anchor.Contains(AnchorBottom):
			y = outputRect.Loc.Y + (outputRect.Size.H - size.H)
		default:
			y = outputRect.Loc.Y + (outputRect.Size.H/2 - size.H/2)
		}

		// Repeat arrangements with an unchanged output stay quiet; the
		// client already holds the right size.
		if ls.configured != outputRect.Size {
			ls.shell.SendConfigure(outputRect.Size)
			ls.configured = outputRect.Size
		}
		ls.location = geometry.Point{X: x, Y: y}

		if zone := ls.shell.ExclusiveZone(); zone > 0 {
			// Only a surface anchored to exactly one edge, or to an edge
			// plus its two perpendicular edges, reserves space. Corner
			// anchors reserve nothing.
			switch anchor {
			case AnchorTop, AnchorTop | AnchorLeft | AnchorRight:
				lm.exclusiveZone.Top += zone
			case AnchorBottom, AnchorBottom | AnchorLeft | AnchorRight:
				lm.exclusiveZone.Bottom += zone
			case AnchorLeft, AnchorLeft | AnchorTop | AnchorBottom:
				lm.exclusiveZone.Left += zone
			case AnchorRight, AnchorRight | AnchorTop | AnchorBottom:
				lm.exclusiveZone.Right += zone
			}
		}
	}
}

// SendFrames flushes the queued frame callbacks of every layer surface.
func (lm *LayerMap) SendFrames(timeMillis uint32) {
	for _, ls := range lm.surfaces {
		ls.SendFrames(timeMillis)
	}
}
