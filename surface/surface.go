package surface

import "github.com/lavenderwm/lavender/geometry"

type Role int

const (
	RoleNone Role = iota
	RoleToplevel
	RoleSubsurface
	RoleLayer
)

func (r Role) String() string {
	switch r {
	case RoleToplevel:
		return "toplevel"
	case RoleSubsurface:
		return "subsurface"
	case RoleLayer:
		return "layer"
	default:
		return "none"
	}
}

// Surface is the boundary to one protocol-level wl_surface. Implementations
// wrap the protocol object; the core only ever reads through this interface
// and never holds on to a surface past a false Alive result.
//
// Implementations must be comparable so a Surface can key the state store.
type Surface interface {
	// Alive reports whether the client-side object still exists. A dead
	// surface must not be dereferenced further.
	Alive() bool

	Role() Role

	// Children returns the directly attached sub-surfaces, topmost first.
	Children() []Surface

	// Position is the cached sub-surface position relative to the parent.
	// Zero for surfaces that are not sub-surfaces.
	Position() geometry.Point

	// BufferSize returns the currently attached buffer's dimensions in
	// logical coordinates. ok is false when no buffer is attached.
	BufferSize() (size geometry.Size, ok bool)

	// Synchronized reports whether this surface is a sub-surface in
	// synchronized mode, in which case its state is applied on the
	// parent's commit rather than its own.
	Synchronized() bool

	// Root returns the topmost ancestor of this surface (itself when it
	// has no parent).
	Root() Surface
}
