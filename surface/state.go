package surface

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/geometry"
)

type ResizeKind int

const (
	NotResizing ResizeKind = iota
	Resizing
	// A configure for the final size has been sent and the compositor is
	// waiting for the client to ack that exact serial.
	WaitingForFinalAck
	// The ack arrived; the resize resolves on the next commit.
	WaitingForCommit
)

// ResizeState tracks an in-flight interactive resize of one surface.
type ResizeState struct {
	Kind            ResizeKind
	Edges           geometry.Edges
	InitialLocation geometry.Point
	InitialSize     geometry.Size
	// Serial of the configure the client has to ack. Only meaningful in
	// WaitingForFinalAck.
	Serial uint32
}

type MoveAfterResizeKind int

const (
	MoveAfterResizeNone MoveAfterResizeKind = iota
	MoveAfterResizeWaitingForCommit
	MoveAfterResizeCurrent
)

// MoveAfterResizeState schedules a reposition that must not take effect
// before the commit carrying the matching buffer lands.
type MoveAfterResizeState struct {
	Kind   MoveAfterResizeKind
	Target geometry.Point
}

// FrameCallback delivers one requested wl_surface frame event.
type FrameCallback func(timeMillis uint32)

// Data is the per-surface mutable record, created lazily on first commit.
type Data struct {
	bufferSize geometry.Size
	hasBuffer  bool

	Resize          ResizeState
	MoveAfterResize MoveAfterResizeState

	frameCallbacks []FrameCallback
}

// RefreshBuffer pulls the currently attached buffer dimensions from the
// surface into this record.
func (d *Data) RefreshBuffer(s Surface) {
	d.bufferSize, d.hasBuffer = s.BufferSize()
}

// Size returns the attached buffer dimensions, ok false meaning the surface
// is unmapped for rendering.
func (d *Data) Size() (geometry.Size, bool) {
	return d.bufferSize, d.hasBuffer
}

// ContainsPoint reports whether the point, given in surface-local
// coordinates, falls inside the attached buffer.
func (d *Data) ContainsPoint(p geometry.PointF) bool {
	if !d.hasBuffer {
		return false
	}
	return geometry.RectAt(geometry.Point{}, d.bufferSize).Contains(p)
}

// QueueFrame appends a frame-callback request, fired by the next
// frame-callback flush walk.
func (d *Data) QueueFrame(cb FrameCallback) {
	d.frameCallbacks = append(d.frameCallbacks, cb)
}

func (d *Data) flushFrames(timeMillis uint32) {
	for _, cb := range d.frameCallbacks {
		cb(timeMillis)
	}
	d.frameCallbacks = nil
}

// Store is the single authoritative owner of all per-surface state,
// indexed by surface identity. All access goes through Get; records are
// created lazily and dropped when their surface dies.
type Store struct {
	data map[Surface]*Data

	// Guards against a visit callback recursively starting another walk
	// of the same store.
	walking bool
}

func NewStore() *Store {
	return &Store{data: make(map[Surface]*Data)}
}

// Get returns the record for the surface, creating it on first access.
func (st *Store) Get(s Surface) *Data {
	d, ok := st.data[s]
	if !ok {
		d = &Data{}
		st.data[s] = d
	}
	return d
}

// Lookup returns the record only if one already exists.
func (st *Store) Lookup(s Surface) (*Data, bool) {
	d, ok := st.data[s]
	return d, ok
}

// Drop removes the record of a dead surface.
func (st *Store) Drop(s Surface) {
	delete(st.data, s)
}

// Prune drops records of surfaces that have died.
func (st *Store) Prune() {
	for s := range st.data {
		if !s.Alive() {
			delete(st.data, s)
		}
	}
}

func (st *Store) enterWalk() bool {
	if st.walking {
		logrus.Warnln("rejected re-entrant surface tree walk")
		return false
	}
	st.walking = true
	return true
}

func (st *Store) leaveWalk() {
	st.walking = false
}
