package desktop

import (
	"github.com/sirupsen/logrus"

	"github.com/lavenderwm/lavender/geometry"
	"github.com/lavenderwm/lavender/surface"
)

// Layout is the authoritative in-memory model of what is on screen: the
// outputs and their layer maps, the workspaces, the pending-map registry
// and the currently grabbed window. All mutation happens on the event-loop
// thread, run to completion.
type Layout struct {
	Store   *surface.Store
	Outputs *OutputMap
	Pending *PendingList

	workspaces []*Workspace
	active     int

	grabbed *Window
}

func NewLayout(store *surface.Store) *Layout {
	return &Layout{
		Store:   store,
		Outputs: &OutputMap{},
		Pending: &PendingList{},
	}
}

func (l *Layout) AddWorkspace(ws *Workspace) {
	l.workspaces = append(l.workspaces, ws)
}

func (l *Layout) Workspaces() []*Workspace {
	return l.workspaces
}

func (l *Layout) ActiveWorkspace() *Workspace {
	if len(l.workspaces) == 0 {
		return nil
	}
	return l.workspaces[l.active]
}

// SwitchWorkspace makes the named workspace the active one.
func (l *Layout) SwitchWorkspace(name string) bool {
	for i, ws := range l.workspaces {
		if ws.Name == name {
			l.active = i
			logrus.WithField("workspace", name).Debugln("Switched workspace")
			return true
		}
	}
	logrus.WithField("workspace", name).Warnln("Unknown workspace")
	return false
}

// VisibleWorkspaces returns the workspaces currently shown on any output.
func (l *Layout) VisibleWorkspaces() []*Workspace {
	if ws := l.ActiveWorkspace(); ws != nil {
		return []*Workspace{ws}
	}
	return nil
}

// FindWindow looks s up in the visible workspaces' mapped sets.
func (l *Layout) FindWindow(s surface.Surface) (*Window, *Workspace) {
	for _, ws := range l.VisibleWorkspaces() {
		if w := ws.FindWindow(s); w != nil {
			return w, ws
		}
	}
	return nil, nil
}

func (l *Layout) Grabbed() *Window {
	return l.grabbed
}

func (l *Layout) SetGrabbed(w *Window) {
	l.grabbed = w
}

// InsertLayer adds a layer-shell surface to the named output's layer map,
// falling back to the first output when the client named none.
func (l *Layout) InsertLayer(outputName string, shell LayerShell) error {
	output := l.Outputs.Find(outputName)
	if output == nil {
		first, err := l.Outputs.First()
		if err != nil {
			return err
		}
		output = first
	}
	output.Layers().Insert(shell)
	return nil
}

// FindLayer looks s up in every output's layer map.
func (l *Layout) FindLayer(s surface.Surface) (*LayerSurface, *Output) {
	for _, o := range l.Outputs.All() {
		if ls := o.Layers().Find(s); ls != nil {
			return ls, o
		}
	}
	return nil, nil
}

// ArrangeLayers reruns the layer arrangement of every output and resizes
// the workspaces to the remaining usable area.
func (l *Layout) ArrangeLayers() {
	for _, o := range l.Outputs.All() {
		o.ArrangeLayers()
	}
	first, err := l.Outputs.First()
	if err != nil {
		return
	}
	usable := first.UsableArea()
	for _, ws := range l.workspaces {
		ws.Positioner().SetGeometry(usable)
	}
}

// SurfaceUnder hit-tests the full visible stack top to bottom: overlay and
// top layers, then the active workspace's windows, then bottom and
// background layers.
func (l *Layout) SurfaceUnder(p geometry.PointF) (surface.Surface, geometry.Point, bool) {
	output := l.Outputs.FindAt(p)
	if output == nil {
		return nil, geometry.Point{}, false
	}
	layers := output.Layers()

	for _, tier := range []Tier{TierOverlay, TierTop} {
		if s, loc, ok := layers.FindTopmostAt(tier, p); ok {
			return s, loc, true
		}
	}

	for _, ws := range l.VisibleWorkspaces() {
		if w := ws.Windows().WindowUnder(p); w != nil {
			if s, loc, ok := w.SurfaceAt(p); ok {
				return s, loc, true
			}
		}
	}

	for _, tier := range []Tier{TierBottom, TierBackground} {
		if s, loc, ok := layers.FindTopmostAt(tier, p); ok {
			return s, loc, true
		}
	}
	return nil, geometry.Point{}, false
}

// WindowUnder returns the front-most mapped window at the point.
func (l *Layout) WindowUnder(p geometry.PointF) *Window {
	for _, ws := range l.VisibleWorkspaces() {
		if w := ws.Windows().WindowUnder(p); w != nil {
			return w
		}
	}
	return nil
}

// Refresh lazily prunes everything that died since the last pass.
func (l *Layout) Refresh() {
	l.Pending.Refresh()
	for _, ws := range l.workspaces {
		ws.Refresh()
	}
	for _, o := range l.Outputs.All() {
		o.Layers().Refresh()
	}
	if l.grabbed != nil && !l.grabbed.Alive() {
		l.grabbed = nil
	}
	l.Store.Prune()
}

// SendFrames delivers queued frame callbacks across the visible stack.
func (l *Layout) SendFrames(timeMillis uint32) {
	for _, ws := range l.VisibleWorkspaces() {
		ws.SendFrames(timeMillis)
	}
	for _, o := range l.Outputs.All() {
		o.Layers().SendFrames(timeMillis)
	}
}
