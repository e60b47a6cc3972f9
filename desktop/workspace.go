package desktop

import "github.com/lavenderwm/lavender/surface"

// Workspace is one named virtual desktop. Window placement is delegated to
// its positioner, which owns the mapped set.
type Workspace struct {
	Name string

	pos Positioner
}

func NewWorkspace(name string, pos Positioner) *Workspace {
	return &Workspace{Name: name, pos: pos}
}

func (ws *Workspace) Positioner() Positioner {
	return ws.pos
}

// MapToplevel inserts a promoted window into this workspace's mapped set.
func (ws *Workspace) MapToplevel(w *Window, reposition bool) {
	ws.pos.MapToplevel(w, reposition)
}

func (ws *Workspace) UnmapToplevel(t Toplevel) *Window {
	return ws.pos.UnmapToplevel(t)
}

func (ws *Workspace) FindWindow(s surface.Surface) *Window {
	return ws.pos.FindWindow(s)
}

func (ws *Workspace) Windows() *WindowList {
	return ws.pos.Windows()
}

func (ws *Workspace) Refresh() {
	ws.pos.Windows().Refresh()
}

func (ws *Workspace) SendFrames(timeMillis uint32) {
	ws.pos.SendFrames(timeMillis)
}
