package desktop

import "github.com/lavenderwm/lavender/surface"

// PendingList holds windows that exist protocol-side but have not yet
// completed the configure/acknowledge handshake with a non-zero size.
// A window leaves the list exactly once, into a workspace's mapped set.
type PendingList struct {
	windows []*Window
}

func (pl *PendingList) Insert(w *Window) {
	pl.windows = append(pl.windows, w)
}

func (pl *PendingList) Len() int {
	return len(pl.windows)
}

// Find returns the pending window whose surface tree owns s.
func (pl *PendingList) Find(s surface.Surface) *Window {
	for _, w := range pl.windows {
		if w.ContainsSurface(s) {
			return w
		}
	}
	return nil
}

// Remove takes the window owning t off the list, returning nil when it was
// never pending (or already promoted).
func (pl *PendingList) Remove(t Toplevel) *Window {
	for i, w := range pl.windows {
		if w.Toplevel() == t {
			pl.windows = append(pl.windows[:i], pl.windows[i+1:]...)
			return w
		}
	}
	return nil
}

// Refresh drops windows whose surface died before they could map.
func (pl *PendingList) Refresh() {
	alive := pl.windows[:0]
	for _, w := range pl.windows {
		if w.Alive() {
			alive = append(alive, w)
		}
	}
	pl.windows = alive
}
