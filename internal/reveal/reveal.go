// Package reveal decides when a scrolled list should show more rows.
package reveal

// DefaultThreshold is the distance from the bottom, in lines, at which a
// reveal fires.
const DefaultThreshold = 2

// Surface is a snapshot of a scrollable area.
type Surface struct {
	YOffset    int // first visible line
	Height     int // visible lines
	TotalLines int // lines of content
}

// Remaining is the number of content lines below the visible area.
func (s Surface) Remaining() int {
	return max(s.TotalLines-(s.YOffset+s.Height), 0)
}

// NearBottom reports whether the visible area ends within threshold lines of
// the content's end.
func NearBottom(s Surface, threshold int) bool {
	return s.Remaining() <= threshold
}

// Watcher observes scroll positions between Start and Stop and fires once
// per distinct near-bottom position.
type Watcher struct {
	Threshold int

	active bool
	last   Surface
	fired  bool
}

// New creates a stopped watcher.
func New(threshold int) *Watcher {
	return &Watcher{Threshold: threshold}
}

// Start subscribes the watcher. Observations before Start are ignored.
func (w *Watcher) Start() {
	w.active = true
	w.fired = false
}

// Stop unsubscribes the watcher; it will not fire until started again.
func (w *Watcher) Stop() {
	w.active = false
}

// Active reports whether the watcher is subscribed.
func (w *Watcher) Active() bool { return w.active }

// Observe records a new scroll position and reports whether more rows
// should be revealed.
func (w *Watcher) Observe(s Surface) bool {
	if !w.active {
		return false
	}
	if w.fired && s == w.last {
		return false
	}
	if !NearBottom(s, w.Threshold) {
		w.last, w.fired = s, false
		return false
	}
	w.last, w.fired = s, true
	return true
}
