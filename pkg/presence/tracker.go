package presence

import (
	"github.com/expolens/go-stand/pkg/vision"
)

// Slowdown analysis parameters.
const (
	windowSize        = 10  // Displacement samples kept
	recentSamples     = 5   // Samples averaged per decision
	slowdownThreshold = 0.8 // Pixels per frame, assuming ~30 FPS
)

// Tracker smooths the horizontal movement of a person's reference point into
// a "slowing down" flag. It needs a full window of displacement samples
// before it starts reporting.
type Tracker struct {
	history     []float64
	lastCenter  *vision.Point
	slowingDown bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		history: make([]float64, 0, windowSize),
	}
}

// Update records the displacement since the previous center and reports
// whether the person appears to be slowing down in front of the stand.
//
// The first call after construction (or after Forget) only anchors the
// reference and returns false. Until the window holds a full ten samples
// the tracker keeps answering false regardless of input.
func (t *Tracker) Update(center vision.Point) bool {
	if t.lastCenter == nil {
		c := center
		t.lastCenter = &c
		return false
	}

	dx := center.X - t.lastCenter.X
	if dx < 0 {
		dx = -dx
	}
	c := center
	t.lastCenter = &c

	t.history = append(t.history, dx)
	if len(t.history) > windowSize {
		t.history = t.history[1:]
	}

	if len(t.history) >= windowSize {
		avg := mean(t.history[len(t.history)-recentSamples:])
		t.slowingDown = avg < slowdownThreshold
		return t.slowingDown
	}

	return false
}

// Forget clears the reference center after a frame with no person. The
// displacement window is kept; debounce timing carries over when someone
// re-enters the frame.
func (t *Tracker) Forget() {
	t.lastCenter = nil
}

// SlowingDown returns the last computed slowdown flag.
func (t *Tracker) SlowingDown() bool {
	return t.slowingDown
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
