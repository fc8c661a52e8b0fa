package vision

import (
	"sync"

	"github.com/adriancooper13/golfbot/internal/log"
)

// Thresholds holds the two tunable binarization floors. It is the only
// state shared across frames and may be adjusted from the control path
// while a frame pass is in flight, so reads and writes go through a lock;
// each pass snapshots both values once at its start.
type Thresholds struct {
	mu     sync.RWMutex
	lane   int // lane intensity floor, [0,255]
	marker int // marker value floor, [0,255]
}

// NewThresholds returns thresholds at their startup values.
func NewThresholds() *Thresholds {
	return &Thresholds{
		lane:   InitialLaneFloor,
		marker: InitialMarkerFloor,
	}
}

// Snapshot returns a consistent view of both floors.
func (t *Thresholds) Snapshot() (lane, marker int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lane, t.marker
}

// Adjust applies the given deltas. A delta is applied only if it is
// nonzero and the resulting value stays within [0,255]; otherwise that
// floor is silently left unchanged. Takes effect from the next frame pass.
func (t *Thresholds) Adjust(laneDelta, markerDelta int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if laneDelta != 0 && inByteRange(t.lane+laneDelta) {
		t.lane += laneDelta
		log.Info("lane threshold adjusted", "value", t.lane)
	}
	if markerDelta != 0 && inByteRange(t.marker+markerDelta) {
		t.marker += markerDelta
		log.Info("marker threshold adjusted", "value", t.marker)
	}
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}
