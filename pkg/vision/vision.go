// Package vision analyzes camera frames for lane following and golf ball
// pickup. Each frame yields two steering signals: the column offset of the
// brightest lane/ball column relative to frame center, and the offset of a
// red boundary marker seen in the bottom corner boxes.
package vision

import "math"

// Frame geometry and pixel constants. The camera is configured for exactly
// this resolution; the processor rejects anything else.
const (
	FrameWidth  = 360
	FrameHeight = 240

	// White is the active pixel value in a binary mask.
	White = 255
)

// Scan geometry.
const (
	// BallScanTop is the first row of the ball scan band, just below the
	// horizon line.
	BallScanTop = FrameHeight/2 + 10

	// CornerBoxWidth is the width of each edge-anchored corner box.
	CornerBoxWidth = 40

	// CornerScanTop is the first row of the corner scan band. The band runs
	// to the bottom of the frame.
	CornerScanTop = 160

	// activationThreshold is the normalized column sum a first-match scan
	// must exceed to count as a hit.
	activationThreshold = 5
)

// Marker color bounds. Red wraps around the hue circle, so the marker mask
// is the union of two hue ranges. Saturation has a fixed floor; the value
// floor is the tunable marker threshold.
const (
	HueLowMax       = 10
	HueHighMin      = 170
	HueMax          = 180
	SaturationFloor = 120
)

// Initial threshold values, tunable at runtime via Thresholds.Adjust.
const (
	InitialLaneFloor   = 180
	InitialMarkerFloor = 195
)

// Wire sentinels. In-process code uses PositionSignal.Found; these values
// exist only at the message boundary.
const (
	NoBallFound = -FrameWidth / 2
	NoEdgeFound = math.MaxInt32
)

// PositionSignal is a signed column offset from frame center, or nothing.
type PositionSignal struct {
	Offset int
	Found  bool
}

// Wire maps the signal to its on-the-wire integer, substituting the given
// sentinel when nothing was found.
func (s PositionSignal) Wire(sentinel int) int {
	if !s.Found {
		return sentinel
	}
	return s.Offset
}

// Result holds the two steering signals produced for one frame.
type Result struct {
	Ball   PositionSignal
	Corner PositionSignal
}
