package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/adriancooper13/golfbot/internal/log"
)

// MarkerMask isolates the red boundary marker in an HSV view. Red wraps
// around the hue circle, so the mask is the union of the [0,10] and
// [170,180] hue ranges, each bounded by the fixed saturation floor and the
// tunable value floor. The caller owns the returned mask.
func MarkerMask(hsv gocv.Mat, valueFloor int) (gocv.Mat, error) {
	if hsv.Empty() {
		return gocv.Mat{}, fmt.Errorf("marker mask: empty hsv view")
	}
	if c := hsv.Channels(); c != 3 {
		return gocv.Mat{}, fmt.Errorf("marker mask: hsv view has %d channels, want 3", c)
	}

	low := gocv.NewMat()
	defer low.Close()
	high := gocv.NewMat()
	defer high.Close()

	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(0, SaturationFloor, float64(valueFloor), 0),
		gocv.NewScalar(HueLowMax, 255, 255, 0),
		&low)
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(HueHighMin, SaturationFloor, float64(valueFloor), 0),
		gocv.NewScalar(HueMax, 255, 255, 0),
		&high)

	mask := gocv.NewMat()
	gocv.Add(low, high, &mask)
	return mask, nil
}

// ScanCorners looks for the boundary marker in the two edge-anchored boxes
// of the bottom strip. The left box is scanned first and a hit there wins
// outright: the right box is never touched. A mask-construction failure is
// logged and degrades to not found; it never escapes the scan.
func ScanCorners(hsv gocv.Mat, valueFloor int) PositionSignal {
	mask, err := MarkerMask(hsv, valueFloor)
	if err != nil {
		log.Warn("corner scan: could not build marker mask", "error", err)
		return PositionSignal{}
	}
	defer mask.Close()

	leftBox := Region{
		StartCol:    0,
		EndCol:      CornerBoxWidth,
		RowsFromTop: CornerScanTop,
	}
	if rel := FirstActiveColumn(mask, leftBox, White); rel >= 0 {
		log.Debug("corner scan: marker on left edge, should turn right")
		return edgeSignal(rel)
	}

	rightBox := Region{
		StartCol:    FrameWidth - CornerBoxWidth,
		EndCol:      FrameWidth,
		RowsFromTop: CornerScanTop,
	}
	if rel := FirstActiveColumn(mask, rightBox, White); rel >= 0 {
		log.Debug("corner scan: marker on right edge, should turn left")
		return edgeSignal(rightBox.StartCol + rel)
	}

	return PositionSignal{}
}

// edgeSignal converts an absolute marker column to the corner steering
// offset: large positive near the left edge, large negative near the right.
func edgeSignal(col int) PositionSignal {
	return PositionSignal{Offset: FrameWidth - col - FrameWidth/2, Found: true}
}
