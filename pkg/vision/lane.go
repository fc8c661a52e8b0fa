package vision

import "gocv.io/x/gocv"

// LaneMask binary-thresholds a grayscale view against the lane intensity
// floor: a pixel is active iff floor <= intensity <= 255. The caller owns
// the returned mask.
func LaneMask(gray gocv.Mat, floor int) gocv.Mat {
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(gray,
		gocv.NewScalar(float64(floor), 0, 0, 0),
		gocv.NewScalar(White, 0, 0, 0),
		&mask)
	return mask
}

// LocateBall finds the column with the largest aggregate intensity across
// the full frame width, restricted to the band below the horizon line.
// Ties go to the lowest index. An all-zero histogram means no ball: the
// arg-max of an empty signal would coincidentally read as column 0, so it
// is reported as not found instead.
func LocateBall(laneMask gocv.Mat) PositionSignal {
	sums := ColumnSums(laneMask, Region{
		StartCol:    0,
		EndCol:      laneMask.Cols(),
		RowsFromTop: BallScanTop,
	}, White)

	idx, ok := argMax(sums)
	if !ok {
		return PositionSignal{}
	}
	return PositionSignal{Offset: idx - FrameWidth/2, Found: true}
}

// LocateLaneCenter is the alternate locator: it arg-maxes the left, middle
// and right thirds of the histogram independently and keeps whichever peak
// lies nearest to the frame center, preferring middle, then left, on ties.
func LocateLaneCenter(laneMask gocv.Mat) PositionSignal {
	sums := ColumnSums(laneMask, Region{
		StartCol:    0,
		EndCol:      laneMask.Cols(),
		RowsFromTop: BallScanTop,
	}, White)
	if len(sums) == 0 {
		return PositionSignal{}
	}

	center := FrameWidth / 2
	leftPos, leftOK := zoneMax(sums, 0, min(120, len(sums)))
	midPos, midOK := zoneMax(sums, min(121, len(sums)), max(len(sums)-120, 0))
	rightPos, rightOK := zoneMax(sums, max(len(sums)-119, 0), len(sums))

	// Keep the qualifying peak nearest to center; ties prefer middle, then
	// left. Zones without signal never win.
	pos, found := 0, false
	for _, z := range []struct {
		pos int
		ok  bool
	}{{midPos, midOK}, {leftPos, leftOK}, {rightPos, rightOK}} {
		if !z.ok {
			continue
		}
		if !found || abs(center-z.pos) < abs(center-pos) {
			pos, found = z.pos, true
		}
	}
	if !found {
		return PositionSignal{}
	}
	return PositionSignal{Offset: pos - center, Found: true}
}

// zoneMax arg-maxes sums[lo:hi] and returns the absolute index and whether
// the zone held any signal.
func zoneMax(sums []int, lo, hi int) (int, bool) {
	if hi <= lo {
		return lo, false
	}
	idx, ok := argMax(sums[lo:hi])
	return lo + idx, ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
