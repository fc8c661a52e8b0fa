package vision

import "gocv.io/x/gocv"

// Region is a rectangular region of interest over a mask, expressed as a
// run of columns and a vertical band measured in from the top and bottom
// of the frame.
type Region struct {
	StartCol       int
	EndCol         int // exclusive
	RowsFromTop    int
	RowsFromBottom int
}

// clip bounds the region to the mask dimensions.
func (r Region) clip(rows, cols int) Region {
	if r.StartCol < 0 {
		r.StartCol = 0
	}
	if r.EndCol > cols {
		r.EndCol = cols
	}
	if r.RowsFromTop < 0 {
		r.RowsFromTop = 0
	}
	if r.RowsFromBottom < 0 {
		r.RowsFromBottom = 0
	}
	if r.RowsFromTop > rows {
		r.RowsFromTop = rows
	}
	return r
}

// ColumnSums computes, for each column in [StartCol, EndCol), the sum of
// pixel/divisor over the band [RowsFromTop, rows-RowsFromBottom). Each
// pixel is divided before summing, so with divisor 255 a binary mask
// produces a per-column count of active pixels. Indices in the returned
// slice are relative to StartCol.
func ColumnSums(mask gocv.Mat, region Region, divisor int) []int {
	rows, cols := mask.Rows(), mask.Cols()
	region = region.clip(rows, cols)
	if region.EndCol <= region.StartCol || divisor <= 0 {
		return nil
	}

	data := mask.ToBytes()
	sums := make([]int, region.EndCol-region.StartCol)
	bottom := rows - region.RowsFromBottom
	for row := region.RowsFromTop; row < bottom; row++ {
		base := row * cols
		for col := region.StartCol; col < region.EndCol; col++ {
			sums[col-region.StartCol] += int(data[base+col]) / divisor
		}
	}
	return sums
}

// FirstActiveColumn scans columns in increasing order and returns the
// region-relative index of the first column whose sum exceeds the
// activation threshold, or -1 if no column qualifies.
func FirstActiveColumn(mask gocv.Mat, region Region, divisor int) int {
	rows, cols := mask.Rows(), mask.Cols()
	region = region.clip(rows, cols)
	if region.EndCol <= region.StartCol || divisor <= 0 {
		return -1
	}

	data := mask.ToBytes()
	bottom := rows - region.RowsFromBottom
	for col := region.StartCol; col < region.EndCol; col++ {
		sum := 0
		for row := region.RowsFromTop; row < bottom; row++ {
			sum += int(data[row*cols+col]) / divisor
		}
		if sum > activationThreshold {
			return col - region.StartCol
		}
	}
	return -1
}

// argMax returns the index of the largest value, ties broken by the lowest
// index, and whether any value was positive.
func argMax(values []int) (int, bool) {
	best, bestIdx := 0, 0
	for i, v := range values {
		if v > best {
			best, bestIdx = v, i
		}
	}
	return bestIdx, best > 0
}
