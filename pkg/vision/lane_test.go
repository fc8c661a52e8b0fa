package vision

import (
	"testing"

	"gocv.io/x/gocv"
)

// newFrameMask creates a zeroed full-resolution mask.
func newFrameMask() gocv.Mat {
	return newMask(FrameHeight, FrameWidth)
}

// paintBand activates columns [colLo, colHi) across rows [rowLo, rowHi).
func paintBand(mask *gocv.Mat, colLo, colHi, rowLo, rowHi int) {
	for col := colLo; col < colHi; col++ {
		paintColumn(mask, col, rowLo, rowHi, White)
	}
}

func TestLaneMask(t *testing.T) {
	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 4, 4, gocv.MatTypeCV8U)
	defer gray.Close()
	gray.SetUCharAt(0, 0, 200) // above floor
	gray.SetUCharAt(1, 1, 180) // exactly at floor
	gray.SetUCharAt(2, 2, 179) // just below floor
	gray.SetUCharAt(3, 3, 255) // white

	mask := LaneMask(gray, 180)
	defer mask.Close()

	tests := []struct {
		row, col int
		want     uint8
	}{
		{0, 0, 255},
		{1, 1, 255},
		{2, 2, 0},
		{3, 3, 255},
		{0, 1, 0},
	}
	for _, tt := range tests {
		if got := mask.GetUCharAt(tt.row, tt.col); got != tt.want {
			t.Errorf("mask[%d,%d] = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestLocateBall_WhiteBand(t *testing.T) {
	mask := newFrameMask()
	defer mask.Close()
	paintBand(&mask, 100, 110, BallScanTop, FrameHeight)

	ball := LocateBall(mask)
	if !ball.Found {
		t.Fatal("LocateBall() not found, want found")
	}
	col := ball.Offset + FrameWidth/2
	if col < 100 || col >= 110 {
		t.Errorf("ball column = %d, want within [100,110)", col)
	}
	// All band columns tie; the scan keeps the lowest index.
	if col != 100 {
		t.Errorf("ball column = %d, want 100 (tie broken by lowest index)", col)
	}
}

func TestLocateBall_IgnoresPixelsAboveHorizon(t *testing.T) {
	mask := newFrameMask()
	defer mask.Close()
	// Bright blob entirely above the scan band.
	paintBand(&mask, 200, 220, 0, BallScanTop)
	// Smaller blob inside the band.
	paintBand(&mask, 50, 55, BallScanTop, BallScanTop+20)

	ball := LocateBall(mask)
	if !ball.Found {
		t.Fatal("LocateBall() not found, want found")
	}
	if got := ball.Offset + FrameWidth/2; got != 50 {
		t.Errorf("ball column = %d, want 50", got)
	}
}

func TestLocateBall_AllZeroIsNotFound(t *testing.T) {
	mask := newFrameMask()
	defer mask.Close()

	ball := LocateBall(mask)
	if ball.Found {
		t.Fatalf("LocateBall() = found at offset %d, want not found", ball.Offset)
	}
	// On the wire the degenerate frame still reads as the legacy sentinel.
	if got := ball.Wire(NoBallFound); got != -180 {
		t.Errorf("Wire(NoBallFound) = %d, want -180", got)
	}
}

func TestLocateLaneCenter(t *testing.T) {
	tests := []struct {
		name    string
		bands   [][2]int // [colLo, colHi) pairs
		want    int      // expected column
		wantHit bool
	}{
		{
			name:    "single left peak",
			bands:   [][2]int{{60, 65}},
			want:    60,
			wantHit: true,
		},
		{
			name:    "middle peak preferred over farther side peaks",
			bands:   [][2]int{{60, 65}, {185, 190}},
			want:    185,
			wantHit: true,
		},
		{
			name:    "right peak nearest to center wins",
			bands:   [][2]int{{10, 15}, {300, 305}},
			want:    300,
			wantHit: true,
		},
		{
			name:    "empty histogram",
			bands:   nil,
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := newFrameMask()
			defer mask.Close()
			for _, b := range tt.bands {
				paintBand(&mask, b[0], b[1], BallScanTop, FrameHeight)
			}

			sig := LocateLaneCenter(mask)
			if sig.Found != tt.wantHit {
				t.Fatalf("LocateLaneCenter() found = %v, want %v", sig.Found, tt.wantHit)
			}
			if tt.wantHit {
				if got := sig.Offset + FrameWidth/2; got != tt.want {
					t.Errorf("lane center column = %d, want %d", got, tt.want)
				}
			}
		})
	}
}
