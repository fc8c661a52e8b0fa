package vision

import (
	"context"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

// newBGRFrame creates a zeroed full-resolution BGR frame.
func newBGRFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		FrameHeight, FrameWidth, gocv.MatTypeCV8UC3)
}

// paintBGR fills columns [colLo, colHi) of rows [rowLo, rowHi) with the
// given BGR triple.
func paintBGR(m *gocv.Mat, colLo, colHi, rowLo, rowHi int, b, g, r uint8) {
	for row := rowLo; row < rowHi; row++ {
		for col := colLo; col < colHi; col++ {
			m.SetUCharAt(row, col*3, b)
			m.SetUCharAt(row, col*3+1, g)
			m.SetUCharAt(row, col*3+2, r)
		}
	}
}

func TestProcess_BallSignal(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	paintBGR(&frame, 100, 110, BallScanTop, FrameHeight, 255, 255, 255)

	p := NewFrameProcessor(DefaultConfig(), NewThresholds())
	result, err := p.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if !result.Ball.Found {
		t.Fatal("ball not found, want found")
	}
	if got := result.Ball.Offset; got != 100-FrameWidth/2 {
		t.Errorf("ball offset = %d, want %d", got, 100-FrameWidth/2)
	}
	if result.Corner.Found {
		t.Errorf("corner = found at offset %d, want not found", result.Corner.Offset)
	}
}

func TestProcess_CornerSignal(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	// Pure red converts to HSV (0, 255, 255): inside the low hue range,
	// above both floors.
	paintBGR(&frame, 8, 12, CornerScanTop, FrameHeight, 0, 0, 255)

	p := NewFrameProcessor(DefaultConfig(), NewThresholds())
	result, err := p.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if result.Ball.Found {
		t.Errorf("ball = found at offset %d, want not found (red is too dark in grayscale)", result.Ball.Offset)
	}
	if !result.Corner.Found {
		t.Fatal("corner not found, want left box match")
	}
	if want := FrameWidth - 8 - FrameWidth/2; result.Corner.Offset != want {
		t.Errorf("corner offset = %d, want %d", result.Corner.Offset, want)
	}
}

func TestProcess_BothSignalsInOnePass(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	paintBGR(&frame, 200, 210, BallScanTop, FrameHeight, 255, 255, 255)
	paintBGR(&frame, 330, 334, CornerScanTop, FrameHeight, 0, 0, 255)

	p := NewFrameProcessor(DefaultConfig(), NewThresholds())
	result, err := p.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if !result.Ball.Found || result.Ball.Offset != 200-FrameWidth/2 {
		t.Errorf("ball = %+v, want found at offset %d", result.Ball, 200-FrameWidth/2)
	}
	if !result.Corner.Found || result.Corner.Offset != FrameWidth-330-FrameWidth/2 {
		t.Errorf("corner = %+v, want found at offset %d", result.Corner, FrameWidth-330-FrameWidth/2)
	}
}

func TestProcess_LaneFloorSnapshotRespected(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	paintBGR(&frame, 100, 110, BallScanTop, FrameHeight, 185, 185, 185)

	th := NewThresholds()
	p := NewFrameProcessor(DefaultConfig(), th)

	result, err := p.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.Ball.Found {
		t.Fatal("ball not found with floor 180, want found")
	}

	// Raise the floor above the band intensity; the next pass must miss.
	th.Adjust(15, 0)
	result, err = p.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Ball.Found {
		t.Errorf("ball = found at offset %d with floor 195, want not found", result.Ball.Offset)
	}
}

func TestProcess_CenterLocatorSelection(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	// Two bands of equal height: the arg-max locator keeps the lower
	// index, the center locator keeps the peak nearest to column 180.
	paintBGR(&frame, 60, 65, BallScanTop, FrameHeight, 255, 255, 255)
	paintBGR(&frame, 185, 190, BallScanTop, FrameHeight, 255, 255, 255)

	ball := NewFrameProcessor(DefaultConfig(), NewThresholds())
	result, err := ball.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := result.Ball.Offset + FrameWidth/2; got != 60 {
		t.Errorf("largest-ball locator column = %d, want 60", got)
	}

	cfg := DefaultConfig()
	cfg.UseCenterLocator = true
	center := NewFrameProcessor(cfg, NewThresholds())
	result, err = center.Process(context.Background(), frame)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := result.Ball.Offset + FrameWidth/2; got != 185 {
		t.Errorf("center locator column = %d, want 185", got)
	}
}

func TestProcess_RejectsDegenerateInput(t *testing.T) {
	p := NewFrameProcessor(DefaultConfig(), NewThresholds())

	empty := gocv.NewMat()
	defer empty.Close()
	if _, err := p.Process(context.Background(), empty); err == nil {
		t.Error("Process(empty frame) error = nil, want error")
	}

	small := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer small.Close()
	if _, err := p.Process(context.Background(), small); err == nil {
		t.Error("Process(wrong geometry) error = nil, want error")
	}

	gray := newMask(FrameHeight, FrameWidth)
	defer gray.Close()
	if _, err := p.Process(context.Background(), gray); err == nil {
		t.Error("Process(single channel frame) error = nil, want error")
	}
}

func TestProcess_CornerDeadlineForcesNotFound(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()
	paintBGR(&frame, 8, 12, CornerScanTop, FrameHeight, 0, 0, 255)

	cfg := DefaultConfig()
	cfg.CornerScanDeadline = 20 * time.Millisecond
	p := NewFrameProcessor(cfg, NewThresholds())

	release := make(chan struct{})
	p.scanCorners = func(hsv gocv.Mat, valueFloor int) PositionSignal {
		<-release
		return ScanCorners(hsv, valueFloor)
	}

	start := time.Now()
	result, err := p.Process(context.Background(), frame)
	close(release)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Corner.Found {
		t.Errorf("corner = found at offset %d after overrun, want forced not-found", result.Corner.Offset)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Process() blocked %v on a stuck corner scan, want deadline-bounded return", elapsed)
	}
}

func TestProcess_EachFrameCarriesOwnCornerResult(t *testing.T) {
	frame := newBGRFrame()
	defer frame.Close()

	p := NewFrameProcessor(DefaultConfig(), NewThresholds())

	var mu sync.Mutex
	calls := 0
	p.scanCorners = func(gocv.Mat, int) PositionSignal {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		return PositionSignal{Offset: n, Found: true}
	}

	for want := 1; want <= 10; want++ {
		result, err := p.Process(context.Background(), frame)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if !result.Corner.Found || result.Corner.Offset != want {
			t.Fatalf("frame %d corner = %+v, want found at offset %d (stale or unjoined worker result)",
				want, result.Corner, want)
		}
	}
}
