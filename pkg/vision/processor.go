package vision

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/adriancooper13/golfbot/internal/log"
)

// Config holds the tunable parameters of a FrameProcessor.
type Config struct {
	// CornerScanDeadline bounds how long a frame pass waits for its corner
	// worker. On overrun the corner signal is forced to not-found so a
	// stuck scan cannot stall the pipeline.
	CornerScanDeadline time.Duration

	// UseCenterLocator selects the three-zone lane-center locator instead
	// of the default largest-ball locator.
	UseCenterLocator bool
}

// DefaultConfig returns the recommended processor configuration.
func DefaultConfig() Config {
	return Config{
		CornerScanDeadline: 250 * time.Millisecond,
	}
}

// FrameProcessor runs the full analysis pass for one frame: color
// conversion, lane thresholding, column histogramming, ball location, and
// a concurrently dispatched corner scan.
type FrameProcessor struct {
	config     Config
	thresholds *Thresholds

	// locate and scanCorners are swappable for tests.
	locate      func(laneMask gocv.Mat) PositionSignal
	scanCorners func(hsv gocv.Mat, valueFloor int) PositionSignal
}

// NewFrameProcessor creates a processor reading the given shared thresholds.
func NewFrameProcessor(config Config, thresholds *Thresholds) *FrameProcessor {
	locate := LocateBall
	if config.UseCenterLocator {
		locate = LocateLaneCenter
	}
	return &FrameProcessor{
		config:      config,
		thresholds:  thresholds,
		locate:      locate,
		scanCorners: ScanCorners,
	}
}

// Process analyzes one frame and returns its two steering signals. The
// caller keeps ownership of the frame; every derived view is released
// before Process returns. The corner scan runs on its own goroutine
// against an HSV view it owns, so it never observes main-path work, and
// Process does not return before that scan has delivered its result or
// overrun its deadline.
func (p *FrameProcessor) Process(ctx context.Context, frame gocv.Mat) (Result, error) {
	if err := validateFrame(frame); err != nil {
		return Result{}, err
	}

	laneFloor, markerFloor := p.thresholds.Snapshot()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	// The worker owns the HSV view from here on.
	hsv := gocv.NewMat()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	cornerCh := make(chan PositionSignal, 1)
	go func() {
		defer hsv.Close()
		cornerCh <- p.scanCorners(hsv, markerFloor)
	}()

	laneMask := LaneMask(gray, laneFloor)
	defer laneMask.Close()
	ball := p.locate(laneMask)

	// When no ball is visible the corner signal is the primary steering
	// input, but the join is mandatory in every case: the next frame will
	// reuse the capture buffer this pass was derived from.
	corner := p.awaitCorner(ctx, cornerCh)

	return Result{Ball: ball, Corner: corner}, nil
}

func (p *FrameProcessor) awaitCorner(ctx context.Context, cornerCh <-chan PositionSignal) PositionSignal {
	deadline := p.config.CornerScanDeadline
	if deadline <= 0 {
		deadline = DefaultConfig().CornerScanDeadline
	}
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case corner := <-cornerCh:
		return corner
	case <-timer.C:
		log.Warn("corner scan overran deadline, forcing not-found", "deadline", deadline)
		return PositionSignal{}
	case <-ctx.Done():
		return PositionSignal{}
	}
}

// validateFrame rejects degenerate input at the ingestion boundary so the
// arg-max logic never sees it.
func validateFrame(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("process frame: empty frame")
	}
	if frame.Cols() != FrameWidth || frame.Rows() != FrameHeight {
		return fmt.Errorf("process frame: got %dx%d, want %dx%d",
			frame.Cols(), frame.Rows(), FrameWidth, FrameHeight)
	}
	if c := frame.Channels(); c != 3 {
		return fmt.Errorf("process frame: got %d channels, want 3", c)
	}
	return nil
}
