// Package camera provides frame sources for the vision node. A source
// delivers one BGR frame per call; the caller owns the returned Mat and
// must close it when the analysis pass is done.
package camera

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/adriancooper13/golfbot/pkg/vision"
)

// Source delivers camera frames to the node loop.
type Source interface {
	// Read blocks until the next frame is available. The returned frame is
	// always non-empty and exactly FrameWidth x FrameHeight BGR; degenerate
	// captures are rejected here, before they reach the analysis pipeline.
	Read(ctx context.Context) (gocv.Mat, error)

	// Close releases the underlying capture resource.
	Close() error
}

// validate fails fast on frames the pipeline must never see.
func validate(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("camera: empty frame")
	}
	if frame.Cols() != vision.FrameWidth || frame.Rows() != vision.FrameHeight {
		return fmt.Errorf("camera: frame is %dx%d, want %dx%d",
			frame.Cols(), frame.Rows(), vision.FrameWidth, vision.FrameHeight)
	}
	return nil
}
