package camera

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/adriancooper13/golfbot/pkg/vision"
)

// Device captures frames from a local camera.
type Device struct {
	capture *gocv.VideoCapture
}

// OpenDevice opens the camera at the given device index and requests the
// pipeline resolution. Cameras that ignore the request get their frames
// resized in Read.
func OpenDevice(deviceID int) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", deviceID, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, float64(vision.FrameWidth))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(vision.FrameHeight))
	return &Device{capture: capture}, nil
}

// Read grabs the next frame from the camera.
func (d *Device) Read(ctx context.Context) (gocv.Mat, error) {
	if err := ctx.Err(); err != nil {
		return gocv.Mat{}, err
	}

	frame := gocv.NewMat()
	if ok := d.capture.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("camera read: no frame from device")
	}

	if frame.Cols() != vision.FrameWidth || frame.Rows() != vision.FrameHeight {
		resized := gocv.NewMat()
		gocv.Resize(frame, &resized,
			image.Pt(vision.FrameWidth, vision.FrameHeight), 0, 0,
			gocv.InterpolationLinear)
		frame.Close()
		frame = resized
	}

	if err := validate(frame); err != nil {
		frame.Close()
		return gocv.Mat{}, err
	}
	return frame, nil
}

// Close releases the camera.
func (d *Device) Close() error {
	return d.capture.Close()
}
