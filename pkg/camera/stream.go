package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"
)

// Stream receives JPEG frames over a websocket, the same way the robot's
// onboard camera publishes them. Text messages on the socket are control
// chatter and are skipped.
type Stream struct {
	conn *websocket.Conn
}

// DialStream connects to a frame-publishing websocket endpoint.
func DialStream(ctx context.Context, url string) (*Stream, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial frame stream %s: %w", url, err)
	}
	return &Stream{conn: conn}, nil
}

// Read blocks until the next binary frame arrives and decodes it.
func (s *Stream) Read(ctx context.Context) (gocv.Mat, error) {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetReadDeadline(deadline)
	} else {
		s.conn.SetReadDeadline(time.Time{})
	}

	for {
		if err := ctx.Err(); err != nil {
			return gocv.Mat{}, err
		}

		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("frame stream read: %w", err)
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		frame, err := gocv.IMDecode(data, gocv.IMReadColor)
		if err != nil {
			return gocv.Mat{}, fmt.Errorf("frame stream decode: %w", err)
		}
		if err := validate(frame); err != nil {
			frame.Close()
			return gocv.Mat{}, err
		}
		return frame, nil
	}
}

// Close closes the websocket connection.
func (s *Stream) Close() error {
	return s.conn.Close()
}
