// Package protocol defines the JSON message types exchanged between the
// vision node, the drive controller, and tuning clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of a message.
type MessageType string

const (
	// Node → subscribers
	TypeImageData MessageType = "image_data" // per-frame steering signals
	TypeState     MessageType = "state"      // node state snapshot

	// Clients → node
	TypeThresholdAdjustment MessageType = "threshold_adjustment"

	// Bidirectional
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Message is the base wrapper for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct.
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message.
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// ImageData carries the two steering signals for one frame. Position
// offsets are columns relative to frame center; BallPosition uses -180 and
// CornerPosition uses math.MaxInt32 as their "not found" sentinels.
type ImageData struct {
	BallPosition   int `json:"ball_position"`
	CornerPosition int `json:"corner_position"`
}

// ThresholdAdjustment carries signed deltas for the two tunable floors.
// A zero delta leaves the corresponding floor unchanged.
type ThresholdAdjustment struct {
	LowerAdjustment int `json:"lower_adjustment"` // lane intensity floor
	RedAdjustment   int `json:"red_adjustment"`   // marker value floor
}

// StateData is a snapshot of the node's tunable state and counters.
type StateData struct {
	LaneFloor       int    `json:"lane_floor"`
	MarkerFloor     int    `json:"marker_floor"`
	FramesProcessed uint64 `json:"frames_processed"`
	FramesRejected  uint64 `json:"frames_rejected"`
}

// PingData is a health-check request.
type PingData struct {
	ID string `json:"id"`
}

// PongData is a health-check response.
type PongData struct {
	ID     string `json:"id"`
	PingTS int64  `json:"ping_ts"`
	PongTS int64  `json:"pong_ts"`
}
