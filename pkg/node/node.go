// Package node runs the vision node: it pulls frames from a camera
// source, feeds them through the analysis pipeline, and publishes exactly
// one steering message per frame.
package node

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/adriancooper13/golfbot/internal/log"
	"github.com/adriancooper13/golfbot/pkg/camera"
	"github.com/adriancooper13/golfbot/pkg/protocol"
	"github.com/adriancooper13/golfbot/pkg/vision"
)

// Publisher is the outbound message fan-out.
type Publisher interface {
	BroadcastJSON(v interface{}) error
}

// Node ties the camera source, the frame processor, and the publisher
// together.
type Node struct {
	source     camera.Source
	processor  *vision.FrameProcessor
	thresholds *vision.Thresholds
	publisher  Publisher

	framesProcessed atomic.Uint64
	framesRejected  atomic.Uint64
}

// New creates a node. The thresholds must be the same instance the
// processor reads.
func New(source camera.Source, processor *vision.FrameProcessor, thresholds *vision.Thresholds, publisher Publisher) *Node {
	return &Node{
		source:     source,
		processor:  processor,
		thresholds: thresholds,
		publisher:  publisher,
	}
}

// Run processes frames until the context is canceled or the source ends.
// Every analyzed frame produces one published message; rejected frames
// produce none and are counted instead.
func (n *Node) Run(ctx context.Context) error {
	log.Info("vision node started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := n.source.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				log.Info("frame source ended")
				return nil
			}
			n.framesRejected.Add(1)
			log.Warn("frame rejected at ingestion", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		result, err := n.processor.Process(ctx, frame)
		frame.Close()
		if err != nil {
			n.framesRejected.Add(1)
			log.Warn("frame rejected by processor", "error", err)
			continue
		}
		n.framesProcessed.Add(1)

		if err := n.publishResult(result); err != nil {
			log.Error("publish image data", "error", err)
		}
	}
}

func (n *Node) publishResult(result vision.Result) error {
	msg, err := protocol.NewImageDataMessage(
		result.Ball.Wire(vision.NoBallFound),
		result.Corner.Wire(vision.NoEdgeFound),
	)
	if err != nil {
		return err
	}
	return n.publisher.BroadcastJSON(msg)
}

// Adjust applies threshold deltas and broadcasts the resulting state so
// tuning clients see the effect of their request.
func (n *Node) Adjust(lowerDelta, redDelta int) {
	n.thresholds.Adjust(lowerDelta, redDelta)
	n.broadcastState()
}

// State returns a snapshot of the node's tunable state and counters.
func (n *Node) State() protocol.StateData {
	lane, marker := n.thresholds.Snapshot()
	return protocol.StateData{
		LaneFloor:       lane,
		MarkerFloor:     marker,
		FramesProcessed: n.framesProcessed.Load(),
		FramesRejected:  n.framesRejected.Load(),
	}
}

// HandleControlMessage is the inbound websocket path: threshold
// adjustments and pings. Malformed messages are logged and dropped.
func (n *Node) HandleControlMessage(clientID string, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		log.Warn("bad control message", "client", clientID, "error", err)
		return
	}

	switch msg.Type {
	case protocol.TypeThresholdAdjustment:
		adj, err := msg.GetThresholdAdjustment()
		if err != nil {
			log.Warn("bad threshold adjustment", "client", clientID, "error", err)
			return
		}
		n.Adjust(adj.LowerAdjustment, adj.RedAdjustment)

	case protocol.TypePing:
		var ping protocol.PingData
		if err := msg.ParseData(&ping); err != nil {
			return
		}
		pong, err := protocol.NewMessage(protocol.TypePong, protocol.PongData{
			ID:     ping.ID,
			PingTS: msg.Timestamp,
			PongTS: time.Now().UnixMilli(),
		})
		if err == nil {
			n.publisher.BroadcastJSON(pong)
		}

	default:
		log.Debug("ignoring control message", "client", clientID, "type", msg.Type)
	}
}

func (n *Node) broadcastState() {
	msg, err := protocol.NewStateMessage(n.State())
	if err != nil {
		return
	}
	n.publisher.BroadcastJSON(msg)
}
