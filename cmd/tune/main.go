// tune adjusts the vision thresholds on a running visiond and prints the
// resulting state. With no deltas it just prints the current state.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adriancooper13/golfbot/internal/httpc"
	"github.com/adriancooper13/golfbot/pkg/protocol"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "visiond host:port")
	lower := flag.Int("lower", 0, "lane intensity floor delta")
	red := flag.Int("red", 0, "marker value floor delta")
	flag.Parse()

	if *lower == 0 && *red == 0 {
		state, err := fetchState(*addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch state: %v\n", err)
			os.Exit(1)
		}
		printState(state)
		return
	}

	state, err := sendAdjustment(*addr, *lower, *red)
	if err != nil {
		fmt.Fprintf(os.Stderr, "adjust thresholds: %v\n", err)
		os.Exit(1)
	}
	printState(state)
}

// sendAdjustment delivers the deltas over the vision websocket and waits
// for the state broadcast that acknowledges them.
func sendAdjustment(addr string, lower, red int) (*protocol.StateData, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws://"+addr+"/ws/vision", nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	msg, err := protocol.NewThresholdAdjustmentMessage(lower, red)
	if err != nil {
		return nil, err
	}
	raw, err := msg.Bytes()
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		return nil, fmt.Errorf("send adjustment: %w", err)
	}

	// The node broadcasts a state snapshot after applying an adjustment;
	// steering messages keep flowing in between, so skip those.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("await state: %w", err)
		}
		reply, err := protocol.ParseMessage(data)
		if err != nil {
			continue
		}
		if reply.Type != protocol.TypeState {
			continue
		}
		return reply.GetStateData()
	}
}

func fetchState(addr string) (*protocol.StateData, error) {
	resp, err := httpc.Get("http://" + addr + "/api/state")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var state protocol.StateData
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func printState(state *protocol.StateData) {
	fmt.Printf("lane floor:       %d\n", state.LaneFloor)
	fmt.Printf("marker floor:     %d\n", state.MarkerFloor)
	fmt.Printf("frames processed: %d\n", state.FramesProcessed)
	fmt.Printf("frames rejected:  %d\n", state.FramesRejected)
}
