package vision

import (
	"sync"
	"testing"
)

func TestThresholds_Adjust(t *testing.T) {
	tests := []struct {
		name        string
		laneDelta   int
		markerDelta int
		wantLane    int
		wantMarker  int
	}{
		{
			name:      "negative delta within range",
			laneDelta: -10,
			wantLane:  170,
		},
		{
			name:      "delta that would go negative is rejected",
			laneDelta: -200,
			wantLane:  InitialLaneFloor,
		},
		{
			name:        "delta that would exceed 255 is rejected",
			markerDelta: 200,
			wantMarker:  InitialMarkerFloor,
		},
		{
			name:     "zero delta is a no-op",
			wantLane: InitialLaneFloor,
		},
		{
			name:        "both floors adjusted independently",
			laneDelta:   5,
			markerDelta: -15,
			wantLane:    185,
			wantMarker:  180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewThresholds()
			th.Adjust(tt.laneDelta, tt.markerDelta)

			lane, marker := th.Snapshot()
			if tt.wantLane == 0 {
				tt.wantLane = InitialLaneFloor
			}
			if tt.wantMarker == 0 {
				tt.wantMarker = InitialMarkerFloor
			}
			if lane != tt.wantLane {
				t.Errorf("lane floor = %d, want %d", lane, tt.wantLane)
			}
			if marker != tt.wantMarker {
				t.Errorf("marker floor = %d, want %d", marker, tt.wantMarker)
			}
		})
	}
}

func TestThresholds_RejectionLeavesOtherFloorIntact(t *testing.T) {
	th := NewThresholds()
	// Lane delta is out of range, marker delta is fine: the marker floor
	// must still move.
	th.Adjust(-200, -10)

	lane, marker := th.Snapshot()
	if lane != InitialLaneFloor {
		t.Errorf("lane floor = %d, want %d unchanged", lane, InitialLaneFloor)
	}
	if marker != InitialMarkerFloor-10 {
		t.Errorf("marker floor = %d, want %d", marker, InitialMarkerFloor-10)
	}
}

func TestThresholds_ConcurrentAdjustAndSnapshot(t *testing.T) {
	th := NewThresholds()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				th.Adjust(-1, 1)
				th.Adjust(1, -1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				lane, marker := th.Snapshot()
				if lane < 0 || lane > 255 || marker < 0 || marker > 255 {
					t.Errorf("torn or out-of-range snapshot: lane=%d marker=%d", lane, marker)
					return
				}
			}
		}()
	}
	wg.Wait()

	lane, marker := th.Snapshot()
	if lane != InitialLaneFloor || marker != InitialMarkerFloor {
		t.Errorf("final floors = (%d, %d), want (%d, %d)", lane, marker, InitialLaneFloor, InitialMarkerFloor)
	}
}
