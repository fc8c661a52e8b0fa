// Package config provides environment configuration helpers for the
// golfbot commands.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the vision node.
const (
	DefaultPort         = "8080"
	DefaultCameraDevice = 0
)

// Port returns the web server port from PORT.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// LogLevel returns the logging level from LOG_LEVEL.
func LogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

// CameraDevice returns the local camera index from CAMERA_DEVICE.
func CameraDevice() int {
	if raw := os.Getenv("CAMERA_DEVICE"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}
	return DefaultCameraDevice
}

// StreamURL returns the websocket frame-stream URL from STREAM_URL.
// When set, the node reads frames from the stream instead of a local
// camera.
func StreamURL() string {
	return os.Getenv("STREAM_URL")
}

// UseCenterLocator reports whether VISION_LOCATOR selects the three-zone
// lane-center locator instead of the default largest-ball locator.
func UseCenterLocator() bool {
	return os.Getenv("VISION_LOCATOR") == "center"
}

// CornerScanDeadline returns the corner worker deadline from
// CORNER_SCAN_DEADLINE_MS, or zero to use the processor default.
func CornerScanDeadline() time.Duration {
	if raw := os.Getenv("CORNER_SCAN_DEADLINE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 0
}
