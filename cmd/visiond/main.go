// visiond analyzes camera frames for lane following and golf ball pickup,
// and publishes per-frame steering signals over websocket.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/adriancooper13/golfbot/internal/config"
	"github.com/adriancooper13/golfbot/internal/log"
	"github.com/adriancooper13/golfbot/pkg/camera"
	"github.com/adriancooper13/golfbot/pkg/hub"
	"github.com/adriancooper13/golfbot/pkg/node"
	"github.com/adriancooper13/golfbot/pkg/vision"
	"github.com/adriancooper13/golfbot/pkg/web"
)

func main() {
	log.Init(config.LogLevel())

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	source, err := openSource(ctx)
	if err != nil {
		log.Error("open frame source", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	thresholds := vision.NewThresholds()
	cfg := vision.DefaultConfig()
	cfg.UseCenterLocator = config.UseCenterLocator()
	if d := config.CornerScanDeadline(); d > 0 {
		cfg.CornerScanDeadline = d
	}
	processor := vision.NewFrameProcessor(cfg, thresholds)

	visionHub := hub.New("vision")
	n := node.New(source, processor, thresholds, visionHub)
	server := web.NewServer(config.Port(), n, visionHub)
	server.StartAsync()
	defer server.Shutdown()

	if err := n.Run(ctx); err != nil && err != context.Canceled {
		log.Error("vision node stopped", "error", err)
		os.Exit(1)
	}
}

// openSource picks the frame source: a websocket stream when STREAM_URL
// is set, the local camera otherwise.
func openSource(ctx context.Context) (camera.Source, error) {
	if url := config.StreamURL(); url != "" {
		log.Info("reading frames from stream", "url", url)
		return camera.DialStream(ctx, url)
	}
	log.Info("reading frames from camera", "device", config.CameraDevice())
	return camera.OpenDevice(config.CameraDevice())
}
