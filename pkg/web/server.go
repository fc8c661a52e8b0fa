// Package web exposes the vision node over HTTP and websocket: steering
// messages fan out on /ws/vision, and the same socket accepts threshold
// adjustments; a small REST surface covers health and tuning.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/adriancooper13/golfbot/internal/log"
	"github.com/adriancooper13/golfbot/pkg/hub"
	"github.com/adriancooper13/golfbot/pkg/protocol"
)

// Controller is the slice of the node the web surface needs.
type Controller interface {
	State() protocol.StateData
	Adjust(lowerDelta, redDelta int)
	HandleControlMessage(clientID string, data []byte)
}

// Server is the node's HTTP/websocket front end.
type Server struct {
	app        *fiber.App
	port       string
	controller Controller
	visionHub  *hub.Hub
}

// NewServer creates the server around an existing broadcast hub and wires
// the hub's inbound path to the controller.
func NewServer(port string, controller Controller, visionHub *hub.Hub) *Server {
	s := &Server{
		port:       port,
		controller: controller,
		visionHub:  visionHub,
	}
	s.visionHub.OnMessage = controller.HandleControlMessage

	app := fiber.New(fiber.Config{
		AppName:               "golfbot visiond",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealthz)

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Post("/thresholds", s.handleAdjustThresholds)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/vision", websocket.New(s.handleVisionWS))

	s.app = app
	return s
}

// Start runs the hub and listens. It blocks.
func (s *Server) Start() error {
	go s.visionHub.Run()
	log.Info("web server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
