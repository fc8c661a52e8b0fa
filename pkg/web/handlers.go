package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/adriancooper13/golfbot/pkg/hub"
	"github.com/adriancooper13/golfbot/pkg/protocol"
)

// handleHealthz reports liveness.
func (s *Server) handleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleState returns the node's tunable state and counters.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.controller.State())
}

// handleAdjustThresholds is the REST tuning path. Deltas outside [0,255]
// are silently rejected by the adjuster, so the response always carries
// the floors actually in effect.
func (s *Server) handleAdjustThresholds(c *fiber.Ctx) error {
	var req protocol.ThresholdAdjustment
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid adjustment body",
		})
	}

	s.controller.Adjust(req.LowerAdjustment, req.RedAdjustment)
	return c.JSON(s.controller.State())
}

// handleVisionWS serves a steering-message subscriber. Inbound frames on
// the socket go to the node's control path via the hub callback.
func (s *Server) handleVisionWS(c *websocket.Conn) {
	client := hub.NewClient(s.visionHub, c)
	client.Run()
}
