package handler

import (
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/service"
	internalWS "exam-proctor-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// MonitorHandler owns the live websocket feed for proctors watching an
// exam session.
type MonitorHandler struct {
	monitorService service.IMonitorService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewMonitorHandler(monitorService service.IMonitorService, hub *internalWS.Hub, log logger.ILogger) *MonitorHandler {
	return &MonitorHandler{
		monitorService: monitorService,
		hub:            hub,
		logger:         log,
	}
}

// ServeWs upgrades the connection and subscribes the proctor to one
// session's detection feed.
func (h *MonitorHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("MonitorHandler", "Starting websocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("MonitorHandler", "Websocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *MonitorHandler) RegisterRoutes(router fiber.Router) {
	monitor := router.Group("/monitor")
	monitor.Get("/ws/:sessionId", h.ServeWs)
}
