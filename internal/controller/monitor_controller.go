package controller

import (
	"exam-proctor-be/internal/pkg/serverutils"
	"exam-proctor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMonitorController interface {
	RegisterRoutes(r fiber.Router)
	ActiveSessions(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type monitorController struct {
	service service.IMonitorService
}

func NewMonitorController(service service.IMonitorService) IMonitorController {
	return &monitorController{service: service}
}

func (c *monitorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/monitor")
	h.Get("/sessions", c.ActiveSessions)
	h.Get("/logs", c.Logs)
}

func (c *monitorController) ActiveSessions(ctx *fiber.Ctx) error {
	res := c.service.ActiveSessions()
	return ctx.JSON(serverutils.SuccessResponse("Success get active sessions", res))
}

func (c *monitorController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.Logs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}
