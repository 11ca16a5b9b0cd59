package controller

import (
	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/pkg/serverutils"
	"exam-proctor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDetectionController interface {
	RegisterRoutes(r fiber.Router)
	LogDetection(ctx *fiber.Ctx) error
}

type detectionController struct {
	service service.IDetectionService
}

func NewDetectionController(service service.IDetectionService) IDetectionController {
	return &detectionController{service: service}
}

func (c *detectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview")
	h.Post("/log-detection", c.LogDetection)
}

func (c *detectionController) LogDetection(ctx *fiber.Ctx) error {
	var req dto.LogDetectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Record(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Detection logged", res))
}
