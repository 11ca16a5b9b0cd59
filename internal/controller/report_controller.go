package controller

import (
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/internal/pkg/serverutils"
	"exam-proctor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview")
	h.Get("/report/:sessionId", c.Show)
	h.Get("/report/:sessionId/pdf", c.Download)
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return apperror.NewValidationError("session_id", "must be a valid uuid")
	}

	res, err := c.service.Get(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get interview report", res))
}

func (c *reportController) Download(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return apperror.NewValidationError("session_id", "must be a valid uuid")
	}

	pdf, err := c.service.RenderPDF(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+pdf.FileName+`"`)
	return ctx.Send(pdf.Content)
}
