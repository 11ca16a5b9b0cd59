package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"exam-proctor-be/internal/config"
	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/internal/pkg/serverutils"
	"exam-proctor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	UploadVideo(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
	upload  config.UploadConfig
}

func NewSessionController(service service.ISessionService, upload config.UploadConfig) ISessionController {
	return &sessionController{service: service, upload: upload}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview")
	h.Post("/start", c.Start)
	h.Post("/end", c.End)
	h.Post("/upload-video", c.UploadVideo)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interview session started", res))
}

func (c *sessionController) End(ctx *fiber.Ctx) error {
	var req dto.EndSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return apperror.NewValidationError("session_id", "must be a valid uuid")
	}

	res, err := c.service.End(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interview session ended", res))
}

// UploadVideo receives the recorded exam video as multipart form data and
// attaches the stored path to the session.
func (c *sessionController) UploadVideo(ctx *fiber.Ctx) error {
	sessionIdParam := ctx.FormValue("session_id")
	sessionId, err := uuid.Parse(sessionIdParam)
	if err != nil {
		return apperror.NewValidationError("session_id", "must be a valid uuid")
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		return apperror.NewValidationError("video", "is required")
	}
	if file.Size > int64(c.upload.MaxVideoSize) {
		return apperror.NewValidationError("video", "exceeds the maximum allowed size")
	}

	dir := filepath.Join(c.upload.Dir, "interviews")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fileName := fmt.Sprintf("interview_%s_%d%s", sessionId, time.Now().Unix(), filepath.Ext(file.Filename))
	fullPath := filepath.Join(dir, fileName)
	if err := ctx.SaveFile(file, fullPath); err != nil {
		return err
	}

	res, err := c.service.AttachVideo(ctx.Context(), sessionId, fullPath)
	if err != nil {
		// The session owns the file reference; an orphaned upload is
		// removed right away.
		os.Remove(fullPath)
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interview video uploaded", res))
}
