package service

import (
	"context"
	"fmt"

	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/repository/specification"
	"exam-proctor-be/internal/repository/unitofwork"
	"exam-proctor-be/pkg/proctor/report"

	"github.com/google/uuid"
)

type PDFReport struct {
	FileName string
	Content  []byte
}

type IReportService interface {
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error)
	RenderPDF(ctx context.Context, sessionId uuid.UUID) (*PDFReport, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	builder    *report.Builder
	renderer   *report.PDFRenderer
	logger     logger.ILogger
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	builder *report.Builder,
	renderer *report.PDFRenderer,
	sysLogger logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		builder:    builder,
		renderer:   renderer,
		logger:     sysLogger,
	}
}

// Get returns the full report: session summary plus the audit log grouped
// by category. Works for active sessions too, so a proctor can pull an
// interim report mid-exam.
func (s *reportService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error) {
	session, events, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(session, events), nil
}

// RenderPDF renders the same report as a downloadable PDF document.
func (s *reportService) RenderPDF(ctx context.Context, sessionId uuid.UUID) (*PDFReport, error) {
	session, events, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(session, events)
	if err != nil {
		s.logger.Error("REPORT", "Failed to render PDF report", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	return &PDFReport{
		FileName: fmt.Sprintf("interview-report-%s.pdf", sessionId),
		Content:  content,
	}, nil
}

func (s *reportService) load(ctx context.Context, sessionId uuid.UUID) (*entity.ExamSession, []*entity.DetectionEvent, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ExamSessionRepository().FindOne(ctx,
		specification.ByPublicSessionID{SessionID: sessionId},
	)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, apperror.ErrSessionNotFound
	}

	events, err := uow.DetectionEventRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "detected_at"},
	)
	if err != nil {
		return nil, nil, err
	}

	return session, events, nil
}
