package service

import (
	"context"
	"time"

	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/repository/specification"
	"exam-proctor-be/internal/repository/unitofwork"
	proctorEvents "exam-proctor-be/pkg/proctor/events"
	"exam-proctor-be/pkg/proctor/scoring"
	"exam-proctor-be/pkg/proctor/validation"

	"github.com/google/uuid"
)

type IDetectionService interface {
	Record(ctx context.Context, req *dto.LogDetectionRequest) (*dto.LogDetectionResponse, error)
}

type detectionService struct {
	uowFactory       unitofwork.RepositoryFactory
	validator        *validation.Validator
	engine           *scoring.Engine
	publisherService IPublisherService
	eventPublisher   proctorEvents.Publisher
	logger           logger.ILogger
}

func NewDetectionService(
	uowFactory unitofwork.RepositoryFactory,
	validator *validation.Validator,
	engine *scoring.Engine,
	publisherService IPublisherService,
	eventPublisher proctorEvents.Publisher,
	sysLogger logger.ILogger,
) IDetectionService {
	return &detectionService{
		uowFactory:       uowFactory,
		validator:        validator,
		engine:           engine,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

// Record validates one detector decision and, if accepted, appends it to
// the audit log and bumps the matching counter in a single transaction.
// Each submission stands alone: rejecting one event has no effect on the
// next one for the same session.
func (s *detectionService) Record(ctx context.Context, req *dto.LogDetectionRequest) (*dto.LogDetectionResponse, error) {
	validated, err := s.validator.Validate(validation.CandidateEvent{
		EventType:       req.EventType,
		Description:     req.Description,
		DurationSeconds: req.DurationSeconds,
		ConfidenceScore: req.ConfidenceScore,
		Metadata:        req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return nil, apperror.NewValidationError("session_id", "must be a valid uuid")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The row lock serializes concurrent appends for the same session, so
	// two detection loops on different cadences never lose an increment.
	session, err := uow.ExamSessionRepository().FindOneForUpdate(ctx,
		specification.ByPublicSessionID{SessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	if session.Ended() {
		return nil, &apperror.SessionTerminalError{IntegrityScore: session.IntegrityScore}
	}

	event := entity.DetectionEvent{
		Id:              uuid.New(),
		SessionId:       session.Id,
		EventType:       validated.EventType,
		Description:     validated.Description,
		DetectedAt:      validated.DetectedAt,
		DurationSeconds: validated.DurationSeconds,
		ConfidenceScore: validated.ConfidenceScore,
		Metadata:        validated.Metadata,
		CreatedAt:       time.Now(),
	}
	if err := uow.DetectionEventRepository().Create(ctx, &event); err != nil {
		return nil, err
	}

	newScore := session.IntegrityScore
	if validated.Recognized {
		if err := uow.ExamSessionRepository().IncrementCounter(ctx, session, validated.EventType); err != nil {
			return nil, err
		}

		// The stored score is a cache of the counters; refresh it inside
		// the same transaction so it can never drift.
		counters := session.Counters
		bumpCounter(&counters, validated.EventType)
		newScore = s.engine.Score(counters)
		if err := uow.ExamSessionRepository().UpdateScore(ctx, session, newScore); err != nil {
			return nil, err
		}
	} else {
		// Matches the observed source behavior: unmapped categories are
		// logged for audit but contribute no deduction.
		s.logger.Warn("DETECTION", "Unrecognized event type logged without scoring", map[string]interface{}{
			"session_id": session.SessionId,
			"event_type": validated.EventType,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Post-commit side effects are best effort.
	if err := s.publisherService.PublishDetectionAccepted(&DetectionAcceptedMessage{
		SessionId:       session.SessionId.String(),
		EventId:         event.Id.String(),
		EventType:       event.EventType,
		Description:     event.Description,
		DetectedAt:      event.DetectedAt.Format(time.RFC3339),
		ConfidenceScore: event.ConfidenceScore,
		IntegrityScore:  newScore,
		Recognized:      validated.Recognized,
	}); err != nil {
		s.logger.Warn("DETECTION", "Failed to publish detection to monitor feed", map[string]interface{}{
			"session_id": session.SessionId,
			"error":      err.Error(),
		})
	}

	if isHighSeverity(event.EventType) {
		s.eventPublisher.PublishHighSeverityDetection(ctx, session.SessionId, event.EventType, event.Description, event.ConfidenceScore)
	}

	return &dto.LogDetectionResponse{
		EventId:    event.Id,
		EventType:  event.EventType,
		Recognized: validated.Recognized,
		DetectedAt: event.DetectedAt,
	}, nil
}

func bumpCounter(c *entity.CounterSnapshot, category string) {
	switch category {
	case constant.CategoryFocusLost:
		c.FocusLost++
	case constant.CategoryMultipleFaces:
		c.MultipleFaces++
	case constant.CategoryNoFace:
		c.NoFace++
	case constant.CategoryPhoneDetected:
		c.PhoneDetected++
	case constant.CategoryBooksDetected:
		c.BooksDetected++
	case constant.CategoryDeviceDetected:
		c.DeviceDetected++
	}
}

// isHighSeverity marks the categories a human proctor should see
// immediately, not just in the final report.
func isHighSeverity(category string) bool {
	switch category {
	case constant.CategoryPhoneDetected,
		constant.CategoryBooksDetected,
		constant.CategoryDeviceDetected:
		return true
	}
	return false
}
