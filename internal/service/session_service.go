package service

import (
	"context"
	"fmt"
	"time"

	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/pkg/mailer"
	"exam-proctor-be/internal/repository/memory"
	"exam-proctor-be/internal/repository/specification"
	"exam-proctor-be/internal/repository/unitofwork"
	proctorEvents "exam-proctor-be/pkg/proctor/events"
	"exam-proctor-be/pkg/proctor/scoring"
	"exam-proctor-be/pkg/store"

	"github.com/google/uuid"
)

type ISessionService interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	End(ctx context.Context, sessionId uuid.UUID) (*dto.EndSessionResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	AttachVideo(ctx context.Context, sessionId uuid.UUID, videoPath string) (*dto.UploadVideoResponse, error)
}

type sessionService struct {
	uowFactory   unitofwork.RepositoryFactory
	engine       *scoring.Engine
	publisher    proctorEvents.Publisher
	liveSessions *memory.LiveSessionRepository
	emailService mailer.IEmailService
	logger       logger.ILogger
	clientURL    string
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	engine *scoring.Engine,
	publisher proctorEvents.Publisher,
	liveSessions *memory.LiveSessionRepository,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
	clientURL string,
) ISessionService {
	return &sessionService{
		uowFactory:   uowFactory,
		engine:       engine,
		publisher:    publisher,
		liveSessions: liveSessions,
		emailService: emailService,
		logger:       sysLogger,
		clientURL:    clientURL,
	}
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	session := entity.ExamSession{
		Id:             uuid.New(),
		SessionId:      uuid.New(),
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		StartedAt:      now,
		IntegrityScore: scoring.BaseScore,
		CreatedAt:      now,
	}

	if err := uow.ExamSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.liveSessions.Save(&store.LiveSession{
		SessionID:      session.SessionId.String(),
		CandidateName:  session.CandidateName,
		StartedAt:      session.StartedAt,
		IntegrityScore: session.IntegrityScore,
	})

	s.publisher.PublishSessionStarted(ctx, session.SessionId, session.CandidateName, session.CandidateEmail)
	s.logger.Info("SESSION", "Interview session started", map[string]interface{}{
		"session_id":     session.SessionId,
		"candidate_name": session.CandidateName,
	})

	return &dto.StartSessionResponse{
		SessionId: session.SessionId,
		StartedAt: session.StartedAt,
	}, nil
}

// End freezes the session. The row lock taken here is the same one append
// uses, so an in-flight event either lands before the end or is rejected
// with a terminal error after it — never silently dropped.
func (s *sessionService) End(ctx context.Context, sessionId uuid.UUID) (*dto.EndSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

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
		// Idempotent from the caller's point of view: the frozen score
		// rides along with the rejection.
		return nil, &apperror.SessionTerminalError{IntegrityScore: session.IntegrityScore}
	}

	now := time.Now()
	ended := now
	session.EndedAt = &ended
	session.DurationMinutes = int(now.Sub(session.StartedAt).Minutes())
	if session.DurationMinutes < 0 {
		session.DurationMinutes = 0
	}

	// Score is recomputed strictly from counters, never patched.
	session.IntegrityScore = s.engine.Score(session.Counters)

	totalEvents, err := uow.DetectionEventRepository().Count(ctx,
		specification.BySessionID{SessionID: session.Id},
	)
	if err != nil {
		return nil, err
	}

	if err := uow.ExamSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.liveSessions.Delete(session.SessionId.String())
	s.publisher.PublishSessionEnded(ctx, session.SessionId, session.IntegrityScore, session.DurationMinutes, int(totalEvents))

	// Best effort: a failed mail never fails the end call.
	reportURL := fmt.Sprintf("%s/report/%s", s.clientURL, session.SessionId)
	if err := s.emailService.SendSessionSummary(
		session.CandidateEmail,
		session.CandidateName,
		session.SessionId.String(),
		session.IntegrityScore,
		session.DurationMinutes,
		reportURL,
	); err != nil {
		s.logger.Warn("SESSION", "Failed to send session summary email", map[string]interface{}{
			"session_id": session.SessionId,
			"error":      err.Error(),
		})
	}

	s.logger.Info("SESSION", "Interview session ended", map[string]interface{}{
		"session_id":      session.SessionId,
		"integrity_score": session.IntegrityScore,
	})

	return &dto.EndSessionResponse{
		SessionId:       session.SessionId,
		IntegrityScore:  session.IntegrityScore,
		DurationMinutes: session.DurationMinutes,
		EndedAt:         *session.EndedAt,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ExamSessionRepository().FindOne(ctx,
		specification.ByPublicSessionID{SessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}

	total, err := uow.DetectionEventRepository().Count(ctx,
		specification.BySessionID{SessionID: session.Id},
	)
	if err != nil {
		return nil, err
	}

	res := sessionResponse(session, int(total))
	return &res, nil
}

func (s *sessionService) AttachVideo(ctx context.Context, sessionId uuid.UUID, videoPath string) (*dto.UploadVideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ExamSessionRepository().FindOne(ctx,
		specification.ByPublicSessionID{SessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}

	session.VideoPath = &videoPath
	if err := uow.ExamSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("SESSION", "Recording attached to session", map[string]interface{}{
		"session_id": session.SessionId,
		"video_path": videoPath,
	})

	return &dto.UploadVideoResponse{VideoPath: videoPath}, nil
}

func sessionResponse(session *entity.ExamSession, totalEvents int) dto.SessionResponse {
	return dto.SessionResponse{
		SessionId:       session.SessionId,
		CandidateName:   session.CandidateName,
		CandidateEmail:  session.CandidateEmail,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		DurationMinutes: session.DurationMinutes,
		VideoPath:       session.VideoPath,
		IntegrityScore:  session.IntegrityScore,
		Counters: dto.CountersResponse{
			FocusLost:      session.Counters.FocusLost,
			MultipleFaces:  session.Counters.MultipleFaces,
			NoFace:         session.Counters.NoFace,
			PhoneDetected:  session.Counters.PhoneDetected,
			BooksDetected:  session.Counters.BooksDetected,
			DeviceDetected: session.Counters.DeviceDetected,
			TotalEvents:    totalEvents,
		},
	}
}
