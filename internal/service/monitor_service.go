package service

import (
	"sort"
	"time"

	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/repository/memory"
)

type IMonitorService interface {
	ActiveSessions() []*dto.MonitorStateResponse
	Logs(level string, limit, offset int) ([]logger.LogEntry, error)
}

// monitorService serves the proctor dashboard from in-memory state.
// Nothing here touches the database; the live cache is the read model.
type monitorService struct {
	liveSessions *memory.LiveSessionRepository
	logger       logger.ILogger
}

func NewMonitorService(liveSessions *memory.LiveSessionRepository, sysLogger logger.ILogger) IMonitorService {
	return &monitorService{
		liveSessions: liveSessions,
		logger:       sysLogger,
	}
}

func (s *monitorService) ActiveSessions() []*dto.MonitorStateResponse {
	live := s.liveSessions.Active()

	responses := make([]*dto.MonitorStateResponse, 0, len(live))
	for _, session := range live {
		resp := &dto.MonitorStateResponse{
			SessionId:      session.SessionID,
			CandidateName:  session.CandidateName,
			IntegrityScore: session.IntegrityScore,
			TotalEvents:    session.TotalEvents,
			LastEventType:  session.LastEventType,
		}
		if !session.LastEventAt.IsZero() {
			resp.LastEventAt = session.LastEventAt.Format(time.RFC3339)
		}
		responses = append(responses, resp)
	}

	// Cache iteration order is arbitrary; keep the dashboard stable.
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].SessionId < responses[j].SessionId
	})

	return responses
}

func (s *monitorService) Logs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logger.GetLogs(level, limit, offset)
}
