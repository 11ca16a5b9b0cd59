package report

import (
	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/entity"
)

// Builder aggregates a session and its audit log into the report shape
// shared by the JSON endpoint and the PDF renderer.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build groups events by category, preserving insertion order within each
// category. Unrecognized categories appear under their own key so the
// audit trail stays complete even though they never scored.
func (b *Builder) Build(session *entity.ExamSession, events []*entity.DetectionEvent) *dto.ReportResponse {
	grouped := make(map[string][]*dto.DetectionEventResponse)
	for _, e := range events {
		grouped[e.EventType] = append(grouped[e.EventType], &dto.DetectionEventResponse{
			Id:              e.Id,
			EventType:       e.EventType,
			Description:     e.Description,
			DetectedAt:      e.DetectedAt,
			DurationSeconds: e.DurationSeconds,
			ConfidenceScore: e.ConfidenceScore,
			Metadata:        e.Metadata,
		})
	}

	return &dto.ReportResponse{
		Session:          SessionResponse(session, len(events)),
		EventsByCategory: grouped,
	}
}

// SessionResponse maps a session entity to its response DTO.
func SessionResponse(session *entity.ExamSession, totalEvents int) dto.SessionResponse {
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
