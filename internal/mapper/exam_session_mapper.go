package mapper

import (
	"time"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/model"
)

type ExamSessionMapper struct{}

func NewExamSessionMapper() *ExamSessionMapper {
	return &ExamSessionMapper{}
}

func (m *ExamSessionMapper) ToEntity(s *model.ExamSession) *entity.ExamSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ExamSession{
		Id:              s.Id,
		SessionId:       s.SessionId,
		CandidateName:   s.CandidateName,
		CandidateEmail:  s.CandidateEmail,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationMinutes: s.DurationMinutes,
		VideoPath:       s.VideoPath,
		Counters: entity.CounterSnapshot{
			FocusLost:      s.FocusLostCount,
			MultipleFaces:  s.MultipleFacesCount,
			NoFace:         s.NoFaceCount,
			PhoneDetected:  s.PhoneDetectedCount,
			BooksDetected:  s.BooksDetectedCount,
			DeviceDetected: s.DeviceDetectedCount,
		},
		IntegrityScore: s.IntegrityScore,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ExamSessionMapper) ToModel(s *entity.ExamSession) *model.ExamSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ExamSession{
		Id:                  s.Id,
		SessionId:           s.SessionId,
		CandidateName:       s.CandidateName,
		CandidateEmail:      s.CandidateEmail,
		StartedAt:           s.StartedAt,
		EndedAt:             s.EndedAt,
		DurationMinutes:     s.DurationMinutes,
		VideoPath:           s.VideoPath,
		FocusLostCount:      s.Counters.FocusLost,
		MultipleFacesCount:  s.Counters.MultipleFaces,
		NoFaceCount:         s.Counters.NoFace,
		PhoneDetectedCount:  s.Counters.PhoneDetected,
		BooksDetectedCount:  s.Counters.BooksDetected,
		DeviceDetectedCount: s.Counters.DeviceDetected,
		IntegrityScore:      s.IntegrityScore,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ExamSessionMapper) ToEntities(sessions []*model.ExamSession) []*entity.ExamSession {
	entities := make([]*entity.ExamSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
