package entity

import (
	"time"

	"github.com/google/uuid"
)

type ExamSession struct {
	Id              uuid.UUID
	SessionId       uuid.UUID // Public identifier handed to the client
	CandidateName   string
	CandidateEmail  string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes int
	VideoPath       *string
	Counters        CounterSnapshot
	IntegrityScore  int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Ended reports whether the session reached its terminal state.
func (s *ExamSession) Ended() bool {
	return s.EndedAt != nil
}
