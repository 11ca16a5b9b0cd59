package entity

import (
	"time"

	"github.com/google/uuid"
)

// DetectionEvent is a single accepted detector decision. Immutable once
// created; the ordered stream per session forms the audit trail.
type DetectionEvent struct {
	Id              uuid.UUID
	SessionId       uuid.UUID // FK to ExamSession.Id (internal id, not the public one)
	EventType       string
	Description     string
	DetectedAt      time.Time
	DurationSeconds int
	ConfidenceScore *float64 // nil means the detector sent no signal, distinct from 0
	Metadata        map[string]interface{}
	CreatedAt       time.Time
}
