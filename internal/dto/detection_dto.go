package dto

import (
	"time"

	"github.com/google/uuid"
)

type LogDetectionRequest struct {
	SessionId       string                 `json:"session_id" validate:"required,uuid"`
	EventType       string                 `json:"event_type" validate:"required,max=64"`
	Description     string                 `json:"description" validate:"required"`
	DurationSeconds *int                   `json:"duration_seconds" validate:"omitempty,gte=0"`
	ConfidenceScore *float64               `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
	Metadata        map[string]interface{} `json:"metadata"`
}

type LogDetectionResponse struct {
	EventId    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	Recognized bool      `json:"recognized"`
	DetectedAt time.Time `json:"detected_at"`
}

type DetectionEventResponse struct {
	Id              uuid.UUID              `json:"id"`
	EventType       string                 `json:"event_type"`
	Description     string                 `json:"description"`
	DetectedAt      time.Time              `json:"detected_at"`
	DurationSeconds int                    `json:"duration_seconds"`
	ConfidenceScore *float64               `json:"confidence_score"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}
