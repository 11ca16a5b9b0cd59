package validation

import (
	"strings"
	"time"

	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/pkg/apperror"
)

// CandidateEvent is a raw detector decision before acceptance.
type CandidateEvent struct {
	EventType       string
	Description     string
	DurationSeconds *int
	ConfidenceScore *float64
	Metadata        map[string]interface{}
}

// ValidatedEvent is the normalized form of an accepted decision.
// Recognized reports whether the category participates in scoring;
// unrecognized categories are still logged for audit but never counted.
type ValidatedEvent struct {
	EventType       string
	Description     string
	DetectedAt      time.Time
	DurationSeconds int
	ConfidenceScore *float64
	Metadata        map[string]interface{}
	Recognized      bool
}

// Validator checks and normalizes raw detection events. No side effects.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate rejects malformed events and fills defaults on accepted ones.
// Absent confidence stays absent: "no signal" is not the same as "zero
// confidence".
func (v *Validator) Validate(candidate CandidateEvent) (*ValidatedEvent, error) {
	eventType := strings.TrimSpace(candidate.EventType)
	if eventType == "" {
		return nil, apperror.NewValidationError("event_type", "is required")
	}

	if strings.TrimSpace(candidate.Description) == "" {
		return nil, apperror.NewValidationError("description", "is required")
	}

	duration := 0
	if candidate.DurationSeconds != nil {
		if *candidate.DurationSeconds < 0 {
			return nil, apperror.NewValidationError("duration_seconds", "must be >= 0")
		}
		duration = *candidate.DurationSeconds
	}

	if candidate.ConfidenceScore != nil {
		if *candidate.ConfidenceScore < 0 || *candidate.ConfidenceScore > 1 {
			return nil, apperror.NewValidationError("confidence_score", "must be between 0 and 1")
		}
	}

	return &ValidatedEvent{
		EventType:       eventType,
		Description:     candidate.Description,
		DetectedAt:      time.Now(),
		DurationSeconds: duration,
		ConfidenceScore: candidate.ConfidenceScore,
		Metadata:        candidate.Metadata,
		Recognized:      constant.IsRecognizedCategory(eventType),
	}, nil
}
