package validation

import (
	"testing"

	"exam-proctor-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsRecognizedCategory(t *testing.T) {
	v := NewValidator()

	confidence := 0.93
	duration := 4
	result, err := v.Validate(CandidateEvent{
		EventType:       "phone_detected",
		Description:     "Mobile phone visible in frame",
		DurationSeconds: &duration,
		ConfidenceScore: &confidence,
	})

	assert.NoError(t, err)
	assert.Equal(t, "phone_detected", result.EventType)
	assert.True(t, result.Recognized)
	assert.Equal(t, 4, result.DurationSeconds)
	assert.Equal(t, 0.93, *result.ConfidenceScore)
	assert.False(t, result.DetectedAt.IsZero())
}

func TestValidateAcceptsUnknownCategory(t *testing.T) {
	v := NewValidator()

	result, err := v.Validate(CandidateEvent{
		EventType:   "talking_detected",
		Description: "Voice activity while alone in frame",
	})

	assert.NoError(t, err)
	assert.False(t, result.Recognized)
}

func TestValidateRejectsMalformedEvents(t *testing.T) {
	v := NewValidator()

	negativeDuration := -1
	badConfidence := 1.5
	negativeConfidence := -0.2

	tests := []struct {
		name  string
		event CandidateEvent
	}{
		{
			name:  "blank event type",
			event: CandidateEvent{EventType: "   ", Description: "something"},
		},
		{
			name:  "blank description",
			event: CandidateEvent{EventType: "focus_lost", Description: ""},
		},
		{
			name:  "negative duration",
			event: CandidateEvent{EventType: "focus_lost", Description: "tab switch", DurationSeconds: &negativeDuration},
		},
		{
			name:  "confidence above one",
			event: CandidateEvent{EventType: "focus_lost", Description: "tab switch", ConfidenceScore: &badConfidence},
		},
		{
			name:  "negative confidence",
			event: CandidateEvent{EventType: "focus_lost", Description: "tab switch", ConfidenceScore: &negativeConfidence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate(tt.event)
			assert.Nil(t, result)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	v := NewValidator()

	result, err := v.Validate(CandidateEvent{
		EventType:   "no_face",
		Description: "No face in frame",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.DurationSeconds)
	// Absent confidence must stay absent, not become 0.0.
	assert.Nil(t, result.ConfidenceScore)
}

func TestValidateTrimsEventType(t *testing.T) {
	v := NewValidator()

	result, err := v.Validate(CandidateEvent{
		EventType:   "  focus_lost ",
		Description: "tab switch",
	})

	assert.NoError(t, err)
	assert.Equal(t, "focus_lost", result.EventType)
	assert.True(t, result.Recognized)
}
