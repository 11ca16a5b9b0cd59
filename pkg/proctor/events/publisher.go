package events

import (
	"context"
	"time"

	"exam-proctor-be/internal/pkg/logger"
	pkgEvents "exam-proctor-be/pkg/events"
	pktNats "exam-proctor-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for proctoring lifecycle moments.
// Implementations are best effort: a down bus never blocks an exam.
type Publisher interface {
	PublishSessionStarted(ctx context.Context, sessionId uuid.UUID, candidateName, candidateEmail string)
	PublishSessionEnded(ctx context.Context, sessionId uuid.UUID, integrityScore, durationMinutes, totalEvents int)
	PublishHighSeverityDetection(ctx context.Context, sessionId uuid.UUID, eventType, description string, confidence *float64)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishSessionStarted emits SESSION_STARTED when a candidate begins.
func (p *NatsPublisher) PublishSessionStarted(ctx context.Context, sessionId uuid.UUID, candidateName, candidateEmail string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "SESSION_STARTED",
		Data: map[string]interface{}{
			"session_id":      sessionId,
			"candidate_name":  candidateName,
			"candidate_email": candidateEmail,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("PROCTOR", "Failed to publish SESSION_STARTED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishSessionEnded emits SESSION_ENDED with the frozen score.
func (p *NatsPublisher) PublishSessionEnded(ctx context.Context, sessionId uuid.UUID, integrityScore, durationMinutes, totalEvents int) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "SESSION_ENDED",
		Data: map[string]interface{}{
			"session_id":       sessionId,
			"integrity_score":  integrityScore,
			"duration_minutes": durationMinutes,
			"total_events":     totalEvents,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("PROCTOR", "Failed to publish SESSION_ENDED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishHighSeverityDetection emits DETECTION_FLAGGED for categories a
// human should look at right away (phone, books, second device).
func (p *NatsPublisher) PublishHighSeverityDetection(ctx context.Context, sessionId uuid.UUID, eventType, description string, confidence *float64) {
	if p.publisher == nil {
		return
	}

	data := map[string]interface{}{
		"session_id":  sessionId,
		"event_type":  eventType,
		"description": description,
	}
	if confidence != nil {
		data["confidence_score"] = *confidence
	}

	evt := pkgEvents.BaseEvent{
		Type:       "DETECTION_FLAGGED",
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("PROCTOR", "Failed to publish DETECTION_FLAGGED event", map[string]interface{}{"error": err.Error()})
	}
}
