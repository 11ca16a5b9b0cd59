package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"exam-proctor-be/internal/dto"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/pkg/proctor/scoring"
	"exam-proctor-be/pkg/proctor/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newDetectionService(factory *fakeFactory) (IDetectionService, *fakePublisherService, *fakeEventPublisher) {
	publisherService := &fakePublisherService{}
	eventPublisher := &fakeEventPublisher{}
	svc := NewDetectionService(
		factory,
		validation.NewValidator(),
		scoring.NewEngine(),
		publisherService,
		eventPublisher,
		nopLogger{},
	)
	return svc, publisherService, eventPublisher
}

func logRequest(sessionId uuid.UUID, eventType string) *dto.LogDetectionRequest {
	return &dto.LogDetectionRequest{
		SessionId:   sessionId.String(),
		EventType:   eventType,
		Description: "test detection",
	}
}

func TestRecordRecognizedEvent(t *testing.T) {
	factory := newFakeFactory()
	svc, publisherService, _ := newDetectionService(factory)

	session := activeSession(time.Now().Add(-time.Minute))
	factory.addSession(session)

	res, err := svc.Record(context.Background(), logRequest(session.SessionId, "focus_lost"))

	assert.NoError(t, err)
	assert.True(t, res.Recognized)
	assert.Equal(t, "focus_lost", res.EventType)

	stored := factory.store.sessions[0]
	assert.Equal(t, 1, stored.Counters.FocusLost)
	assert.Equal(t, 98, stored.IntegrityScore)

	// Audit row carries the internal FK, not the public id.
	assert.Len(t, factory.store.events, 1)
	assert.Equal(t, session.Id, factory.store.events[0].SessionId)

	// Monitor feed got the accepted event with the fresh score.
	assert.Len(t, publisherService.messages, 1)
	assert.Equal(t, 98, publisherService.messages[0].IntegrityScore)
}

func TestRecordUnknownCategoryAuditsWithoutScoring(t *testing.T) {
	factory := newFakeFactory()
	svc, publisherService, _ := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	res, err := svc.Record(context.Background(), logRequest(session.SessionId, "coughing_detected"))

	assert.NoError(t, err)
	assert.False(t, res.Recognized)

	stored := factory.store.sessions[0]
	assert.Equal(t, entity.CounterSnapshot{}, stored.Counters)
	assert.Equal(t, 100, stored.IntegrityScore)

	// Still audited and still fanned out to the monitor.
	assert.Len(t, factory.store.events, 1)
	assert.Len(t, publisherService.messages, 1)
	assert.False(t, publisherService.messages[0].Recognized)
}

func TestRecordHighSeverityFlagsForProctor(t *testing.T) {
	factory := newFakeFactory()
	svc, _, eventPublisher := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	_, err := svc.Record(context.Background(), logRequest(session.SessionId, "phone_detected"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"phone_detected"}, eventPublisher.flagged)

	_, err = svc.Record(context.Background(), logRequest(session.SessionId, "focus_lost"))
	assert.NoError(t, err)
	assert.Len(t, eventPublisher.flagged, 1)
}

func TestRecordAfterEndLeavesNothingBehind(t *testing.T) {
	factory := newFakeFactory()
	svc, publisherService, _ := newDetectionService(factory)

	ended := time.Now()
	session := activeSession(ended.Add(-time.Hour))
	session.EndedAt = &ended
	session.IntegrityScore = 72
	factory.addSession(session)

	res, err := svc.Record(context.Background(), logRequest(session.SessionId, "focus_lost"))
	assert.Nil(t, res)

	var terminal *apperror.SessionTerminalError
	assert.ErrorAs(t, err, &terminal)
	assert.Equal(t, 72, terminal.IntegrityScore)

	// No audit row, no counter change, no fan-out.
	assert.Empty(t, factory.store.events)
	assert.Equal(t, entity.CounterSnapshot{}, factory.store.sessions[0].Counters)
	assert.Empty(t, publisherService.messages)
}

func TestRecordUnknownSession(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newDetectionService(factory)

	_, err := svc.Record(context.Background(), logRequest(uuid.New(), "focus_lost"))
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestRecordRejectsMalformedRequest(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	badConfidence := 1.7
	_, err := svc.Record(context.Background(), &dto.LogDetectionRequest{
		SessionId:       session.SessionId.String(),
		EventType:       "focus_lost",
		Description:     "tab switch",
		ConfidenceScore: &badConfidence,
	})

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, factory.store.events)
}

func TestRecordRejectionDoesNotAffectNextEvent(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	_, err := svc.Record(context.Background(), &dto.LogDetectionRequest{
		SessionId:   session.SessionId.String(),
		EventType:   "",
		Description: "missing type",
	})
	assert.Error(t, err)

	res, err := svc.Record(context.Background(), logRequest(session.SessionId, "no_face"))
	assert.NoError(t, err)
	assert.True(t, res.Recognized)
	assert.Equal(t, 1, factory.store.sessions[0].Counters.NoFace)
}

func TestRecordAccumulatesAcrossCategories(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	for _, eventType := range []string{"focus_lost", "focus_lost", "phone_detected"} {
		_, err := svc.Record(context.Background(), logRequest(session.SessionId, eventType))
		assert.NoError(t, err)
	}

	stored := factory.store.sessions[0]
	assert.Equal(t, 2, stored.Counters.FocusLost)
	assert.Equal(t, 1, stored.Counters.PhoneDetected)
	assert.Equal(t, 86, stored.IntegrityScore)
	assert.Len(t, factory.store.events, 3)
}

func TestRecordSurvivesPublisherFailure(t *testing.T) {
	factory := newFakeFactory()
	svc, publisherService, _ := newDetectionService(factory)
	publisherService.fail = true

	session := activeSession(time.Now())
	factory.addSession(session)

	res, err := svc.Record(context.Background(), logRequest(session.SessionId, "focus_lost"))
	assert.NoError(t, err)
	assert.NotNil(t, res)
	// The transaction still committed.
	assert.Equal(t, 98, factory.store.sessions[0].IntegrityScore)
}

func TestRecordConcurrentEventsLoseNoCounts(t *testing.T) {
	factory := newFakeFactory()
	svc, publisherService, _ := newDetectionService(factory)

	session := activeSession(time.Now())
	factory.addSession(session)

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(context.Background(), logRequest(session.SessionId, "focus_lost"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	// Counters are incremented in place rather than written back from a
	// stale read, so every recorded event survives the interleaving.
	stored := factory.store.sessions[0]
	assert.Equal(t, workers, stored.Counters.FocusLost)
	assert.Len(t, factory.store.events, workers)
	assert.Len(t, publisherService.messages, workers)
}
