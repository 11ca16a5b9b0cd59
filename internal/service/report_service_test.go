package service

import (
	"context"
	"testing"
	"time"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/apperror"
	"exam-proctor-be/pkg/proctor/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newReportService(factory *fakeFactory) IReportService {
	return NewReportService(factory, report.NewBuilder(), report.NewPDFRenderer(), nopLogger{})
}

func TestGetReportGroupsEvents(t *testing.T) {
	factory := newFakeFactory()
	svc := newReportService(factory)

	session := activeSession(time.Now().Add(-time.Hour))
	session.Counters = entity.CounterSnapshot{FocusLost: 1, PhoneDetected: 1}
	session.IntegrityScore = 88
	factory.addSession(session)

	factory.store.events = append(factory.store.events,
		&entity.DetectionEvent{Id: uuid.New(), SessionId: session.Id, EventType: "focus_lost", Description: "tab switch", DetectedAt: time.Now().Add(-40 * time.Minute)},
		&entity.DetectionEvent{Id: uuid.New(), SessionId: session.Id, EventType: "phone_detected", Description: "phone visible", DetectedAt: time.Now().Add(-30 * time.Minute)},
	)
	// Event for another session must not bleed in.
	factory.store.events = append(factory.store.events,
		&entity.DetectionEvent{Id: uuid.New(), SessionId: uuid.New(), EventType: "no_face", Description: "other"},
	)

	res, err := svc.Get(context.Background(), session.SessionId)

	assert.NoError(t, err)
	assert.Equal(t, 88, res.Session.IntegrityScore)
	assert.Len(t, res.EventsByCategory, 2)
	assert.Equal(t, 2, res.Session.Counters.TotalEvents)
}

func TestGetReportUnknownSession(t *testing.T) {
	factory := newFakeFactory()
	svc := newReportService(factory)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	factory := newFakeFactory()
	svc := newReportService(factory)

	ended := time.Now()
	session := activeSession(ended.Add(-50 * time.Minute))
	session.EndedAt = &ended
	session.DurationMinutes = 50
	session.Counters = entity.CounterSnapshot{NoFace: 2}
	session.IntegrityScore = 94
	factory.addSession(session)

	factory.store.events = append(factory.store.events,
		&entity.DetectionEvent{Id: uuid.New(), SessionId: session.Id, EventType: "no_face", Description: "no face in frame", DetectedAt: ended.Add(-20 * time.Minute)},
	)

	pdf, err := svc.RenderPDF(context.Background(), session.SessionId)

	assert.NoError(t, err)
	assert.Contains(t, pdf.FileName, session.SessionId.String())
	// %PDF header marks a well-formed document.
	assert.True(t, len(pdf.Content) > 4)
	assert.Equal(t, "%PDF", string(pdf.Content[:4]))
}
