package service

import (
	"context"
	"errors"
	"sync"

	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/repository/contract"
	"exam-proctor-be/internal/repository/specification"
	"exam-proctor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory doubles for the repository layer. Specifications are matched
// by type instead of SQL, which is enough for the lookups the services do.
// The store mutex stands in for the database's row lock so tests can hit
// the services from multiple goroutines.

type fakeStore struct {
	mu sync.Mutex

	sessions []*entity.ExamSession
	events   []*entity.DetectionEvent

	beginCount    int
	commitCount   int
	rollbackCount int

	failIncrement bool
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &fakeStore{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

func (f *fakeFactory) addSession(session *entity.ExamSession) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.sessions = append(f.store.sessions, session)
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.beginCount++
	return nil
}

func (u *fakeUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.commitCount++
	return nil
}

func (u *fakeUow) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.rollbackCount++
	return nil
}

func (u *fakeUow) ExamSessionRepository() contract.ExamSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) DetectionEventRepository() contract.DetectionEventRepository {
	return &fakeEventRepo{store: u.store}
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ExamSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ExamSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			copied := *session
			r.store.sessions[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.ExamSession, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExamSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ExamSession
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) IncrementCounter(ctx context.Context, session *entity.ExamSession, category string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failIncrement {
		return errors.New("increment failed")
	}
	for _, s := range r.store.sessions {
		if s.Id == session.Id {
			switch category {
			case constant.CategoryFocusLost:
				s.Counters.FocusLost++
			case constant.CategoryMultipleFaces:
				s.Counters.MultipleFaces++
			case constant.CategoryNoFace:
				s.Counters.NoFace++
			case constant.CategoryPhoneDetected:
				s.Counters.PhoneDetected++
			case constant.CategoryBooksDetected:
				s.Counters.BooksDetected++
			case constant.CategoryDeviceDetected:
				s.Counters.DeviceDetected++
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) UpdateScore(ctx context.Context, session *entity.ExamSession, score int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if s.Id == session.Id {
			s.IntegrityScore = score
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			count++
		}
	}
	return count, nil
}

type fakeEventRepo struct {
	store *fakeStore
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.DetectionEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *event
	r.store.events = append(r.store.events, &copied)
	return nil
}

func (r *fakeEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DetectionEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.DetectionEvent
	for _, e := range r.store.events {
		if matchEvent(e, specs) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, e := range r.store.events {
		if matchEvent(e, specs) {
			count++
		}
	}
	return count, nil
}

func matchSession(s *entity.ExamSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByPublicSessionID:
			if s.SessionId != v.SessionID {
				return false
			}
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ActiveOnly:
			if s.Ended() {
				return false
			}
		case specification.EndedOnly:
			if !s.Ended() {
				return false
			}
		}
	}
	return true
}

func matchEvent(e *entity.DetectionEvent, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.BySessionID:
			if e.SessionId != v.SessionID {
				return false
			}
		case specification.ByEventType:
			if e.EventType != v.EventType {
				return false
			}
		}
	}
	return true
}

// fakeEventPublisher records lifecycle events instead of hitting NATS.
type fakeEventPublisher struct {
	mu      sync.Mutex
	started []uuid.UUID
	ended   []uuid.UUID
	flagged []string
}

func (p *fakeEventPublisher) PublishSessionStarted(ctx context.Context, sessionId uuid.UUID, candidateName, candidateEmail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, sessionId)
}

func (p *fakeEventPublisher) PublishSessionEnded(ctx context.Context, sessionId uuid.UUID, integrityScore, durationMinutes, totalEvents int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = append(p.ended, sessionId)
}

func (p *fakeEventPublisher) PublishHighSeverityDetection(ctx context.Context, sessionId uuid.UUID, eventType, description string, confidence *float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flagged = append(p.flagged, eventType)
}

type fakePublisherService struct {
	mu       sync.Mutex
	messages []*DetectionAcceptedMessage
	fail     bool
}

func (p *fakePublisherService) PublishDetectionAccepted(msg *DetectionAcceptedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("publish failed")
	}
	p.messages = append(p.messages, msg)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (m *fakeMailer) SendSessionSummary(toEmail, candidateName, sessionId string, integrityScore, durationMinutes int, reportURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
