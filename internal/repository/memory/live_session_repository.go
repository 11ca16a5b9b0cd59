package memory

import (
	"sync"
	"time"

	"exam-proctor-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// LiveSessionRepository keeps the live monitor state for active sessions.
// Entries expire on their own so an abandoned browser tab does not leak
// state forever.
type LiveSessionRepository struct {
	cache *cache.Cache

	// go-cache serializes Set/Get, but Apply does read-modify-write and
	// must hold its own lock so concurrent updates never lose an event.
	mu sync.Mutex
}

func NewLiveSessionRepository() *LiveSessionRepository {
	// Default expiration of 4 hours covers any realistic exam; expired
	// entries are purged every 10 minutes.
	c := cache.New(4*time.Hour, 10*time.Minute)
	return &LiveSessionRepository{
		cache: c,
	}
}

func (r *LiveSessionRepository) Save(session *store.LiveSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.SessionID, session, cache.DefaultExpiration)
}

func (r *LiveSessionRepository) Get(sessionID string) (*store.LiveSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.LiveSession), true
	}
	return nil, false
}

// Apply mutates the live state for a session under the repository lock.
// Missing sessions are ignored; the database remains authoritative.
func (r *LiveSessionRepository) Apply(sessionID string, fn func(*store.LiveSession)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionID)
	if !found {
		return
	}
	state := x.(*store.LiveSession)
	fn(state)
	r.cache.Set(sessionID, state, cache.DefaultExpiration)
}

func (r *LiveSessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}

// Active returns the live state of every session currently tracked.
func (r *LiveSessionRepository) Active() []*store.LiveSession {
	items := r.cache.Items()
	sessions := make([]*store.LiveSession, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*store.LiveSession))
	}
	return sessions
}
