package store

import "time"

// LiveSession is the in-memory view of an active session that the monitor
// feed pushes to proctors. It mirrors the persisted counters but is only a
// convenience cache; the database row stays the source of truth.
type LiveSession struct {
	SessionID      string    `json:"session_id"`
	CandidateName  string    `json:"candidate_name"`
	StartedAt      time.Time `json:"started_at"`
	IntegrityScore int       `json:"integrity_score"`
	TotalEvents    int       `json:"total_events"`
	LastEventType  string    `json:"last_event_type,omitempty"`
	LastEventAt    time.Time `json:"last_event_at,omitempty"`
}
