package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPublicSessionID filters sessions by the public session_id handed to
// clients, not the internal primary key.
type ByPublicSessionID struct {
	SessionID uuid.UUID
}

func (s ByPublicSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ActiveOnly keeps sessions that have not reached their terminal state.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ended_at IS NULL")
}

// EndedOnly keeps terminal sessions, for reporting sweeps.
type EndedOnly struct{}

func (s EndedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ended_at IS NOT NULL")
}
