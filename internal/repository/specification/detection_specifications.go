package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters detection events by their owning session (internal id).
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByEventType filters detection events by category.
type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}
