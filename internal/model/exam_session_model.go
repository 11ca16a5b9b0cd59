package model

import (
	"time"

	"github.com/google/uuid"
)

type ExamSession struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CandidateName       string    `gorm:"type:varchar(255);not null"`
	CandidateEmail      string    `gorm:"type:varchar(255);not null"`
	StartedAt           time.Time `gorm:"not null"`
	EndedAt             *time.Time
	DurationMinutes     int       `gorm:"not null;default:0"`
	VideoPath           *string   `gorm:"type:varchar(512)"`
	FocusLostCount      int       `gorm:"not null;default:0"`
	MultipleFacesCount  int       `gorm:"not null;default:0"`
	NoFaceCount         int       `gorm:"not null;default:0"`
	PhoneDetectedCount  int       `gorm:"not null;default:0"`
	BooksDetectedCount  int       `gorm:"not null;default:0"`
	DeviceDetectedCount int       `gorm:"not null;default:0"`
	IntegrityScore      int       `gorm:"not null;default:100"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}
