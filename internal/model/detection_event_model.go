package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DetectionEvent struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType       string    `gorm:"type:varchar(64);not null;index"`
	Description     string    `gorm:"type:text;not null"`
	DetectedAt      time.Time `gorm:"not null;index"`
	DurationSeconds int       `gorm:"not null;default:0"`
	ConfidenceScore *float64  `gorm:"type:decimal(5,4)"`
	Metadata        datatypes.JSON
	CreatedAt       time.Time `gorm:"autoCreateTime"`

	Session *ExamSession `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (DetectionEvent) TableName() string {
	return "detection_events"
}
