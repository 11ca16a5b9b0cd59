package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	CandidateName  string `json:"candidate_name" validate:"required,max=255"`
	CandidateEmail string `json:"candidate_email" validate:"required,email,max=255"`
}

type StartSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

type EndSessionRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
}

type EndSessionResponse struct {
	SessionId       uuid.UUID `json:"session_id"`
	IntegrityScore  int       `json:"integrity_score"`
	DurationMinutes int       `json:"duration_minutes"`
	EndedAt         time.Time `json:"ended_at"`
}

type SessionResponse struct {
	SessionId       uuid.UUID        `json:"session_id"`
	CandidateName   string           `json:"candidate_name"`
	CandidateEmail  string           `json:"candidate_email"`
	StartedAt       time.Time        `json:"started_at"`
	EndedAt         *time.Time       `json:"ended_at"`
	DurationMinutes int              `json:"duration_minutes"`
	VideoPath       *string          `json:"video_path"`
	IntegrityScore  int              `json:"integrity_score"`
	Counters        CountersResponse `json:"counters"`
}

type CountersResponse struct {
	FocusLost      int `json:"focus_lost"`
	MultipleFaces  int `json:"multiple_faces"`
	NoFace         int `json:"no_face"`
	PhoneDetected  int `json:"phone_detected"`
	BooksDetected  int `json:"books_detected"`
	DeviceDetected int `json:"device_detected"`
	TotalEvents    int `json:"total_events"`
}

type UploadVideoResponse struct {
	VideoPath string `json:"video_path"`
}
