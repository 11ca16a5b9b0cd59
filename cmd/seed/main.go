package main

import (
	"log"
	"os"
	"time"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/mapper"
	"exam-proctor-be/pkg/database"
	"exam-proctor-be/pkg/proctor/scoring"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a pair of demo sessions so the dashboard and report endpoints
// have something to show on a fresh install.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	engine := scoring.NewEngine()

	seedSession(db, engine, "Amira Hassan", "amira.hassan@example.com", []seedEvent{
		{eventType: "focus_lost", description: "Candidate switched to another tab", confidence: 0.92},
		{eventType: "focus_lost", description: "Candidate switched to another tab", confidence: 0.88},
		{eventType: "phone_detected", description: "Mobile phone visible in frame", confidence: 0.97},
	})

	seedSession(db, engine, "Jon Verkade", "jon.verkade@example.com", []seedEvent{
		{eventType: "no_face", description: "No face detected for 12 seconds", confidence: 0.81},
	})

	log.Println("✅ Seeding complete")
}

type seedEvent struct {
	eventType   string
	description string
	confidence  float64
}

func seedSession(db *gorm.DB, engine *scoring.Engine, name, email string, events []seedEvent) {
	now := time.Now()
	started := now.Add(-45 * time.Minute)
	ended := now.Add(-5 * time.Minute)

	session := entity.ExamSession{
		Id:              uuid.New(),
		SessionId:       uuid.New(),
		CandidateName:   name,
		CandidateEmail:  email,
		StartedAt:       started,
		EndedAt:         &ended,
		DurationMinutes: 40,
		IntegrityScore:  scoring.BaseScore,
		CreatedAt:       started,
	}

	for i := range events {
		bump(&session.Counters, events[i].eventType)
	}
	session.IntegrityScore = engine.Score(session.Counters)

	sessionMapper := mapper.NewExamSessionMapper()
	eventMapper := mapper.NewDetectionEventMapper()

	if err := db.Create(sessionMapper.ToModel(&session)).Error; err != nil {
		log.Fatalf("Error: Failed to seed session for %s: %v", name, err)
	}

	for i, e := range events {
		confidence := e.confidence
		event := entity.DetectionEvent{
			Id:              uuid.New(),
			SessionId:       session.Id,
			EventType:       e.eventType,
			Description:     e.description,
			DetectedAt:      started.Add(time.Duration(i+1) * 5 * time.Minute),
			ConfidenceScore: &confidence,
			Metadata:        map[string]interface{}{"seed": true},
			CreatedAt:       now,
		}
		if err := db.Create(eventMapper.ToModel(&event)).Error; err != nil {
			log.Fatalf("Error: Failed to seed event %s: %v", e.eventType, err)
		}
	}

	log.Printf("Seeded session %s for %s (score %d, %d events)",
		session.SessionId, name, session.IntegrityScore, len(events))
}

func bump(c *entity.CounterSnapshot, category string) {
	switch category {
	case "focus_lost":
		c.FocusLost++
	case "multiple_faces":
		c.MultipleFaces++
	case "no_face":
		c.NoFace++
	case "phone_detected":
		c.PhoneDetected++
	case "books_detected":
		c.BooksDetected++
	case "device_detected":
		c.DeviceDetected++
	}
}
