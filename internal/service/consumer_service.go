package service

import (
	"context"
	"encoding/json"
	"time"

	"exam-proctor-be/internal/pkg/logger"
	"exam-proctor-be/internal/repository/memory"
	"exam-proctor-be/internal/websocket"
	"exam-proctor-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process detection feed and turns each
// accepted event into monitor-side state: the live session snapshot and
// a websocket push to watching proctors. It runs outside the request
// path so a slow proctor connection never delays the candidate.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	liveSessions *memory.LiveSessionRepository
	hub          *websocket.Hub
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	liveSessions *memory.LiveSessionRepository,
	hub *websocket.Hub,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		liveSessions: liveSessions,
		hub:          hub,
		logger:       sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload DetectionAcceptedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal detection message", map[string]interface{}{"error": err.Error()})
		// Malformed payloads can never succeed on retry.
		msg.Ack()
		return
	}

	detectedAt, err := time.Parse(time.RFC3339, payload.DetectedAt)
	if err != nil {
		detectedAt = time.Now()
	}

	cs.liveSessions.Apply(payload.SessionId, func(state *store.LiveSession) {
		state.TotalEvents++
		state.LastEventType = payload.EventType
		state.LastEventAt = detectedAt
		if payload.Recognized {
			state.IntegrityScore = payload.IntegrityScore
		}
	})

	if sessionID, err := uuid.Parse(payload.SessionId); err == nil {
		cs.hub.BroadcastToSession(sessionID, "detection", payload)
	}

	msg.Ack()
}
