package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DetectionAcceptedMessage is what the detection pipeline publishes for
// every event that made it past validation, recognized or not. The monitor
// consumer fans it out to connected proctors.
type DetectionAcceptedMessage struct {
	SessionId       string   `json:"session_id"`
	EventId         string   `json:"event_id"`
	EventType       string   `json:"event_type"`
	Description     string   `json:"description"`
	DetectedAt      string   `json:"detected_at"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	IntegrityScore  int      `json:"integrity_score"`
	Recognized      bool     `json:"recognized"`
}

type IPublisherService interface {
	PublishDetectionAccepted(msg *DetectionAcceptedMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishDetectionAccepted(msg *DetectionAcceptedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	wmMsg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, wmMsg)
}
