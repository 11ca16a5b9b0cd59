package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"exam-proctor-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisChannel = "proctor_ws_events"

// Hub tracks proctor connections. A proctor subscribes to one exam
// session; several proctors may watch the same session at once.
type Hub struct {
	// SessionID -> watching clients
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional: a single
	// instance works fine without it.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Proctor connected", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Last proctor disconnected", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToSession pushes a payload to every proctor watching the
// session and relays it to sibling instances through Redis.
func (h *Hub) BroadcastToSession(sessionID uuid.UUID, messageType string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": messageType,
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize websocket payload", map[string]interface{}{"error": err.Error()})
		return
	}

	// With Redis, delivery happens through the subscription on every
	// instance, this one included. Sending locally as well would double
	// up each message.
	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"session_id": sessionID.String(),
			"message":    json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, envelope)
		return
	}

	h.sendLocal(sessionID, data)
}

func (h *Hub) sendLocal(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[sessionID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Run owns the channel close during unregister; closing here
			// as well would close it twice and panic the hub goroutine.
			h.logger.Warn("Hub", "Proctor send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
	}
}

// subscribeToRedis delivers published payloads to the sessions hosted
// on this instance, whichever instance published them.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			SessionID string          `json:"session_id"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Error("Hub", "Malformed redis websocket envelope", map[string]interface{}{"error": err.Error()})
			continue
		}

		sessionID, err := uuid.Parse(envelope.SessionID)
		if err != nil {
			continue
		}

		h.sendLocal(sessionID, envelope.Message)
	}
}
