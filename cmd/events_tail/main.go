package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"exam-proctor-be/internal/config"
	"exam-proctor-be/pkg/events"
	pktNats "exam-proctor-be/pkg/nats"
)

// Tails the proctoring event stream. Useful for watching SESSION_STARTED,
// SESSION_ENDED and DETECTION_FLAGGED events during development, and as a
// template for downstream consumers (alerting, archival).
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("proctor.>", "events-tail", func(ctx context.Context, event events.Event) error {
		data, _ := json.MarshalIndent(event.Payload(), "", "  ")
		log.Printf("[%s]\n%s", event.EventType(), data)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	log.Println("Tailing proctor events (ctrl-c to stop)...")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
