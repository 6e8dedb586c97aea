package websocket

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/queue"
)

// Relay subscribes to event topics on the queue and forwards each envelope
// to the hub, routed by the payload's site_id when present.
type Relay struct {
	hub *Hub
	mq  queue.MessageQueue
	log *zap.Logger
}

func NewRelay(hub *Hub, mq queue.MessageQueue, log *zap.Logger) *Relay {
	return &Relay{hub: hub, mq: mq, log: log}
}

// Start subscribes to every topic.
func (r *Relay) Start(topics []string) error {
	for _, topic := range topics {
		if err := r.mq.Subscribe(topic, r.forward); err != nil {
			return fmt.Errorf("failed to subscribe relay to %s: %w", topic, err)
		}
	}
	r.log.Info("Dashboard relay started", zap.Int("topics", len(topics)))
	return nil
}

func (r *Relay) forward(data []byte) error {
	ev, err := queue.Decode(data)
	if err != nil {
		return err
	}
	var scope struct {
		SiteID string `json:"site_id"`
	}
	// payloads without a site reach every dashboard
	_ = json.Unmarshal(ev.Payload, &scope)

	r.hub.Broadcast(Message{SiteID: scope.SiteID, Data: data})
	return nil
}
