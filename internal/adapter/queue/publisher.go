package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrClosed is returned when publishing on a closed queue.
var ErrClosed = errors.New("queue closed")

// Event is the envelope written on the queue for every domain event.
type Event struct {
	ID         string          `json:"id"`
	Topic      string          `json:"topic"`
	Source     string          `json:"source"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher implements ports.EventPublisher over a MessageQueue.
type Publisher struct {
	mq     MessageQueue
	source string
	now    func() time.Time
	log    *zap.Logger
}

func NewPublisher(mq MessageQueue, source string, log *zap.Logger) *Publisher {
	return &Publisher{
		mq:     mq,
		source: source,
		now:    time.Now,
		log:    log,
	}
}

func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	data, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Topic:      topic,
		Source:     p.source,
		OccurredAt: p.now().UTC(),
		Payload:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	if err := p.mq.Publish(topic, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	p.log.Debug("Event published", zap.String("topic", topic))
	return nil
}

// Decode parses an envelope received from the queue.
func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &ev, nil
}
