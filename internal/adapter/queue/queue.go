package queue

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// HealthChecker is implemented by queues with a remote connection.
type HealthChecker interface {
	Healthy() error
}

// Healthy checks mq's connection. The in-process queue is always healthy.
func Healthy(mq MessageQueue) error {
	if h, ok := mq.(HealthChecker); ok {
		return h.Healthy()
	}
	return nil
}

// Config selects and configures the queue driver
type Config struct {
	Driver    string // inprocess | nats | rabbitmq
	URL       string
	Namespace string // prefixes subjects, exchange names
}

// New builds the configured MessageQueue.
func New(cfg Config, log *zap.Logger) (MessageQueue, error) {
	switch cfg.Driver {
	case "", "inprocess":
		return NewInProcessQueue(log), nil
	case "nats":
		q, err := NewNATSQueue(cfg.URL, cfg.Namespace, log)
		if err != nil {
			return nil, err
		}
		return q, nil
	case "rabbitmq":
		q, err := NewRabbitMQQueue(cfg.URL, cfg.Namespace, log)
		if err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", cfg.Driver)
	}
}
