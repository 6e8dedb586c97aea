package queue

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSQueue publishes domain events as NATS subjects under a namespace,
// e.g. "mabe-ev.reservation.booked".
type NATSQueue struct {
	conn      *nats.Conn
	namespace string
	log       *zap.Logger
}

func NewNATSQueue(url, namespace string, log *zap.Logger) (*NATSQueue, error) {
	nc, err := nats.Connect(url,
		nats.Name("sigec-site"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Successfully connected to NATS", zap.String("url", url), zap.String("namespace", namespace))
	return &NATSQueue{
		conn:      nc,
		namespace: namespace,
		log:       log,
	}, nil
}

func (q *NATSQueue) subject(topic string) string {
	if q.namespace == "" {
		return topic
	}
	return q.namespace + "." + topic
}

func (q *NATSQueue) Publish(topic string, data []byte) error {
	if err := q.conn.Publish(q.subject(topic), data); err != nil {
		return fmt.Errorf("nats: publish %s: %w", topic, err)
	}
	return nil
}

func (q *NATSQueue) Subscribe(topic string, handler func(data []byte) error) error {
	subject := q.subject(topic)
	_, err := q.conn.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			q.log.Error("Error processing message", zap.String("subject", subject), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("nats: subscribe %s: %w", topic, err)
	}
	return nil
}

// Healthy reports whether the connection is up.
func (q *NATSQueue) Healthy() error {
	if !q.conn.IsConnected() {
		return fmt.Errorf("nats: connection %s", q.conn.Status())
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (q *NATSQueue) Close() error {
	if err := q.conn.Drain(); err != nil {
		q.conn.Close()
		return fmt.Errorf("nats: drain: %w", err)
	}
	return nil
}
