package queue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitSubscription struct {
	topic   string
	handler func([]byte) error
}

// RabbitMQQueue routes every domain event through one topic exchange named
// after the namespace, using the event topic as routing key. Subscriptions
// are re-established after a reconnect.
type RabbitMQQueue struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	url      string
	exchange string
	subs     []rabbitSubscription
	mu       sync.RWMutex
	done     chan struct{}
	log      *zap.Logger
}

// NewRabbitMQQueue creates a new RabbitMQ message queue adapter
func NewRabbitMQQueue(url, namespace string, log *zap.Logger) (*RabbitMQQueue, error) {
	if namespace == "" {
		namespace = "events"
	}
	q := &RabbitMQQueue{
		url:      url,
		exchange: namespace,
		done:     make(chan struct{}),
		log:      log,
	}
	if err := q.connect(); err != nil {
		return nil, err
	}

	go q.monitorConnection()

	log.Info("Successfully connected to RabbitMQ", zap.String("exchange", q.exchange))
	return q, nil
}

func (q *RabbitMQQueue) connect() error {
	conn, err := amqp.Dial(q.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	if err := ch.ExchangeDeclare(q.exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("rabbitmq: declare exchange: %w", err)
	}

	q.mu.Lock()
	q.conn = conn
	q.channel = ch
	q.mu.Unlock()
	return nil
}

func (q *RabbitMQQueue) Publish(topic string, data []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}

	err := q.channel.Publish(
		q.exchange, topic, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         data,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

func (q *RabbitMQQueue) Subscribe(topic string, handler func(data []byte) error) error {
	if err := q.bind(topic, handler); err != nil {
		return err
	}
	q.mu.Lock()
	q.subs = append(q.subs, rabbitSubscription{topic: topic, handler: handler})
	q.mu.Unlock()
	return nil
}

func (q *RabbitMQQueue) bind(topic string, handler func([]byte) error) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.channel == nil {
		return fmt.Errorf("rabbitmq: channel not available")
	}

	queue, err := q.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare queue: %w", err)
	}
	if err := q.channel.QueueBind(queue.Name, topic, q.exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind queue: %w", err)
	}
	msgs, err := q.channel.Consume(queue.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				q.log.Error("Error processing RabbitMQ message",
					zap.String("routing_key", topic),
					zap.Error(err),
				)
			}
		}
	}()

	q.log.Info("Subscribed to RabbitMQ topic", zap.String("exchange", q.exchange), zap.String("routing_key", topic))
	return nil
}

// Healthy reports whether the connection is up.
func (q *RabbitMQQueue) Healthy() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.conn == nil || q.conn.IsClosed() {
		return errors.New("rabbitmq: connection closed")
	}
	return nil
}

func (q *RabbitMQQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	select {
	case <-q.done:
	default:
		close(q.done)
	}
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}

func (q *RabbitMQQueue) monitorConnection() {
	for {
		q.mu.RLock()
		closed := q.conn.NotifyClose(make(chan *amqp.Error, 1))
		q.mu.RUnlock()

		select {
		case <-q.done:
			return
		case reason, ok := <-closed:
			if !ok || reason == nil {
				return
			}
			q.log.Warn("RabbitMQ connection lost, reconnecting...", zap.String("reason", reason.Reason))
		}

		for {
			select {
			case <-q.done:
				return
			case <-time.After(5 * time.Second):
			}
			if err := q.connect(); err != nil {
				q.log.Error("Failed to reconnect to RabbitMQ", zap.Error(err))
				continue
			}
			break
		}

		q.mu.RLock()
		subs := append([]rabbitSubscription(nil), q.subs...)
		q.mu.RUnlock()
		for _, s := range subs {
			if err := q.bind(s.topic, s.handler); err != nil {
				q.log.Error("Failed to restore RabbitMQ subscription", zap.String("routing_key", s.topic), zap.Error(err))
			}
		}
		q.log.Info("Successfully reconnected to RabbitMQ", zap.Int("subscriptions", len(subs)))
	}
}
