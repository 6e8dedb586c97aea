package queue

import (
	"sync"

	"go.uber.org/zap"
)

// InProcessQueue delivers messages synchronously to subscribers of the same
// process. Handler errors are logged and do not fail the publisher.
type InProcessQueue struct {
	mu       sync.RWMutex
	handlers map[string][]func([]byte) error
	closed   bool
	log      *zap.Logger
}

func NewInProcessQueue(log *zap.Logger) *InProcessQueue {
	return &InProcessQueue{
		handlers: make(map[string][]func([]byte) error),
		log:      log,
	}
}

func (q *InProcessQueue) Publish(subject string, data []byte) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	handlers := q.handlers[subject]
	q.mu.RUnlock()

	for _, h := range handlers {
		if err := h(data); err != nil {
			q.log.Error("Error processing message", zap.String("subject", subject), zap.Error(err))
		}
	}
	return nil
}

func (q *InProcessQueue) Subscribe(subject string, handler func(data []byte) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	// copy-on-write so Publish can iterate without holding the lock
	next := make([]func([]byte) error, 0, len(q.handlers[subject])+1)
	next = append(next, q.handlers[subject]...)
	q.handlers[subject] = append(next, handler)
	return nil
}

func (q *InProcessQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.handlers = make(map[string][]func([]byte) error)
	return nil
}
