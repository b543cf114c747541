package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"bookingsaver/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// MessageQueue buffers inbound chat messages between the Telegram poller
// and the message processor. A single consumer goroutine drains it, so
// messages are processed strictly one at a time in arrival order.
type MessageQueue struct {
	items    chan models.TelegramMessage
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(models.TelegramMessage)
}

// NewMessageQueue creates a new message queue with the given buffer size
func NewMessageQueue(bufferSize int, logger *logrus.Logger) *MessageQueue {
	return &MessageQueue{
		items:    make(chan models.TelegramMessage, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(models.TelegramMessage), 0),
	}
}

// Push adds a message to the queue
func (q *MessageQueue) Push(msg models.TelegramMessage) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send so the poller never stalls on a slow scrape
	select {
	case q.items <- msg:
		q.logger.WithField("chat_id", msg.Chat.ID).Debug("Pushed message to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each message
func (q *MessageQueue) Subscribe(handler func(models.TelegramMessage)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing messages in the queue
func (q *MessageQueue) Start() {
	go q.process()
}

// process is the single consumer loop; each message is handled to
// completion before the next is taken.
func (q *MessageQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case msg := <-q.items:
			q.handleMessage(msg)
		}
	}
}

func (q *MessageQueue) handleMessage(msg models.TelegramMessage) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		handler(msg)
	}
}

// Close stops the queue and prevents new messages from being added
func (q *MessageQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of queued messages
func (q *MessageQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *MessageQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
