package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"bookingsaver/internal/models"
)

func TestNewMessageQueue(t *testing.T) {
	logger := logrus.New()
	q := NewMessageQueue(10, logger)
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestMessageQueue_Push(t *testing.T) {
	logger := logrus.New()
	q := NewMessageQueue(2, logger)

	// Test successful push
	msg := models.TelegramMessage{Chat: models.TelegramChat{ID: 1}, Text: "test1"}
	err := q.Push(msg)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	_ = q.Push(msg)
	err = q.Push(msg)
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(msg)
	assert.Equal(t, ErrQueueClosed, err)
}

func TestMessageQueue_ProcessesInOrder(t *testing.T) {
	logger := logrus.New()
	q := NewMessageQueue(10, logger)

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	q.Subscribe(func(msg models.TelegramMessage) {
		mu.Lock()
		got = append(got, msg.Text)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})

	q.Start()
	for _, text := range []string{"first", "second", "third"} {
		assert.NoError(t, q.Push(models.TelegramMessage{Text: text}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queue did not drain in time")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second", "third"}, got)
	q.Close()
}

func TestMessageQueue_CloseIsIdempotent(t *testing.T) {
	logger := logrus.New()
	q := NewMessageQueue(2, logger)
	assert.NoError(t, q.Close())
	assert.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
}
