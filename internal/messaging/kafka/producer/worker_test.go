package producer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	kafkaMock "go-workforce/internal/messaging/kafka/mock"
	"go-workforce/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafkago.Message
	failKey  string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range msgs {
		if w.failKey != "" && string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func (w *fakeWriter) sent() []kafkago.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafkago.Message(nil), w.messages...)
}

func pendingEvent(id, employeeID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "REQ-" + id,
		AggregateType: "employee",
		AggregateID:   employeeID,
		EventType:     events.EmployeeCreated,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       []byte(`{"event_type":"employee_created"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(gomock.Any(), 50).
			Return([]kafka.OutboxEvent{pendingEvent("o-1", "e-1"), pendingEvent("o-2", "e-2")}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-1").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(context.Background(), repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 2, sent)

		msgs := writer.sent()
		require.Len(t, msgs, 2)
		assert.Equal(t, events.EmployeeLifecycleTopic, msgs[0].Topic)
		assert.Equal(t, "e-1", string(msgs[0].Key))
		assert.Equal(t, events.EmployeeCreated, header(msgs[0], "event_type"))
		assert.Equal(t, "REQ-o-1", header(msgs[0], "request_id"))
	})

	t.Run("failed publish is marked for retry and batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failKey: "e-1"}

		repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).
			Return([]kafka.OutboxEvent{pendingEvent("o-1", "e-1"), pendingEvent("o-2", "e-2")}, nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "o-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(context.Background(), repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())

		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10*time.Millisecond)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
