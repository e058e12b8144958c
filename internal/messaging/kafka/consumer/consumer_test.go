package consumer_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (a *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) all() []bootstrap.AuditLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]bootstrap.AuditLog(nil), a.entries...)
}

// fakeReader hands out queued messages and then blocks until ctx is done.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func lifecycleMessage(t *testing.T, offset int64, event events.EmployeeLifecycleEvent) kafkago.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkago.Message{Offset: offset, Key: []byte(event.EmployeeID), Value: value}
}

func TestHandleLifecycleMessage(t *testing.T) {
	t.Run("valid event is audited", func(t *testing.T) {
		audit := &recordingAudit{}
		msg := lifecycleMessage(t, 1, events.EmployeeLifecycleEvent{
			EventType:  events.EmployeeDeactivated,
			RequestID:  "REQ-1",
			EmployeeID: "e-1",
			Email:      "ada@example.com",
		})

		ok := consumer.HandleLifecycleMessage(context.Background(), msg, audit, zap.NewNop())

		require.True(t, ok)
		entries := audit.all()
		require.Len(t, entries, 1)
		assert.Equal(t, events.EmployeeDeactivated, entries[0].Action)
		assert.Equal(t, "e-1", entries[0].Meta["employee_id"])
		assert.Equal(t, "REQ-1", entries[0].Meta["request_id"])
	})

	t.Run("undecodable event is skipped", func(t *testing.T) {
		audit := &recordingAudit{}

		ok := consumer.HandleLifecycleMessage(context.Background(), kafkago.Message{Value: []byte("{")}, audit, zap.NewNop())

		assert.False(t, ok)
		assert.Empty(t, audit.all())
	})
}

func TestConsumeEmployeeLifecycle_CommitsEveryMessage(t *testing.T) {
	audit := &recordingAudit{}
	reader := &fakeReader{queue: []kafkago.Message{
		lifecycleMessage(t, 10, events.EmployeeLifecycleEvent{EventType: events.EmployeeCreated, EmployeeID: "e-1"}),
		{Offset: 11, Value: []byte("not json")},
		lifecycleMessage(t, 12, events.EmployeeLifecycleEvent{EventType: events.EmployeeUpdated, EmployeeID: "e-1"}),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeEmployeeLifecycle(ctx, reader, audit, zap.NewNop())
	}()

	assert.Eventually(t, func() bool { return len(reader.commits()) == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []int64{10, 11, 12}, reader.commits())
	assert.Len(t, audit.all(), 2)
}
