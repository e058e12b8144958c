package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/events"
	"go-workforce/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fetchRetryDelay spaces out fetch attempts while the broker is failing.
var fetchRetryDelay = time.Second

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeEmployeeLifecycle writes every employee lifecycle event to the
// audit log until ctx is cancelled.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("employee lifecycle consumer stopped")
				return
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		HandleLifecycleMessage(ctx, msg, auditLogger, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleLifecycleMessage decodes one message and records it. Undecodable
// messages are logged and skipped so they do not block the partition.
func HandleLifecycleMessage(
	ctx context.Context,
	msg kafkago.Message,
	auditLogger bootstrap.AuditLogger,
	log *zap.Logger,
) bool {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return false
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	auditLogger.Log(ctx, bootstrap.AuditLog{
		Action:  event.EventType,
		Message: "employee " + event.EmployeeID,
		Meta: map[string]any{
			"employee_id": event.EmployeeID,
			"email":       event.Email,
			"status":      event.Status,
			"request_id":  event.RequestID,
			"occurred_at": event.OccurredAt,
		},
	})

	log.Debug("employee lifecycle event audited",
		zap.String("event_type", event.EventType),
		zap.String("employee_id", event.EmployeeID),
	)
	return true
}
