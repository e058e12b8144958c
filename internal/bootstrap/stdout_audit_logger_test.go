package bootstrap_test

import (
	"context"
	"testing"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	auditLogger := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "REQ-9")
	auditLogger.Log(ctx, bootstrap.AuditLog{
		Action:  "employee_created",
		Message: "employee 42",
		Meta:    map[string]any{"employee_id": "42"},
	})

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "employee_created", fields["action"])
		assert.Equal(t, "REQ-9", fields["request_id"])
	}
}
