package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kintai-system/attendance-api/internal/events"
	"github.com/kintai-system/attendance-api/internal/observability"
)

func TestAuditServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, zap.New(core), observability.NewMetrics(nil))
	audit.RegisterHandlers()

	ctx := context.Background()
	actor := events.Actor{UserID: "user_001", EmployeeNumber: "1000001"}
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginSucceeded, actor, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventRefreshTokenReused, actor,
		events.RefreshTokenReusedPayload{RefreshID: "jti-1"})))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "1000001", entries[0].ContextMap()["employee_number"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "refresh_token_reused", entries[1].ContextMap()["event_type"])
}
