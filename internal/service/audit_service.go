package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kintai-system/attendance-api/internal/events"
	"github.com/kintai-system/attendance-api/internal/observability"
)

// AuditService records authentication events in the log and in metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AuthEventTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.metrics.RecordAuthEvent(string(event.Type))

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("employee_number", event.Actor.EmployeeNumber),
		zap.String("user_id", event.Actor.UserID),
		zap.Time("at", event.Timestamp),
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}

	switch event.Type {
	case events.EventRefreshTokenReused:
		a.logger.Warn("refresh token reuse detected", fields...)
	case events.EventLoginFailed, events.EventLoginRejectedDisabled:
		a.logger.Warn("login rejected", fields...)
	default:
		a.logger.Info("auth event", fields...)
	}
	return nil
}
