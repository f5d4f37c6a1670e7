package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded        EventType = "login_succeeded"
	EventLoginFailed           EventType = "login_failed"
	EventLoginRejectedDisabled EventType = "login_rejected_disabled"
	EventTokenRefreshed        EventType = "token_refreshed"
	EventRefreshTokenReused    EventType = "refresh_token_reused"
	EventLoggedOut             EventType = "logged_out"
)

// AuthEventTypes lists every event the auth service publishes.
var AuthEventTypes = []EventType{
	EventLoginSucceeded,
	EventLoginFailed,
	EventLoginRejectedDisabled,
	EventTokenRefreshed,
	EventRefreshTokenReused,
	EventLoggedOut,
}

// Actor identifies the employee an event is about. Fields are empty when unknown.
type Actor struct {
	UserID         string `json:"user_id,omitempty"`
	EmployeeNumber string `json:"employee_number,omitempty"`
}

// Event represents an audit event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// TokenRefreshedPayload payload.
type TokenRefreshedPayload struct {
	PreviousRefreshID string `json:"previous_refresh_id"`
	Rotated           bool   `json:"rotated"`
}

// RefreshTokenReusedPayload payload.
type RefreshTokenReusedPayload struct {
	RefreshID string `json:"refresh_id"`
}

// LoggedOutPayload payload.
type LoggedOutPayload struct {
	RevokedTokens int `json:"revoked_tokens"`
}
