// Package events publishes account audit events (sign-ups, revoked sessions).
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"time"
)

const (
	UserSignedUp   = "user.signed_up"
	SessionRevoked = "session.revoked"
)

type Event struct {
	Name       string                 `json:"name"`
	UserID     int64                  `json:"userId"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Publisher sends events to whatever backs the deployment.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
