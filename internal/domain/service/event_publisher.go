package service

import "context"

// ActivityEvent is the wire shape published for every activity trail entry.
// Consumers (reporting, ops dashboards) subscribe downstream; nothing in
// this service reads events back.
type ActivityEvent struct {
	EventID     string         `json:"event_id"`
	UserID      string         `json:"user_id"`
	UserEmail   string         `json:"user_email"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	OccurredAt  string         `json:"occurred_at"`
	RequestID   string         `json:"request_id,omitempty"`
}

// EventPublisher publishes activity events to the configured broker.
type EventPublisher interface {
	PublishActivityEvent(ctx context.Context, event *ActivityEvent) error
	Close() error
}
