// Package events publishes domain events about expenses and budgets.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event names. They double as AMQP routing keys.
const (
	ExpenseCreated = "expense.created"
	ExpenseDeleted = "expense.deleted"
	BudgetSaved    = "budget.saved"
)

// Event is the JSON envelope published for every domain event.
type Event struct {
	Name       string          `json:"name"`
	UserID     string          `json:"user_id"`
	ResourceID string          `json:"resource_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// New builds an event, encoding payload as JSON. A payload that cannot be
// encoded is dropped rather than failing the event.
func New(name, userID, resourceID string, payload any) Event {
	e := Event{
		Name:       name,
		UserID:     userID,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			e.Payload = raw
		}
	}
	return e
}

// Publisher delivers domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
