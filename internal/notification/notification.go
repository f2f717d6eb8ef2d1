package notification

import (
	"context"
	"time"
)

type EventType string

const (
	ContractStatusChanged EventType = "ContractStatusChanged"
	SupplierOrderCreated  EventType = "SupplierOrderCreated"
)

type Event struct {
	Type       EventType              `json:"type"`
	EntityID   string                 `json:"entity_id"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Sender delivers events to whoever listens downstream (mail, SMS, suppliers).
// Callers treat delivery as best effort once their own write has committed.
type Sender interface {
	Send(ctx context.Context, event Event) error
}
