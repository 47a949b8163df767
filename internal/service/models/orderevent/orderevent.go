package orderevent

import (
	"time"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
)

// Type is the kind of change an order event describes.
type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

// OrderEvent represents an order change published to the message broker.
type OrderEvent struct {
	Type       Type      `json:"type"`
	OrderID    int64     `json:"order_id"`
	MenuID     int64     `json:"menu_id,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	Status     string    `json:"status,omitempty"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FromOrder builds an event of the given type from an order snapshot.
func FromOrder(t Type, o order.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       t,
		OrderID:    o.ID,
		MenuID:     o.MenuID,
		Quantity:   o.Quantity,
		Status:     o.Status,
		Note:       o.Note,
		OccurredAt: at,
	}
}
