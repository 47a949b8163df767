package ioutboxrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/service/models/outbox"
)

// IOutboxRepository stores order events until the outbox worker publishes them.
type IOutboxRepository interface {
	// Insert writes an event, usually inside the transaction that changed the order.
	Insert(ctx context.Context, msg outbox.OutboxMessage) error
	// GetPendingMessages returns up to limit events due for publishing, oldest retry first.
	// Exhausted events are never returned.
	GetPendingMessages(ctx context.Context, limit int) ([]outbox.OutboxMessage, error)
	Delete(ctx context.Context, id int64) error
	// UpdateRetry records a failed publish and when to try again.
	UpdateRetry(ctx context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error
}
