package outbox

import (
	"time"
)

// OutboxMessage is an order event waiting to be published to RabbitMQ.
// EventType and OrderID mirror the payload and become AMQP metadata.
type OutboxMessage struct {
	ID           int64
	EventType    string
	OrderID      int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// Exhausted reports whether the message will not be retried again.
func (m OutboxMessage) Exhausted() bool {
	return m.RetryCount >= m.MaxRetries
}
