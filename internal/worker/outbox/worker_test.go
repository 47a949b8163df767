package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/dal/uow/uowtest"
	"github.com/corray333/backend-labs/cafe/internal/service/models/outbox"
)

type fakePublisher struct {
	failKey   string
	published []outbox.OutboxMessage
}

func (p *fakePublisher) Publish(_ context.Context, msg outbox.OutboxMessage) error {
	if msg.RoutingKey == p.failKey {
		return errors.New("channel closed")
	}
	p.published = append(p.published, msg)

	return nil
}

func TestNextRetryDelay(t *testing.T) {
	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, 30 * time.Second},
		{1, 60 * time.Second},
		{2, 120 * time.Second},
		{4, 480 * time.Second},
	}

	for _, tt := range tests {
		if got := nextRetryDelay(tt.retryCount, 30*time.Second); got != tt.want {
			t.Errorf("nextRetryDelay(%d) = %v, want %v", tt.retryCount, got, tt.want)
		}
	}
}

func TestProcessMessages(t *testing.T) {
	ctx := context.Background()
	store := uowtest.NewStore()
	repo := store.NewUnitOfWork().OutboxRepository()

	for _, key := range []string{"ok", "broken"} {
		err := repo.Insert(ctx, outbox.OutboxMessage{
			RoutingKey:  key,
			Payload:     []byte(`{}`),
			ContentType: "application/json",
			MaxRetries:  3,
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	pub := &fakePublisher{failKey: "broken"}
	w := &Worker{
		outboxRepo:    repo,
		publisher:     pub,
		batchSize:     10,
		retryInterval: 30 * time.Second,
		now:           func() time.Time { return now },
	}

	w.processMessages(ctx)

	if len(pub.published) != 1 || pub.published[0].RoutingKey != "ok" {
		t.Fatalf("published = %+v, want only the ok message", pub.published)
	}

	left := store.OutboxMessages()
	if len(left) != 1 {
		t.Fatalf("outbox has %d messages, want 1", len(left))
	}
	failed := left[0]
	if failed.RoutingKey != "broken" {
		t.Errorf("remaining message = %q, want broken", failed.RoutingKey)
	}
	if failed.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1", failed.RetryCount)
	}
	if failed.LastError != "channel closed" {
		t.Errorf("LastError = %q", failed.LastError)
	}
	if want := now.Add(60 * time.Second); !failed.NextRetryAt.Equal(want) {
		t.Errorf("NextRetryAt = %v, want %v", failed.NextRetryAt, want)
	}
}

func TestProcessMessagesSkipsExhausted(t *testing.T) {
	ctx := context.Background()
	store := uowtest.NewStore()
	repo := store.NewUnitOfWork().OutboxRepository()

	err := repo.Insert(ctx, outbox.OutboxMessage{RoutingKey: "ok", RetryCount: 3, MaxRetries: 3})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	pub := &fakePublisher{}
	w := &Worker{outboxRepo: repo, publisher: pub, batchSize: 10, retryInterval: time.Second, now: time.Now}
	w.processMessages(ctx)

	if len(pub.published) != 0 {
		t.Errorf("published %d exhausted messages", len(pub.published))
	}
	if len(store.OutboxMessages()) != 1 {
		t.Error("exhausted message must stay in the outbox")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	store := uowtest.NewStore()
	w := &Worker{
		outboxRepo:   store.NewUnitOfWork().OutboxRepository(),
		publisher:    &fakePublisher{},
		pollInterval: time.Millisecond,
		batchSize:    1,
		now:          time.Now,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
