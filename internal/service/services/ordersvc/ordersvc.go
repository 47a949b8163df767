package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	"github.com/corray333/backend-labs/cafe/internal/dal/uow"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/service/models/orderevent"
	"github.com/corray333/backend-labs/cafe/internal/service/models/outbox"
	"go.opentelemetry.io/otel"
)

// OrderService is a service for managing orders.
type OrderService struct {
	newUOW func() UnitOfWork
	events *EventsConfig
	now    func() time.Time
}

// UnitOfWork scopes repositories to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MenuRepository() imenurepo.IMenuRepository
	OrderRepository() iorderrepo.IOrderRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// EventsConfig describes where order events are routed.
type EventsConfig struct {
	QueueName    string
	ExchangeName string
	RoutingKey   string
	MaxRetries   int
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: postgres client or unit of work is required")
	}

	return s
}

// WithUnitOfWork sets the factory creating a unit of work per call.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(newUOW func() UnitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = newUOW
	}
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() UnitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithOrderEvents enables writing order events to the outbox.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderEvents(cfg EventsConfig) option {
	return func(s *OrderService) {
		if cfg.RoutingKey == "" {
			cfg.RoutingKey = cfg.QueueName
		}
		s.events = &cfg
	}
}

// CreateOrder creates a pending order for an existing menu item.
// The menu row stays share-locked until the order is committed.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	model order.CreateOrderModel,
) (*order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer release(ctx, work)

	item, err := work.MenuRepository().GetForShare(ctx, model.MenuID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		slog.Info("Order references unknown menu item", "menu_id", model.MenuID)

		return nil, menu.ErrMenuNotFound
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		MenuID:   model.MenuID,
		Quantity: model.Quantity,
		Status:   order.StatusPending,
		Note:     model.Note,
	})
	if err != nil {
		return nil, err
	}

	event := orderevent.FromOrder(orderevent.TypeCreated, *created, s.now())
	if err := s.enqueueEvent(ctx, work, event); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	slog.Info("Order created", "order_id", created.ID, "menu_id", created.MenuID)

	return created, nil
}

// GetOrder returns the order with the current name of its menu item.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.OrderView, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	joined, err := s.newUOW().OrderRepository().GetWithMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if joined == nil {
		return nil, order.ErrOrderNotFound
	}

	view, err := joined.View()
	if err != nil {
		slog.Warn("Order has a dangling menu reference", "order_id", id, "menu_id", joined.Order.MenuID)

		return nil, fmt.Errorf("order %d: %w", id, err)
	}

	return &view, nil
}

// ListOrders returns orders matching filter with their menu item names.
// A single dangling reference fails the whole listing.
func (s *OrderService) ListOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.OrderView, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	joined, err := s.newUOW().OrderRepository().QueryWithMenu(ctx, &filter)
	if err != nil {
		return nil, err
	}

	views := make([]order.OrderView, 0, len(joined))
	for _, j := range joined {
		view, err := j.View()
		if err != nil {
			slog.Warn("Order has a dangling menu reference", "order_id", j.Order.ID, "menu_id", j.Order.MenuID)

			return nil, fmt.Errorf("order %d: %w", j.Order.ID, err)
		}
		views = append(views, view)
	}

	return views, nil
}

// UpdateOrder merges the supplied fields into the order.
// An empty update returns the order unchanged and emits no event.
// A new menu_id is stored as given, without checking the menu item exists.
func (s *OrderService) UpdateOrder(
	ctx context.Context,
	id int64,
	model order.UpdateOrderModel,
) (*order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.UpdateOrder")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer release(ctx, work)

	updated, err := work.OrderRepository().Update(ctx, id, model)
	if err != nil {
		return nil, err
	}

	if !model.IsEmpty() {
		event := orderevent.FromOrder(orderevent.TypeUpdated, *updated, s.now())
		if err := s.enqueueEvent(ctx, work, event); err != nil {
			return nil, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	slog.Info("Order updated", "order_id", updated.ID, "status", updated.Status)

	return updated, nil
}

// DeleteOrder removes the order.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.DeleteOrder")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer release(ctx, work)

	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	event := orderevent.OrderEvent{
		Type:       orderevent.TypeDeleted,
		OrderID:    id,
		OccurredAt: s.now(),
	}
	if err := s.enqueueEvent(ctx, work, event); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}

	slog.Info("Order deleted", "order_id", id)

	return nil
}

// enqueueEvent writes the event to the outbox inside the current transaction.
func (s *OrderService) enqueueEvent(
	ctx context.Context,
	work UnitOfWork,
	event orderevent.OrderEvent,
) error {
	if s.events == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	now := s.now()
	err = work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		EventType:    "order." + string(event.Type),
		OrderID:      event.OrderID,
		QueueName:    s.events.QueueName,
		ExchangeName: s.events.ExchangeName,
		RoutingKey:   s.events.RoutingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   s.events.MaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue order event: %w", err)
	}

	return nil
}

// release rolls back a transaction that was not committed.
func release(ctx context.Context, work UnitOfWork) {
	if err := work.Rollback(ctx); err != nil {
		slog.Error("Failed to roll back transaction", "error", err)
	}
}
