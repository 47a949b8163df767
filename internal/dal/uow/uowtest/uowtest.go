// Package uowtest provides an in-memory unit of work for service tests.
package uowtest

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/service/models/outbox"
)

// Store is the shared in-memory state behind every unit of work it creates.
type Store struct {
	mu sync.Mutex

	menu   map[int64]menu.MenuItem
	orders map[int64]order.Order
	outbox []outbox.OutboxMessage

	nextMenuID   int64
	nextOrderID  int64
	nextOutboxID int64

	Begins    int
	Commits   int
	Rollbacks int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		menu:   map[int64]menu.MenuItem{},
		orders: map[int64]order.Order{},
	}
}

// AddMenuItem seeds a menu item and returns it with its id.
func (s *Store) AddMenuItem(item menu.MenuItem) menu.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMenuID++
	item.ID = s.nextMenuID
	s.menu[item.ID] = item

	return item
}

// RemoveMenuItem deletes a menu item directly, leaving orders untouched.
func (s *Store) RemoveMenuItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.menu, id)
}

// Orders returns a snapshot of the stored orders ordered by id.
func (s *Store) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.orders, func(o order.Order) int64 { return o.ID })
}

// MenuItems returns a snapshot of the stored menu items ordered by id.
func (s *Store) MenuItems() []menu.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.menu, func(m menu.MenuItem) int64 { return m.ID })
}

// OutboxMessages returns a snapshot of the outbox.
func (s *Store) OutboxMessages() []outbox.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.outbox)
}

// NewUnitOfWork creates a unit of work over the store.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

type snapshot struct {
	menu   map[int64]menu.MenuItem
	orders map[int64]order.Order
	outbox []outbox.OutboxMessage
}

// UnitOfWork applies writes to the store immediately and restores
// the state captured at Begin when rolled back before Commit.
type UnitOfWork struct {
	store     *Store
	snap      *snapshot
	committed bool
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if u.snap != nil {
		return errors.New("transaction already started")
	}
	u.store.Begins++
	u.snap = &snapshot{
		menu:   maps.Clone(u.store.menu),
		orders: maps.Clone(u.store.orders),
		outbox: slices.Clone(u.store.outbox),
	}

	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if u.snap == nil || u.committed {
		return nil
	}
	u.store.Commits++
	u.committed = true

	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if u.snap == nil {
		return nil
	}
	u.store.Rollbacks++
	if !u.committed {
		u.store.menu = u.snap.menu
		u.store.orders = u.snap.orders
		u.store.outbox = u.snap.outbox
	}
	u.snap = nil

	return nil
}

func (u *UnitOfWork) MenuRepository() imenurepo.IMenuRepository {
	return &menuRepository{store: u.store}
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return &orderRepository{store: u.store}
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &outboxRepository{store: u.store}
}

type menuRepository struct {
	store *Store
}

func (r *menuRepository) Insert(_ context.Context, item menu.MenuItem) (*menu.MenuItem, error) {
	created := r.store.AddMenuItem(item)

	return &created, nil
}

func (r *menuRepository) Get(_ context.Context, id int64) (*menu.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.menu[id]
	if !ok {
		return nil, nil
	}

	return &item, nil
}

func (r *menuRepository) GetForShare(ctx context.Context, id int64) (*menu.MenuItem, error) {
	return r.Get(ctx, id)
}

func (r *menuRepository) GetForUpdate(ctx context.Context, id int64) (*menu.MenuItem, error) {
	return r.Get(ctx, id)
}

func (r *menuRepository) List(_ context.Context) ([]menu.MenuItem, error) {
	return r.store.MenuItems(), nil
}

func (r *menuRepository) Update(
	_ context.Context,
	id int64,
	model menu.UpdateMenuModel,
) (*menu.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.menu[id]
	if !ok {
		return nil, menu.ErrMenuNotFound
	}
	if model.Name != nil {
		item.Name = *model.Name
	}
	if model.Price != nil {
		item.Price = *model.Price
	}
	if model.Description != nil {
		item.Description = *model.Description
	}
	r.store.menu[id] = item

	return &item, nil
}

func (r *menuRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.menu[id]; !ok {
		return menu.ErrMenuNotFound
	}
	delete(r.store.menu, id)

	return nil
}

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextOrderID++
	o.ID = r.store.nextOrderID
	if o.Status == "" {
		o.Status = order.StatusPending
	}
	r.store.orders[o.ID] = o

	return &o, nil
}

func (r *orderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}

	return &o, nil
}

func (r *orderRepository) Update(
	_ context.Context,
	id int64,
	model order.UpdateOrderModel,
) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	if model.MenuID != nil {
		o.MenuID = *model.MenuID
	}
	if model.Quantity != nil {
		o.Quantity = *model.Quantity
	}
	if model.Note != nil {
		note := *model.Note
		o.Note = &note
	}
	if model.Status != nil {
		o.Status = *model.Status
	}
	r.store.orders[id] = o

	return &o, nil
}

func (r *orderRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.store.orders, id)

	return nil
}

func (r *orderRepository) GetWithMenu(
	ctx context.Context,
	id int64,
) (*order.OrderWithMenu, error) {
	o, err := r.Get(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	joined := r.join(*o)

	return &joined, nil
}

func (r *orderRepository) QueryWithMenu(
	_ context.Context,
	filter *order.QueryOrdersModel,
) ([]order.OrderWithMenu, error) {
	orders := filterOrders(r.store.Orders(), filter)
	result := make([]order.OrderWithMenu, 0, len(orders))
	for _, o := range orders {
		result = append(result, r.join(o))
	}

	return result, nil
}

func (r *orderRepository) join(o order.Order) order.OrderWithMenu {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	joined := order.OrderWithMenu{Order: o}
	if item, ok := r.store.menu[o.MenuID]; ok {
		joined.Menu = &item
	}

	return joined
}

func (r *orderRepository) CountByMenu(_ context.Context, menuID int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, o := range r.store.orders {
		if o.MenuID == menuID {
			count++
		}
	}

	return count, nil
}

type outboxRepository struct {
	store *Store
}

func (r *outboxRepository) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextOutboxID++
	msg.ID = r.store.nextOutboxID
	r.store.outbox = append(r.store.outbox, msg)

	return nil
}

func (r *outboxRepository) GetPendingMessages(
	_ context.Context,
	limit int,
) ([]outbox.OutboxMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	var pending []outbox.OutboxMessage
	for _, msg := range r.store.outbox {
		if len(pending) == limit {
			break
		}
		if !msg.NextRetryAt.After(now) && !msg.Exhausted() {
			pending = append(pending, msg)
		}
	}

	return pending, nil
}

func (r *outboxRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.outbox = slices.DeleteFunc(r.store.outbox, func(m outbox.OutboxMessage) bool {
		return m.ID == id
	})

	return nil
}

func (r *outboxRepository) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.outbox {
		if r.store.outbox[i].ID == id {
			r.store.outbox[i].RetryCount = retryCount
			r.store.outbox[i].LastError = lastError
			r.store.outbox[i].NextRetryAt = nextRetryAt
		}
	}

	return nil
}

func filterOrders(orders []order.Order, filter *order.QueryOrdersModel) []order.Order {
	if filter == nil {
		return orders
	}

	result := []order.Order{}
	for _, o := range orders {
		if len(filter.Ids) > 0 && !slices.Contains(filter.Ids, o.ID) {
			continue
		}
		if len(filter.MenuIds) > 0 && !slices.Contains(filter.MenuIds, o.MenuID) {
			continue
		}
		if filter.Status != "" && filter.Status != o.Status {
			continue
		}
		result = append(result, o)
	}

	if filter.Offset > 0 {
		result = result[min(filter.Offset, len(result)):]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result
}

func sortedValues[V any](m map[int64]V, id func(V) int64) []V {
	values := slices.Collect(maps.Values(m))
	slices.SortFunc(values, func(a, b V) int {
		return cmp.Compare(id(a), id(b))
	})

	return values
}
