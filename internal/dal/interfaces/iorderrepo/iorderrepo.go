package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order and returns it with the assigned id and defaults.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	// Get returns nil without error when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)
	// Update returns order.ErrOrderNotFound when the order does not exist.
	Update(ctx context.Context, id int64, model order.UpdateOrderModel) (*order.Order, error)
	// Delete returns order.ErrOrderNotFound when the order does not exist.
	Delete(ctx context.Context, id int64) error

	// GetWithMenu returns nil without error when the order does not exist.
	GetWithMenu(ctx context.Context, id int64) (*order.OrderWithMenu, error)
	// QueryWithMenu returns orders matching filter ordered by id.
	QueryWithMenu(ctx context.Context, filter *order.QueryOrdersModel) ([]order.OrderWithMenu, error)
	CountByMenu(ctx context.Context, menuID int64) (int64, error)
}
