package order

import "errors"

// StatusPending is the status every order is created with.
const StatusPending = "pending"

var (
	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInconsistentReference is returned when an order references a menu item that no longer exists.
	ErrInconsistentReference = errors.New("order references a missing menu item")
)

// Order represents an order row as it is persisted.
type Order struct {
	ID       int64   `json:"id"`
	MenuID   int64   `json:"menu_id"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
	Note     *string `json:"note"`
}

// OrderView is the read shape of an order with the menu item name joined in.
type OrderView struct {
	Order
	MenuName string `json:"menu_name"`
}

// CreateOrderModel holds the fields accepted when creating an order.
type CreateOrderModel struct {
	MenuID   int64
	Quantity int
	Note     *string
}

// UpdateOrderModel holds the fields of a partial order update.
// Nil fields are left untouched.
type UpdateOrderModel struct {
	MenuID   *int64
	Quantity *int
	Note     *string
	Status   *string
}

// IsEmpty reports whether the update carries no fields.
func (m UpdateOrderModel) IsEmpty() bool {
	return m.MenuID == nil && m.Quantity == nil && m.Note == nil && m.Status == nil
}
