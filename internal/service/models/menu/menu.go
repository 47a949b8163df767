package menu

import "errors"

var (
	// ErrMenuNotFound is returned when a menu item does not exist.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuReferenced is returned when a menu item cannot be deleted because orders reference it.
	ErrMenuReferenced = errors.New("menu item is referenced by existing orders")
)

// MenuItem represents an item on the cafe menu.
// Price is stored in the smallest currency unit.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// UpdateMenuModel holds the fields of a partial menu item update.
// Nil fields are left untouched.
type UpdateMenuModel struct {
	Name        *string
	Price       *int64
	Description *string
}

// IsEmpty reports whether the update carries no fields.
func (m UpdateMenuModel) IsEmpty() bool {
	return m.Name == nil && m.Price == nil && m.Description == nil
}
