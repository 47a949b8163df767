package order

import "github.com/corray333/backend-labs/cafe/internal/service/models/menu"

// OrderWithMenu is an order joined with the menu item it references.
// Menu is nil when the referenced item no longer exists.
type OrderWithMenu struct {
	Order Order
	Menu  *menu.MenuItem
}

// View builds the denormalized read shape of the order.
func (o OrderWithMenu) View() (OrderView, error) {
	if o.Menu == nil {
		return OrderView{}, ErrInconsistentReference
	}

	return OrderView{Order: o.Order, MenuName: o.Menu.Name}, nil
}
