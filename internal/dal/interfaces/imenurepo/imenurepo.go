package imenurepo

import (
	"context"

	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
)

// IMenuRepository is an interface for menu item postgres repository.
// Get methods return nil without error when the item does not exist.
type IMenuRepository interface {
	Insert(ctx context.Context, item menu.MenuItem) (*menu.MenuItem, error)
	Get(ctx context.Context, id int64) (*menu.MenuItem, error)
	// GetForShare locks the row against deletion until the transaction ends.
	GetForShare(ctx context.Context, id int64) (*menu.MenuItem, error)
	// GetForUpdate locks the row exclusively until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*menu.MenuItem, error)
	List(ctx context.Context) ([]menu.MenuItem, error)
	// Update returns menu.ErrMenuNotFound when the item does not exist.
	Update(ctx context.Context, id int64, model menu.UpdateMenuModel) (*menu.MenuItem, error)
	// Delete returns menu.ErrMenuNotFound when the item does not exist.
	Delete(ctx context.Context, id int64) error
}
