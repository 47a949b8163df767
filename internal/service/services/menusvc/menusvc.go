package menusvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	"github.com/corray333/backend-labs/cafe/internal/dal/uow"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"go.opentelemetry.io/otel"
)

// MenuService is a service for managing menu items.
type MenuService struct {
	newUOW func() UnitOfWork
}

// UnitOfWork scopes repositories to one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MenuRepository() imenurepo.IMenuRepository
	OrderRepository() iorderrepo.IOrderRepository
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("menusvc: postgres client or unit of work is required")
	}

	return s
}

// WithUnitOfWork sets the factory creating a unit of work per call.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(newUOW func() UnitOfWork) option {
	return func(s *MenuService) {
		s.newUOW = newUOW
	}
}

// WithPostgresClient sets the Postgres client for the MenuService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *MenuService) {
		s.newUOW = func() UnitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

func (s *MenuService) CreateMenuItem(ctx context.Context, item menu.MenuItem) (*menu.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.CreateMenuItem")
	defer span.End()

	created, err := s.newUOW().MenuRepository().Insert(ctx, item)
	if err != nil {
		return nil, err
	}

	slog.Info("Menu item created", "menu_id", created.ID, "name", created.Name)

	return created, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*menu.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.GetMenuItem")
	defer span.End()

	item, err := s.newUOW().MenuRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, menu.ErrMenuNotFound
	}

	return item, nil
}

func (s *MenuService) ListMenuItems(ctx context.Context) ([]menu.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.ListMenuItems")
	defer span.End()

	return s.newUOW().MenuRepository().List(ctx)
}

// UpdateMenuItem merges the supplied fields into the menu item.
func (s *MenuService) UpdateMenuItem(
	ctx context.Context,
	id int64,
	model menu.UpdateMenuModel,
) (*menu.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.UpdateMenuItem")
	defer span.End()

	updated, err := s.newUOW().MenuRepository().Update(ctx, id, model)
	if err != nil {
		return nil, err
	}

	slog.Info("Menu item updated", "menu_id", updated.ID)

	return updated, nil
}

// DeleteMenuItem removes a menu item that no order references.
// The row is locked before counting so no order can be created for it in between.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.DeleteMenuItem")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back transaction", "error", err)
		}
	}()

	item, err := work.MenuRepository().GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return menu.ErrMenuNotFound
	}

	refs, err := work.OrderRepository().CountByMenu(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		slog.Info("Refusing to delete referenced menu item", "menu_id", id, "orders", refs)

		return fmt.Errorf("menu item %d has %d orders: %w", id, refs, menu.ErrMenuReferenced)
	}

	if err := work.MenuRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit menu item deletion: %w", err)
	}

	slog.Info("Menu item deleted", "menu_id", id)

	return nil
}
