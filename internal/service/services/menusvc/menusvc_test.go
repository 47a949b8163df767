package menusvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/cafe/internal/dal/uow/uowtest"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
)

func newTestService() (*MenuService, *uowtest.Store) {
	store := uowtest.NewStore()
	s := &MenuService{
		newUOW: func() UnitOfWork {
			return store.NewUnitOfWork()
		},
	}

	return s, store
}

func TestCreateAndGetMenuItem(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	created, err := s.CreateMenuItem(ctx, menu.MenuItem{Name: "Latte", Price: 350, Description: "Espresso with milk"})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateMenuItem did not assign an id")
	}

	got, err := s.GetMenuItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMenuItem: %v", err)
	}
	if *got != *created {
		t.Errorf("GetMenuItem = %+v, want %+v", *got, *created)
	}

	if _, err := s.GetMenuItem(ctx, created.ID+1); !errors.Is(err, menu.ErrMenuNotFound) {
		t.Errorf("GetMenuItem(missing) err = %v, want %v", err, menu.ErrMenuNotFound)
	}
}

func TestListMenuItems(t *testing.T) {
	s, store := newTestService()
	store.AddMenuItem(menu.MenuItem{Name: "Latte", Price: 350})
	store.AddMenuItem(menu.MenuItem{Name: "Muffin", Price: 200})

	items, err := s.ListMenuItems(context.Background())
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Latte" || items[1].Name != "Muffin" {
		t.Errorf("ListMenuItems = %+v", items)
	}
}

func TestUpdateMenuItem_Partial(t *testing.T) {
	s, store := newTestService()
	latte := store.AddMenuItem(menu.MenuItem{Name: "Latte", Price: 350, Description: "Espresso with milk"})
	price := int64(380)

	updated, err := s.UpdateMenuItem(context.Background(), latte.ID, menu.UpdateMenuModel{Price: &price})
	if err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}

	want := menu.MenuItem{ID: latte.ID, Name: "Latte", Price: 380, Description: "Espresso with milk"}
	if *updated != want {
		t.Errorf("UpdateMenuItem = %+v, want %+v", *updated, want)
	}

	if _, err := s.UpdateMenuItem(context.Background(), 99, menu.UpdateMenuModel{Price: &price}); !errors.Is(err, menu.ErrMenuNotFound) {
		t.Errorf("UpdateMenuItem(missing) err = %v, want %v", err, menu.ErrMenuNotFound)
	}
}

func TestDeleteMenuItem(t *testing.T) {
	s, store := newTestService()
	ctx := context.Background()
	latte := store.AddMenuItem(menu.MenuItem{Name: "Latte", Price: 350})

	if err := s.DeleteMenuItem(ctx, latte.ID); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}
	if items := store.MenuItems(); len(items) != 0 {
		t.Errorf("menu items after delete = %+v, want none", items)
	}

	if err := s.DeleteMenuItem(ctx, latte.ID); !errors.Is(err, menu.ErrMenuNotFound) {
		t.Errorf("second DeleteMenuItem err = %v, want %v", err, menu.ErrMenuNotFound)
	}
}

func TestDeleteMenuItem_ReferencedByOrder(t *testing.T) {
	s, store := newTestService()
	ctx := context.Background()
	latte := store.AddMenuItem(menu.MenuItem{Name: "Latte", Price: 350})

	orders := store.NewUnitOfWork().OrderRepository()
	if _, err := orders.Insert(ctx, order.Order{MenuID: latte.ID, Quantity: 1}); err != nil {
		t.Fatalf("insert order: %v", err)
	}

	err := s.DeleteMenuItem(ctx, latte.ID)
	if !errors.Is(err, menu.ErrMenuReferenced) {
		t.Fatalf("DeleteMenuItem err = %v, want %v", err, menu.ErrMenuReferenced)
	}
	if items := store.MenuItems(); len(items) != 1 {
		t.Errorf("menu items = %+v, want the referenced item kept", items)
	}
	if store.Commits != 0 || store.Rollbacks != 1 {
		t.Errorf("commits/rollbacks = %d/%d, want 0/1", store.Commits, store.Rollbacks)
	}
}
