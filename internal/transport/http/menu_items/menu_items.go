package menuitems

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

// Service is an interface for the menu service layer.
type Service interface {
	CreateMenuItem(ctx context.Context, item menu.MenuItem) (*menu.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*menu.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]menu.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, model menu.UpdateMenuModel) (*menu.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error
}

type createMenuItemRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Price       int64  `json:"price"       validate:"gte=0"`
	Description string `json:"description"`
}

type updateMenuItemRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=255"`
	Price       *int64  `json:"price"       validate:"omitempty,gte=0"`
	Description *string `json:"description"`
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request, service Service) {
	req := createMenuItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, respond.Validation(err))
		slog.Error("Error decoding request body for create menu item", "error", err)

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, err)

		return
	}

	created, err := service.CreateMenuItem(r.Context(), menu.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating menu item", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

func GetMenuItem(w http.ResponseWriter, r *http.Request, service Service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	item, err := service.GetMenuItem(r.Context(), id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, item)
}

func ListMenuItems(w http.ResponseWriter, r *http.Request, service Service) {
	items, err := service.ListMenuItems(r.Context())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error listing menu items", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, items)
}

// UpdateMenuItem applies a partial update; omitted fields keep their values.
func UpdateMenuItem(w http.ResponseWriter, r *http.Request, service Service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	req := updateMenuItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, respond.Validation(err))
		slog.Error("Error decoding request body for update menu item", "error", err)

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, err)

		return
	}

	updated, err := service.UpdateMenuItem(r.Context(), id, menu.UpdateMenuModel{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating menu item", "menu_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteMenuItem refuses with 409 while orders still reference the item.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, service Service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	if err := service.DeleteMenuItem(r.Context(), id); err != nil {
		respond.Error(w, err)
		slog.Error("Error deleting menu item", "menu_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, respond.Detail{Detail: "Menu item deleted"})
}
