package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, model order.CreateOrderModel) (*order.Order, error)
}

// createOrderRequest represents a create order request.
// Status is not accepted: new orders are always pending.
type createOrderRequest struct {
	MenuID   int64   `json:"menu_id"  validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"gt=0,max=2147483647"`
	Note     *string `json:"note"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *createOrderRequest) toModel() order.CreateOrderModel {
	return order.CreateOrderModel{
		MenuID:   r.MenuID,
		Quantity: r.Quantity,
		Note:     r.Note,
	}
}

// CreateOrder handles the create order request and responds with the stored order.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, respond.Validation(err))
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, err)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), req.toModel())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating order", "menu_id", req.MenuID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, created)
}
