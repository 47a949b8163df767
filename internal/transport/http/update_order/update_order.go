package updateorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

type service interface {
	UpdateOrder(ctx context.Context, id int64, model order.UpdateOrderModel) (*order.Order, error)
}

// updateOrderRequest holds the fields of a partial update; absent fields stay nil.
type updateOrderRequest struct {
	MenuID   *int64  `json:"menu_id"  validate:"omitempty,gt=0"`
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0,max=2147483647"`
	Note     *string `json:"note"`
	Status   *string `json:"status"`
}

func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *updateOrderRequest) toModel() order.UpdateOrderModel {
	return order.UpdateOrderModel{
		MenuID:   r.MenuID,
		Quantity: r.Quantity,
		Note:     r.Note,
		Status:   r.Status,
	}
}

func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, respond.Validation(err))
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.Error(w, err)
		slog.Error("Error validating request body for update order", "error", err)

		return
	}

	updated, err := service.UpdateOrder(r.Context(), id, req.toModel())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating order", "order_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
