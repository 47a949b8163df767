package getorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
)

type service interface {
	GetOrder(ctx context.Context, id int64) (*order.OrderView, error)
}

func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	view, err := service.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, view)
}
