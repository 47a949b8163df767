package deleteorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
)

type service interface {
	DeleteOrder(ctx context.Context, id int64) error
}

func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := respond.IDParam(r, "id")
	if err != nil {
		respond.Error(w, err)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		respond.Error(w, err)
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, respond.Detail{Detail: "Order deleted"})
}
