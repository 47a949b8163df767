package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/corray333/backend-labs/cafe/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type service interface {
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.OrderView, error)
}

type queryOrdersRequest struct {
	Ids     []int64 `schema:"id"`
	Status  string  `schema:"status"`
	MenuIds []int64 `schema:"menu_id"`
	Limit   int     `schema:"limit"   validate:"gte=0"`
	Offset  int     `schema:"offset"  validate:"gte=0"`
}

func (q *queryOrdersRequest) ToModel() order.QueryOrdersModel {
	return order.QueryOrdersModel{
		Ids:     q.Ids,
		MenuIds: q.MenuIds,
		Status:  q.Status,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

// ListOrders handles the list orders request. Without query parameters every order is returned.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.Error(w, respond.Validation(err))
		slog.Error("Error decoding request", "error", err)

		return
	}

	if err := validator.New().Struct(query); err != nil {
		respond.Error(w, err)

		return
	}

	orders, err := service.ListOrders(r.Context(), query.ToModel())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}
