// Package respond writes JSON responses and maps service errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed marks requests rejected before reaching the service layer.
var ErrValidationFailed = errors.New("validation failed")

// Detail is the body of error and acknowledgement responses.
type Detail struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Error writes the status and message matching err.
func Error(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "error", err)
	}

	JSON(w, status, Detail{Detail: message})
}

func classify(err error) (int, string) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, menu.ErrMenuNotFound):
		return http.StatusNotFound, "Menu not found"
	case errors.Is(err, menu.ErrMenuReferenced):
		return http.StatusConflict, "Menu item is referenced by existing orders"
	case errors.Is(err, order.ErrInconsistentReference):
		return http.StatusConflict, "Order references a menu item that no longer exists"
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, validationErrs.Error()
	case errors.Is(err, ErrValidationFailed):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
