package respond

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func TestClassify(t *testing.T) {
	type sample struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(sample{})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"order not found", fmt.Errorf("failed to update: %w", order.ErrOrderNotFound), http.StatusNotFound, "Order not found"},
		{"menu not found", menu.ErrMenuNotFound, http.StatusNotFound, "Menu not found"},
		{"menu referenced", fmt.Errorf("%w: 2 orders", menu.ErrMenuReferenced), http.StatusConflict, ""},
		{"dangling reference", fmt.Errorf("order 3: %w", order.ErrInconsistentReference), http.StatusConflict, ""},
		{"validator", validationErr, http.StatusBadRequest, ""},
		{"bad input", Validation(errors.New("unexpected EOF")), http.StatusBadRequest, "validation failed: unexpected EOF"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classify(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantDetail != "" && detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", detail, tt.wantDetail)
			}
		})
	}
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9000", 9000, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.raw)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		got, err := IDParam(r, "id")
		if (err != nil) != tt.wantErr {
			t.Errorf("IDParam(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrValidationFailed) {
			t.Errorf("IDParam(%q) error %v is not a validation error", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("IDParam(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
