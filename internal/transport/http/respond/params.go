package respond

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IDParam parses a positive integer path parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrValidationFailed, name, raw)
	}

	return id, nil
}

// Validation wraps err so it is reported as a client error.
func Validation(err error) error {
	return fmt.Errorf("%w: %v", ErrValidationFailed, err)
}
