package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dinehall/api/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// isValidationError checks if the error is a known validation error from
// the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrInvalidRating) ||
		errors.Is(err, service.ErrInvalidAmount) ||
		errors.Is(err, service.ErrMenuItemNotFound) ||
		errors.Is(err, service.ErrModifierNotFound) ||
		errors.Is(err, service.ErrOptionNotFound) ||
		errors.Is(err, service.ErrRequiredModifier) ||
		errors.Is(err, service.ErrSingleSelectGroup) ||
		errors.Is(err, service.ErrInvalidTimeframe)
}

// isNotFoundError checks for a missing addressed entity (404, as opposed
// to a bad reference inside the request body).
func isNotFoundError(err error) bool {
	return errors.Is(err, service.ErrOrderNotFound) ||
		errors.Is(err, service.ErrItemNotFound) ||
		errors.Is(err, service.ErrTableNotFound)
}
