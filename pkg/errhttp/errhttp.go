// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/boundedstr/pkg/bounded"
	"github.com/ghuser/boundedstr/pkg/httpx"
	itemdomain "github.com/ghuser/boundedstr/services/item/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; the message
// of a 500 is replaced with the status text.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	var typeErr *bounded.TypeError
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrInvalidItemName),
		errors.Is(err, itemdomain.ErrInvalidOwnerName),
		errors.Is(err, bounded.ErrInvalidLength),
		errors.Is(err, bounded.ErrInvalidUTF8):
		return http.StatusUnprocessableEntity // 422
	case errors.As(err, &typeErr):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
