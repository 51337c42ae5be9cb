package api

import (
	"errors"
	"net/http"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// errInvalidBody is returned for request bodies that are not valid JSON
var errInvalidBody = errors.New("invalid request body")

// HTTPStatus returns the status code for an error returned by a handler
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUserIDRequired), errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoResumes):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal details behind a generic message for 5xx
func errorMessage(status int, err error) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
