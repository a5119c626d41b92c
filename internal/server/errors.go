package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/prep-readiness/internal/analysis"
	"github.com/jonathan/prep-readiness/internal/progress"
	"github.com/jonathan/prep-readiness/internal/storage"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *analysis.ValidationError
		notFound    *storage.NotFoundError
		unknownID   *progress.UnknownIDError
		invalidLink *progress.InvalidLinkError
		readErr     *storage.ReadError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &invalidLink):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &unknownID):
		return http.StatusNotFound
	case errors.As(err, &readErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
