package http

import (
	"errors"
	"net/http"

	"schedule-planner/internal/schedule"
	pkgErrors "schedule-planner/pkg/errors"
)

var (
	errFileTooLarge   = pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, "uploaded file is too large")
	errParseFailed    = pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "failed to parse any schedule items")
	errNotConnected   = pkgErrors.NewHTTPError(http.StatusUnauthorized, "google account is not connected")
	errOAuthDisabled  = pkgErrors.NewHTTPError(http.StatusNotFound, "oauth login is not configured")
	errInvalidState   = pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid oauth state")
	errMissingCode    = pkgErrors.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	errUnknownFormat  = pkgErrors.NewHTTPError(http.StatusBadRequest, "unsupported format, use json or ics")
	errExchangeFailed = pkgErrors.NewHTTPError(http.StatusBadGateway, "failed to exchange authorization code")
)

// mapError translates use-case errors into HTTP errors from pkg/errors.
// ok is false for errors that should be reported as internal.
func (h *handler) mapError(err error) (error, bool) {
	switch {
	case errors.Is(err, schedule.ErrNoInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, schedule.MessageNoInput), true
	case errors.Is(err, schedule.ErrUnsupportedMedia):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error()), true
	case schedule.IsExtractionFailure(err):
		return errParseFailed, true
	case errors.Is(err, schedule.ErrNotAuthenticated):
		return errNotConnected, true
	default:
		return err, false
	}
}
