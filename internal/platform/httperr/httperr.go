// Package httperr defines the service error taxonomy and the echo error
// handler that maps it onto HTTP responses. Every failure leaving a service
// is one of these types; the handler turns it into a single JSON body with a
// human-readable message and the matching status code. Unexpected errors are
// logged and surfaced as a generic message so internal detail never reaches
// the caller.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ValidationError marks a request rejected before any service logic ran:
// a required field is missing or empty.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError marks a write that would duplicate a unique key.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// AuthenticationError marks failed credentials. The message is deliberately
// the same for unknown users and wrong passwords.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// NotFoundError marks a lookup with no matching entity.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// UpstreamError marks a failed call to the generative text service.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string { return e.Msg }
func (e *UpstreamError) Unwrap() error { return e.Err }

// StorageError marks a failed call to the document store.
type StorageError struct {
	Msg string
	Err error
}

func (e *StorageError) Error() string { return e.Msg }
func (e *StorageError) Unwrap() error { return e.Err }

// Validation, Conflict, Authentication, NotFound, Upstream and Storage are
// shorthand constructors used at the service layer.
func Validation(msg string) error      { return &ValidationError{Msg: msg} }
func Conflict(msg string) error        { return &ConflictError{Msg: msg} }
func Authentication(msg string) error  { return &AuthenticationError{Msg: msg} }
func NotFound(msg string) error        { return &NotFoundError{Msg: msg} }
func Upstream(msg string, err error) error { return &UpstreamError{Msg: msg, Err: err} }
func Storage(msg string, err error) error  { return &StorageError{Msg: msg, Err: err} }

type response struct {
	Message string `json:"message"`
}

// Handler returns an echo.HTTPErrorHandler implementing the propagation
// policy: one JSON object per failure, no partial responses. Unmatched
// routes get the fixed "Route not found" body.
func Handler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "Internal server error"

		var (
			validationErr *ValidationError
			conflictErr   *ConflictError
			authErr       *AuthenticationError
			notFoundErr   *NotFoundError
			upstreamErr   *UpstreamError
			storageErr    *StorageError
			httpErr       *echo.HTTPError
		)

		switch {
		case errors.As(err, &validationErr):
			status, msg = http.StatusBadRequest, validationErr.Msg
		case errors.As(err, &conflictErr):
			status, msg = http.StatusBadRequest, conflictErr.Msg
		case errors.As(err, &authErr):
			status, msg = http.StatusUnauthorized, authErr.Msg
		case errors.As(err, &notFoundErr):
			status, msg = http.StatusNotFound, notFoundErr.Msg
		case errors.As(err, &upstreamErr):
			status, msg = http.StatusInternalServerError, upstreamErr.Msg
			logger.Error().Err(upstreamErr.Err).Str("path", c.Path()).Msg("upstream generation failed")
		case errors.As(err, &storageErr):
			status, msg = http.StatusInternalServerError, storageErr.Msg
			logger.Error().Err(storageErr.Err).Str("path", c.Path()).Msg("storage operation failed")
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if status == http.StatusNotFound {
				msg = "Route not found"
			} else if s, ok := httpErr.Message.(string); ok {
				msg = s
			}
		default:
			logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, response{Message: msg})
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
