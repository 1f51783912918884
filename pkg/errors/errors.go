package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the HTTP query server (cmd/query serve). The core
// packages (index, query, exec) never use these — they report failure
// through pkg/status.Status instead, since they have no notion of an HTTP
// status code. These exist only where a Status crosses into an HTTP
// response.
var (
	ErrIndexNotLoaded     = errors.New("index not loaded")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCatalogUnavailable = errors.New("document catalog unavailable")
	ErrCacheUnavailable   = errors.New("query cache unavailable")
	ErrInternal           = errors.New("internal error")
	ErrTimeout            = errors.New("operation timed out")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrIndexNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrCatalogUnavailable), errors.Is(err, ErrCacheUnavailable), errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus adapts a core pkg/status.Status into an AppError suitable for
// an HTTP response, used at the boundary where RunQuery's result crosses
// into the query server's handler.
func FromStatus(kind string, message string) *AppError {
	switch kind {
	case "Syntax":
		return New(ErrInvalidInput, http.StatusBadRequest, message)
	case "IO":
		return New(ErrIndexNotLoaded, http.StatusServiceUnavailable, message)
	default:
		return New(ErrInternal, http.StatusInternalServerError, message)
	}
}
