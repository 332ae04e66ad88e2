package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const storageFailureMessage = "storage is temporarily unavailable"

func statusOf(kind commands.ErrorKind) int {
	switch kind {
	case commands.KindBadRequest:
		return http.StatusBadRequest
	case commands.KindNotFound:
		return http.StatusNotFound
	case commands.KindInvalidTransition:
		return http.StatusConflict
	case commands.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}

func kindOf(status int) commands.ErrorKind {
	switch status {
	case http.StatusNotFound:
		return commands.KindNotFound
	case http.StatusConflict:
		return commands.KindInvalidTransition
	case http.StatusUnprocessableEntity:
		return commands.KindInsufficientStock
	}
	if status >= http.StatusInternalServerError {
		return commands.KindStorageFailure
	}
	return commands.KindBadRequest
}

// errorHandler renders handler and framework errors as ErrorResponse.
// Storage failures are logged with their cause and answered with a generic message.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := renderError(err)
		if body.Kind == string(commands.KindStorageFailure) {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

func renderError(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := kindOf(he.Code)
		message := fmt.Sprint(he.Message)
		if kind == commands.KindStorageFailure {
			message = storageFailureMessage
		}
		return he.Code, ErrorResponse{Kind: string(kind), Message: message}
	}

	kind := commands.Classify(err)
	message := err.Error()
	if kind == commands.KindStorageFailure {
		message = storageFailureMessage
	}
	return statusOf(kind), ErrorResponse{Kind: string(kind), Message: message}
}
