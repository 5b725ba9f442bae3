package http

import (
	"errors"
	"net/http"

	"laundryops/internal/core/application/usecases/commands"
	"laundryops/internal/core/domain/model/order"
	"laundryops/internal/core/domain/model/refund"
	"laundryops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps domain and application errors onto HTTP status codes.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, refund.ErrInvalidTransition),
		errors.Is(err, commands.ErrNoEscalationTarget):
		status = http.StatusConflict
	case errors.Is(err, refund.ErrLimitExceeded):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// badRequest returns a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
