package http

import (
	"errors"
	"net/http"

	"settlement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Problem is the uniform error body returned by every endpoint.
type Problem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps the application error taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict 409, everything else 500.
// Validation and conflict messages are surfaced verbatim so the caller can
// correct the input; internal failures are not leaked.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Problem{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Problem{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, Problem{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		ctx.Logger().Error(err)
		return ctx.JSON(http.StatusInternalServerError, Problem{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Problem{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
