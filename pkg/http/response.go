package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes the signage API success envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// MessageResponse writes a failure envelope with the given status and message.
func MessageResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

// BadRequestResponse writes a 400 envelope carrying validation detail.
func BadRequestResponse(c echo.Context, detail interface{}) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: http.StatusText(http.StatusBadRequest),
		Data:    detail,
	})
}

// InternalServerErrorResponse writes a generic 500 envelope.
func InternalServerErrorResponse(c echo.Context) error {
	return MessageResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return MessageResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c)
}
