package serverutils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status a handler wants to answer with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// ErrorHandler renders every error returned from a handler as {error:true, message}.
// Internal causes are logged through onInternal and never sent to the client.
func ErrorHandler(onInternal func(ctx *fiber.Ctx, err error)) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := http.StatusText(code)

		var appErr *AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code = appErr.Code
			message = appErr.Message
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
			if code == fiber.StatusNotFound {
				message = "Route not found"
			}
		}

		if code >= fiber.StatusInternalServerError && onInternal != nil {
			onInternal(ctx, err)
		}
		return ctx.Status(code).JSON(ErrorResponse(message))
	}
}
