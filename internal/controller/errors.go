package controller

import (
	"errors"
	"strings"

	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// toAppError maps service sentinels onto HTTP answers. Anything unknown is a
// 500 carrying the handler's fallback message.
func toAppError(err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return serverutils.NotFound("User not found")
	case errors.Is(err, service.ErrPromptNotFound):
		return serverutils.NotFound("Prompt not found")
	case errors.Is(err, service.ErrInvalidInput):
		return serverutils.BadRequest(strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": "))
	case errors.Is(err, service.ErrIdentifierNotFound):
		return serverutils.NotFound("identifier not found")
	case errors.Is(err, service.ErrIdentifierExists):
		return serverutils.BadRequest("That email address is taken. Please try another.")
	case errors.Is(err, service.ErrAttemptNotFound):
		return serverutils.NotFound("Sign-in attempt not found or expired")
	case errors.Is(err, service.ErrAttemptNotPrepared):
		return serverutils.BadRequest("Request a verification code first")
	case errors.Is(err, service.ErrInvalidCode):
		return serverutils.BadRequest("Invalid verification code")
	case errors.Is(err, service.ErrTooManyAttempts):
		return serverutils.BadRequest("Too many incorrect codes. Please start again.")
	case errors.Is(err, service.ErrInvalidState):
		return serverutils.BadRequest("Invalid or expired sign-in link")
	case errors.Is(err, service.ErrUnsupportedProvider):
		return serverutils.BadRequest("Unsupported provider")
	case errors.Is(err, service.ErrEmailNotVerified):
		return serverutils.BadRequest("Your Google email address is not verified")
	case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrAIMalformed):
		return serverutils.NewAppError(fiber.StatusBadGateway, "AI provider unavailable", err)
	}
	return serverutils.Internal(fallback, err)
}

func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	return nil
}
