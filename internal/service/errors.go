package service

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrPromptNotFound = errors.New("prompt not found")
	ErrInvalidInput   = errors.New("invalid input")

	ErrIdentifierNotFound  = errors.New("identifier not found")
	ErrIdentifierExists    = errors.New("identifier already exists")
	ErrAttemptNotFound     = errors.New("attempt not found or expired")
	ErrAttemptNotPrepared  = errors.New("verification code was not requested")
	ErrInvalidCode         = errors.New("invalid verification code")
	ErrTooManyAttempts     = errors.New("too many incorrect codes")
	ErrInvalidState        = errors.New("invalid or expired oauth state")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrEmailNotVerified    = errors.New("provider email is not verified")

	ErrAIUnavailable = errors.New("AI provider unavailable")
	ErrAIMalformed   = errors.New("AI provider returned an unusable answer")
)
