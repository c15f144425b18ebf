package controller

import (
	"promptly-be/internal/dto"
	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignIn(ctx *fiber.Ctx) error
	SignUp(ctx *fiber.Ctx) error
	Prepare(ctx *fiber.Ctx) error
	Attempt(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/sign-in", c.SignIn)
	h.Post("/sign-up", c.SignUp)
	h.Post("/attempts/:id/prepare", c.Prepare)
	h.Post("/attempts/:id/attempt", c.Attempt)
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSignIn(ctx.UserContext(), req.Email)
	if err != nil {
		return toAppError(err, "Failed to start sign-in")
	}
	return ctx.JSON(serverutils.SuccessResponse("Sign-in started", res))
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSignUp(ctx.UserContext(), req.Email)
	if err != nil {
		return toAppError(err, "Failed to start sign-up")
	}
	return ctx.JSON(serverutils.SuccessResponse("Sign-up started", res))
}

func (c *authController) Prepare(ctx *fiber.Ctx) error {
	res, err := c.service.Prepare(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return toAppError(err, "Failed to send verification code")
	}
	return ctx.JSON(serverutils.SuccessResponse("Verification code sent", res))
}

func (c *authController) Attempt(ctx *fiber.Ctx) error {
	var req dto.CodeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Attempt(ctx.UserContext(), ctx.Params("id"), req.Code)
	if err != nil {
		return toAppError(err, "Failed to verify code")
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in", res).ForUser(res.UserId))
}
