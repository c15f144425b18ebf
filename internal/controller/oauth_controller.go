package controller

import (
	"promptly-be/internal/dto"
	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/oauth")
	h.Get("/:provider", c.Start)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Start(ctx *fiber.Ctx) error {
	res, err := c.service.Start(ctx.UserContext(), ctx.Params("provider"))
	if err != nil {
		return toAppError(err, "Failed to start sign-in")
	}
	return ctx.JSON(serverutils.SuccessResponse("Redirect to provider", res))
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	var query dto.OAuthCallbackQuery
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.UserContext(), ctx.Params("provider"), query.State, query.Code)
	if err != nil {
		return toAppError(err, "Failed to complete sign-in")
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in", res).ForUser(res.UserId))
}
