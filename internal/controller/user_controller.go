package controller

import (
	"promptly-be/internal/dto"
	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
}

type userController struct {
	service   service.IUserService
	jwtSecret []byte
}

func NewUserController(service service.IUserService, jwtSecret []byte) IUserController {
	return &userController{service: service, jwtSecret: jwtSecret}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.service.GetOrCreateProfile(ctx.UserContext(), userId, serverutils.Email(ctx))
	if err != nil {
		return toAppError(err, "Failed to fetch user profile")
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile retrieved", res).ForUser(userId))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), userId, serverutils.Email(ctx), &req)
	if err != nil {
		return toAppError(err, "Failed to update user profile")
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile updated successfully", res).ForUser(userId))
}
