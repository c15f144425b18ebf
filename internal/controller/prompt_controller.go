package controller

import (
	"strings"

	"promptly-be/internal/dto"
	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPromptController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	ListUserPrompts(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	RecordUsage(ctx *fiber.Ctx) error

	// AI
	GenerateSuggestions(ctx *fiber.Ctx) error
	ReviseSuggestion(ctx *fiber.Ctx) error
	EvaluateCustom(ctx *fiber.Ctx) error
	ReviseCustom(ctx *fiber.Ctx) error
}

type promptController struct {
	promptService service.IPromptService
	aiService     service.IAIService
	jwtSecret     []byte
}

func NewPromptController(promptService service.IPromptService, aiService service.IAIService, jwtSecret []byte) IPromptController {
	return &promptController{
		promptService: promptService,
		aiService:     aiService,
		jwtSecret:     jwtSecret,
	}
}

func (c *promptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prompts")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("/generate", c.Generate)
	h.Get("/user", c.ListUserPrompts)
	h.Post("/usage_record", c.RecordUsage)

	// AI
	h.Post("/generate-suggestions", c.GenerateSuggestions)
	h.Post("/revise-suggestion", c.ReviseSuggestion)
	h.Post("/evaluate-custom", c.EvaluateCustom)
	h.Post("/revise-custom", c.ReviseCustom)

	h.Put("/:id", c.Update)
}

func (c *promptController) Generate(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.CreatePromptRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.ResponseText) == "" {
		return serverutils.BadRequest("Category and response text are required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promptService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return toAppError(err, "Failed to generate prompt")
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt generated and saved successfully", res).ForUser(userId))
}

func (c *promptController) ListUserPrompts(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var query dto.ListPromptsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.promptService.ListActive(ctx.UserContext(), userId, query)
	if err != nil {
		return toAppError(err, "Failed to fetch user prompts")
	}
	return ctx.JSON(serverutils.SuccessResponse("User prompts retrieved successfully", res).ForUser(userId))
}

func (c *promptController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdatePromptRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.ResponseText) == "" {
		return serverutils.BadRequest("Response text is required")
	}

	promptId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NotFound("Prompt not found")
	}

	res, err := c.promptService.Update(ctx.UserContext(), userId, promptId, &req)
	if err != nil {
		return toAppError(err, "Failed to update prompt")
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt updated successfully", res).ForUser(userId))
}

func (c *promptController) RecordUsage(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UsageRecordRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promptService.RecordUsage(ctx.UserContext(), userId, uuid.MustParse(req.PromptId))
	if err != nil {
		return toAppError(err, "Failed to record prompt usage")
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt usage recorded", res).ForUser(userId))
}

func (c *promptController) GenerateSuggestions(ctx *fiber.Ctx) error {
	var req dto.SuggestionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.GenerateSuggestions(ctx.UserContext(), &req)
	if err != nil {
		return toAppError(err, "Failed to generate suggestions")
	}
	return ctx.JSON(serverutils.SuccessResponse("Suggestions generated", res).ForUser(serverutils.UserId(ctx)))
}

func (c *promptController) ReviseSuggestion(ctx *fiber.Ctx) error {
	var req dto.ReviseRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.ReviseSuggestion(ctx.UserContext(), &req)
	if err != nil {
		return toAppError(err, "Failed to revise suggestion")
	}
	return ctx.JSON(serverutils.SuccessResponse("Suggestion revised", res).ForUser(serverutils.UserId(ctx)))
}

func (c *promptController) EvaluateCustom(ctx *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.EvaluateCustom(ctx.UserContext(), &req)
	if err != nil {
		return toAppError(err, "Failed to evaluate prompt")
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt evaluated", res).ForUser(serverutils.UserId(ctx)))
}

func (c *promptController) ReviseCustom(ctx *fiber.Ctx) error {
	var req dto.ReviseRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.ReviseCustom(ctx.UserContext(), &req)
	if err != nil {
		return toAppError(err, "Failed to revise prompt")
	}
	return ctx.JSON(serverutils.SuccessResponse("Prompt revised", res).ForUser(serverutils.UserId(ctx)))
}
