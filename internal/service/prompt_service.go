package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"promptly-be/internal/dto"
	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"

	"github.com/google/uuid"
)

type IPromptService interface {
	Create(ctx context.Context, externalId string, req *dto.CreatePromptRequest) (*dto.PromptResponse, error)
	ListActive(ctx context.Context, externalId string, query dto.ListPromptsQuery) ([]*dto.PromptResponse, error)
	Update(ctx context.Context, externalId string, promptId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptResponse, error)
	RecordUsage(ctx context.Context, externalId string, promptId uuid.UUID) (*dto.UsageRecordResponse, error)
}

type promptService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewPromptService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) IPromptService {
	return &promptService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
		now:            time.Now,
	}
}

func (s *promptService) owner(ctx context.Context, uow unitofwork.UnitOfWork, externalId string) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByExternalID{ExternalID: externalId})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create saves a prompt for the caller. Prompt type defaults to GENERATED and
// aiGenerated follows it.
func (s *promptService) Create(ctx context.Context, externalId string, req *dto.CreatePromptRequest) (*dto.PromptResponse, error) {
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.ResponseText) == "" {
		return nil, fmt.Errorf("%w: category and response text are required", ErrInvalidInput)
	}

	promptType := entity.PromptType(req.PromptType)
	if promptType == "" {
		promptType = entity.PromptTypeGenerated
	}
	if !promptType.Valid() {
		return nil, fmt.Errorf("%w: unknown prompt type %q", ErrInvalidInput, req.PromptType)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.owner(ctx, uow, externalId)
	if err != nil {
		return nil, err
	}

	prompt := &entity.Prompt{
		Id:           uuid.New(),
		UserId:       user.Id,
		Category:     req.Category,
		ResponseText: req.ResponseText,
		AiGenerated:  promptType == entity.PromptTypeGenerated,
		PromptType:   promptType,
		Status:       entity.PromptStatusActive,
	}
	if err := uow.PromptRepository().Create(ctx, prompt); err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	s.publish(ctx, events.New(events.PromptSaved, map[string]interface{}{
		"prompt_id":   prompt.Id.String(),
		"user_id":     user.Id.String(),
		"prompt_type": string(prompt.PromptType),
	}))
	return toPromptResponse(prompt), nil
}

func (s *promptService) ListActive(ctx context.Context, externalId string, query dto.ListPromptsQuery) ([]*dto.PromptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.owner(ctx, uow, externalId)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: user.Id},
		specification.ActivePrompts{},
		specification.NewestFirst{},
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	prompts, err := uow.PromptRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	res := make([]*dto.PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		res = append(res, toPromptResponse(p))
	}
	return res, nil
}

// Update replaces the response text of an owned prompt. Any edit marks the
// prompt EDITED.
func (s *promptService) Update(ctx context.Context, externalId string, promptId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptResponse, error) {
	if strings.TrimSpace(req.ResponseText) == "" {
		return nil, fmt.Errorf("%w: response text is required", ErrInvalidInput)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := s.owner(ctx, uow, externalId)
	if err != nil {
		return nil, err
	}

	prompt, err := uow.PromptRepository().FindOne(ctx,
		specification.ByID{ID: promptId},
		specification.UserOwnedBy{UserID: user.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	now := s.now()
	prompt.ResponseText = req.ResponseText
	prompt.PromptType = entity.PromptTypeEdited
	prompt.UpdatedAt = &now

	if err := uow.PromptRepository().Update(ctx, prompt); err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toPromptResponse(prompt), nil
}

func (s *promptService) RecordUsage(ctx context.Context, externalId string, promptId uuid.UUID) (*dto.UsageRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.owner(ctx, uow, externalId)
	if err != nil {
		return nil, err
	}

	prompt, err := uow.PromptRepository().FindOne(ctx,
		specification.ByID{ID: promptId},
		specification.UserOwnedBy{UserID: user.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	record := &entity.PromptUsageRecord{
		Id:       uuid.New(),
		PromptId: prompt.Id,
		UserId:   user.Id,
	}
	if err := uow.PromptUsageRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record usage: %w", err)
	}

	s.publish(ctx, events.New(events.PromptUsed, map[string]interface{}{
		"prompt_id": prompt.Id.String(),
		"user_id":   user.Id.String(),
		"category":  prompt.Category,
	}))

	return &dto.UsageRecordResponse{
		Id:        record.Id,
		PromptId:  record.PromptId,
		UserId:    record.UserId,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *promptService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("PROMPT", "Failed to publish event", map[string]interface{}{"event": evt.EventType(), "error": err.Error()})
	}
}

func toPromptResponse(p *entity.Prompt) *dto.PromptResponse {
	return &dto.PromptResponse{
		Id:           p.Id,
		UserId:       p.UserId,
		Category:     p.Category,
		ResponseText: p.ResponseText,
		AiGenerated:  p.AiGenerated,
		Status:       string(p.Status),
		PromptType:   string(p.PromptType),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
