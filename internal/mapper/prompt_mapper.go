package mapper

import (
	"promptly-be/internal/entity"
	"promptly-be/internal/model"
)

type PromptMapper struct{}

func NewPromptMapper() *PromptMapper {
	return &PromptMapper{}
}

func (m *PromptMapper) ToEntity(p *model.Prompt) *entity.Prompt {
	if p == nil {
		return nil
	}
	return &entity.Prompt{
		Id:           p.Id,
		UserId:       p.UserId,
		Category:     p.Category,
		ResponseText: p.ResponseText,
		AiGenerated:  p.AiGenerated,
		PromptType:   entity.PromptType(p.PromptType),
		Status:       entity.PromptStatus(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PromptMapper) ToModel(p *entity.Prompt) *model.Prompt {
	if p == nil {
		return nil
	}
	return &model.Prompt{
		Id:           p.Id,
		UserId:       p.UserId,
		Category:     p.Category,
		ResponseText: p.ResponseText,
		AiGenerated:  p.AiGenerated,
		PromptType:   string(p.PromptType),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PromptMapper) ToEntities(prompts []*model.Prompt) []*entity.Prompt {
	entities := make([]*entity.Prompt, len(prompts))
	for i, p := range prompts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PromptMapper) UsageToEntity(r *model.PromptUsageRecord) *entity.PromptUsageRecord {
	if r == nil {
		return nil
	}
	return &entity.PromptUsageRecord{
		Id:        r.Id,
		PromptId:  r.PromptId,
		UserId:    r.UserId,
		CreatedAt: r.CreatedAt,
	}
}

func (m *PromptMapper) UsageToModel(r *entity.PromptUsageRecord) *model.PromptUsageRecord {
	if r == nil {
		return nil
	}
	return &model.PromptUsageRecord{
		Id:        r.Id,
		PromptId:  r.PromptId,
		UserId:    r.UserId,
		CreatedAt: r.CreatedAt,
	}
}
