package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePromptRequest struct {
	Category     string `json:"category"`
	ResponseText string `json:"responseText"`
	PromptType   string `json:"promptType" validate:"omitempty,oneof=GENERATED USER_WRITTEN EDITED"`
}

type UpdatePromptRequest struct {
	ResponseText string `json:"responseText"`
}

type UsageRecordRequest struct {
	PromptId string `json:"promptId" validate:"required,uuid"`
}

type ListPromptsQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type PromptResponse struct {
	Id           uuid.UUID  `json:"id"`
	UserId       uuid.UUID  `json:"userId"`
	Category     string     `json:"category"`
	ResponseText string     `json:"responseText"`
	AiGenerated  bool       `json:"aiGenerated"`
	Status       string     `json:"status"`
	PromptType   string     `json:"promptType"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type UsageRecordResponse struct {
	Id        uuid.UUID `json:"id"`
	PromptId  uuid.UUID `json:"promptId"`
	UserId    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
