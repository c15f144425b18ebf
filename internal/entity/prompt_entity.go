package entity

import (
	"time"

	"github.com/google/uuid"
)

type PromptType string
type PromptStatus string

const (
	PromptTypeGenerated   PromptType = "GENERATED"
	PromptTypeUserWritten PromptType = "USER_WRITTEN"
	PromptTypeEdited      PromptType = "EDITED"

	PromptStatusActive   PromptStatus = "ACTIVE"
	PromptStatusArchived PromptStatus = "ARCHIVED"
)

func (t PromptType) Valid() bool {
	switch t {
	case PromptTypeGenerated, PromptTypeUserWritten, PromptTypeEdited:
		return true
	}
	return false
}

type Prompt struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Category     string
	ResponseText string
	AiGenerated  bool
	PromptType   PromptType
	Status       PromptStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type PromptUsageRecord struct {
	Id        uuid.UUID
	PromptId  uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}
