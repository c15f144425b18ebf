package model

import (
	"time"

	"github.com/google/uuid"
)

type Prompt struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Category     string    `gorm:"type:varchar(255);not null"`
	ResponseText string    `gorm:"type:text;not null"`
	AiGenerated  bool      `gorm:"default:false"`
	PromptType   string    `gorm:"type:varchar(20);not null;default:'GENERATED'"`
	Status       string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    *time.Time
}

func (Prompt) TableName() string {
	return "prompts"
}

type PromptUsageRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PromptId  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PromptUsageRecord) TableName() string {
	return "prompt_usage_records"
}
