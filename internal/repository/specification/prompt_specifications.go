package specification

import (
	"promptly-be/internal/entity"
	"promptly-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivePrompts struct{}

func (s ActivePrompts) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", entity.PromptStatusActive)
}

type ByPromptID struct {
	PromptID uuid.UUID
}

func (s ByPromptID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("prompt_id = ?", s.PromptID)
}

// NewestFirst orders by creation time, newest first.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByCreatedDesc)
}
