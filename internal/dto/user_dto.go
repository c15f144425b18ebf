package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id               uuid.UUID `json:"id"`
	ExternalId       string    `json:"clerkUserId"`
	Email            *string   `json:"email,omitempty"`
	Name             *string   `json:"name,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Gender           *string   `json:"gender,omitempty"`
	Orientation      []string  `json:"orientation,omitempty"`
	SelectedVibes    []string  `json:"selectedVibes,omitempty"`
	Interests        []string  `json:"interests,omitempty"`
	UniqueInterest   *string   `json:"uniqueInterest,omitempty"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UpdateProfileRequest is a partial update: only non-nil fields are written.
type UpdateProfileRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Age              *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Gender           *string  `json:"gender" validate:"omitempty,oneof=Male Female Non-binary"`
	Orientation      []string `json:"orientation" validate:"omitempty,dive,oneof=Male Female Non-binary"`
	SelectedVibes    []string `json:"selectedVibes" validate:"omitempty,dive,min=1,max=50"`
	Interests        []string `json:"interests" validate:"omitempty,max=50,dive,min=1,max=100"`
	UniqueInterest   *string  `json:"uniqueInterest" validate:"omitempty,max=500"`
	ProfileCompleted *bool    `json:"profileCompleted"`
}

func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil && r.Age == nil && r.Gender == nil && r.Orientation == nil &&
		r.SelectedVibes == nil && r.Interests == nil && r.UniqueInterest == nil && r.ProfileCompleted == nil
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}
