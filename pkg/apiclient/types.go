package apiclient

import (
	"encoding/json"
	"time"
)

// Envelope is the success wrapper every backend endpoint returns.
type Envelope[T any] struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Data    T      `json:"data"`
}

type ErrorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type Profile struct {
	ID               string    `json:"id"`
	ExternalID       string    `json:"clerkUserId"`
	Email            string    `json:"email,omitempty"`
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

// ProfileUpdate is a partial profile. Nil fields are left out of the request
// and therefore left untouched by the backend.
type ProfileUpdate struct {
	Name             *string  `json:"name,omitempty"`
	Age              *int     `json:"age,omitempty"`
	Gender           *string  `json:"gender,omitempty"`
	Orientation      []string `json:"orientation,omitempty"`
	SelectedVibes    []string `json:"selectedVibes,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	UniqueInterest   *string  `json:"uniqueInterest,omitempty"`
	ProfileCompleted *bool    `json:"profileCompleted,omitempty"`
}

type PromptType string

const (
	PromptTypeGenerated   PromptType = "GENERATED"
	PromptTypeUserWritten PromptType = "USER_WRITTEN"
	PromptTypeEdited      PromptType = "EDITED"
)

type Prompt struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Category     string      `json:"category"`
	ResponseText string      `json:"responseText"`
	AIGenerated  bool        `json:"aiGenerated"`
	Status       string      `json:"status"`
	PromptType   PromptType  `json:"promptType,omitempty"`
	Evaluation   *Evaluation `json:"evaluation,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

type SavePromptRequest struct {
	Category     string     `json:"category"`
	ResponseText string     `json:"responseText"`
	PromptType   PromptType `json:"promptType"`
}

type UpdatePromptRequest struct {
	ResponseText string `json:"responseText"`
}

type UsageRecordRequest struct {
	PromptID string `json:"promptId"`
}

type UsageRecord struct {
	ID        string    `json:"id"`
	PromptID  string    `json:"promptId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type SuggestionRequest struct {
	Category    string   `json:"category"`
	Tones       []string `json:"tones"`
	Interests   []string `json:"interests"`
	UniqueTrait string   `json:"uniqueTrait"`
	Count       int      `json:"count,omitempty"`
}

type Suggestion struct {
	Category     string `json:"category"`
	ResponseText string `json:"responseText"`
}

type ReviseRequest struct {
	Category     string `json:"category"`
	ResponseText string `json:"responseText"`
	Feedback     string `json:"feedback,omitempty"`
}

type EvaluateRequest struct {
	Category     string `json:"category"`
	ResponseText string `json:"responseText"`
}

type EvaluationNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Evaluation struct {
	Score       string           `json:"score"`
	Label       string           `json:"label"`
	Suggestions []EvaluationNote `json:"suggestions"`
}

// Identity provider wire types.

type AttemptKind string

const (
	AttemptSignIn AttemptKind = "signIn"
	AttemptSignUp AttemptKind = "signUp"
)

type Attempt struct {
	ID       string      `json:"id"`
	Kind     AttemptKind `json:"kind"`
	Email    string      `json:"email"`
	Status   string      `json:"status"`
	NextStep string      `json:"nextStep"`
}

type AttemptResult struct {
	Status       string `json:"status"`
	SessionToken string `json:"sessionToken,omitempty"`
	UserID       string `json:"userId,omitempty"`
}

type OAuthStart struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// Raw is an uninterpreted AI payload forwarded to or from the backend.
type Raw = json.RawMessage
