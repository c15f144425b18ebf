package dto

type SuggestionRequest struct {
	Category    string   `json:"category" validate:"required,max=200"`
	Tones       []string `json:"tones" validate:"required,min=1,dive,min=1,max=50"`
	Interests   []string `json:"interests" validate:"omitempty,dive,max=100"`
	UniqueTrait string   `json:"uniqueTrait" validate:"omitempty,max=500"`
	Count       int      `json:"count" validate:"omitempty,min=1,max=5"`
}

type SuggestionResponse struct {
	Category     string `json:"category"`
	ResponseText string `json:"responseText"`
}

type ReviseRequest struct {
	Category     string `json:"category" validate:"required,max=200"`
	ResponseText string `json:"responseText" validate:"required,max=2000"`
	Feedback     string `json:"feedback" validate:"omitempty,max=500"`
}

type EvaluateRequest struct {
	Category     string `json:"category" validate:"required,max=200"`
	ResponseText string `json:"responseText" validate:"required,max=2000"`
}

type EvaluationNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type EvaluationResponse struct {
	Score       string           `json:"score"`
	Label       string           `json:"label"`
	Suggestions []EvaluationNote `json:"suggestions"`
}
