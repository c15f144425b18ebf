package dto

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type AttemptResponse struct {
	Id       string `json:"id"`
	Kind     string `json:"kind"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	NextStep string `json:"nextStep"`
}

type AttemptResultResponse struct {
	Status       string `json:"status"`
	SessionToken string `json:"sessionToken,omitempty"`
	UserId       string `json:"userId,omitempty"`
}

type OAuthStartResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type OAuthCallbackQuery struct {
	State string `query:"state" validate:"required"`
	Code  string `query:"code" validate:"required"`
}
