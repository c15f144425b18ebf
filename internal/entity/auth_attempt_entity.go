package entity

import "time"

type AttemptKind string
type AttemptStatus string

const (
	AttemptKindSignIn AttemptKind = "signIn"
	AttemptKindSignUp AttemptKind = "signUp"
	AttemptKindOAuth  AttemptKind = "oauth"

	AttemptStatusPending  AttemptStatus = "pending"
	AttemptStatusPrepared AttemptStatus = "prepared"
	AttemptStatusComplete AttemptStatus = "complete"
)

// AuthAttempt is a pending sign-in, sign-up or OAuth round trip. It lives in
// the attempt store only until it completes or expires.
type AuthAttempt struct {
	Id          string        `json:"id"`
	Kind        AttemptKind   `json:"kind"`
	Email       string        `json:"email"`
	Status      AttemptStatus `json:"status"`
	CodeHash    string        `json:"codeHash,omitempty"`
	FailedTries int           `json:"failedTries"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (a *AuthAttempt) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

// NextStep names what the client has to do before the attempt can complete.
func (a *AuthAttempt) NextStep() string {
	switch {
	case a.Status == AttemptStatusComplete:
		return ""
	case a.Kind == AttemptKindSignUp:
		return "email_verification"
	case a.Kind == AttemptKindOAuth:
		return "oauth_callback"
	}
	return "first_factor"
}
