package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the dating profile row. ExternalId is the identity subject the
// session token was issued for; the row is created lazily on first read.
type User struct {
	Id               uuid.UUID
	ExternalId       string
	Email            *string
	Name             *string
	Age              *int
	Gender           *string
	Orientation      []string
	SelectedVibes    []string
	Interests        []string
	UniqueInterest   *string
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Account is a verified sign-in identity owned by the built-in identity provider.
type Account struct {
	Id              uuid.UUID
	Email           string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AccountProvider struct {
	Id             uuid.UUID
	AccountId      uuid.UUID
	ProviderName   string
	ProviderUserId string
	CreatedAt      time.Time
}
