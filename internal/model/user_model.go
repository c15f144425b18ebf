package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id               uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId       string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email            *string                     `gorm:"type:varchar(255)"`
	Name             *string                     `gorm:"type:varchar(255)"`
	Age              *int                        `gorm:"type:int"`
	Gender           *string                     `gorm:"type:varchar(50)"`
	Orientation      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SelectedVibes    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Interests        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	UniqueInterest   *string                     `gorm:"type:text"`
	ProfileCompleted bool                        `gorm:"default:false"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt        time.Time                   `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type Account struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

type AccountProvider struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderName   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_user"`
	ProviderUserId string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_provider_user"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (AccountProvider) TableName() string {
	return "account_providers"
}
