package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/pkg/serverutils"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"

	"github.com/google/uuid"
)

// AuthSettings carries the knobs shared by the code and OAuth sign-in flows.
type AuthSettings struct {
	JwtSecret       []byte
	SessionTTL      time.Duration
	AttemptTTL      time.Duration
	MaxCodeAttempts int
}

// sessionIssuer turns a verified email into an account row and a signed
// session token. The token subject is the account id; the profile service
// keys profiles by that subject.
type sessionIssuer struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	settings       AuthSettings
	logger         logger.ILogger
	now            func() time.Time
}

type providerIdentity struct {
	Name   string
	UserId string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *sessionIssuer) issue(ctx context.Context, email string, provider *providerIdentity) (*entity.Account, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}
	defer uow.Rollback()

	now := s.now()
	repo := uow.AccountRepository()

	var account *entity.Account
	linked := false
	if provider != nil {
		link, err := repo.FindProvider(ctx, specification.ByProvider{Name: provider.Name, UserID: provider.UserId})
		if err != nil {
			return nil, "", fmt.Errorf("find provider: %w", err)
		}
		if link != nil {
			linked = true
			account, err = repo.FindOne(ctx, specification.ByID{ID: link.AccountId})
			if err != nil {
				return nil, "", fmt.Errorf("find account: %w", err)
			}
		}
	}

	if account == nil {
		found, err := repo.FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return nil, "", fmt.Errorf("find account: %w", err)
		}
		account = found
	}

	created := false
	if account == nil {
		account = &entity.Account{
			Id:              uuid.New(),
			Email:           email,
			EmailVerifiedAt: &now,
		}
		if err := repo.Create(ctx, account); err != nil {
			return nil, "", fmt.Errorf("create account: %w", err)
		}
		created = true
	} else if account.EmailVerifiedAt == nil {
		account.EmailVerifiedAt = &now
		if err := repo.Update(ctx, account); err != nil {
			return nil, "", fmt.Errorf("verify account: %w", err)
		}
	}

	if provider != nil && !linked {
		if err := repo.SaveProvider(ctx, &entity.AccountProvider{
			Id:             uuid.New(),
			AccountId:      account.Id,
			ProviderName:   provider.Name,
			ProviderUserId: provider.UserId,
		}); err != nil {
			return nil, "", fmt.Errorf("save provider: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, "", err
	}

	if created {
		s.logger.Info("AUTH", "Account created", map[string]interface{}{"account_id": account.Id.String()})
		if s.eventPublisher != nil {
			evt := events.New(events.AccountCreated, map[string]interface{}{"account_id": account.Id.String()})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Warn("AUTH", "Failed to publish event", map[string]interface{}{"event": evt.EventType(), "error": err.Error()})
			}
		}
	}

	token, err := serverutils.IssueSessionToken(s.settings.JwtSecret, account.Id.String(), account.Email, s.settings.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}
	return account, token, nil
}
