package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"promptly-be/internal/dto"
	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/pkg/mailer"
	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/specification"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	CreateSignIn(ctx context.Context, email string) (*dto.AttemptResponse, error)
	CreateSignUp(ctx context.Context, email string) (*dto.AttemptResponse, error)
	Prepare(ctx context.Context, attemptId string) (*dto.AttemptResponse, error)
	Attempt(ctx context.Context, attemptId, code string) (*dto.AttemptResultResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	attempts     contract.AttemptStore
	emailService mailer.IEmailService
	sessions     *sessionIssuer
	settings     AuthSettings
	logger       logger.ILogger
	now          func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	attempts contract.AttemptStore,
	emailService mailer.IEmailService,
	eventPublisher events.Publisher,
	settings AuthSettings,
	log logger.ILogger,
) IAuthService {
	return newAuthService(uowFactory, attempts, emailService, eventPublisher, settings, log, time.Now)
}

func newAuthService(
	uowFactory unitofwork.RepositoryFactory,
	attempts contract.AttemptStore,
	emailService mailer.IEmailService,
	eventPublisher events.Publisher,
	settings AuthSettings,
	log logger.ILogger,
	now func() time.Time,
) *authService {
	return &authService{
		uowFactory:   uowFactory,
		attempts:     attempts,
		emailService: emailService,
		sessions: &sessionIssuer{
			uowFactory:     uowFactory,
			eventPublisher: eventPublisher,
			settings:       settings,
			logger:         log,
			now:            now,
		},
		settings: settings,
		logger:   log,
		now:      now,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

// CreateSignIn starts a sign-in for an email that already has an account.
func (s *authService) CreateSignIn(ctx context.Context, email string) (*dto.AttemptResponse, error) {
	email = normalizeEmail(email)
	account, err := s.uowFactory.NewUnitOfWork(ctx).AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, ErrIdentifierNotFound
	}
	return s.startAttempt(ctx, entity.AttemptKindSignIn, email)
}

func (s *authService) CreateSignUp(ctx context.Context, email string) (*dto.AttemptResponse, error) {
	email = normalizeEmail(email)
	account, err := s.uowFactory.NewUnitOfWork(ctx).AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account != nil {
		return nil, ErrIdentifierExists
	}
	return s.startAttempt(ctx, entity.AttemptKindSignUp, email)
}

func (s *authService) startAttempt(ctx context.Context, kind entity.AttemptKind, email string) (*dto.AttemptResponse, error) {
	now := s.now()
	attempt := &entity.AuthAttempt{
		Id:        uuid.NewString(),
		Kind:      kind,
		Email:     email,
		Status:    entity.AttemptStatusPending,
		ExpiresAt: now.Add(s.settings.AttemptTTL),
		CreatedAt: now,
	}
	if err := s.attempts.Save(ctx, attempt, s.settings.AttemptTTL); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return toAttemptResponse(attempt), nil
}

func (s *authService) load(ctx context.Context, attemptId string) (*entity.AuthAttempt, error) {
	attempt, err := s.attempts.Get(ctx, attemptId)
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if attempt == nil || attempt.Expired(s.now()) || attempt.Kind == entity.AttemptKindOAuth {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// Prepare issues a fresh code for the attempt and emails it. Calling it again
// replaces the previous code and resets the failure counter.
func (s *authService) Prepare(ctx context.Context, attemptId string) (*dto.AttemptResponse, error) {
	attempt, err := s.load(ctx, attemptId)
	if err != nil {
		return nil, err
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash code: %w", err)
	}

	attempt.CodeHash = string(hash)
	attempt.Status = entity.AttemptStatusPrepared
	attempt.FailedTries = 0
	if err := s.attempts.Save(ctx, attempt, attempt.ExpiresAt.Sub(s.now())); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	if err := s.emailService.SendVerificationCode(attempt.Email, code); err != nil {
		s.logger.Error("AUTH", "Failed to send verification code", map[string]interface{}{"attempt_id": attempt.Id, "error": err})
		return nil, fmt.Errorf("send code: %w", err)
	}
	return toAttemptResponse(attempt), nil
}

func (s *authService) Attempt(ctx context.Context, attemptId, code string) (*dto.AttemptResultResponse, error) {
	attempt, err := s.load(ctx, attemptId)
	if err != nil {
		return nil, err
	}
	if attempt.Status != entity.AttemptStatusPrepared || attempt.CodeHash == "" {
		return nil, ErrAttemptNotPrepared
	}

	if bcrypt.CompareHashAndPassword([]byte(attempt.CodeHash), []byte(code)) != nil {
		attempt.FailedTries++
		if attempt.FailedTries >= s.settings.MaxCodeAttempts {
			if err := s.attempts.Delete(ctx, attempt.Id); err != nil {
				s.logger.Warn("AUTH", "Failed to drop exhausted attempt", map[string]interface{}{"attempt_id": attempt.Id, "error": err.Error()})
			}
			return nil, ErrTooManyAttempts
		}
		if err := s.attempts.Save(ctx, attempt, attempt.ExpiresAt.Sub(s.now())); err != nil {
			return nil, fmt.Errorf("save attempt: %w", err)
		}
		return nil, ErrInvalidCode
	}

	account, token, err := s.sessions.issue(ctx, attempt.Email, nil)
	if err != nil {
		return nil, err
	}

	if err := s.attempts.Delete(ctx, attempt.Id); err != nil {
		s.logger.Warn("AUTH", "Failed to drop completed attempt", map[string]interface{}{"attempt_id": attempt.Id, "error": err.Error()})
	}

	return &dto.AttemptResultResponse{
		Status:       string(entity.AttemptStatusComplete),
		SessionToken: token,
		UserId:       account.Id.String(),
	}, nil
}

func toAttemptResponse(a *entity.AuthAttempt) *dto.AttemptResponse {
	return &dto.AttemptResponse{
		Id:       a.Id,
		Kind:     string(a.Kind),
		Email:    a.Email,
		Status:   string(a.Status),
		NextStep: a.NextStep(),
	}
}
