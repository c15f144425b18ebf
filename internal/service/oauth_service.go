package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"promptly-be/internal/dto"
	"promptly-be/internal/entity"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/pkg/events"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type GoogleSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type IOAuthService interface {
	Start(ctx context.Context, provider string) (*dto.OAuthStartResponse, error)
	Complete(ctx context.Context, provider, state, code string) (*dto.AttemptResultResponse, error)
}

type oauthService struct {
	attempts    contract.AttemptStore
	googleConf  *oauth2.Config
	userInfoURL string
	sessions    *sessionIssuer
	settings    AuthSettings
	logger      logger.ILogger
	now         func() time.Time
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	attempts contract.AttemptStore,
	eventPublisher events.Publisher,
	googleSettings GoogleSettings,
	settings AuthSettings,
	log logger.ILogger,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     googleSettings.ClientID,
		ClientSecret: googleSettings.ClientSecret,
		RedirectURL:  googleSettings.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		attempts:    attempts,
		googleConf:  conf,
		userInfoURL: googleUserInfoURL,
		sessions: &sessionIssuer{
			uowFactory:     uowFactory,
			eventPublisher: eventPublisher,
			settings:       settings,
			logger:         log,
			now:            time.Now,
		},
		settings: settings,
		logger:   log,
		now:      time.Now,
	}
}

func (s *oauthService) checkProvider(provider string) error {
	if provider != ProviderGoogle || s.googleConf.ClientID == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	return nil
}

// Start returns the consent URL. The state is stored as an oauth attempt and
// is single use.
func (s *oauthService) Start(ctx context.Context, provider string) (*dto.OAuthStartResponse, error) {
	if err := s.checkProvider(provider); err != nil {
		return nil, err
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	now := s.now()
	attempt := &entity.AuthAttempt{
		Id:        state,
		Kind:      entity.AttemptKindOAuth,
		Status:    entity.AttemptStatusPending,
		ExpiresAt: now.Add(s.settings.AttemptTTL),
		CreatedAt: now,
	}
	if err := s.attempts.Save(ctx, attempt, s.settings.AttemptTTL); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	return &dto.OAuthStartResponse{
		URL:   s.googleConf.AuthCodeURL(state),
		State: state,
	}, nil
}

func (s *oauthService) Complete(ctx context.Context, provider, state, code string) (*dto.AttemptResultResponse, error) {
	if err := s.checkProvider(provider); err != nil {
		return nil, err
	}

	attempt, err := s.attempts.Get(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if attempt == nil || attempt.Kind != entity.AttemptKindOAuth || attempt.Expired(s.now()) {
		return nil, ErrInvalidState
	}
	if err := s.attempts.Delete(ctx, state); err != nil {
		return nil, fmt.Errorf("consume state: %w", err)
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.VerifiedEmail || user.Email == "" {
		return nil, ErrEmailNotVerified
	}

	account, sessionToken, err := s.sessions.issue(ctx, normalizeEmail(user.Email), &providerIdentity{
		Name:   provider,
		UserId: user.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("OAUTH", "Signed in with provider", map[string]interface{}{"provider": provider, "account_id": account.Id.String()})
	return &dto.AttemptResultResponse{
		Status:       string(entity.AttemptStatusComplete),
		SessionToken: sessionToken,
		UserId:       account.Id.String(),
	}, nil
}

func (s *oauthService) fetchUser(ctx context.Context, token *oauth2.Token) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.googleConf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed getting user info: status %d", resp.StatusCode)
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &user, nil
}
