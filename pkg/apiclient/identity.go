package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrIdentifierNotFound is returned by CreateSignIn when no account
	// exists for the email. Callers fall back to sign-up.
	ErrIdentifierNotFound = errors.New("form_identifier_not_found")
	ErrNotSignedIn        = errors.New("no active session")
)

const StatusComplete = "complete"

// BackendIdentity is the identity provider backed by the service's own
// /auth endpoints. It keeps the active session token in memory and serves it
// to Client as a TokenSource.
type BackendIdentity struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
	user  string
}

func NewBackendIdentity(baseURL string, opts ...Option) *BackendIdentity {
	// Reuse Client options so callers configure both the same way.
	c := New(baseURL, nil, opts...)
	return &BackendIdentity{
		baseURL: c.baseURL,
		http:    c.http,
		logger:  c.logger,
	}
}

func (b *BackendIdentity) post(ctx context.Context, path string, body any, out any) error {
	resp, err := send(ctx, b.http, b.baseURL+path, http.MethodPost, nil, body)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (b *BackendIdentity) get(ctx context.Context, path string, out any) error {
	resp, err := send(ctx, b.http, b.baseURL+path, http.MethodGet, nil, nil)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

type emailRequest struct {
	Email string `json:"email"`
}

type codeRequest struct {
	Code string `json:"code"`
}

func (b *BackendIdentity) CreateSignIn(ctx context.Context, email string) (*Attempt, error) {
	var env Envelope[Attempt]
	if err := b.post(ctx, "/auth/sign-in", emailRequest{Email: email}, &env); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrIdentifierNotFound, err)
		}
		return nil, err
	}
	return &env.Data, nil
}

func (b *BackendIdentity) CreateSignUp(ctx context.Context, email string) (*Attempt, error) {
	var env Envelope[Attempt]
	if err := b.post(ctx, "/auth/sign-up", emailRequest{Email: email}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Sign-in (first factor) and sign-up (email verification) attempts share the
// same code endpoints on the backend.

func (b *BackendIdentity) PrepareFirstFactor(ctx context.Context, attemptID string) (*Attempt, error) {
	return b.prepare(ctx, attemptID)
}

func (b *BackendIdentity) PrepareEmailVerification(ctx context.Context, attemptID string) (*Attempt, error) {
	return b.prepare(ctx, attemptID)
}

func (b *BackendIdentity) AttemptFirstFactor(ctx context.Context, attemptID, code string) (*AttemptResult, error) {
	return b.attempt(ctx, attemptID, code)
}

func (b *BackendIdentity) AttemptEmailVerification(ctx context.Context, attemptID, code string) (*AttemptResult, error) {
	return b.attempt(ctx, attemptID, code)
}

func (b *BackendIdentity) prepare(ctx context.Context, attemptID string) (*Attempt, error) {
	var env Envelope[Attempt]
	path := "/auth/attempts/" + url.PathEscape(attemptID) + "/prepare"
	if err := b.post(ctx, path, struct{}{}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (b *BackendIdentity) attempt(ctx context.Context, attemptID, code string) (*AttemptResult, error) {
	var env Envelope[AttemptResult]
	path := "/auth/attempts/" + url.PathEscape(attemptID) + "/attempt"
	if err := b.post(ctx, path, codeRequest{Code: strings.TrimSpace(code)}, &env); err != nil {
		return nil, err
	}
	b.activate(env.Data)
	return &env.Data, nil
}

// StartOAuth returns the provider URL the user has to visit.
func (b *BackendIdentity) StartOAuth(ctx context.Context) (*OAuthStart, error) {
	var env Envelope[OAuthStart]
	if err := b.get(ctx, "/auth/oauth/google", &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (b *BackendIdentity) CompleteOAuth(ctx context.Context, state, code string) (*AttemptResult, error) {
	q := url.Values{}
	q.Set("state", state)
	q.Set("code", code)

	var env Envelope[AttemptResult]
	if err := b.get(ctx, "/auth/oauth/google/callback?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	b.activate(env.Data)
	return &env.Data, nil
}

func (b *BackendIdentity) activate(res AttemptResult) {
	if res.Status != StatusComplete || res.SessionToken == "" {
		return
	}
	b.mu.Lock()
	b.token = res.SessionToken
	b.user = res.UserID
	b.mu.Unlock()
	b.logger.Info("session activated", zap.String("user_id", res.UserID), zap.Time("at", time.Now()))
}

// SetSession activates a session obtained out of band, e.g. a token passed on
// the command line.
func (b *BackendIdentity) SetSession(token string) {
	b.activate(AttemptResult{Status: StatusComplete, SessionToken: token})
}

func (b *BackendIdentity) Token(context.Context) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.token == "" {
		return "", ErrNotSignedIn
	}
	return b.token, nil
}

func (b *BackendIdentity) IsSignedIn() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token != ""
}

func (b *BackendIdentity) UserID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.user
}

func (b *BackendIdentity) SignOut(context.Context) error {
	b.mu.Lock()
	b.token = ""
	b.user = ""
	b.mu.Unlock()
	b.logger.Info("session cleared")
	return nil
}
