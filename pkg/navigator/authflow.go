package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"promptly-be/pkg/apiclient"

	"go.uber.org/zap"
)

// IdentityProvider is the session provider the signed-out flow talks to.
type IdentityProvider interface {
	CreateSignIn(ctx context.Context, email string) (*apiclient.Attempt, error)
	PrepareFirstFactor(ctx context.Context, attemptID string) (*apiclient.Attempt, error)
	AttemptFirstFactor(ctx context.Context, attemptID, code string) (*apiclient.AttemptResult, error)

	CreateSignUp(ctx context.Context, email string) (*apiclient.Attempt, error)
	PrepareEmailVerification(ctx context.Context, attemptID string) (*apiclient.Attempt, error)
	AttemptEmailVerification(ctx context.Context, attemptID, code string) (*apiclient.AttemptResult, error)

	StartOAuth(ctx context.Context) (*apiclient.OAuthStart, error)
	CompleteOAuth(ctx context.Context, state, code string) (*apiclient.AttemptResult, error)

	IsSignedIn() bool
	SignOut(ctx context.Context) error
}

// SessionKind tells a sign-in attempt from a sign-up attempt.
type SessionKind string

const (
	SessionSignIn SessionKind = "signIn"
	SessionSignUp SessionKind = "signUp"
)

// Session is a pending verification. Kind decides which attempt call the
// code goes to.
type Session struct {
	Kind      SessionKind
	AttemptID string
	NextStep  string
}

const (
	msgCodeSentSignIn = "We've sent you a verification code. Please check your email and enter the code to continue."
	msgCodeSentSignUp = "We've sent you a verification code. Please check your email and enter the code to complete your registration."
	msgEmailFailed    = "Failed to process your email. Please try again."
	msgCodeRejected   = "The code you entered is not valid. Please try again."
	msgOAuthFailed    = "Failed to sign in with Google. Please try again."
)

// AuthFlow is the signed-out flow: Landing, Auth, Verification and, after a
// new account is verified, Thanks.
type AuthFlow struct {
	provider  IdentityProvider
	presenter Presenter
	logger    *zap.Logger

	mu      sync.Mutex
	nav     NavigationState
	session *Session
}

func NewAuthFlow(provider IdentityProvider, presenter Presenter, logger *zap.Logger) *AuthFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthFlow{
		provider:  provider,
		presenter: presenter,
		logger:    logger,
		nav:       NewNavigationState(ScreenLanding),
	}
}

func (a *AuthFlow) Current() Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.Current
}

func (a *AuthFlow) Nav() NavigationState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.Clone()
}

func (a *AuthFlow) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	s := *a.session
	return &s
}

func (a *AuthFlow) Skip() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.nav.Current != ScreenLanding {
		return fmt.Errorf("%w: skip on %s", ErrUnexpectedEvent, a.nav.Current)
	}
	a.nav = a.nav.Push(ScreenAuth)
	return nil
}

func (a *AuthFlow) Back() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav = a.nav.Back()
}

// Reset returns to Landing, dropping any pending session.
func (a *AuthFlow) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nav = NewNavigationState(ScreenLanding)
	a.session = nil
}

func (a *AuthFlow) alert(title, message string) {
	a.presenter.Alert(title, message)
}

// SubmitEmail starts an email-code sign-in. Unknown emails fall back to
// sign-up. Either way a code is sent and the flow moves to Verification.
func (a *AuthFlow) SubmitEmail(ctx context.Context, email string) error {
	if a.Current() != ScreenAuth {
		return fmt.Errorf("%w: email on %s", ErrUnexpectedEvent, a.Current())
	}
	email, err := ValidateEmail(email)
	if err != nil {
		g, _ := AsGateError(err)
		a.alert(g.Title, g.Message)
		return err
	}

	session, message, err := a.startEmail(ctx, email)
	if err != nil {
		a.logger.Error("email auth error", zap.Error(err))
		a.alert("Error", msgEmailFailed)
		return err
	}

	a.mu.Lock()
	a.session = session
	a.nav = a.nav.Push(ScreenVerification)
	a.mu.Unlock()

	a.alert("Check your email", message)
	return nil
}

func (a *AuthFlow) startEmail(ctx context.Context, email string) (*Session, string, error) {
	attempt, err := a.provider.CreateSignIn(ctx, email)
	if err == nil {
		if _, err := a.provider.PrepareFirstFactor(ctx, attempt.ID); err != nil {
			return nil, "", fmt.Errorf("prepare first factor: %w", err)
		}
		return &Session{Kind: SessionSignIn, AttemptID: attempt.ID, NextStep: attempt.NextStep}, msgCodeSentSignIn, nil
	}
	if !errors.Is(err, apiclient.ErrIdentifierNotFound) {
		return nil, "", fmt.Errorf("create sign in: %w", err)
	}

	attempt, err = a.provider.CreateSignUp(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("create sign up: %w", err)
	}
	if _, err := a.provider.PrepareEmailVerification(ctx, attempt.ID); err != nil {
		return nil, "", fmt.Errorf("prepare email verification: %w", err)
	}
	return &Session{Kind: SessionSignUp, AttemptID: attempt.ID, NextStep: attempt.NextStep}, msgCodeSentSignUp, nil
}

// SubmitCode verifies code against the pending session. Anything short of a
// complete status shows "Verification failed" and stays on Verification.
func (a *AuthFlow) SubmitCode(ctx context.Context, code string) error {
	a.mu.Lock()
	current, session := a.nav.Current, a.session
	a.mu.Unlock()

	if current != ScreenVerification || session == nil {
		return fmt.Errorf("%w: code on %s", ErrUnexpectedEvent, current)
	}
	code, err := ValidateCode(code)
	if err != nil {
		g, _ := AsGateError(err)
		a.alert(g.Title, g.Message)
		return err
	}

	var res *apiclient.AttemptResult
	switch session.Kind {
	case SessionSignIn:
		res, err = a.provider.AttemptFirstFactor(ctx, session.AttemptID, code)
	case SessionSignUp:
		res, err = a.provider.AttemptEmailVerification(ctx, session.AttemptID, code)
	default:
		return fmt.Errorf("%w: session kind %q", ErrInvalidChoice, session.Kind)
	}

	if err != nil || res == nil || res.Status != apiclient.StatusComplete {
		message := msgCodeRejected
		if err != nil {
			a.logger.Error("verification error", zap.Error(err))
			message = apiclient.ResultOf(struct{}{}, err).Message
		}
		a.alert("Verification failed", message)
		if err == nil {
			err = fmt.Errorf("verification status %q", statusOf(res))
		}
		return err
	}

	a.mu.Lock()
	a.session = nil
	if session.Kind == SessionSignUp {
		a.nav = a.nav.Replace(ScreenThanks)
	} else {
		a.nav = NewNavigationState(ScreenLanding)
	}
	a.mu.Unlock()
	return nil
}

func statusOf(res *apiclient.AttemptResult) string {
	if res == nil {
		return ""
	}
	return res.Status
}

// Acknowledge leaves the Thanks screen.
func (a *AuthFlow) Acknowledge() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.nav.Current == ScreenThanks {
		a.nav = NewNavigationState(ScreenLanding)
	}
}

func (a *AuthFlow) StartOAuth(ctx context.Context) (*apiclient.OAuthStart, error) {
	start, err := a.provider.StartOAuth(ctx)
	if err != nil {
		a.logger.Error("oauth error", zap.Error(err))
		a.alert("Error", msgOAuthFailed)
		return nil, err
	}
	return start, nil
}

func (a *AuthFlow) CompleteOAuth(ctx context.Context, state, code string) error {
	res, err := a.provider.CompleteOAuth(ctx, state, code)
	if err == nil && statusOf(res) != apiclient.StatusComplete {
		err = fmt.Errorf("oauth status %q", statusOf(res))
	}
	if err != nil {
		a.logger.Error("oauth error", zap.Error(err))
		a.alert("Error", msgOAuthFailed)
		return err
	}
	a.Reset()
	return nil
}
