package navigator

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Mode reports which of the two flows Root is currently showing.
type Mode string

const (
	ModeSignedOut Mode = "signed_out"
	ModeSignedIn  Mode = "signed_in"
)

// Root picks between the signed-out AuthFlow and the signed-in Navigator
// based on the identity provider's session.
type Root struct {
	identity IdentityProvider
	auth     *AuthFlow
	newMain  func() *Navigator
	logger   *zap.Logger

	mu   sync.Mutex
	main *Navigator
}

// NewRoot wires the two flows. newMain builds a fresh Navigator for every
// signed-in session.
func NewRoot(identity IdentityProvider, presenter Presenter, newMain func() *Navigator, logger *zap.Logger) *Root {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Root{
		identity: identity,
		auth:     NewAuthFlow(identity, presenter, logger),
		newMain:  newMain,
		logger:   logger,
	}
}

func (r *Root) Mode() Mode {
	if r.identity.IsSignedIn() && r.auth.Current() != ScreenThanks {
		return ModeSignedIn
	}
	return ModeSignedOut
}

func (r *Root) Auth() *AuthFlow {
	return r.auth
}

// Main returns the signed-in navigator, starting it on first use. It fails
// when nobody is signed in.
func (r *Root) Main(ctx context.Context) (*Navigator, error) {
	if r.Mode() != ModeSignedIn {
		return nil, errors.New("not signed in")
	}

	r.mu.Lock()
	if r.main != nil && !r.main.Expired() {
		n := r.main
		r.mu.Unlock()
		return n, nil
	}
	n := r.newMain()
	r.main = n
	r.mu.Unlock()

	if err := n.Start(ctx); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			r.drop()
		}
		return nil, err
	}
	return n, nil
}

// Expire drops the signed-in navigator after a 401 and sends the user back to
// Landing.
func (r *Root) Expire() {
	r.drop()
	r.logger.Info("session expired, returning to sign in")
}

func (r *Root) drop() {
	r.mu.Lock()
	r.main = nil
	r.mu.Unlock()
	r.auth.Reset()
}

// SignOut ends the session explicitly.
func (r *Root) SignOut(ctx context.Context) error {
	r.mu.Lock()
	n := r.main
	r.mu.Unlock()
	if n != nil {
		n.Wait()
	}
	if err := r.identity.SignOut(ctx); err != nil {
		return err
	}
	r.drop()
	return nil
}
