package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"promptly-be/pkg/apiclient"

	"go.uber.org/zap"
)

// ErrSessionExpired is returned once any backend call answers 401. The
// navigator signs the user out and stops accepting work.
var ErrSessionExpired = errors.New("session expired")

// Backend is the subset of the service client the signed-in flow uses.
type Backend interface {
	ProfileSaver
	GetProfile(ctx context.Context) (*apiclient.Envelope[apiclient.Profile], error)
	SavePrompt(ctx context.Context, category, responseText string, promptType apiclient.PromptType) (*apiclient.Envelope[apiclient.Prompt], error)
	UpdatePrompt(ctx context.Context, id, responseText string) (*apiclient.Envelope[apiclient.Prompt], error)
	GetUserPrompts(ctx context.Context) (*apiclient.Envelope[[]apiclient.Prompt], error)
	RecordPromptUsage(ctx context.Context, promptID string) (*apiclient.Envelope[apiclient.UsageRecord], error)
	GenerateSuggestions(ctx context.Context, req apiclient.SuggestionRequest) (*apiclient.Envelope[[]apiclient.Suggestion], error)
	ReviseSuggestion(ctx context.Context, req apiclient.ReviseRequest) (*apiclient.Envelope[apiclient.Suggestion], error)
	EvaluateCustom(ctx context.Context, req apiclient.EvaluateRequest) (*apiclient.Envelope[apiclient.Evaluation], error)
	ReviseCustom(ctx context.Context, req apiclient.ReviseRequest) (*apiclient.Envelope[apiclient.Suggestion], error)
}

// Presenter shows blocking alerts. Every rejected action produces exactly one
// Alert call.
type Presenter interface {
	Alert(title, message string)
}

// SessionEnder ends the session after the backend answers 401.
type SessionEnder interface {
	SignOut(ctx context.Context) error
}

// NavigatorOption configures a Navigator built by New.
type NavigatorOption func(*Navigator)

func WithNavigatorLogger(logger *zap.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithClock replaces time.Now, which stamps placeholder prompt ids.
func WithClock(now func() time.Time) NavigatorOption {
	return func(n *Navigator) {
		n.now = now
	}
}

func WithSession(s SessionEnder) NavigatorOption {
	return func(n *Navigator) {
		n.session = s
	}
}

// DefaultSuggestionCount is how many prompts a generation run asks for.
const DefaultSuggestionCount = 3

// Navigator drives the signed-in flow: it owns State, feeds events through
// Reduce, and performs the I/O the screens ask for.
type Navigator struct {
	backend   Backend
	presenter Presenter
	session   SessionEnder
	persister *Persister
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	state   State
	loading bool
	expired bool
}

func New(backend Backend, presenter Presenter, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		backend:   backend,
		presenter: presenter,
		logger:    zap.NewNop(),
		now:       time.Now,
		state:     NewState(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.persister = NewPersister(backend, n.logger)
	n.persister.OnError(func(err error) {
		n.checkSession(context.Background(), err)
	})
	return n
}

// Start fetches the canonical profile and routes to the first unanswered
// question. A failed fetch falls back to NameInput.
func (n *Navigator) Start(ctx context.Context) error {
	env, err := n.backend.GetProfile(ctx)

	n.mu.Lock()
	if err != nil {
		n.logger.Error("failed to fetch user profile", zap.Error(err))
		n.state, _ = Reduce(n.state, ProfileLoadFailed{})
	} else {
		n.state, _ = Reduce(n.state, ProfileLoaded{Profile: env.Data})
	}
	n.persister.Prime(n.state.Draft)
	n.mu.Unlock()

	if err != nil {
		return n.checkSession(ctx, err)
	}
	return nil
}

// State returns a copy of the current state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Clone()
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Nav.Current
}

func (n *Navigator) Loading() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loading
}

func (n *Navigator) SaveStatus() SaveStatus {
	return n.persister.Status()
}

// Wait blocks until background profile saves have finished.
func (n *Navigator) Wait() {
	n.persister.Wait()
}

// Dispatch applies ev. Guard failures are presented and returned; the state
// is left untouched.
func (n *Navigator) Dispatch(ctx context.Context, ev Event) error {
	n.mu.Lock()
	if n.expired {
		n.mu.Unlock()
		return ErrSessionExpired
	}
	next, err := Reduce(n.state, ev)
	if err == nil {
		n.state = next
	}
	draft := n.state.Draft
	n.mu.Unlock()

	if err != nil {
		if g, ok := AsGateError(err); ok {
			n.presenter.Alert(g.Title, g.Message)
		}
		return err
	}
	n.persister.Observe(ctx, draft)
	return nil
}

// SubmitRating evaluates the user's response and moves to RatingResult. On
// failure the screen stays on RateMyPrompt and the error is presented.
func (n *Navigator) SubmitRating(ctx context.Context, category, response string) error {
	category, response, err := ValidateRating(category, response)
	if err != nil {
		g, _ := AsGateError(err)
		n.presenter.Alert(g.Title, g.Message)
		return err
	}
	if err := n.begin(ScreenRateMyPrompt); err != nil {
		return err
	}

	env, err := n.backend.EvaluateCustom(ctx, apiclient.EvaluateRequest{Category: category, ResponseText: response})
	n.end()
	if err != nil {
		return n.fail(ctx, "Evaluation failed", err)
	}

	ev := env.Data
	return n.Dispatch(ctx, RatingSubmitted{Category: category, ResponseText: response, Evaluation: &ev})
}

// GeneratePrompts asks the AI for suggestions built from the draft and saves
// each one as a GENERATED prompt. It runs from PromptResult through the
// Generating screen.
func (n *Navigator) GeneratePrompts(ctx context.Context, category string) error {
	if err := n.Dispatch(ctx, GenerationStarted{}); err != nil {
		return err
	}
	if err := n.begin(ScreenGenerating); err != nil {
		return err
	}

	draft := n.State().Draft
	req := apiclient.SuggestionRequest{
		Category:  category,
		Tones:     draft.SelectedTones,
		Interests: draft.Interests,
		Count:     DefaultSuggestionCount,
	}
	if draft.UniqueTrait != nil {
		req.UniqueTrait = *draft.UniqueTrait
	}

	prompts, err := n.generate(ctx, req)
	n.end()
	if err != nil {
		_ = n.Dispatch(ctx, GenerationFailed{})
		return n.fail(ctx, "Generation failed", err)
	}
	return n.Dispatch(ctx, GenerationCompleted{Prompts: prompts})
}

func (n *Navigator) generate(ctx context.Context, req apiclient.SuggestionRequest) ([]apiclient.Prompt, error) {
	env, err := n.backend.GenerateSuggestions(ctx, req)
	if err != nil {
		return nil, err
	}
	prompts := make([]apiclient.Prompt, 0, len(env.Data))
	for _, s := range env.Data {
		category := s.Category
		if category == "" {
			category = req.Category
		}
		saved, err := n.backend.SavePrompt(ctx, category, s.ResponseText, apiclient.PromptTypeGenerated)
		if err != nil {
			return nil, fmt.Errorf("save generated prompt: %w", err)
		}
		prompts = append(prompts, saved.Data)
	}
	return prompts, nil
}

// LoadPrompts refreshes the list shown on PromptResult from the backend.
func (n *Navigator) LoadPrompts(ctx context.Context) error {
	env, err := n.backend.GetUserPrompts(ctx)
	if err != nil {
		return n.fail(ctx, "Error", err)
	}
	n.mu.Lock()
	n.state.Prompts = env.Data
	n.mu.Unlock()
	return nil
}

// SaveEdit persists the prompt on EditPrompt. Placeholder drafts are created
// as EDITED prompts; real ones are updated in place. The screen only goes back
// once the backend has answered.
func (n *Navigator) SaveEdit(ctx context.Context, text string) error {
	text, err := ValidateResponse(text)
	if err != nil {
		g, _ := AsGateError(err)
		n.presenter.Alert(g.Title, g.Message)
		return err
	}
	if err := n.begin(ScreenEditPrompt); err != nil {
		return err
	}

	draft := n.State().Prompt
	if draft == nil {
		n.end()
		return fmt.Errorf("%w: no prompt under edit", ErrUnexpectedEvent)
	}

	var env *apiclient.Envelope[apiclient.Prompt]
	if draft.IsPlaceholder() {
		env, err = n.backend.SavePrompt(ctx, draft.Category, text, apiclient.PromptTypeEdited)
	} else {
		env, err = n.backend.UpdatePrompt(ctx, draft.ID, text)
	}
	n.end()
	if err != nil {
		return n.fail(ctx, "Save failed", err)
	}
	return n.Dispatch(ctx, EditSaved{Prompt: env.Data})
}

// RevisePrompt asks the AI to rewrite the prompt under edit using feedback.
func (n *Navigator) RevisePrompt(ctx context.Context, feedback string) error {
	if err := n.begin(ScreenEditPrompt); err != nil {
		return err
	}
	draft := n.State().Prompt
	if draft == nil {
		n.end()
		return fmt.Errorf("%w: no prompt under edit", ErrUnexpectedEvent)
	}

	req := apiclient.ReviseRequest{Category: draft.Category, ResponseText: draft.ResponseText, Feedback: feedback}
	var (
		env *apiclient.Envelope[apiclient.Suggestion]
		err error
	)
	if draft.AIGenerated {
		env, err = n.backend.ReviseSuggestion(ctx, req)
	} else {
		env, err = n.backend.ReviseCustom(ctx, req)
	}
	n.end()
	if err != nil {
		return n.fail(ctx, "Revision failed", err)
	}
	return n.Dispatch(ctx, PromptRevised{ResponseText: env.Data.ResponseText})
}

// RecordUsage tells the backend the user copied a prompt.
func (n *Navigator) RecordUsage(ctx context.Context, promptID string) error {
	if IsPlaceholderID(promptID) {
		return nil
	}
	if _, err := n.backend.RecordPromptUsage(ctx, promptID); err != nil {
		return n.fail(ctx, "Error", err)
	}
	return nil
}

// NextStep wraps NextStepChosen with the navigator's clock.
func (n *Navigator) NextStep(ctx context.Context, step NextStep) error {
	return n.Dispatch(ctx, NextStepChosen{Step: step, At: n.now()})
}

// begin marks a blocking action on screen. It refuses to start a second one.
func (n *Navigator) begin(screen Screen) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.expired {
		return ErrSessionExpired
	}
	if n.state.Nav.Current != screen {
		return fmt.Errorf("%w: action for %s on %s", ErrUnexpectedEvent, screen, n.state.Nav.Current)
	}
	if n.loading {
		return errors.New("another action is in progress")
	}
	n.loading = true
	return nil
}

func (n *Navigator) end() {
	n.mu.Lock()
	n.loading = false
	n.mu.Unlock()
}

// fail presents err once under title and converts 401s into ErrSessionExpired.
func (n *Navigator) fail(ctx context.Context, title string, err error) error {
	n.logger.Error(title, zap.Error(err))
	if expired := n.checkSession(ctx, err); errors.Is(expired, ErrSessionExpired) {
		n.presenter.Alert("Session expired", "Please sign in again.")
		return expired
	}
	r := apiclient.ResultOf(struct{}{}, err)
	n.presenter.Alert(title, r.Message)
	return err
}

// checkSession signs the user out on a 401. It returns ErrSessionExpired in
// that case and err otherwise.
func (n *Navigator) checkSession(ctx context.Context, err error) error {
	if !apiclient.IsUnauthorized(err) {
		return err
	}
	n.mu.Lock()
	already := n.expired
	n.expired = true
	n.mu.Unlock()

	if !already && n.session != nil {
		if serr := n.session.SignOut(context.WithoutCancel(ctx)); serr != nil {
			n.logger.Warn("sign out after 401 failed", zap.Error(serr))
		}
	}
	return fmt.Errorf("%w: %v", ErrSessionExpired, err)
}

// Expired reports whether a 401 has ended this session.
func (n *Navigator) Expired() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.expired
}
