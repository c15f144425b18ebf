package navigator

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"promptly-be/pkg/apiclient"
)

type alert struct{ Title, Message string }

type recordingPresenter struct {
	mu     sync.Mutex
	alerts []alert
}

func (p *recordingPresenter) Alert(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert{title, message})
}

func (p *recordingPresenter) all() []alert {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]alert(nil), p.alerts...)
}

var errUnauthorized = &apiclient.Error{Kind: apiclient.KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: "Authentication required"}

// fakeBackend implements Backend with overridable hooks.
type fakeBackend struct {
	mu      sync.Mutex
	updates []apiclient.ProfileUpdate
	saved   []apiclient.SavePromptRequest
	usage   []string

	getProfile func() (*apiclient.Envelope[apiclient.Profile], error)
	update     func(apiclient.ProfileUpdate) error
	evaluate   func(apiclient.EvaluateRequest) (*apiclient.Envelope[apiclient.Evaluation], error)
	suggest    func(apiclient.SuggestionRequest) (*apiclient.Envelope[[]apiclient.Suggestion], error)
	updatePr   func(id, text string) (*apiclient.Envelope[apiclient.Prompt], error)
}

func (f *fakeBackend) UpdateProfile(_ context.Context, u apiclient.ProfileUpdate) (*apiclient.Envelope[apiclient.Profile], error) {
	f.mu.Lock()
	f.updates = append(f.updates, u)
	hook := f.update
	f.mu.Unlock()
	if hook != nil {
		if err := hook(u); err != nil {
			return nil, err
		}
	}
	return &apiclient.Envelope[apiclient.Profile]{}, nil
}

func (f *fakeBackend) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeBackend) GetProfile(context.Context) (*apiclient.Envelope[apiclient.Profile], error) {
	if f.getProfile != nil {
		return f.getProfile()
	}
	return &apiclient.Envelope[apiclient.Profile]{}, nil
}

func (f *fakeBackend) SavePrompt(_ context.Context, category, text string, pt apiclient.PromptType) (*apiclient.Envelope[apiclient.Prompt], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, apiclient.SavePromptRequest{Category: category, ResponseText: text, PromptType: pt})
	return &apiclient.Envelope[apiclient.Prompt]{Data: apiclient.Prompt{
		ID:           "srv-" + text,
		Category:     category,
		ResponseText: text,
		PromptType:   pt,
		AIGenerated:  pt == apiclient.PromptTypeGenerated,
		Status:       "ACTIVE",
	}}, nil
}

func (f *fakeBackend) UpdatePrompt(_ context.Context, id, text string) (*apiclient.Envelope[apiclient.Prompt], error) {
	if f.updatePr != nil {
		return f.updatePr(id, text)
	}
	return &apiclient.Envelope[apiclient.Prompt]{Data: apiclient.Prompt{ID: id, ResponseText: text, PromptType: apiclient.PromptTypeEdited}}, nil
}

func (f *fakeBackend) GetUserPrompts(context.Context) (*apiclient.Envelope[[]apiclient.Prompt], error) {
	return &apiclient.Envelope[[]apiclient.Prompt]{}, nil
}

func (f *fakeBackend) RecordPromptUsage(_ context.Context, id string) (*apiclient.Envelope[apiclient.UsageRecord], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usage = append(f.usage, id)
	return &apiclient.Envelope[apiclient.UsageRecord]{Data: apiclient.UsageRecord{PromptID: id}}, nil
}

func (f *fakeBackend) GenerateSuggestions(_ context.Context, req apiclient.SuggestionRequest) (*apiclient.Envelope[[]apiclient.Suggestion], error) {
	if f.suggest != nil {
		return f.suggest(req)
	}
	return nil, errors.New("no suggestions configured")
}

func (f *fakeBackend) ReviseSuggestion(_ context.Context, req apiclient.ReviseRequest) (*apiclient.Envelope[apiclient.Suggestion], error) {
	return &apiclient.Envelope[apiclient.Suggestion]{Data: apiclient.Suggestion{ResponseText: "ai: " + req.Feedback}}, nil
}

func (f *fakeBackend) EvaluateCustom(_ context.Context, req apiclient.EvaluateRequest) (*apiclient.Envelope[apiclient.Evaluation], error) {
	if f.evaluate != nil {
		return f.evaluate(req)
	}
	return &apiclient.Envelope[apiclient.Evaluation]{Data: apiclient.Evaluation{Score: "7/10", Label: "NICE!"}}, nil
}

func (f *fakeBackend) ReviseCustom(_ context.Context, req apiclient.ReviseRequest) (*apiclient.Envelope[apiclient.Suggestion], error) {
	return &apiclient.Envelope[apiclient.Suggestion]{Data: apiclient.Suggestion{ResponseText: "custom: " + req.Feedback}}, nil
}

type fakeSession struct {
	mu         sync.Mutex
	signedIn   bool
	signOuts   int
	signInErr  error
	attemptRes *apiclient.AttemptResult
	attemptErr error
	oauth      func() (*apiclient.AttemptResult, error)
	calls      []string
}

func (s *fakeSession) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *fakeSession) CreateSignIn(_ context.Context, email string) (*apiclient.Attempt, error) {
	s.record("CreateSignIn")
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return &apiclient.Attempt{ID: "in-1", Kind: apiclient.AttemptSignIn, Email: email}, nil
}

func (s *fakeSession) PrepareFirstFactor(_ context.Context, id string) (*apiclient.Attempt, error) {
	s.record("PrepareFirstFactor")
	return &apiclient.Attempt{ID: id}, nil
}

func (s *fakeSession) AttemptFirstFactor(_ context.Context, id, code string) (*apiclient.AttemptResult, error) {
	s.record("AttemptFirstFactor")
	return s.attempt()
}

func (s *fakeSession) CreateSignUp(_ context.Context, email string) (*apiclient.Attempt, error) {
	s.record("CreateSignUp")
	return &apiclient.Attempt{ID: "up-1", Kind: apiclient.AttemptSignUp, Email: email}, nil
}

func (s *fakeSession) PrepareEmailVerification(_ context.Context, id string) (*apiclient.Attempt, error) {
	s.record("PrepareEmailVerification")
	return &apiclient.Attempt{ID: id}, nil
}

func (s *fakeSession) AttemptEmailVerification(_ context.Context, id, code string) (*apiclient.AttemptResult, error) {
	s.record("AttemptEmailVerification")
	return s.attempt()
}

func (s *fakeSession) attempt() (*apiclient.AttemptResult, error) {
	if s.attemptErr != nil {
		return nil, s.attemptErr
	}
	res := s.attemptRes
	if res != nil && res.Status == apiclient.StatusComplete {
		s.mu.Lock()
		s.signedIn = true
		s.mu.Unlock()
	}
	return res, nil
}

func (s *fakeSession) StartOAuth(context.Context) (*apiclient.OAuthStart, error) {
	return &apiclient.OAuthStart{URL: "https://accounts.example/o", State: "st"}, nil
}

func (s *fakeSession) CompleteOAuth(context.Context, string, string) (*apiclient.AttemptResult, error) {
	if s.oauth != nil {
		return s.oauth()
	}
	s.mu.Lock()
	s.signedIn = true
	s.mu.Unlock()
	return &apiclient.AttemptResult{Status: apiclient.StatusComplete, SessionToken: "t"}, nil
}

func (s *fakeSession) IsSignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

func (s *fakeSession) SignOut(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedIn = false
	s.signOuts++
	return nil
}
