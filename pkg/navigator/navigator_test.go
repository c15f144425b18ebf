package navigator

import (
	"context"
	"errors"
	"testing"
	"time"

	"promptly-be/pkg/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T, backend *fakeBackend, opts ...NavigatorOption) (*Navigator, *recordingPresenter) {
	t.Helper()
	presenter := &recordingPresenter{}
	n := New(backend, presenter, opts...)
	return n, presenter
}

func TestNavigator_StartHydratesAndPersistsChanges(t *testing.T) {
	backend := &fakeBackend{getProfile: func() (*apiclient.Envelope[apiclient.Profile], error) {
		return &apiclient.Envelope[apiclient.Profile]{Data: apiclient.Profile{Name: strPtr("Jane")}}, nil
	}}
	n, _ := newTestNavigator(t, backend)
	ctx := context.Background()

	require.NoError(t, n.Start(ctx))
	assert.Equal(t, ScreenAgeInput, n.Current())

	require.NoError(t, n.Dispatch(ctx, AgeSubmitted{Input: "29"}))
	n.Wait()

	assert.Equal(t, ScreenGenderOrientation, n.Current())
	require.Equal(t, 1, backend.updateCount())
	assert.Equal(t, 29, *backend.updates[0].Age)
	assert.Equal(t, "Jane", *backend.updates[0].Name)
}

func TestNavigator_StartFallsBackOnFetchFailure(t *testing.T) {
	backend := &fakeBackend{getProfile: func() (*apiclient.Envelope[apiclient.Profile], error) {
		return nil, &apiclient.Error{Kind: apiclient.KindHTTP, StatusCode: 500, Message: "Failed to fetch user profile"}
	}}
	n, _ := newTestNavigator(t, backend)

	err := n.Start(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, NewNavigationState(ScreenNameInput), n.State().Nav)
}

func TestNavigator_GuardFailurePresentsOnce(t *testing.T) {
	backend := &fakeBackend{}
	n, presenter := newTestNavigator(t, backend)
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	before := n.State()
	err := n.Dispatch(ctx, NameSubmitted{Name: ""})
	require.Error(t, err)
	assert.Equal(t, before, n.State())
	assert.Equal(t, []alert{{"Name Required", "Please enter your name."}}, presenter.all())

	_ = n.Dispatch(ctx, NameSubmitted{Name: " "})
	assert.Len(t, presenter.all(), 2)
	n.Wait()
	assert.Equal(t, 0, backend.updateCount())
}

func TestNavigator_WritePathScenario(t *testing.T) {
	backend := &fakeBackend{}
	n, _ := newTestNavigator(t, backend)
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenWriteOrRate, Replace: true}))

	for _, ev := range []Event{
		WriteOrRateChosen{Choice: ChoiceWrite},
		VibesSubmitted{Vibes: []string{"Funny"}},
		InterestsSubmitted{Input: "cooking, tennis, writing"},
		UniqueTraitSubmitted{Trait: "fermentation"},
		ProfileCompletionConfirmed{},
	} {
		require.NoError(t, n.Dispatch(ctx, ev))
	}
	n.Wait()

	s := n.State()
	assert.Equal(t, ScreenPromptResult, s.Current())
	assert.Len(t, s.Nav.History, 1)
	assert.True(t, backend.updateCount() >= 1)
	assert.True(t, n.persister.LastPersisted().ProfileCompleted)
}

func TestNavigator_RatingEvaluationFailureStaysPut(t *testing.T) {
	backend := &fakeBackend{evaluate: func(apiclient.EvaluateRequest) (*apiclient.Envelope[apiclient.Evaluation], error) {
		return nil, &apiclient.Error{Kind: apiclient.KindHTTP, StatusCode: 502, Message: "AI provider unavailable"}
	}}
	n, presenter := newTestNavigator(t, backend)
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenRateMyPrompt, Replace: true}))

	err := n.SubmitRating(ctx, "My simple pleasures", "Coffee at dawn")
	require.Error(t, err)
	assert.Equal(t, ScreenRateMyPrompt, n.Current())
	assert.False(t, n.Loading())
	assert.Equal(t, []alert{{"Evaluation failed", "AI provider unavailable"}}, presenter.all())
}

func TestNavigator_RatingSuccess(t *testing.T) {
	n, _ := newTestNavigator(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenRateMyPrompt, Replace: true}))

	require.NoError(t, n.SubmitRating(ctx, "My simple pleasures", "Coffee at dawn"))
	s := n.State()
	assert.Equal(t, ScreenRatingResult, s.Current())
	require.NotNil(t, s.Rating.Evaluation)
	assert.Equal(t, "7/10", s.Rating.Evaluation.Score)
}

func TestNavigator_ImproveThenSaveCreatesEditedPrompt(t *testing.T) {
	backend := &fakeBackend{}
	now := time.UnixMilli(1234)
	n, _ := newTestNavigator(t, backend, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenRateMyPrompt, Replace: true}))
	require.NoError(t, n.SubmitRating(ctx, "My simple pleasures", "Coffee at dawn"))
	require.NoError(t, n.Dispatch(ctx, RatingResultAcknowledged{}))
	require.NoError(t, n.NextStep(ctx, NextStepImprove))
	assert.Equal(t, "temp-1234", n.State().Prompt.ID)

	require.NoError(t, n.SaveEdit(ctx, "Coffee at dawn, on a balcony"))

	s := n.State()
	assert.Equal(t, ScreenRatingNextStep, s.Current())
	assert.Equal(t, "srv-Coffee at dawn, on a balcony", s.Prompt.ID)
	require.Len(t, backend.saved, 1)
	assert.Equal(t, apiclient.PromptTypeEdited, backend.saved[0].PromptType)
	assert.Equal(t, "My simple pleasures", backend.saved[0].Category)
}

func TestNavigator_SaveEditFailureKeepsScreen(t *testing.T) {
	backend := &fakeBackend{updatePr: func(id, text string) (*apiclient.Envelope[apiclient.Prompt], error) {
		return nil, &apiclient.Error{Kind: apiclient.KindHTTP, StatusCode: 404, Message: "Prompt not found"}
	}}
	n, presenter := newTestNavigator(t, backend)
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenPromptResult, Replace: true}))
	require.NoError(t, n.Dispatch(ctx, EditRequested{Prompt: PromptDraft{ID: "p1", Category: "c", ResponseText: "old"}}))

	err := n.SaveEdit(ctx, "new")
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Equal(t, ScreenEditPrompt, n.Current())
	assert.Equal(t, []alert{{"Save failed", "Prompt not found"}}, presenter.all())
}

func TestNavigator_GeneratePrompts(t *testing.T) {
	backend := &fakeBackend{suggest: func(req apiclient.SuggestionRequest) (*apiclient.Envelope[[]apiclient.Suggestion], error) {
		assert.Equal(t, []string{"Funny"}, req.Tones)
		assert.Equal(t, "fermentation", req.UniqueTrait)
		return &apiclient.Envelope[[]apiclient.Suggestion]{Data: []apiclient.Suggestion{
			{ResponseText: "one"}, {ResponseText: "two"},
		}}, nil
	}}
	n, _ := newTestNavigator(t, backend)
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenPickYourVibe, Replace: true}))
	require.NoError(t, n.Dispatch(ctx, VibesSubmitted{Vibes: []string{"Funny"}}))
	require.NoError(t, n.Dispatch(ctx, InterestsSubmitted{Input: "a, b, c"}))
	require.NoError(t, n.Dispatch(ctx, UniqueTraitSubmitted{Trait: "fermentation"}))
	require.NoError(t, n.Dispatch(ctx, ProfileCompletionConfirmed{}))

	require.NoError(t, n.GeneratePrompts(ctx, "Dating me is like..."))

	s := n.State()
	assert.Equal(t, NewNavigationState(ScreenPromptResult), s.Nav)
	require.Len(t, s.Prompts, 2)
	assert.True(t, s.Prompts[0].AIGenerated)
	assert.Equal(t, "Dating me is like...", backend.saved[0].Category)
}

func TestNavigator_GenerateFailureReturnsToResults(t *testing.T) {
	n, presenter := newTestNavigator(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenPromptResult, Replace: true}))

	require.Error(t, n.GeneratePrompts(ctx, "Dating me is like..."))
	assert.Equal(t, ScreenPromptResult, n.Current())
	assert.Len(t, presenter.all(), 1)
}

func TestNavigator_UnauthorizedSignsOut(t *testing.T) {
	session := &fakeSession{signedIn: true}
	backend := &fakeBackend{evaluate: func(apiclient.EvaluateRequest) (*apiclient.Envelope[apiclient.Evaluation], error) {
		return nil, errUnauthorized
	}}
	n, presenter := newTestNavigator(t, backend, WithSession(session))
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenRateMyPrompt, Replace: true}))

	err := n.SubmitRating(ctx, "My simple pleasures", "Coffee at dawn")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, n.Expired())
	assert.False(t, session.IsSignedIn())
	assert.Equal(t, 1, session.signOuts)
	assert.Equal(t, []alert{{"Session expired", "Please sign in again."}}, presenter.all())

	assert.ErrorIs(t, n.Dispatch(ctx, Back{}), ErrSessionExpired)
}

func TestNavigator_BackgroundSave401SignsOut(t *testing.T) {
	session := &fakeSession{signedIn: true}
	backend := &fakeBackend{update: func(apiclient.ProfileUpdate) error { return errUnauthorized }}
	n, _ := newTestNavigator(t, backend, WithSession(session))
	ctx := context.Background()
	require.NoError(t, n.Start(ctx))

	require.NoError(t, n.Dispatch(ctx, NameSubmitted{Name: "Jane"}))
	n.Wait()

	assert.True(t, n.Expired())
	assert.Equal(t, 1, session.signOuts)
	assert.Equal(t, SaveFailed, n.SaveStatus())
	// Navigation was not reverted.
	assert.Equal(t, ScreenAgeInput, n.Current())
}

func TestNavigator_RecordUsageSkipsPlaceholders(t *testing.T) {
	backend := &fakeBackend{}
	n, _ := newTestNavigator(t, backend)
	ctx := context.Background()

	require.NoError(t, n.RecordUsage(ctx, "temp-1"))
	require.NoError(t, n.RecordUsage(ctx, "p1"))
	assert.Equal(t, []string{"p1"}, backend.usage)
}

func TestNavigator_RevisePrompt(t *testing.T) {
	n, _ := newTestNavigator(t, &fakeBackend{})
	ctx := context.Background()
	require.NoError(t, n.Dispatch(ctx, Navigate{To: ScreenPromptResult, Replace: true}))
	require.NoError(t, n.Dispatch(ctx, EditRequested{Prompt: PromptDraft{ID: "p1", AIGenerated: true}}))

	require.NoError(t, n.RevisePrompt(ctx, "shorter"))
	assert.Equal(t, "ai: shorter", n.State().Prompt.ResponseText)
}
