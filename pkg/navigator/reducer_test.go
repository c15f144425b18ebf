package navigator

import (
	"errors"
	"testing"
	"time"

	"promptly-be/pkg/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func stateAt(screen Screen) State {
	s := NewState()
	s.Nav = NewNavigationState(screen)
	return s
}

func mustReduce(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, err := Reduce(s, ev)
	require.NoError(t, err)
	require.Equal(t, next.Nav.Current, next.Nav.History[len(next.Nav.History)-1])
	return next
}

func TestNavigationState_BackNeverUnderflows(t *testing.T) {
	n := NewNavigationState(ScreenNameInput).Push(ScreenAgeInput).Push(ScreenGenderOrientation)

	for i := 0; i < 5; i++ {
		n = n.Back()
		assert.GreaterOrEqual(t, n.Depth(), 1)
		assert.Equal(t, n.Current, n.History[len(n.History)-1])
	}
	assert.Equal(t, ScreenNameInput, n.Current)
	assert.Equal(t, 1, n.Depth())
}

func TestNavigationState_PushDoesNotAlias(t *testing.T) {
	base := NewNavigationState(ScreenWriteOrRate)
	a := base.Push(ScreenPickYourVibe)
	b := base.Push(ScreenRateMyPrompt)
	assert.Equal(t, ScreenPickYourVibe, a.History[1])
	assert.Equal(t, ScreenRateMyPrompt, b.History[1])
}

func TestReduce_GuardFailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		screen Screen
		ev     Event
	}{
		{"name", ScreenNameInput, NameSubmitted{Name: " "}},
		{"age zero", ScreenAgeInput, AgeSubmitted{Input: "0"}},
		{"age too old", ScreenAgeInput, AgeSubmitted{Input: "121"}},
		{"gender", ScreenGenderOrientation, GenderOrientationSubmitted{Gender: "Male"}},
		{"vibes", ScreenPickYourVibe, VibesSubmitted{}},
		{"interests", ScreenEnterInterests, InterestsSubmitted{Input: "cooking, tennis"}},
		{"trait", ScreenUniqueInterest, UniqueTraitSubmitted{Trait: "  "}},
		{"rating", ScreenRateMyPrompt, RatingSubmitted{Category: "My simple pleasures"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := stateAt(tt.screen)
			after, err := Reduce(before, tt.ev)
			_, isGate := AsGateError(err)
			assert.True(t, isGate)
			assert.Equal(t, before, after)
		})
	}
}

func TestReduce_UnexpectedEvent(t *testing.T) {
	s := stateAt(ScreenNameInput)
	_, err := Reduce(s, AgeSubmitted{Input: "30"})
	assert.True(t, errors.Is(err, ErrUnexpectedEvent))

	_, err = Reduce(stateAt(ScreenWriteOrRate), WriteOrRateChosen{Choice: "maybe"})
	assert.True(t, errors.Is(err, ErrInvalidChoice))
}

func TestReduce_OnboardingQuestions(t *testing.T) {
	s := NewState()
	s = mustReduce(t, s, NameSubmitted{Name: "  Jane "})
	s = mustReduce(t, s, AgeSubmitted{Input: "29"})
	s = mustReduce(t, s, GenderOrientationSubmitted{Gender: "Female", Orientation: []string{"Male"}})

	assert.Equal(t, ScreenWriteOrRate, s.Current())
	assert.Equal(t, []Screen{ScreenNameInput, ScreenAgeInput, ScreenGenderOrientation, ScreenWriteOrRate}, s.Nav.History)
	assert.Equal(t, "Jane", *s.Draft.Name)
	assert.Equal(t, 29, *s.Draft.Age)
	assert.Equal(t, "Female", *s.Draft.Gender)
	assert.Equal(t, []string{"Male"}, s.Draft.Orientation)
	assert.Nil(t, s.Draft.UniqueTrait)
	assert.True(t, s.Draft.ProfileCompleted)
}

func TestReduce_RateOnlyUserHydratesToWriteOrRate(t *testing.T) {
	s := NewState()
	s = mustReduce(t, s, NameSubmitted{Name: "Jane"})
	s = mustReduce(t, s, AgeSubmitted{Input: "29"})
	assert.False(t, s.Draft.ProfileCompleted)
	s = mustReduce(t, s, GenderOrientationSubmitted{Gender: "Female", Orientation: []string{"Male"}})
	s = mustReduce(t, s, WriteOrRateChosen{Choice: ChoiceRate})
	require.Equal(t, ScreenRateMyPrompt, s.Current())
	assert.True(t, s.Draft.ProfileCompleted, "leaving WriteOrRate does not clear the flag")

	saved := s.Draft.ToUpdate()
	profile := apiclient.Profile{
		Name:             saved.Name,
		Age:              saved.Age,
		Gender:           saved.Gender,
		Orientation:      saved.Orientation,
		ProfileCompleted: *saved.ProfileCompleted,
	}
	relaunched := mustReduce(t, NewState(), ProfileLoaded{Profile: profile})
	assert.Equal(t, NewNavigationState(ScreenWriteOrRate), relaunched.Nav)
}

func TestReduce_FullWritePath(t *testing.T) {
	s := stateAt(ScreenWriteOrRate)
	s = mustReduce(t, s, WriteOrRateChosen{Choice: ChoiceWrite})
	assert.Equal(t, ScreenPickYourVibe, s.Current())
	s = mustReduce(t, s, VibesSubmitted{Vibes: []string{"Funny"}})
	s = mustReduce(t, s, InterestsSubmitted{Input: "cooking, tennis, writing"})
	s = mustReduce(t, s, UniqueTraitSubmitted{Trait: "fermentation"})
	assert.Equal(t, ScreenProfileCompletion, s.Current())
	assert.False(t, s.Draft.ProfileCompleted)

	s = mustReduce(t, s, ProfileCompletionConfirmed{})
	assert.Equal(t, ScreenPromptResult, s.Current())
	assert.Equal(t, []Screen{ScreenPromptResult}, s.Nav.History)
	assert.True(t, s.Draft.ProfileCompleted)
	assert.Equal(t, []string{"cooking", "tennis", "writing"}, s.Draft.Interests)

	// Back from a replaced screen is a no-op.
	back := mustReduce(t, s, Back{})
	assert.Equal(t, s.Nav, back.Nav)
}

func TestReduce_PromptResultBranches(t *testing.T) {
	s := stateAt(ScreenPromptResult)

	edit := mustReduce(t, s, EditRequested{Prompt: PromptDraft{ID: "p1", Category: "Dating me is like...", ResponseText: "A software update."}})
	assert.Equal(t, ScreenEditPrompt, edit.Current())

	revised := mustReduce(t, edit, PromptRevised{ResponseText: "A patch note."})
	assert.Equal(t, "A patch note.", revised.Prompt.ResponseText)
	assert.Equal(t, "A software update.", edit.Prompt.ResponseText)

	saved := mustReduce(t, revised, EditSaved{Prompt: apiclient.Prompt{ID: "p1", ResponseText: "A patch note.", PromptType: apiclient.PromptTypeEdited}})
	assert.Equal(t, ScreenPromptResult, saved.Current())
	require.Len(t, saved.Prompts, 1)
	assert.Equal(t, apiclient.PromptTypeEdited, saved.Prompts[0].PromptType)

	next := mustReduce(t, s, NextFlowRequested{})
	assert.Equal(t, NewNavigationState(ScreenWriteOrRate), next.Nav)

	gen := mustReduce(t, s, GenerationStarted{})
	assert.Equal(t, ScreenGenerating, gen.Current())
	done := mustReduce(t, gen, GenerationCompleted{Prompts: []apiclient.Prompt{{ID: "g1"}}})
	assert.Equal(t, NewNavigationState(ScreenPromptResult), done.Nav)
	assert.Len(t, done.Prompts, 1)
}

func TestReduce_RatingNextSteps(t *testing.T) {
	s := stateAt(ScreenWriteOrRate)
	s = mustReduce(t, s, WriteOrRateChosen{Choice: ChoiceRate})
	s = mustReduce(t, s, RatingSubmitted{Category: "My simple pleasures", ResponseText: "Coffee at dawn"})
	assert.Equal(t, ScreenRatingResult, s.Current())
	s = mustReduce(t, s, RatingResultAcknowledged{})
	assert.Equal(t, ScreenRatingNextStep, s.Current())

	at := time.UnixMilli(1700000000000)

	improve := mustReduce(t, s, NextStepChosen{Step: NextStepImprove, At: at})
	assert.Equal(t, ScreenEditPrompt, improve.Current())
	require.NotNil(t, improve.Prompt)
	assert.Equal(t, "temp-1700000000000", improve.Prompt.ID)
	assert.True(t, improve.Prompt.IsPlaceholder())
	assert.Equal(t, "My simple pleasures", improve.Prompt.Category)
	assert.Equal(t, "Coffee at dawn", improve.Prompt.ResponseText)

	another := mustReduce(t, s, NextStepChosen{Step: NextStepRateAnother})
	assert.Equal(t, NewNavigationState(ScreenRateMyPrompt), another.Nav)

	writeNew := mustReduce(t, s, NextStepChosen{Step: NextStepWriteNew})
	assert.Equal(t, NewNavigationState(ScreenPickYourVibe), writeNew.Nav)
}

func TestReduce_ImproveWithoutRatingUsesDefaultCategory(t *testing.T) {
	s := stateAt(ScreenRatingResult)
	s = mustReduce(t, s, NextStepChosen{Step: NextStepImprove, At: time.UnixMilli(5)})
	assert.Equal(t, "Selected prompt", s.Prompt.Category)
	assert.Equal(t, "temp-5", s.Prompt.ID)
}

func TestReduce_Hydrate(t *testing.T) {
	tests := []struct {
		name    string
		profile apiclient.Profile
		want    Screen
	}{
		{"completed", apiclient.Profile{Name: strPtr("Jane"), ProfileCompleted: true}, ScreenWriteOrRate},
		{"empty", apiclient.Profile{}, ScreenNameInput},
		{"name only", apiclient.Profile{Name: strPtr("Jane")}, ScreenAgeInput},
		{"no orientation", apiclient.Profile{Name: strPtr("Jane"), Age: intPtr(29), Gender: strPtr("Female")}, ScreenGenderOrientation},
		{"basics done", apiclient.Profile{Name: strPtr("Jane"), Age: intPtr(29), Gender: strPtr("Female"), Orientation: []string{"Male"}}, ScreenPickYourVibe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState().Clone()
			s.Nav = s.Nav.Push(ScreenAgeInput)
			got := mustReduce(t, s, ProfileLoaded{Profile: tt.profile})
			assert.Equal(t, NewNavigationState(tt.want), got.Nav)
		})
	}

	failed := mustReduce(t, stateAt(ScreenWriteOrRate), ProfileLoadFailed{})
	assert.Equal(t, NewNavigationState(ScreenNameInput), failed.Nav)
}

func TestReduce_SettingsAndOverride(t *testing.T) {
	s := stateAt(ScreenAgeInput)
	s = mustReduce(t, s, SettingsOpened{Target: ScreenContactUs})
	assert.Equal(t, ScreenContactUs, s.Current())
	s = mustReduce(t, s, Back{})
	assert.Equal(t, ScreenAgeInput, s.Current())

	_, err := Reduce(s, SettingsOpened{Target: ScreenPromptResult})
	assert.ErrorIs(t, err, ErrInvalidChoice)

	jumped := mustReduce(t, s, Navigate{To: ScreenRateMyPrompt, Replace: true})
	assert.Equal(t, NewNavigationState(ScreenRateMyPrompt), jumped.Nav)
}
