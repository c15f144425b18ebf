package navigator

import (
	"time"

	"promptly-be/pkg/apiclient"
)

// Event is an input to Reduce. Each concrete event is accepted only on the
// screens that own it.
type Event interface {
	event()
}

// WriteOrRateChoice is the branch picked on WriteOrRate.
type WriteOrRateChoice string

const (
	ChoiceWrite WriteOrRateChoice = "write"
	ChoiceRate  WriteOrRateChoice = "rate"
)

// NextStep is the follow-up picked on RatingNextStep.
type NextStep string

const (
	NextStepImprove     NextStep = "improve"
	NextStepRateAnother NextStep = "rate_another"
	NextStepWriteNew    NextStep = "write_new"
)

type (
	NameSubmitted struct{ Name string }

	// AgeSubmitted carries the raw text of the age field.
	AgeSubmitted struct{ Input string }

	GenderOrientationSubmitted struct {
		Gender      string
		Orientation []string
	}

	WriteOrRateChosen struct{ Choice WriteOrRateChoice }

	VibesSubmitted struct{ Vibes []string }

	// InterestsSubmitted carries the raw comma or newline separated list.
	InterestsSubmitted struct{ Input string }

	UniqueTraitSubmitted struct{ Trait string }

	ProfileCompletionConfirmed struct{}

	GenerationStarted struct{}

	GenerationCompleted struct{ Prompts []apiclient.Prompt }

	GenerationFailed struct{}

	NextFlowRequested struct{}

	EditRequested struct{ Prompt PromptDraft }

	PromptRevised struct{ ResponseText string }

	// EditSaved carries the canonical record returned by the save, which
	// supersedes a placeholder draft.
	EditSaved struct{ Prompt apiclient.Prompt }

	RatingSubmitted struct {
		Category     string
		ResponseText string
		Evaluation   *apiclient.Evaluation
	}

	RatingResultAcknowledged struct{}

	// NextStepChosen carries the time used for the placeholder prompt id so
	// the reducer stays pure.
	NextStepChosen struct {
		Step NextStep
		At   time.Time
	}

	SettingsOpened struct{ Target Screen }

	Back struct{}

	ProfileLoaded struct{ Profile apiclient.Profile }

	ProfileLoadFailed struct{}

	// Navigate jumps anywhere, bypassing guards. Developer override only.
	Navigate struct {
		To      Screen
		Replace bool
	}
)

func (NameSubmitted) event()              {}
func (AgeSubmitted) event()               {}
func (GenderOrientationSubmitted) event() {}
func (WriteOrRateChosen) event()          {}
func (VibesSubmitted) event()             {}
func (InterestsSubmitted) event()         {}
func (UniqueTraitSubmitted) event()       {}
func (ProfileCompletionConfirmed) event() {}
func (GenerationStarted) event()          {}
func (GenerationCompleted) event()        {}
func (GenerationFailed) event()           {}
func (NextFlowRequested) event()          {}
func (EditRequested) event()              {}
func (PromptRevised) event()              {}
func (EditSaved) event()                  {}
func (RatingSubmitted) event()            {}
func (RatingResultAcknowledged) event()   {}
func (NextStepChosen) event()             {}
func (SettingsOpened) event()             {}
func (Back) event()                       {}
func (ProfileLoaded) event()              {}
func (ProfileLoadFailed) event()          {}
func (Navigate) event()                   {}
