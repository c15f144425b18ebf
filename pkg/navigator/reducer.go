package navigator

import (
	"errors"
	"fmt"
	"slices"

	"promptly-be/pkg/apiclient"
)

var (
	ErrUnexpectedEvent = errors.New("event not accepted on this screen")
	ErrInvalidChoice   = errors.New("invalid choice")
)

// EntryScreen is where the signed-in flow starts before the profile is
// fetched.
const EntryScreen = ScreenNameInput

// State is everything the signed-in flow owns.
type State struct {
	Nav     NavigationState
	Draft   ProfileDraft
	Prompt  *PromptDraft
	Rating  *RatingDraft
	Prompts []apiclient.Prompt
}

func NewState() State {
	return State{Nav: NewNavigationState(EntryScreen)}
}

func (s State) Current() Screen {
	return s.Nav.Current
}

func (s State) Clone() State {
	out := State{
		Nav:     s.Nav.Clone(),
		Draft:   s.Draft.Clone(),
		Prompts: slices.Clone(s.Prompts),
	}
	if s.Prompt != nil {
		p := *s.Prompt
		out.Prompt = &p
	}
	if s.Rating != nil {
		r := *s.Rating
		out.Rating = &r
	}
	return out
}

// Reduce applies ev to s and returns the next state. It performs no I/O. A
// guard failure returns a *GateError and the state unchanged.
func Reduce(s State, ev Event) (State, error) {
	next := s.Clone()
	if err := apply(&next, ev); err != nil {
		return s, err
	}
	// Landing on either branch point completes the profile; once set it
	// stays set.
	switch next.Nav.Current {
	case ScreenWriteOrRate, ScreenPromptResult:
		next.Draft.ProfileCompleted = true
	}
	return next, nil
}

func unexpected(s *State, ev Event) error {
	return fmt.Errorf("%w: %T on %s", ErrUnexpectedEvent, ev, s.Nav.Current)
}

func apply(s *State, ev Event) error {
	at := s.Nav.Current

	switch e := ev.(type) {
	case Back:
		s.Nav = s.Nav.Back()
		return nil

	case Navigate:
		s.Nav = s.Nav.navigate(e.To, e.Replace)
		return nil

	case ProfileLoaded:
		s.Draft = DraftFromProfile(e.Profile)
		s.Nav = s.Nav.Replace(hydratedScreen(s.Draft))
		return nil

	case ProfileLoadFailed:
		s.Nav = s.Nav.Replace(ScreenNameInput)
		return nil

	case SettingsOpened:
		if e.Target != ScreenAccountSettings && e.Target != ScreenContactUs {
			return fmt.Errorf("%w: settings target %s", ErrInvalidChoice, e.Target)
		}
		if !at.IsMain() {
			return unexpected(s, ev)
		}
		s.Nav = s.Nav.Push(e.Target)
		return nil
	}

	switch at {
	case ScreenNameInput:
		e, ok := ev.(NameSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		name, err := ValidateName(e.Name)
		if err != nil {
			return err
		}
		s.Draft.Name = &name
		s.Nav = s.Nav.Push(ScreenAgeInput)

	case ScreenAgeInput:
		e, ok := ev.(AgeSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		age, err := ParseAge(e.Input)
		if err != nil {
			return err
		}
		s.Draft.Age = &age
		s.Nav = s.Nav.Push(ScreenGenderOrientation)

	case ScreenGenderOrientation:
		e, ok := ev.(GenderOrientationSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		gender, orientation, err := ValidateGenderOrientation(e.Gender, e.Orientation)
		if err != nil {
			return err
		}
		s.Draft.Gender = &gender
		s.Draft.Orientation = orientation
		s.Nav = s.Nav.Push(ScreenWriteOrRate)

	case ScreenWriteOrRate:
		e, ok := ev.(WriteOrRateChosen)
		if !ok {
			return unexpected(s, ev)
		}
		switch e.Choice {
		case ChoiceWrite:
			s.Nav = s.Nav.Push(ScreenPickYourVibe)
		case ChoiceRate:
			s.Nav = s.Nav.Push(ScreenRateMyPrompt)
		default:
			return fmt.Errorf("%w: %q", ErrInvalidChoice, e.Choice)
		}

	case ScreenPickYourVibe:
		e, ok := ev.(VibesSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		vibes, err := ValidateVibes(e.Vibes)
		if err != nil {
			return err
		}
		s.Draft.SelectedTones = vibes
		s.Nav = s.Nav.Push(ScreenEnterInterests)

	case ScreenEnterInterests:
		e, ok := ev.(InterestsSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		interests, err := ParseInterests(e.Input)
		if err != nil {
			return err
		}
		s.Draft.Interests = interests
		s.Nav = s.Nav.Push(ScreenUniqueInterest)

	case ScreenUniqueInterest:
		e, ok := ev.(UniqueTraitSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		trait, err := ValidateUniqueTrait(e.Trait)
		if err != nil {
			return err
		}
		s.Draft.UniqueTrait = &trait
		s.Nav = s.Nav.Push(ScreenProfileCompletion)

	case ScreenProfileCompletion:
		if _, ok := ev.(ProfileCompletionConfirmed); !ok {
			return unexpected(s, ev)
		}
		s.Nav = s.Nav.Replace(ScreenPromptResult)

	case ScreenPromptResult:
		switch e := ev.(type) {
		case EditRequested:
			p := e.Prompt
			s.Prompt = &p
			s.Nav = s.Nav.Push(ScreenEditPrompt)
		case GenerationStarted:
			s.Nav = s.Nav.Push(ScreenGenerating)
		case NextFlowRequested:
			s.Nav = s.Nav.Replace(ScreenWriteOrRate)
		default:
			return unexpected(s, ev)
		}

	case ScreenGenerating:
		switch e := ev.(type) {
		case GenerationCompleted:
			s.Prompts = slices.Clone(e.Prompts)
			s.Nav = s.Nav.Replace(ScreenPromptResult)
		case GenerationFailed:
			s.Nav = s.Nav.Replace(ScreenPromptResult)
		default:
			return unexpected(s, ev)
		}

	case ScreenEditPrompt:
		if s.Prompt == nil {
			return unexpected(s, ev)
		}
		switch e := ev.(type) {
		case PromptRevised:
			s.Prompt.ResponseText = e.ResponseText
		case EditSaved:
			saved := DraftFromPrompt(e.Prompt)
			s.Prompt = &saved
			s.Prompts = upsertPrompt(s.Prompts, e.Prompt)
			s.Nav = s.Nav.Back()
		default:
			return unexpected(s, ev)
		}

	case ScreenRateMyPrompt:
		e, ok := ev.(RatingSubmitted)
		if !ok {
			return unexpected(s, ev)
		}
		category, response, err := ValidateRating(e.Category, e.ResponseText)
		if err != nil {
			return err
		}
		s.Rating = &RatingDraft{Category: category, ResponseText: response, Evaluation: e.Evaluation}
		s.Nav = s.Nav.Push(ScreenRatingResult)

	case ScreenRatingResult, ScreenRatingNextStep:
		switch e := ev.(type) {
		case RatingResultAcknowledged:
			if at != ScreenRatingResult {
				return unexpected(s, ev)
			}
			s.Nav = s.Nav.Push(ScreenRatingNextStep)
		case NextStepChosen:
			return applyNextStep(s, e)
		default:
			return unexpected(s, ev)
		}

	default:
		return unexpected(s, ev)
	}
	return nil
}

func applyNextStep(s *State, e NextStepChosen) error {
	switch e.Step {
	case NextStepImprove:
		p := draftFromRating(s.Rating, e.At)
		s.Prompt = &p
		s.Nav = s.Nav.Push(ScreenEditPrompt)
	case NextStepRateAnother:
		s.Nav = s.Nav.Replace(ScreenRateMyPrompt)
	case NextStepWriteNew:
		s.Nav = s.Nav.Replace(ScreenPickYourVibe)
	default:
		return fmt.Errorf("%w: next step %q", ErrInvalidChoice, e.Step)
	}
	return nil
}

// hydratedScreen picks the first screen whose field is still missing.
func hydratedScreen(d ProfileDraft) Screen {
	switch {
	case d.ProfileCompleted:
		return ScreenWriteOrRate
	case !d.HasName():
		return ScreenNameInput
	case !d.HasAge():
		return ScreenAgeInput
	case !d.HasGenderOrientation():
		return ScreenGenderOrientation
	default:
		return ScreenPickYourVibe
	}
}

// upsertPrompt replaces the prompt with the same id, or prepends it so the
// list stays newest first.
func upsertPrompt(list []apiclient.Prompt, p apiclient.Prompt) []apiclient.Prompt {
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
			return list
		}
	}
	return append([]apiclient.Prompt{p}, list...)
}
