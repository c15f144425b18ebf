package navigator

// Screen names one step of the onboarding flow.
type Screen string

const (
	// Signed-out flow.
	ScreenLanding      Screen = "Landing"
	ScreenAuth         Screen = "Auth"
	ScreenVerification Screen = "Verification"
	ScreenThanks       Screen = "Thanks"

	// Signed-in flow.
	ScreenNameInput         Screen = "NameInput"
	ScreenAgeInput          Screen = "AgeInput"
	ScreenGenderOrientation Screen = "GenderOrientation"
	ScreenWriteOrRate       Screen = "WriteOrRate"
	ScreenPickYourVibe      Screen = "PickYourVibe"
	ScreenEnterInterests    Screen = "EnterInterests"
	ScreenUniqueInterest    Screen = "UniqueInterest"
	ScreenProfileCompletion Screen = "ProfileCompletion"
	ScreenPromptResult      Screen = "PromptResult"
	ScreenEditPrompt        Screen = "EditPrompt"
	ScreenGenerating        Screen = "Generating"
	ScreenRateMyPrompt      Screen = "RateMyPrompt"
	ScreenRatingResult      Screen = "RatingResult"
	ScreenRatingNextStep    Screen = "RatingNextStep"
	ScreenAccountSettings   Screen = "AccountSettings"
	ScreenContactUs         Screen = "ContactUs"
)

// MainScreens lists every screen of the signed-in flow in wizard order.
var MainScreens = []Screen{
	ScreenNameInput,
	ScreenAgeInput,
	ScreenGenderOrientation,
	ScreenWriteOrRate,
	ScreenPickYourVibe,
	ScreenEnterInterests,
	ScreenUniqueInterest,
	ScreenProfileCompletion,
	ScreenPromptResult,
	ScreenEditPrompt,
	ScreenGenerating,
	ScreenRateMyPrompt,
	ScreenRatingResult,
	ScreenRatingNextStep,
	ScreenAccountSettings,
	ScreenContactUs,
}

func (s Screen) String() string {
	return string(s)
}

func (s Screen) IsSignedOut() bool {
	switch s {
	case ScreenLanding, ScreenAuth, ScreenVerification, ScreenThanks:
		return true
	}
	return false
}

func (s Screen) IsMain() bool {
	for _, m := range MainScreens {
		if m == s {
			return true
		}
	}
	return false
}

// HasBack reports whether the screen offers a back affordance. The first
// question and the generating spinner do not.
func (s Screen) HasBack() bool {
	switch s {
	case ScreenLanding, ScreenNameInput, ScreenGenerating:
		return false
	}
	return true
}
