package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"promptly-be/pkg/apiclient"
	"promptly-be/pkg/navigator"
)

func (t *Terminal) mainStep(ctx context.Context) error {
	n, err := t.root.Main(ctx)
	if err != nil {
		return err
	}

	screen := n.Current()
	t.render(n, screen)

	line, err := t.readLine(strings.ToLower(screen.String()))
	if err != nil {
		return err
	}
	t.remember(line)
	if handled, err := t.global(ctx, n, screen, line); handled {
		return err
	}
	return t.handle(ctx, n, screen, line)
}

// global handles the commands accepted on every main screen.
func (t *Terminal) global(ctx context.Context, n *navigator.Navigator, screen navigator.Screen, line string) (bool, error) {
	switch line {
	case ":back":
		if !screen.HasBack() {
			return true, nil
		}
		return true, n.Dispatch(ctx, navigator.Back{})
	case ":settings":
		return true, n.Dispatch(ctx, navigator.SettingsOpened{Target: navigator.ScreenAccountSettings})
	case ":contact":
		return true, n.Dispatch(ctx, navigator.SettingsOpened{Target: navigator.ScreenContactUs})
	case ":signout":
		return true, t.root.SignOut(ctx)
	}
	return false, nil
}

func (t *Terminal) render(n *navigator.Navigator, screen navigator.Screen) {
	s := n.State()

	switch screen {
	case navigator.ScreenNameInput:
		t.heading("What's your name?")
	case navigator.ScreenAgeInput:
		t.heading("How old are you?")
	case navigator.ScreenGenderOrientation:
		t.heading("Gender and who you're interested in")
		t.say(numbered(navigator.GenderOptions))
		t.hint("Answer as: <gender>; <interested in, comma separated>. Numbers work too, e.g. 2; 1,3")
	case navigator.ScreenWriteOrRate:
		t.heading("Need a hand with your prompt?")
		t.say("  1. Write a response for me\n  2. Rate my response")
	case navigator.ScreenPickYourVibe:
		t.heading("Pick your vibe")
		t.say(numbered(navigator.VibeOptions))
		t.hint("Choose one or more, comma separated.")
	case navigator.ScreenEnterInterests:
		t.heading("What do you enjoy?")
		t.hint(fmt.Sprintf("At least %d things, comma separated. E.g. I love cooking, tennis, writing", navigator.MinInterestCount))
	case navigator.ScreenUniqueInterest:
		t.heading("Tell us something specific you love")
		t.hint("Oddly specific, low-key nerdy, or delightfully random.")
	case navigator.ScreenProfileCompletion:
		name := "there"
		if s.Draft.Name != nil {
			name = *s.Draft.Name
		}
		t.heading(fmt.Sprintf("Perfect, %s!", name))
		t.say("We'll use AI to write three responses for you. You can improve or change them after.")
	case navigator.ScreenPromptResult:
		t.heading("Your prompts")
		t.renderPrompts(s.Prompts)
		t.hint("g [n|category] generate, e <n> edit, c <n> copy, r refresh, n next")
	case navigator.ScreenEditPrompt:
		t.heading("Edit prompt")
		if s.Prompt != nil {
			t.say("%s\n  %s", s.Prompt.Category, s.Prompt.ResponseText)
		}
		t.hint("s [text] save, a <feedback> ask AI to revise, :back cancel")
	case navigator.ScreenRateMyPrompt:
		t.heading("Rate my response")
		t.say(numbered(navigator.SearchPrompts(t.filter)))
		t.hint("Pick a prompt by number, /text to search, or type your own prompt.")
	case navigator.ScreenRatingResult:
		t.heading("Your rating")
		if s.Rating != nil {
			t.renderEvaluation(s.Rating.Evaluation)
		}
	case navigator.ScreenRatingNextStep:
		t.heading("What next?")
		t.say("  1. Improve my response\n  2. Rate another response\n  3. Write one for me")
	case navigator.ScreenAccountSettings:
		t.heading("Account settings")
		t.hint(":signout signs out, :back returns")
	case navigator.ScreenContactUs:
		t.heading("Contact us")
		t.say("Something not working? Or just want to say hi? Hit us up.")
	}
}

func (t *Terminal) handle(ctx context.Context, n *navigator.Navigator, screen navigator.Screen, line string) error {
	switch screen {
	case navigator.ScreenNameInput:
		return n.Dispatch(ctx, navigator.NameSubmitted{Name: line})

	case navigator.ScreenAgeInput:
		return n.Dispatch(ctx, navigator.AgeSubmitted{Input: line})

	case navigator.ScreenGenderOrientation:
		gender, orientation, _ := strings.Cut(line, ";")
		return n.Dispatch(ctx, navigator.GenderOrientationSubmitted{
			Gender:      pickOne(navigator.GenderOptions, gender),
			Orientation: pickMany(navigator.OrientationOptions, orientation),
		})

	case navigator.ScreenWriteOrRate:
		choice := navigator.WriteOrRateChoice(strings.ToLower(line))
		switch line {
		case "1":
			choice = navigator.ChoiceWrite
		case "2":
			choice = navigator.ChoiceRate
		}
		return n.Dispatch(ctx, navigator.WriteOrRateChosen{Choice: choice})

	case navigator.ScreenPickYourVibe:
		return n.Dispatch(ctx, navigator.VibesSubmitted{Vibes: pickMany(navigator.VibeOptions, line)})

	case navigator.ScreenEnterInterests:
		return n.Dispatch(ctx, navigator.InterestsSubmitted{Input: line})

	case navigator.ScreenUniqueInterest:
		return n.Dispatch(ctx, navigator.UniqueTraitSubmitted{Trait: line})

	case navigator.ScreenProfileCompletion:
		if err := n.Dispatch(ctx, navigator.ProfileCompletionConfirmed{}); err != nil {
			return err
		}
		return n.GeneratePrompts(ctx, navigator.PromptCatalogue[0])

	case navigator.ScreenPromptResult:
		return t.promptResult(ctx, n, line)

	case navigator.ScreenEditPrompt:
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "s":
			if arg == "" {
				if p := n.State().Prompt; p != nil {
					arg = p.ResponseText
				}
			}
			return n.SaveEdit(ctx, arg)
		case "a":
			return n.RevisePrompt(ctx, arg)
		}
		return fmt.Errorf("%w: %q", navigator.ErrInvalidChoice, line)

	case navigator.ScreenRateMyPrompt:
		return t.rate(ctx, n, line)

	case navigator.ScreenRatingResult:
		return n.Dispatch(ctx, navigator.RatingResultAcknowledged{})

	case navigator.ScreenRatingNextStep:
		step := navigator.NextStep(line)
		switch line {
		case "1":
			step = navigator.NextStepImprove
		case "2":
			step = navigator.NextStepRateAnother
		case "3":
			step = navigator.NextStepWriteNew
		}
		return n.NextStep(ctx, step)

	case navigator.ScreenAccountSettings, navigator.ScreenContactUs:
		if line != "" {
			t.say("%s", okStyle.Sprint("Thanks for contacting us! We'll be in touch."))
		}
		return nil
	}
	return nil
}

func (t *Terminal) promptResult(ctx context.Context, n *navigator.Navigator, line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	prompts := n.State().Prompts

	switch cmd {
	case "g":
		category := navigator.PromptCatalogue[0]
		if arg != "" {
			category = pickOne(navigator.PromptCatalogue, arg)
		}
		return n.GeneratePrompts(ctx, category)
	case "e", "c":
		i, err := index(arg, len(prompts))
		if err != nil {
			return err
		}
		if cmd == "e" {
			return n.Dispatch(ctx, navigator.EditRequested{Prompt: navigator.DraftFromPrompt(prompts[i])})
		}
		t.say("%s\n  %s", okStyle.Sprint("Copied:"), prompts[i].ResponseText)
		return n.RecordUsage(ctx, prompts[i].ID)
	case "r":
		return n.LoadPrompts(ctx)
	case "n":
		return n.Dispatch(ctx, navigator.NextFlowRequested{})
	}
	return fmt.Errorf("%w: %q", navigator.ErrInvalidChoice, line)
}

func (t *Terminal) rate(ctx context.Context, n *navigator.Navigator, line string) error {
	if q, ok := strings.CutPrefix(line, "/"); ok {
		t.filter = q
		return nil
	}
	category := pickOne(navigator.SearchPrompts(t.filter), line)
	answer, err := t.readLine("your response")
	if err != nil {
		return err
	}
	if err := n.SubmitRating(ctx, category, answer); err != nil {
		return err
	}
	t.filter = ""
	return nil
}

func (t *Terminal) renderPrompts(prompts []apiclient.Prompt) {
	if len(prompts) == 0 {
		t.hint("No prompts yet.")
		return
	}
	for i, p := range prompts {
		t.say("%d. %s\n   %s", i+1, p.Category, p.ResponseText)
	}
}

func (t *Terminal) renderEvaluation(ev *apiclient.Evaluation) {
	if ev == nil {
		t.hint("No evaluation.")
		return
	}
	t.say("%s %s", scoreStyle.Sprint(ev.Score), ev.Label)
	for _, s := range ev.Suggestions {
		t.say("  - %s: %s", s.Title, s.Body)
	}
}

func numbered(options []string) string {
	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
	}
	return strings.TrimRight(b.String(), "\n")
}

// pickOne resolves a 1-based number or a case-insensitive match against
// options. Anything else is returned as typed so the screen guard can reject
// it.
func pickOne(options []string, input string) string {
	input = strings.TrimSpace(input)
	if i, err := strconv.Atoi(input); err == nil && i >= 1 && i <= len(options) {
		return options[i-1]
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o
		}
	}
	return input
}

func pickMany(options []string, input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if v := pickOne(options, part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func index(input string, n int) (int, error) {
	i, err := strconv.Atoi(input)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: no prompt %q", navigator.ErrInvalidChoice, input)
	}
	return i - 1, nil
}
