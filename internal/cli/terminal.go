package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"promptly-be/pkg/navigator"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// errQuit ends Run. It is returned when input is exhausted, on Ctrl+C at an
// empty prompt, or when the user types :q.
var errQuit = errors.New("quit")

// TerminalConfig controls where input comes from. A nil In reads the real
// stdin in interactive mode; anything else is read as plain lines.
type TerminalConfig struct {
	In          io.Reader
	HistoryFile string
	Logger      *zap.Logger
}

// Terminal renders the current screen of a navigator.Root as text and turns
// each input line into the matching navigator call.
type Terminal struct {
	root      *navigator.Root
	presenter *Presenter
	rl        *readline.Instance
	logger    *zap.Logger

	// filter is the active RateMyPrompt search.
	filter string
}

func NewTerminal(root *navigator.Root, presenter *Presenter, cfg TerminalConfig) (*Terminal, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rlCfg := &readline.Config{
		Prompt:                 "> ",
		HistoryFile:            cfg.HistoryFile,
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		InterruptPrompt:        "^C",
		EOFPrompt:              ":q",
		UniqueEditLine:         true,
		Stdout:                 presenter.base,
		Stderr:                 presenter.base,
	}
	if cfg.In == nil {
		rlCfg.Stdin = readline.NewCancelableStdin(os.Stdin)
	} else {
		rlCfg.Stdin = io.NopCloser(cfg.In)
		rlCfg.FuncIsTerminal = func() bool { return false }
		rlCfg.FuncMakeRaw = func() error { return nil }
		rlCfg.FuncExitRaw = func() error { return nil }
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	// Alerts from background saves go through readline so they do not
	// clobber a half-typed line.
	presenter.use(rl.Stdout())

	return &Terminal{
		root:      root,
		presenter: presenter,
		rl:        rl,
		logger:    logger,
	}, nil
}

// Close releases the line editor.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

// Run loops until the context is cancelled, input ends, or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		var err error
		if t.root.Mode() == navigator.ModeSignedOut {
			err = t.authStep(ctx)
		} else {
			err = t.mainStep(ctx)
		}

		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, navigator.ErrSessionExpired):
			t.root.Expire()
		case errors.Is(err, navigator.ErrInvalidChoice), errors.Is(err, navigator.ErrUnexpectedEvent):
			t.presenter.Alert("Try again", "That option isn't available here.")
			t.logger.Debug("rejected input", zap.Error(err))
		default:
			// Gate and backend errors were already presented.
			t.logger.Debug("step failed", zap.Error(err))
		}
	}
	return nil
}

// readLine prompts with label and returns the trimmed line. Ctrl+C clears a
// partly typed line and quits at an empty one.
func (t *Terminal) readLine(label string) (string, error) {
	t.rl.SetPrompt(hintStyle.Sprint(label+" >") + " ")
	for {
		line, err := t.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				return "", errQuit
			}
			continue
		case errors.Is(err, io.EOF):
			return "", errQuit
		case err != nil:
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == ":q" || line == ":quit" {
			return "", errQuit
		}
		return line, nil
	}
}

// remember adds line to the history. Only answers on signed-in screens are
// kept; emails and codes never reach the history file.
func (t *Terminal) remember(line string) {
	if line == "" {
		return
	}
	if err := t.rl.SaveHistory(line); err != nil {
		t.logger.Debug("failed to save history", zap.Error(err))
	}
}

func (t *Terminal) heading(title string) {
	t.presenter.printf("\n%s\n", titleStyle.Sprint(title))
}

func (t *Terminal) say(format string, args ...any) {
	t.presenter.printf(format+"\n", args...)
}

func (t *Terminal) hint(text string) {
	t.presenter.printf("%s\n", hintStyle.Sprint(text))
}

func (t *Terminal) authStep(ctx context.Context) error {
	auth := t.root.Auth()

	switch auth.Current() {
	case navigator.ScreenLanding:
		t.heading("Promptly")
		t.say("Need a hand with your dating profile prompts? Let's make one that sounds like you.")
		if _, err := t.readLine("press enter to start"); err != nil {
			return err
		}
		return auth.Skip()

	case navigator.ScreenAuth:
		t.heading("Sign in")
		t.hint("Enter your email, or type 'google' to continue with Google. :back returns.")
		line, err := t.readLine("email")
		if err != nil {
			return err
		}
		switch strings.ToLower(line) {
		case ":back":
			auth.Back()
			return nil
		case "google":
			return t.oauth(ctx, auth)
		}
		return auth.SubmitEmail(ctx, line)

	case navigator.ScreenVerification:
		t.heading("Verification")
		t.hint("Enter the code we emailed you. :back returns.")
		line, err := t.readLine("code")
		if err != nil {
			return err
		}
		if line == ":back" {
			auth.Back()
			return nil
		}
		return auth.SubmitCode(ctx, line)

	case navigator.ScreenThanks:
		t.heading("Thanks for signing up!")
		t.say("Let's make a prompt that sounds like you. Just a few quick questions: your vibe, your interests, what makes you different.")
		if _, err := t.readLine("press enter when ready"); err != nil {
			return err
		}
		auth.Acknowledge()
		return nil
	}
	return nil
}

func (t *Terminal) oauth(ctx context.Context, auth *navigator.AuthFlow) error {
	start, err := auth.StartOAuth(ctx)
	if err != nil {
		return err
	}
	t.say("Open this link in a browser and sign in:\n  %s", start.URL)
	line, err := t.readLine("paste the URL you were redirected to")
	if err != nil {
		return err
	}
	state, code := parseRedirect(line, start.State)
	return auth.CompleteOAuth(ctx, state, code)
}

// parseRedirect pulls state and code from a pasted callback URL. A bare code
// is accepted too, in which case the state from StartOAuth is used.
func parseRedirect(input, fallbackState string) (state, code string) {
	state = fallbackState
	u, err := url.Parse(input)
	if err != nil || u.RawQuery == "" {
		return state, input
	}
	q := u.Query()
	if s := q.Get("state"); s != "" {
		state = s
	}
	return state, q.Get("code")
}
