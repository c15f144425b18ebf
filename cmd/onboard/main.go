package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"promptly-be/internal/cli"
	"promptly-be/internal/pkg/logger"
	"promptly-be/pkg/apiclient"
	"promptly-be/pkg/navigator"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		logFile string
		history string
		token   string
		timeout time.Duration
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Walk through Promptly onboarding in the terminal",
		Long: "onboard signs you in against the Promptly API, collects your profile " +
			"one question at a time and lets you generate, edit and rate prompts.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				color.NoColor = true
			}

			fileLogger := logger.NewIsolatedLogger(logFile)
			defer fileLogger.Sync()
			zl := fileLogger.Zap()

			httpClient := &http.Client{Timeout: timeout}
			identity := apiclient.NewBackendIdentity(apiURL,
				apiclient.WithLogger(zl),
				apiclient.WithHTTPClient(httpClient),
			)
			if token != "" {
				identity.SetSession(token)
			}
			client := apiclient.New(apiURL, identity,
				apiclient.WithLogger(zl),
				apiclient.WithHTTPClient(httpClient),
			)

			presenter := cli.NewPresenter(cmd.OutOrStdout())
			root := navigator.NewRoot(identity, presenter, func() *navigator.Navigator {
				return navigator.New(client, presenter,
					navigator.WithSession(identity),
					navigator.WithNavigatorLogger(zl),
				)
			}, zl)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), color.HiBlackString("Connected to %s. Type :q to quit.", apiURL))
			term, err := cli.NewTerminal(root, presenter, cli.TerminalConfig{
				In:          terminalInput(cmd),
				HistoryFile: history,
				Logger:      zl,
			})
			if err != nil {
				return err
			}
			defer term.Close()

			return term.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", envOr("PROMPTLY_API_URL", "http://localhost:3000/api"), "base URL of the Promptly API")
	cmd.Flags().StringVar(&logFile, "log-file", "logs/onboard.log", "where client logs are written")
	cmd.Flags().StringVar(&history, "history-file", defaultHistoryFile(), "where answers are remembered for arrow-key recall; empty disables it")
	cmd.Flags().StringVar(&token, "token", "", "reuse an existing session token instead of signing in")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "per-request timeout; AI calls can be slow")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.SetContext(context.Background())
	return cmd
}

// terminalInput returns nil for the real stdin so the line editor runs
// interactively; an input set with cmd.SetIn is read as plain lines.
func terminalInput(cmd *cobra.Command) io.Reader {
	if in := cmd.InOrStdin(); in != os.Stdin {
		return in
	}
	return nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".promptly_history")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
