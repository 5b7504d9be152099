// Package cli defines the marquee command tree. The bare command launches
// the TUI; subcommands are one-shot operations suitable for scripting, with
// an optional --json output mode.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kmoretti/marquee/internal/app"
)

var (
	apiURL     string
	configPath string
	prefsPath  string
	credsPath  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Terminal client for the Habitat movie API",
	Long: `marquee is a terminal client for the Habitat movie API.

Run it without arguments to browse movies interactively. Subcommands
perform single operations and print their results, which makes them
usable from scripts.

Environment Variables:
  MARQUEE_API_BASE_URL  API base URL (default: http://127.0.0.1:8080)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()
		return app.Run(ctx, appOptions())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides MARQUEE_API_BASE_URL and config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/marquee/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "prefs file path (default ~/.config/marquee/prefs.toml)")
	rootCmd.PersistentFlags().StringVar(&credsPath, "credential", "", "credential file path (default ~/.config/marquee/credential)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		CredsPath:  credsPath,
		APIBaseURL: apiURL,
	}
}

// bootstrap wires the shared component chain for one-shot commands.
func bootstrap() (*app.Env, error) {
	env, err := app.Bootstrap(appOptions())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return env, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// run executes fn with a signal-aware context and converts the exit code.
func run(fn func(ctx context.Context) int) {
	ctx, cancel := signalContext()
	defer cancel()

	if code := fn(ctx); code != 0 {
		os.Exit(code)
	}
}
