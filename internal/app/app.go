package app

import (
	"context"
	"fmt"

	"github.com/kmoretti/marquee/internal/config"
	"github.com/kmoretti/marquee/internal/creds"
	"github.com/kmoretti/marquee/internal/dispatch"
	"github.com/kmoretti/marquee/internal/habitat"
	"github.com/kmoretti/marquee/internal/prefs"
	"github.com/kmoretti/marquee/internal/state"
	"github.com/kmoretti/marquee/internal/ui"
)

// Options configure the Marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/marquee/prefs.toml
	CredsPath  string // empty uses default ~/.config/marquee/credential
	APIBaseURL string // overrides config and environment when set
}

// Env holds the wired application components shared by the TUI and the CLI
// commands.
type Env struct {
	Config     config.Config
	Creds      *creds.Store
	Client     *habitat.Client
	Store      *state.Store
	Dispatcher *dispatch.Dispatcher
}

// Bootstrap builds the component chain from configuration through
// dispatcher.
func Bootstrap(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}

	credStore := creds.NewStore(opts.CredsPath)

	client, err := habitat.NewClient(cfg.APIBaseURL, credStore)
	if err != nil {
		return nil, fmt.Errorf("init habitat client: %w", err)
	}

	store := state.NewStore(credStore.Token())

	return &Env{
		Config:     cfg,
		Creds:      credStore,
		Client:     client,
		Store:      store,
		Dispatcher: dispatch.New(client, store, credStore),
	}, nil
}

// Run boots the Marquee TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts)
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	return ui.Run(ui.Options{
		Context:    ctx,
		Dispatcher: env.Dispatcher,
		Store:      env.Store,
		BaseURL:    env.Config.APIBaseURL,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
}
