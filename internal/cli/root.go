package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log zerolog.Logger

	closeLog func() error
	offline  bool
	noColor  bool

	stdout, stderr io.Writer
}

// Run executes the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{v: config.New(), log: zerolog.Nop(), stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		ui.Hint(stderr, "Hint: run `tada help` for usage")
		return 2
	}
	return 1
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "A tiny todo list, seeded from a remote endpoint",
		Long: `tada shows a todo list fetched once from an HTTP endpoint (or a local seed)
and lets you add, edit, toggle and delete items for the length of the session.
Nothing is written back.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.String("url", fetch.DefaultURL, "endpoint serving the todo array")
	pf.Duration("timeout", 0, "HTTP timeout for the fetch (0 = none)")
	pf.Int("id-floor", 0, "lowest id assigned to new items (default from config)")
	pf.String("seed", "", "JSON seed file used with --offline")
	pf.String("theme", "classic", "output theme: classic, neon, mono")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file")
	pf.BoolVar(&a.offline, "offline", false, "skip the fetch and start from the seed")
	pf.BoolVar(&a.noColor, "no-color", false, "disable ANSI colors")

	for key, flag := range map[string]string{
		"fetch.url":       "url",
		"fetch.timeout":   "timeout",
		"todos.seed_file": "seed",
		"ui.theme":        "theme",
		"log.level":       "log-level",
		"log.file":        "log-file",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newTUICommand(a),
		newListCommand(a),
		newFetchCommand(a),
		newVersionCommand(a),
	)
	return root
}

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (default)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, "tada", Version)
			return nil
		},
	}
}

// setup loads config and builds the logger. Interactive runs never log to
// the terminal.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("id-floor"); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt("id-floor")
		if n < 0 {
			return usageError{fmt.Errorf("--id-floor must be >= 0, got %d", n)}
		}
		cfg.Todos.IDFloor = n
	}
	a.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if a.noColor {
		ui.SetColorForcing(false, true)
	}

	var fallback io.Writer = a.stderr
	if cmd.Name() == "tada" || cmd.Name() == "tui" {
		fallback = nil
	}
	log, closeFn, err := logging.New(cfg.Log.Level, cfg.Log.File, fallback)
	if err != nil {
		return usageError{err}
	}
	a.log, a.closeLog = log, closeFn
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// loader returns the configured remote read, or nil when offline.
func (a *app) loader() fetch.Loader[[]model.Item] {
	if a.offline {
		return nil
	}
	c := fetch.NewClient(
		fetch.WithHTTPClient(&http.Client{Timeout: a.cfg.Fetch.Timeout}),
		fetch.WithUserAgent(a.cfg.Fetch.UserAgent),
		fetch.WithLogger(a.log),
	)
	return c.Todos(a.cfg.Fetch.URL)
}

func (a *app) seed() ([]model.Item, error) {
	items, err := jsonstore.Load(a.cfg.Todos.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return items, nil
}

func (a *app) runTUI(ctx context.Context) error {
	opt := tui.Options{
		Loader:  a.loader(),
		IDFloor: a.cfg.Todos.IDFloor,
		Log:     a.log,
	}
	if opt.Loader == nil {
		items, err := a.seed()
		if err != nil {
			return err
		}
		opt.Seed = items
	}
	return tui.Run(ctx, opt)
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
