// Package cli builds the todo command tree. With no subcommand the
// interactive list starts; subcommands script the same store.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/wyw/internal/config"
	"github.com/idilsaglam/wyw/internal/headline"
	"github.com/idilsaglam/wyw/internal/logging"
	"github.com/idilsaglam/wyw/internal/reveal"
	"github.com/idilsaglam/wyw/internal/store/jsonstore"
	"github.com/idilsaglam/wyw/internal/todo"
	"github.com/idilsaglam/wyw/internal/tui"
	"github.com/idilsaglam/wyw/internal/ui"
)

// Flags holds the global flag values.
type Flags struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	LogFile    string
	Theme      string
	NoColor    bool
}

// App is what subcommands share once Before has run.
type App struct {
	Config *config.Config
	Store  *todo.Store
	Out    io.Writer
	Err    io.Writer
}

// New returns the root command. Exit codes are carried by cli.ExitCoder
// errors; the caller decides how to exit.
func New(version string) *cli.Command {
	var (
		flags     = &Flags{}
		app       = &App{}
		logCloser func()
	)

	root := &cli.Command{
		Name:      "todo",
		Usage:     "a tiny todo list for the terminal",
		UsageText: "todo [global options] [command [command options]]",
		Description: `Run 'todo' with no arguments to open the interactive list.
Items are numbered as 'todo ls' shows them: pending first, then done.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml or .toml)",
				Sources:     cli.EnvVars("TODO_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory holding the saved list",
				Sources:     cli.EnvVars("TODO_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("TODO_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/todo.log)",
				Sources:     cli.EnvVars("TODO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "output theme (classic, neon, mono)",
				Sources:     cli.EnvVars("TODO_THEME"),
				Destination: &flags.Theme,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Sources:     cli.EnvVars("TODO_NO_COLOR"),
				Destination: &flags.NoColor,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "todo.log")
			}
			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Theme != "" {
				cfg.Theme = flags.Theme
				if err := cfg.Validate(); err != nil {
					return ctx, cli.Exit(err.Error(), 2)
				}
			}
			ui.SetTheme(cfg.Theme)
			ui.SetColorForcing(false, flags.NoColor)

			s := todo.New(jsonstore.New(cfg.DataDir),
				todo.WithKey(cfg.Storage.Key),
				todo.WithPageSize(cfg.Page.Initial, cfg.Page.Increment),
				todo.WithLogger(logging.Component("store")),
			)
			if err := s.Load(); err != nil {
				return ctx, err
			}

			*app = App{
				Config: cfg,
				Store:  s,
				Out:    c.Root().Writer,
				Err:    c.Root().ErrWriter,
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Commands: []*cli.Command{
			lsCmd(app),
			addCmd(app),
			doneCmd(app),
			rmCmd(app),
			editCmd(app),
			mvCmd(app),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command %q. Run 'todo --help' for usage", c.Args().First()), 2)
			}
			if !ui.IsTTY(os.Stdout) {
				printList(app.Out, app.Store, false, 0)
				return nil
			}
			return runTUI(ctx, app)
		},
		ExitErrHandler: quietExit,
	}
	for _, sub := range root.Commands {
		sub.ExitErrHandler = quietExit
	}

	return root
}

// quietExit keeps cli from exiting the process; main owns the exit code.
func quietExit(context.Context, *cli.Command, error) {}

func runTUI(ctx context.Context, app *App) error {
	cfg := app.Config

	h := headline.New(cfg.Headline.Labels, cfg.Headline.Interval)
	h.Suffix = cfg.Headline.Suffix

	return tui.Run(ctx, app.Store, tui.Options{
		Headline: h,
		Reveal:   reveal.New(cfg.Reveal.Threshold),
		Logger:   logging.Component("tui"),
	})
}
