// Package app wires configuration, logging and the measurement engine into
// the runnable application behind cmd/certmeter.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/cli"
	"github.com/certlab/certmeter/internal/config"
	apperrors "github.com/certlab/certmeter/internal/errors"
	"github.com/certlab/certmeter/internal/logging"
	"github.com/certlab/certmeter/internal/server"
	"github.com/certlab/certmeter/internal/tui"
	"github.com/certlab/certmeter/internal/ui"
)

// Application represents the certmeter application instance.
type Application struct {
	Config    config.AppConfig
	Distances *distance.ProviderFactory
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithDistanceFactory sets a custom distance provider registry.
func WithDistanceFactory(f *distance.ProviderFactory) AppOption {
	return func(a *Application) { a.Distances = f }
}

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Distances == nil {
		app.Distances = distance.NewDefaultFactory()
	}
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}

	programName := "certmeter"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	if a.Config.Serve {
		return a.runServe(ctx)
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	if a.Config.Interactive {
		return a.runREPL()
	}

	if a.Config.CoordinationMode() {
		return a.runCoordination(out)
	}

	return a.runConsistency(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Distances.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServe runs the HTTP measurement API until interrupted.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(a.Config.Addr, Version, a.Logger,
		server.WithDistanceFactory(a.Distances))
	if err := srv.Run(ctx); err != nil {
		a.Logger.Error("server terminated", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, a.Distances, Version)
}

// runREPL starts the interactive measurement console on stdin/stdout.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Distances, cli.REPLConfig{
		DefaultProvider: a.Config.Distance,
		DefaultPattern:  a.Config.Pattern,
		Timeout:         a.Config.Timeout,
		AgentID:         a.Config.AgentID,
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
