package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/aeris/internal/app"
	"github.com/okian/aeris/internal/config"
	"github.com/okian/aeris/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// runtimeEnv is what every subcommand needs once flags are parsed.
type runtimeEnv struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:   "aeris",
		Short: "Aeris - flight status with live position and airport weather",
		Long: `Aeris looks up a flight on AviationStack, adds its live position from the
OpenSky Network and, in the web API, the METAR of both airports from CheckWX.

Credentials come from AVIATIONSTACK_API_KEY and CHECKWX_API_KEY (or their
AERIS_ prefixed forms), a .env file, or the YAML file given with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&env.configPath, "config", "", "YAML config file (same as AERIS_CONFIG)")

	root.AddCommand(newServeCmd(env))
	root.AddCommand(newSearchCmd(env))
	root.AddCommand(newInteractiveCmd(env))
	return root
}

// setup initializes logging and loads configuration. Logs always go to
// stderr so stdout carries only command output.
func (e *runtimeEnv) setup(cmd *cobra.Command) error {
	stderr := cmd.ErrOrStderr()
	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.Load(cmd.Context(), config.WithFile(e.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithOutput(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	e.cfg = cfg
	e.log = log
	return nil
}

// startService builds and starts the flight service from the loaded config.
func (e *runtimeEnv) startService(ctx context.Context) (*app.Service, error) {
	svc := app.New(
		app.WithConfig(e.cfg),
		app.WithLogger(e.log),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}
