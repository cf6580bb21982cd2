package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/sovrium/sovrium/internal/build"
	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/routes"
	"github.com/sovrium/sovrium/internal/tables"
	"github.com/sovrium/sovrium/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sovrium.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output    string   `short:"o" help:"Output directory for the generated site (overrides config)"`
		Languages []string `short:"l" help:"Restrict generation to these language codes"`
		Report    string   `help:"Write a JSON build report to this path"`
	} `cmd:"" help:"Generate the static site from the application schema"`

	Validate struct{} `cmd:"" help:"Validate the configuration and table definitions without building"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	var cmdErr error
	switch ctx.Command() {
	case "build":
		cmdErr = runBuild()
	case "validate":
		cmdErr = runValidate()
	case "init":
		cmdErr = runInit()
	case "version":
		fmt.Println(version.String())
	default:
		cmdErr = fmt.Errorf("unknown command: %s", ctx.Command())
	}

	if cmdErr != nil {
		adapter := errors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())
		os.Exit(adapter.Report(cmdErr))
	}
}

// setupLogging configures the process-wide logger from the config file's
// logging section, with --verbose forcing debug level.
func setupLogging(lc config.LoggingConfig) {
	level := slog.LevelInfo
	switch config.NormalizeLogLevel(lc.Level) {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.NormalizeLogFormat(lc.Format) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runBuild() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging)

	opts := cfg.Deployment
	if CLI.Build.Output != "" {
		opts.OutputDir = CLI.Build.Output
	}
	if len(CLI.Build.Languages) > 0 {
		opts.Languages = CLI.Build.Languages
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := build.NewBuilder(&cfg.App, opts, slog.Default())
	report, buildErr := builder.Build(ctx)

	if CLI.Build.Report != "" && report != nil {
		if err := report.Persist(CLI.Build.Report); err != nil {
			slog.Error("Failed to write build report", "error", err, "path", CLI.Build.Report)
		}
	}
	return buildErr
}

// runValidate loads the configuration, resolves all routes and compiles the
// table definitions against an in-memory database, reporting the first
// problem found.
func runValidate() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging)

	rts, err := routes.Resolve(&cfg.App, cfg.Deployment)
	if err != nil {
		return err
	}

	if len(cfg.App.Tables) > 0 {
		if err := tables.Verify(context.Background(), cfg.App.Tables); err != nil {
			return err
		}
	}

	slog.Info("Configuration is valid",
		"app", cfg.App.Name,
		"pages", len(cfg.App.Pages),
		"routes", len(rts),
		"tables", len(cfg.App.Tables))
	return nil
}

func runInit() error {
	if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
		return err
	}
	slog.Info("Configuration file created", "path", CLI.Config)
	return nil
}
