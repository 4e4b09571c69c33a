package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/janisto/devops-greeter/internal/config"
	applog "github.com/janisto/devops-greeter/internal/platform/logging"
	"github.com/janisto/devops-greeter/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args)
	stop()
	if syncErr := applog.Sync(); syncErr != nil {
		applog.LogError(context.Background(), "logger sync error", syncErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// run parses configuration from args and the environment and serves until ctx is done.
func run(ctx context.Context, args []string) error {
	envFile, envErr := config.LoadEnvFile()
	cfg := config.Default()

	cmd := &cli.Command{
		Name:    "server",
		Usage:   "Serve the greeting and health endpoints",
		Version: Version,
		Flags:   cfg.Flags(),
		Action: func(ctx context.Context, _ *cli.Command) error {
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := applog.SetLevel(cfg.EffectiveLogLevel()); err != nil {
				return err
			}
			if err := applog.Err(); err != nil {
				return fmt.Errorf("logger init: %w", err)
			}
			if envFile != "" {
				applog.LogInfo(ctx, "loaded env file", zap.String("path", envFile))
			}
			if cfg.Debug {
				applog.LogWarn(ctx, "debug mode enabled; panic details are returned to clients")
			}
			return server.New(cfg, Version).Run(ctx)
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		applog.LogError(ctx, "server failed", err)
		return err
	}
	return nil
}
