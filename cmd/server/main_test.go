package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/janisto/devops-greeter/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HOST", "PORT", "DEBUG", "LOG_LEVEL", config.EnvFileVar} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv %s: %v", key, err)
		}
	}
	t.Chdir(t.TempDir())
}

func TestRunRejectsInvalidPort(t *testing.T) {
	clearEnv(t)

	err := run(context.Background(), []string{"server", "--port", "http"})
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	if !errors.Is(err, config.ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	clearEnv(t)

	if err := run(context.Background(), []string{"server", "--no-such-flag"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRunServesUntilContextDone(t *testing.T) {
	clearEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := run(ctx, []string{"server", "--host", "127.0.0.1", "--port", "0"}); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("shutdown took too long: %v", elapsed)
	}
}

func TestRunFailsOnMissingExplicitEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvFileVar, "does-not-exist.env")

	err := run(context.Background(), []string{"server", "--port", "0"})
	if err == nil || !strings.Contains(err.Error(), "does-not-exist.env") {
		t.Fatalf("expected env file error, got %v", err)
	}
}

func TestVersionVariable(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version 'dev', got %q", Version)
	}
}
