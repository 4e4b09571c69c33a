// Package config resolves listener, debug and logging settings from flags,
// environment variables and an optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"

	// EnvFileVar names the variable that points at the dotenv file.
	EnvFileVar = "ENV_FILE"
)

var (
	ErrEmptyHost       = errors.New("host must not be empty")
	ErrInvalidPort     = errors.New("port must be a number between 0 and 65535")
	ErrInvalidLogLevel = errors.New("log level must be one of debug, info, warn, error")
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds process settings.
type Config struct {
	Host     string
	Port     string
	Debug    bool
	LogLevel string
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}
}

// Flags returns CLI flags bound to c. Each flag also reads its environment variable.
func (c *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "Interface to bind",
			Value:       DefaultHost,
			Destination: &c.Host,
			Sources:     cli.EnvVars("HOST"),
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "TCP port to listen on",
			Value:       DefaultPort,
			Destination: &c.Port,
			Sources:     cli.EnvVars("PORT"),
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Expose panic details in error responses, serve API docs and log at debug level",
			Value:       false,
			Destination: &c.Debug,
			Sources:     cli.EnvVars("DEBUG"),
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       DefaultLogLevel,
			Destination: &c.LogLevel,
			Sources:     cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Host == "" {
		return ErrEmptyHost
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Addr is the host:port pair handed to the listener.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// EffectiveLogLevel is LogLevel, raised to debug when Debug is on.
func (c Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// LoadEnvFile reads KEY=VALUE pairs from the file named by ENV_FILE, or .env
// when unset, into the process environment. Variables already set win.
// A missing default file is not an error; a missing explicit file is.
func LoadEnvFile() (string, error) {
	path, explicit := os.LookupEnv(EnvFileVar)
	if !explicit || path == "" {
		path = DefaultEnvFile
		explicit = false
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return path, fmt.Errorf("load env file %s: %w", path, err)
	}
	return path, nil
}
