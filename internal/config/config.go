// Package config manages environment variables.
//
// It reads variables from the process environment (optionally
// seeded from a `.env` file), loads them into structured Go
// types, and validates that required values are present so they
// can be reused across the application runtime.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Env vars are read with the POKEDEX_ prefix and mapped into nested
// fields using "." as the key delimiter, e.g. POKEDEX_SERVER.PORT ->
// server.port -> Config.Server.Port.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Aggregate     AggregateConfig      `koanf:"aggregate"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AggregateConfig tunes the pokemon/type aggregation fan-out.
//
// MaxConcurrency caps how many type lookups run at once; unset
// defaults to 8, -1 means unbounded. FailurePolicy decides what a
// single failed type lookup does to the whole aggregation:
// "fail_fast" fails the request, "partial" keeps the document with an
// empty type list.
type AggregateConfig struct {
	MaxConcurrency int           `koanf:"max_concurrency" validate:"min=-1"`
	Timeout        time.Duration `koanf:"timeout"`
	FailurePolicy  string        `koanf:"failure_policy" validate:"omitempty,oneof=fail_fast partial"`
}

func (a *AggregateConfig) applyDefaults() {
	if a.MaxConcurrency == 0 {
		a.MaxConcurrency = 8
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.FailurePolicy == "" {
		a.FailurePolicy = "fail_fast"
	}
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults for optional blocks.
//
// Missing or invalid required config is fatal: the app should fail
// fast at startup rather than limp along half-configured.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("POKEDEX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "POKEDEX_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	mainConfig.Aggregate.applyDefaults()

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced from the primary block so
	// logs and traces always carry consistent naming.
	mainConfig.Observability.ServiceName = "pokedex-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
