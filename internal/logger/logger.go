// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for structured logging and integrates with
// New Relic to instrument the codebase, forwarding logs,
// metrics, and traces.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/tkratz/pokedex-api/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
// When New Relic is not configured (empty license key), nrApp is nil
// and every consumer degrades into plain zerolog.
type LoggerService struct {
	app *newrelic.Application
}

// GetApplication returns the New Relic application instance, or nil
// when the agent is disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes pending agent data. Waits up to the given timeout.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.app == nil {
		return
	}
	s.app.Shutdown(timeout)
}

// New builds the application logger and, when a license key is
// configured, the New Relic application.
//
// Output selection:
//   - "console" format: human-friendly console writer (local dev)
//   - otherwise: JSON to stdout, wrapped by the New Relic log
//     forwarder when the agent is enabled
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	service := &LoggerService{}

	if key := cfg.Observability.NewRelic.LicenseKey; key != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(key),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
		}
		if cfg.Observability.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize new relic application: %w", err)
		}
		service.app = app
	}

	var logger zerolog.Logger
	switch {
	case cfg.Observability.Logging.Format == "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Timestamp().
			Str("service", cfg.Observability.ServiceName).
			Logger()
	case service.app != nil:
		writer := zerologWriter.New(os.Stdout, service.app)
		logger = zerolog.New(writer).
			Level(level).
			With().
			Timestamp().
			Str("service", cfg.Observability.ServiceName).
			Logger()
	default:
		logger = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Str("service", cfg.Observability.ServiceName).
			Logger()
	}

	return &logger, service, nil
}

// WithTraceContext returns a child logger enriched with the trace and
// span ids of the transaction, so log lines correlate with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}
