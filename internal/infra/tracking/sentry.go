// Package tracking reports unexpected errors to Sentry.
package tracking

import (
	"context"
	"log/slog"
	"time"

	"warranty/config"
	"warranty/internal/domain/service"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

// Params holds dependencies for the error reporter, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New initializes Sentry when a DSN is configured; otherwise errors are only logged.
func New(params Params) (service.ErrorReporter, error) {
	cfg := params.Config.Sentry
	if cfg == nil || cfg.DSN == "" {
		params.Logger.Info("Sentry not configured, error reporting disabled")

		return noopReporter{}, nil
	}

	environment := cfg.Environment
	if environment == "" {
		environment = params.Config.Env.Env
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		ServerName:       params.Config.Env.ServiceName,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to initialize sentry")
	}

	reporter := &sentryReporter{hub: sentry.CurrentHub()}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			reporter.Flush()

			return nil
		},
	})

	return reporter, nil
}

type sentryReporter struct {
	hub *sentry.Hub
}

func (r *sentryReporter) Report(ctx context.Context, err error, tags map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

func (r *sentryReporter) Flush() {
	r.hub.Flush(flushTimeout)
}

type noopReporter struct{}

func (noopReporter) Report(context.Context, error, map[string]string) {}

func (noopReporter) Flush() {}
