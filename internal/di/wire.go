//go:build wireinject

package di

import (
	"log/slog"
	"os"

	"github.com/google/wire"

	"aws-slack-notifier/internal/adapter/logging"
	"aws-slack-notifier/internal/adapter/metrics"
	"aws-slack-notifier/internal/adapter/slackhook"
	"aws-slack-notifier/internal/app"
	"aws-slack-notifier/internal/config"
	"aws-slack-notifier/internal/domain/ports"
	"aws-slack-notifier/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(configPath string) (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		metrics.New,
		wire.Bind(new(ports.Metrics), new(*metrics.Recorder)),
		provideDeliverer,
		provideRouter,
		provideNotifyConfig,
		usecase.NewNotifyEvent,
		app.New,
	)
	return nil, nil
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return slog.New(logging.NewHandler(os.Stdout, cfg.LogFormat, cfg.LogLevel))
}

func provideDeliverer(cfg *config.Config, logger ports.Logger) ports.Deliverer {
	return slackhook.NewWebhook(cfg.RequestTimeout, logger)
}

func provideRouter(cfg *config.Config) usecase.Router {
	return cfg
}

func provideNotifyConfig(cfg *config.Config) usecase.NotifyEventConfig {
	return usecase.NotifyEventConfig{Region: cfg.Region}
}
