package app

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"bytesize/internal/config"
	"bytesize/internal/httpapi"
	"bytesize/internal/server"
	"bytesize/internal/version"
)

// Build constructs an fx application configured with all dependencies.
func Build(cfg *config.Config) *fx.App {
	logger := NewLogger(os.Stdout, slog.LevelInfo)
	logStartup(logger, cfg)
	return fx.New(Options(cfg, logger))
}

// Options returns the dependency graph of the HTTP service.
func Options(cfg *config.Config, logger *slog.Logger) fx.Option {
	return fx.Options(
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
		fx.Supply(
			cfg,
			logger,
		),
		fx.Provide(
			httpapi.NewHandler,
		),
		server.Module,
	)
}

// NewLogger returns the text logger shared by the service and the CLI.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func logStartup(logger *slog.Logger, cfg *config.Config) {
	if cfg == nil {
		return
	}
	logger.Info("configuration loaded",
		"version", version.Current(),
		"addr", cfg.Server.Address(),
		"display_format", cfg.Display.Format.String(),
		"display_precision", cfg.Display.Precision,
		"max_body_size", cfg.Server.MaxBodySize.String())
}
