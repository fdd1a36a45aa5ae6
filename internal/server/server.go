package server

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/artyom/buffering"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"bytesize/internal/config"
	"bytesize/internal/httpapi"
	"bytesize/internal/version"
)

// Module exposes fx providers for the HTTP server.
var Module = fx.Options(
	fx.Provide(
		NewEngine,
		NewHandler,
	),
	fx.Invoke(RegisterLifecycle),
)

// Params bundles dependencies for HTTP lifecycle registration.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Handler   http.Handler
	Logger    *slog.Logger
}

// NewEngine constructs the gin engine with registered routes.
func NewEngine(handler *httpapi.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), serverHeader(version.Identifier()))
	handler.Register(r)
	return r
}

// NewHandler wraps the engine so request bodies are read in full, up to
// server.max_body_size, before routing.
func NewHandler(cfg *config.Config, engine *gin.Engine) http.Handler {
	return buffering.Handler(engine, buffering.WithMaxSize(maxBodySize(cfg)))
}

func maxBodySize(cfg *config.Config) int64 {
	n := cfg.Server.MaxBodySize.Uint64()
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

func serverHeader(ident string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Server", ident)
		c.Next()
	}
}

// RegisterLifecycle wires the HTTP server into fx lifecycle.
func RegisterLifecycle(p Params) {
	srv := &http.Server{
		Addr:              p.Config.Server.Address(),
		Handler:           p.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       p.Config.Server.ReadTimeout.Duration,
		WriteTimeout:      p.Config.Server.WriteTimeout.Duration,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			p.Logger.Info("starting HTTP server",
				slog.String("addr", ln.Addr().String()),
				slog.String("max_body_size", p.Config.Server.MaxBodySize.String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server failure", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
