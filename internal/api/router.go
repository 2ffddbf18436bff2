package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userdir/user-directory/internal/api/handler"
	"github.com/userdir/user-directory/internal/api/middleware"
	"github.com/userdir/user-directory/internal/core/ports"
	"github.com/userdir/user-directory/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Dependencies are constructed by the caller and passed in explicitly; db
// and rdb may be nil (memory store, rate limiting disabled).
func NewRouter(cfg *config.Config, users ports.UserService, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))

	// HTTP metrics register into a per-router registry so constructing more
	// than one router (tests) never double-registers; /metrics gathers both
	// this registry and the default one holding the custom metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "userdir",
		Registerer: httpMetrics,
	}))

	// --- User routes ---
	userHandler := handler.NewUserHandler(users)

	group := e.Group("/users")
	if rdb != nil {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		group.Use(middleware.RateLimit(rdb, window, cfg.RateLimit.Max, log))
	}
	group.POST("", userHandler.Create)
	group.GET("", userHandler.List)
	group.GET("/:id", userHandler.Get)
	group.PATCH("/:id", userHandler.Update)
	group.DELETE("/:id", userHandler.Delete)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)      // liveness  – is the process alive?
	e.GET("/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{httpMetrics, prometheus.DefaultGatherer},
	}))

	return e
}

// requestLogger emits one structured log line per request, carrying the
// correlation ID assigned by the RequestID middleware.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error()
			case v.Status >= 400:
				evt = log.Warn()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
