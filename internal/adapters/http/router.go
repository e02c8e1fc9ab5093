package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fhsinchy/inspire/internal/adapters/http/dto"
	"github.com/fhsinchy/inspire/internal/adapters/http/handlers"
	"github.com/fhsinchy/inspire/internal/adapters/http/middleware"
	"github.com/fhsinchy/inspire/internal/platform/config"
	"github.com/fhsinchy/inspire/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for quote requests. It must
// stay below the server write timeout or the error response is lost.
const DefaultRequestTimeout = 25 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger        *slog.Logger
	AppConfig     *config.AppConfig
	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler

	// Timeout is the deadline put on quote requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry server span
//  5. Server metrics and X-Trace-ID
//  6. Request logging (skips /-/ endpoints)
//
// Route groups:
//   - /-/ : operational endpoints, no deadline
//   - /inspire and /api/v1/ : quote endpoints, with the request deadline
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeNotFound, "route not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, "method not allowed")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	quotes := engine.Group("")
	if cfg.Timeout > 0 {
		quotes.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(quotes, quotes.Group("/api/v1"))
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("routes registered",
			slog.Int("count", len(engine.Routes())),
			slog.Duration("request_timeout", cfg.Timeout),
		)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
