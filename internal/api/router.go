package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/user-service/docs"
	"github.com/99minutos/user-service/internal/api/handler"
	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/api/middleware"
	"github.com/99minutos/user-service/internal/core/ports"
	"github.com/99minutos/user-service/internal/infrastructure/http/handlers"
)

// Dependencies groups everything the router needs to build its handlers.
type Dependencies struct {
	Users     ports.UserService
	Auth      ports.AuthService
	Store     handlers.Pinger
	StoreName string
	Logger    zerolog.Logger
	// Registry receives the HTTP and user metrics and serves /metrics. Nil means the
	// prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Binder = handler.NewBinder()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	if err := metrics.Register(registerer); err != nil {
		panic(fmt.Sprintf("api: register metrics: %v", err))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(deps.Users)
	loginHandler := handler.NewLoginHandler(deps.Auth)
	authMiddleware := middleware.Auth(deps.Auth)

	// --- User routes ---
	for _, path := range []string{"/user/", "/user"} {
		e.POST(path, userHandler.Create)
		e.GET(path, userHandler.Get, authMiddleware)
		e.PATCH(path, userHandler.Update, authMiddleware)
		e.DELETE(path, userHandler.Delete, authMiddleware)
	}

	// --- Login routes ---
	e.POST("/login/token", loginHandler.Token)
	e.POST("/login/", loginHandler.Token)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.StoreName, deps.Store)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
