package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/geotrace/geolocation-api/docs"
	"github.com/geotrace/geolocation-api/internal/api/handler"
	"github.com/geotrace/geolocation-api/internal/api/middleware"
	"github.com/geotrace/geolocation-api/internal/core/ports"
	"github.com/geotrace/geolocation-api/internal/infrastructure/queue"
)

// Dependencies carries everything the router needs, constructed explicitly in
// main. No package builds its own storage handle.
type Dependencies struct {
	Auth      ports.AuthService
	History   ports.HistoryService
	Lookup    ports.LookupService
	Recorder  *queue.Recorder
	JWTSecret string

	// Mongo/Redis handles are only used by the readiness probe.
	Mongo *mongo.Database
	Redis *redis.Client

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("geolocation"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	historyHandler := handler.NewHistoryHandler(deps.History)
	lookupHandler := handler.NewLookupHandler(deps.Lookup, deps.Recorder, deps.Logger)
	authGuard := middleware.Auth(deps.JWTSecret)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)

	historyGroup := apiGroup.Group("/history", authGuard)
	historyGroup.GET("", historyHandler.List)
	historyGroup.POST("", historyHandler.Add)
	historyGroup.DELETE("", historyHandler.Delete)

	lookupGroup := apiGroup.Group("/lookup", authGuard)
	lookupGroup.GET("", lookupHandler.Own)
	lookupGroup.GET("/:ip", lookupHandler.ByIP)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
