package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/deviolabs/accounts-api/docs"
	"github.com/deviolabs/accounts-api/internal/api/handler"
	"github.com/deviolabs/accounts-api/internal/api/middleware"
	"github.com/deviolabs/accounts-api/internal/core/domain"
	"github.com/deviolabs/accounts-api/internal/core/service"
	"github.com/deviolabs/accounts-api/internal/infrastructure/config"
	mongodb "github.com/deviolabs/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/deviolabs/accounts-api/internal/infrastructure/db/redis"
	"github.com/deviolabs/accounts-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	lockout := redisdb.NewLockoutTracker(rdb, cfg.JWT.LockoutDuration)
	store := mongodb.NewAccountRepository(db, lockout, cfg.JWT.MaxSignInAttempts)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.ExpirationHours)
	accounts := service.NewAccountService(store, tokens)

	authHandler := handler.NewAuthHandler(accounts, logger.Get())
	accountHandler := handler.NewAccountHandler()
	authMiddleware := middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/nova-conta", authHandler.Register)
	v1.POST("/entrar", authHandler.Login)

	// --- Protected routes ---
	v1.GET("/conta", accountHandler.Me, authMiddleware)
	v1.GET("/admin/status", accountHandler.AdminStatus, authMiddleware, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
