package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/iwellness/admin-users/internal/api/handler"
	"github.com/iwellness/admin-users/internal/api/middleware"
	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
)

// Dependencies are the services and probes the HTTP layer is built from.
type Dependencies struct {
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Resets       ports.PasswordResetService
	Users        ports.UserService
	Tokens       middleware.TokenParser
	Checks       map[string]handler.DependencyCheck
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	resetHandler := handler.NewResetHandler(deps.Resets)
	userHandler := handler.NewUserHandler(deps.Users)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register/:role", registrationHandler.Register)
	auth.GET("/role", authHandler.Role)
	auth.GET("/subject", authHandler.Subject)
	auth.GET("/info", authHandler.Info)
	auth.POST("/request-reset-password", resetHandler.RequestReset)
	auth.POST("/reset-password", resetHandler.ResetPassword)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/register", registrationHandler.RegisterAdmin)

	// --- User routes (policy checks in the service) ---
	users := e.Group("/users", authMiddleware)
	users.GET("/:id", userHandler.Get)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
