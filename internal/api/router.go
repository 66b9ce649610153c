package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rankforge/agency-api/internal/api/handler"
	"github.com/rankforge/agency-api/internal/api/middleware"
	"github.com/rankforge/agency-api/internal/core/domain"
	"github.com/rankforge/agency-api/internal/core/ports"
)

// Deps carries everything the router needs to build the handlers. The
// composition root owns construction; the router only wires.
type Deps struct {
	Auth          ports.AuthService
	Orders        ports.OrderService
	Posts         ports.PostService
	Chat          ports.ChatService
	Settings      ports.SettingsService
	Notifications ports.NotificationRepository

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("agency"))

	authMW := middleware.Auth(deps.JWTSecret)
	optionalAuthMW := middleware.OptionalAuth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	postHandler := handler.NewPostHandler(deps.Posts)
	chatHandler := handler.NewChatHandler(deps.Chat)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	realtimeHandler := handler.NewRealtimeHandler(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public reads (identity optional, admins see drafts) ---
	e.GET("/api/posts", postHandler.List, optionalAuthMW)
	e.GET("/api/posts/:slug", postHandler.GetBySlug, optionalAuthMW)
	e.GET("/api/settings", settingsHandler.Get)

	// --- Authenticated API ---
	apiGroup := e.Group("/api", authMW)

	apiGroup.POST("/orders", orderHandler.Create)
	apiGroup.GET("/orders", orderHandler.List)
	apiGroup.GET("/orders/:id", orderHandler.Get)
	apiGroup.PATCH("/orders", orderHandler.Patch, adminOnly)

	apiGroup.POST("/posts", postHandler.Create, adminOnly)
	apiGroup.PATCH("/posts/:slug", postHandler.Update, adminOnly)
	apiGroup.DELETE("/posts/:slug", postHandler.Delete, adminOnly)

	apiGroup.GET("/chat/:conversation/messages", chatHandler.History)
	apiGroup.POST("/chat/:conversation/messages", chatHandler.Send)

	apiGroup.GET("/notifications", notificationHandler.List)
	apiGroup.POST("/realtime/auth", realtimeHandler.Authorize)

	apiGroup.PUT("/settings", settingsHandler.Update, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
