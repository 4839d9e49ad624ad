package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsroom-io/newsroom-api/internal/api/handler"
	"github.com/newsroom-io/newsroom-api/internal/api/middleware"
	"github.com/newsroom-io/newsroom-api/internal/core/service"
	"github.com/newsroom-io/newsroom-api/internal/infrastructure/config"
	mongorepo "github.com/newsroom-io/newsroom-api/internal/infrastructure/db/mongo"
	redisguard "github.com/newsroom-io/newsroom-api/internal/infrastructure/db/redis"
	"github.com/newsroom-io/newsroom-api/internal/infrastructure/mail"
	"github.com/newsroom-io/newsroom-api/internal/infrastructure/social"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("newsroom"))

	// --- Repositories ---
	articleRepo := mongorepo.NewArticleRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	publisherRepo := mongorepo.NewPublisherRepository(db)

	// --- Notification transport ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
	})
	poster := social.NewXPoster(cfg.Social.Endpoint, cfg.Social.BearerToken)
	guard := redisguard.NewFanoutGuard(rdb)

	// --- Services ---
	fanoutService := service.NewFanoutService(userRepo, mailer, poster, guard, cfg.Mail.From, log)
	articleService := service.NewArticleService(articleRepo, userRepo, publisherRepo, fanoutService, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, publisherRepo, log)
	publisherService := service.NewPublisherService(publisherRepo, userRepo, log)

	// --- Handlers ---
	articleHandler := handler.NewArticleHandler(articleService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	publisherHandler := handler.NewPublisherHandler(publisherService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Article routes ---
	articles := e.Group("/v1/articles")
	articles.GET("", articleHandler.List, optionalAuth)
	articles.GET("/mine", articleHandler.Mine, auth, middleware.RBAC("journalist", "admin"))
	articles.GET("/subscribed", articleHandler.Subscribed, auth, middleware.RBAC("reader", "admin"))
	articles.GET("/review", articleHandler.Review, auth, middleware.RBAC("editor", "admin"))
	articles.GET("/:id", articleHandler.Get, optionalAuth)
	articles.POST("", articleHandler.Create, auth, middleware.RBAC("journalist", "admin"))
	articles.PUT("/:id", articleHandler.Update, auth)
	articles.DELETE("/:id", articleHandler.Delete, auth)
	articles.POST("/:id/approve", articleHandler.Approve, auth, middleware.RBAC("editor", "admin"))

	e.GET("/v1/dashboard", articleHandler.Dashboard, auth)

	// --- Publisher routes ---
	e.GET("/v1/publishers", publisherHandler.List, auth)
	e.GET("/v1/publishers/:id", publisherHandler.Get, auth)
	e.POST("/v1/publishers", publisherHandler.Create, auth, middleware.RBAC("admin"))

	// --- User and subscription routes ---
	e.PUT("/v1/users/:username/role", userHandler.SetRole, auth, middleware.RBAC("admin"))
	e.GET("/v1/profiles/:username", userHandler.Profile, auth)

	subs := e.Group("/v1/subscriptions", auth, middleware.RBAC("reader", "admin"))
	subs.POST("/publishers/:id", userHandler.SubscribePublisher)
	subs.DELETE("/publishers/:id", userHandler.UnsubscribePublisher)
	subs.POST("/journalists/:id", userHandler.SubscribeJournalist)
	subs.DELETE("/journalists/:id", userHandler.UnsubscribeJournalist)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
