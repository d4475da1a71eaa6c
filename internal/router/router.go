package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/introhub/backend/internal/auth"
	"github.com/anonto42/introhub/backend/internal/cache"
	"github.com/anonto42/introhub/backend/internal/email"
	"github.com/anonto42/introhub/backend/internal/handlers"
	"github.com/anonto42/introhub/backend/internal/middleware"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/anonto42/introhub/backend/internal/storage"
	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the routes are built on.
type Dependencies struct {
	Config       *config.Config
	Postgres     *gorm.DB
	Mongo        *mongo.Client
	Firebase     *fbauth.Client
	Storage      storage.Storage
	Mailer       email.Sender
	CompanyCache *cache.TTLCache[[]models.Company]
	Validator    services.Validator
}

// Migrate brings both databases up to the schema the repositories expect.
func Migrate(ctx context.Context, pgdb *gorm.DB, mdb *mongo.Database) error {
	if err := pgdb.WithContext(ctx).AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("auto migrating postgres models: %w", err)
	}
	if err := repositories.EnsureIndexes(ctx, mdb); err != nil {
		return err
	}
	slog.Info("database migrations completed")
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(ctx context.Context, e *echo.Echo, deps Dependencies) error {
	cfg := deps.Config
	mdb := deps.Mongo.Database(cfg.MongoDatabase)

	if err := Migrate(ctx, deps.Postgres, mdb); err != nil {
		return err
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	introductionRepo := repositories.NewMongoIntroductionRepository(mdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mdb)
	companyRepo := repositories.NewMongoCompanyRepository(mdb)
	memberRepo := repositories.NewMongoCompanyMemberRepository(mdb)

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	firebaseVerifier := auth.NewFirebaseVerifier(deps.Firebase)

	authService := services.NewAuthService(userRepo, tokens, auth.NewPasswordHasher(), deps.Mailer,
		auth.NewGoogleOAuth(cfg.Google), firebaseVerifier, cfg.OTP, deps.Validator)
	introductionService := services.NewIntroductionService(introductionRepo, companyRepo, memberRepo, userRepo, deps.Validator)
	notificationService := services.NewNotificationService(notificationRepo, introductionRepo, userRepo, deps.Validator)
	companyService := services.NewCompanyService(companyRepo, memberRepo, deps.Storage, deps.CompanyCache, deps.Validator)

	// Health check - always accessible
	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := deps.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"mongo": handlers.PingFunc(func(ctx context.Context) error {
			return deps.Mongo.Ping(ctx, readpref.Primary())
		}),
	})
	e.GET("/health", health.HealthCheck)

	requireAuth := middleware.AuthMiddleware(
		middleware.JWTResolver(tokens, userRepo),
		middleware.FirebaseResolver(firebaseVerifier, userRepo),
	)

	// --- Auth routes, rate limited per client IP ---
	authGroup := e.Group("/api/v1/auth", eMiddleware.RateLimiterWithConfig(eMiddleware.RateLimiterConfig{
		Store: eMiddleware.NewRateLimiterMemoryStoreWithConfig(eMiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit),
			Burst:     max(1, int(cfg.RateLimit*2)),
			ExpiresIn: 3 * time.Minute,
		}),
	}))
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(authGroup)
	handlers.NewUserHandler(authService).RegisterProfileRoutes(authGroup.Group("", requireAuth))
	slog.Info("auth routes configured")

	api := e.Group("/api/v1")

	companyHandler := handlers.NewCompanyHandler(companyService)
	companyHandler.RegisterPublicRoutes(api)

	// --- Protected routes ---
	protected := api.Group("", requireAuth)
	handlers.NewIntroductionHandler(introductionService).RegisterIntroductionRoutes(protected)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(protected)
	companyHandler.RegisterCompanyRoutes(protected)

	slog.Info("all routes configured")
	return nil
}
