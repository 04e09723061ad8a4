package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lumatch/lumatch-backend/internal/config"
	"github.com/lumatch/lumatch-backend/internal/delivery/http"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/handler"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
	"github.com/lumatch/lumatch-backend/internal/infrastructure/database"
	"github.com/lumatch/lumatch-backend/internal/infrastructure/moderation"
	"github.com/lumatch/lumatch-backend/internal/infrastructure/server"
	"github.com/lumatch/lumatch-backend/internal/ratelimit"
	"github.com/lumatch/lumatch-backend/internal/repository/postgres"
	"github.com/lumatch/lumatch-backend/internal/usecase/auth"
	"github.com/lumatch/lumatch-backend/internal/usecase/browse"
	"github.com/lumatch/lumatch-backend/internal/usecase/discovery"
	"github.com/lumatch/lumatch-backend/internal/usecase/prefs"
	"github.com/lumatch/lumatch-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis backs the rate limiter when enabled; otherwise counters live in
	// process memory.
	var redisClient *redis.Client
	var counterStore ratelimit.CounterStore = ratelimit.NewMemoryStore()
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		counterStore = ratelimit.NewRedisStore(redisClient)
	}

	// Initialize moderation client
	var moderator profile.Moderator
	if !cfg.Moderation.Disabled && cfg.Moderation.GeminiAPIKey != "" {
		geminiModerator, err := moderation.NewGeminiModerator(cfg.Moderation.GeminiAPIKey, log)
		if err != nil {
			// Profile text stays unscreened; the service still runs.
			log.Warn("failed to initialize moderation client", zap.Error(err))
		} else {
			moderator = geminiModerator
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	prefRepo := postgres.NewPreferenceRepository(db)

	// Initialize rate limiter. ActionPhoto has no route here; the budget is
	// reserved for the photo-upload service, which shares this limiter.
	limiter := ratelimit.NewActionLimiter(counterStore, map[ratelimit.Action]ratelimit.Limit{
		ratelimit.ActionLike:   ratelimit.PerHour(cfg.RateLimit.LikePerHour),
		ratelimit.ActionSkip:   ratelimit.PerHour(cfg.RateLimit.SkipPerHour),
		ratelimit.ActionReport: ratelimit.PerHour(cfg.RateLimit.ReportPerHour),
		ratelimit.ActionPhoto:  ratelimit.PerHour(cfg.RateLimit.PhotoPerHour),
	})

	// Initialize use cases
	authUseCase := auth.NewTelegramAuthUseCase(
		userRepo,
		sessionRepo,
		cfg.Telegram.BotToken,
		cfg.JWT.Secret,
		cfg.JWT.TokenTTL,
		cfg.Telegram.AdminIDs,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		tagRepo,
		likeRepo,
		reportRepo,
		prefRepo,
		userRepo,
		sessionRepo,
		moderator,
		log,
	)

	prefsUseCase := prefs.NewPrefsUseCase(prefRepo, profileRepo)

	engine := discovery.NewEngine(
		profileRepo,
		tagRepo,
		likeRepo,
		reportRepo,
		prefRepo,
		cfg.Feed.FetchLimit,
		log,
	)

	sessions := browse.NewRegistry()
	notifier := browse.NewLogNotifier(log)

	processor := browse.NewProcessor(
		engine,
		sessions,
		profileRepo,
		tagRepo,
		likeRepo,
		reportRepo,
		userRepo,
		limiter,
		notifier,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	prefsHandler := handler.NewPrefsHandler(prefsUseCase)
	browseHandler := handler.NewBrowseHandler(processor)
	adminHandler := handler.NewAdminHandler(profileUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		prefsHandler,
		browseHandler,
		adminHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
