package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/controller"
	"edu_portfolio_backend/internal/repository"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/pkg/configwatcher"
	"edu_portfolio_backend/pkg/database"
	"edu_portfolio_backend/pkg/logger"
	"edu_portfolio_backend/pkg/monitoring"
	"edu_portfolio_backend/pkg/security"
	"edu_portfolio_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	cfg     *config.Config
	router  http.Handler
	db      *gorm.DB
	redis   *redis.Client
	origins *security.OriginSet
	tracer  *sdktrace.TracerProvider
}

func New(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	monitoring.Init()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Redis is a cache, not a dependency: the app runs without it.
	redisClient, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, course list caching disabled", zap.Error(err))
		redisClient = nil
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer("edu-portfolio-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("Failed to initialize tracing", zap.Error(err))
		}
	}

	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	storyRepo := repository.NewSuccessStoryRepository(db)

	tokens := service.NewTokenService(cfg)
	mailer := service.NewEmailService(cfg)
	authService := service.NewAuthService(userRepo, mailer, tokens)
	userService := service.NewUserService(userRepo, courseRepo, blogRepo, inquiryRepo)
	courseService := service.NewCourseService(courseRepo, redisClient)
	blogService := service.NewBlogService(blogRepo, userRepo)
	inquiryService := service.NewInquiryService(inquiryRepo)
	subscriberService := service.NewSubscriberService(subscriberRepo, mailer)
	storyService := service.NewSuccessStoryService(storyRepo)

	origins := security.NewOriginSet(cfg.CORS.AllowedOrigins)

	ctrls := controllers{
		auth:        controller.NewAuthController(authService, cfg),
		users:       controller.NewUserController(userService),
		courses:     controller.NewCourseController(courseService),
		blogs:       controller.NewBlogController(blogService),
		inquiries:   controller.NewInquiryController(inquiryService),
		subscribers: controller.NewSubscriberController(subscriberService),
		stories:     controller.NewSuccessStoryController(storyService),
		uploads:     controller.NewUploadController(storage),
		health:      controller.NewHealthController(db, redisClient),
	}

	router := setupRouter(cfg, origins, tokens, userRepo, ctrls)

	return &App{
		cfg:     cfg,
		router:  router,
		db:      db,
		redis:   redisClient,
		origins: origins,
		tracer:  tp,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		a.origins.Update(cfg.CORS.AllowedOrigins)
		logger.Log.Info("Applied config change",
			zap.Strings("allowed_origins", cfg.CORS.AllowedOrigins),
		)
	})

	srv := &http.Server{
		Addr:    ":" + a.cfg.Server.Port,
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	if a.redis != nil {
		a.redis.Close()
	}
	if a.tracer != nil {
		a.tracer.Shutdown(ctx)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server stopped")
	return nil
}
