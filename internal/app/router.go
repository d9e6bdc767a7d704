package app

import (
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/controller"
	"edu_portfolio_backend/internal/middleware"
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/pkg/monitoring"
	"edu_portfolio_backend/pkg/security"
	"edu_portfolio_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type controllers struct {
	auth        *controller.AuthController
	users       *controller.UserController
	courses     *controller.CourseController
	blogs       *controller.BlogController
	inquiries   *controller.InquiryController
	subscribers *controller.SubscriberController
	stories     *controller.SuccessStoryController
	uploads     *controller.UploadController
	health      *controller.HealthController
}

func setupRouter(cfg *config.Config, origins *security.OriginSet, tokens *service.TokenService, users middleware.UserFinder, ctrls controllers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(security.CORS(origins))
	router.Use(security.Secure())
	router.Use(monitoring.MetricsMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	router.GET("/health", ctrls.health.Check)
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	authRequired := middleware.AuthMiddleware(tokens, users)
	authOptional := middleware.OptionalAuth(tokens, users)
	staffOnly := middleware.RoleMiddleware(model.Teacher, model.Admin)
	adminOnly := middleware.AdminOnly()

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrls.auth.Register)
		auth.POST("/login", ctrls.auth.Login)
		auth.POST("/logout", ctrls.auth.Logout)
		auth.POST("/resend-verification", ctrls.auth.ResendVerification)
		auth.POST("/verify-email/:token", ctrls.auth.VerifyEmail)
		auth.POST("/forgot-password", ctrls.auth.ForgotPassword)
		auth.PUT("/reset-password/:token", ctrls.auth.ResetPassword)
		auth.GET("/me", authRequired, ctrls.auth.Me)
	}

	userRoutes := api.Group("/users")
	{
		userRoutes.PUT("/profile", authRequired, ctrls.users.UpdateProfile)
		userRoutes.GET("", authRequired, adminOnly, ctrls.users.List)
		userRoutes.GET("/stats", authRequired, adminOnly, ctrls.users.Stats)
		userRoutes.GET("/:id", authRequired, adminOnly, ctrls.users.Get)
		userRoutes.PUT("/:id/role", authRequired, adminOnly, ctrls.users.UpdateRole)
		userRoutes.DELETE("/:id", authRequired, adminOnly, ctrls.users.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", authOptional, ctrls.courses.List)
		courses.GET("/enrolled", authRequired, ctrls.courses.ListEnrolled)
		courses.GET("/:id", authOptional, ctrls.courses.Get)
		courses.POST("", authRequired, staffOnly, ctrls.courses.Create)
		courses.PUT("/:id", authRequired, staffOnly, ctrls.courses.Update)
		courses.DELETE("/:id", authRequired, staffOnly, ctrls.courses.Delete)

		courses.POST("/:id/enroll", authRequired, ctrls.courses.Enroll)
		courses.POST("/:id/comments", authRequired, ctrls.courses.AddComment)

		courses.POST("/:id/sections", authRequired, staffOnly, ctrls.courses.AddSection)
		courses.PUT("/:id/sections/:sectionId", authRequired, staffOnly, ctrls.courses.UpdateSection)
		courses.DELETE("/:id/sections/:sectionId", authRequired, staffOnly, ctrls.courses.DeleteSection)

		courses.POST("/:id/sections/:sectionId/videos", authRequired, staffOnly, ctrls.courses.AddVideo)
		courses.PUT("/:id/sections/:sectionId/videos/:videoId", authRequired, staffOnly, ctrls.courses.UpdateVideo)
		courses.DELETE("/:id/sections/:sectionId/videos/:videoId", authRequired, staffOnly, ctrls.courses.DeleteVideo)
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", authOptional, ctrls.blogs.List)
		blogs.GET("/saved", authRequired, ctrls.blogs.ListSaved)
		blogs.GET("/:id", authOptional, ctrls.blogs.Get)
		blogs.POST("", authRequired, staffOnly, ctrls.blogs.Create)
		blogs.PUT("/:id", authRequired, staffOnly, ctrls.blogs.Update)
		blogs.DELETE("/:id", authRequired, staffOnly, ctrls.blogs.Delete)

		blogs.POST("/:id/like", authRequired, ctrls.blogs.ToggleLike)
		blogs.POST("/:id/comments", authRequired, ctrls.blogs.AddComment)
		blogs.POST("/:id/save", authRequired, ctrls.blogs.Save)
		blogs.DELETE("/:id/save", authRequired, ctrls.blogs.Unsave)
	}

	inquiries := api.Group("/inquiries")
	{
		inquiries.POST("", ctrls.inquiries.Submit)
		inquiries.GET("", authRequired, adminOnly, ctrls.inquiries.List)
		inquiries.GET("/:id", authRequired, adminOnly, ctrls.inquiries.Get)
		inquiries.PUT("/:id", authRequired, adminOnly, ctrls.inquiries.Update)
		inquiries.DELETE("/:id", authRequired, adminOnly, ctrls.inquiries.Delete)
	}

	subscribers := api.Group("/subscribers")
	{
		subscribers.POST("", ctrls.subscribers.Subscribe)
		subscribers.POST("/unsubscribe", ctrls.subscribers.Unsubscribe)
		subscribers.GET("", authRequired, adminOnly, ctrls.subscribers.List)
		subscribers.DELETE("/:id", authRequired, adminOnly, ctrls.subscribers.Delete)
	}

	stories := api.Group("/success-stories")
	{
		stories.GET("", ctrls.stories.List)
		stories.GET("/:id", ctrls.stories.Get)
		stories.POST("", authRequired, adminOnly, ctrls.stories.Create)
		stories.PUT("/:id", authRequired, adminOnly, ctrls.stories.Update)
		stories.DELETE("/:id", authRequired, adminOnly, ctrls.stories.Delete)
	}

	uploads := api.Group("/uploads")
	{
		uploads.POST("/image", authRequired, staffOnly, ctrls.uploads.UploadImage)
		uploads.POST("/video", authRequired, staffOnly, ctrls.uploads.UploadVideo)
	}

	return router
}
