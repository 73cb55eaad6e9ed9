package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bandvibe/band-booking-backend/config"
	"github.com/bandvibe/band-booking-backend/database"
	"github.com/bandvibe/band-booking-backend/internal/analytics"
	"github.com/bandvibe/band-booking-backend/internal/auditlog"
	"github.com/bandvibe/band-booking-backend/internal/auth"
	"github.com/bandvibe/band-booking-backend/internal/geocode"
	"github.com/bandvibe/band-booking-backend/internal/message"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/privateevent"
	"github.com/bandvibe/band-booking-backend/internal/publicevent"
	"github.com/bandvibe/band-booking-backend/internal/review"
	"github.com/bandvibe/band-booking-backend/internal/schedule"
	"github.com/bandvibe/band-booking-backend/middleware"
	"github.com/bandvibe/band-booking-backend/utils"
)

func Setup(r *gin.Engine, cfg *config.Config, producer utils.Producer) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Initialize Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Initialize Accounts Module ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	// ========== Initialize Notification Module ==========
	notificationRepo := notification.NewRepository(database.DB)
	notificationSvc := notification.NewService(notificationRepo, producer)
	notificationHandler := notification.NewHandler(notificationSvc)

	// ========== Initialize Scheduling Modules ==========
	scheduleRepo := schedule.NewRepository(database.DB)
	scheduleSvc := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleSvc)

	geocoder := geocode.NewClient(cfg, utils.Redis())

	publicRepo := publicevent.NewRepository(database.DB)
	publicSvc := publicevent.NewService(publicRepo, scheduleSvc, geocoder, auditSvc)
	publicHandler := publicevent.NewHandler(publicSvc)

	privateRepo := privateevent.NewRepository(database.DB)
	privateSvc := privateevent.NewService(privateRepo, scheduleSvc, authSvc, geocoder, auditSvc, notificationSvc)
	privateHandler := privateevent.NewHandler(privateSvc)

	messageRepo := message.NewRepository(database.DB)
	messageSvc := message.NewService(messageRepo, privateSvc, notificationSvc)
	messageHandler := message.NewHandler(messageSvc)

	reviewRepo := review.NewRepository(database.DB)
	reviewSvc := review.NewService(reviewRepo, privateSvc, auditSvc)
	reviewHandler := review.NewHandler(reviewSvc)

	analyticsRepo := analytics.NewRepository(database.DB)
	analyticsSvc := analytics.NewService(analyticsRepo, utils.Redis())
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	authMW := middleware.AuthMiddleware(cfg, authSvc)

	// ---------- Public routes ----------
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register/user", authHandler.RegisterUser)
		authGroup.POST("/register/band", authHandler.RegisterBand)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/check-username", authHandler.CheckUsername)
		authGroup.GET("/check-email", authHandler.CheckEmail)
	}

	api.GET("/public-events", publicHandler.ListUpcoming)
	api.GET("/bands", authHandler.ListBands)
	api.GET("/bands/:id", authHandler.GetBand)
	api.GET("/bands/:id/availability", scheduleHandler.Availability)
	api.GET("/bands/:id/reviews", reviewHandler.ListForBand)
	api.POST("/bands/:id/visits", analyticsHandler.Track)

	// ---------- Authenticated routes ----------
	protected := api.Group("")
	protected.Use(authMW)
	{
		protected.GET("/bands/:id/visits", analyticsHandler.Stats)

		protected.POST("/public-events", middleware.RequireKind(middleware.ActorBand), publicHandler.Create)
		protected.GET("/public-events/mine", middleware.RequireKind(middleware.ActorBand), publicHandler.ListOwn)
		protected.DELETE("/public-events/:id", middleware.RequireKind(middleware.ActorBand, middleware.ActorAdmin), publicHandler.Delete)

		protected.POST("/private-events", middleware.RequireKind(middleware.ActorUser), privateHandler.Request)
		protected.GET("/private-events/mine", middleware.RequireKind(middleware.ActorUser), privateHandler.ListMine)
		protected.GET("/private-events/requests", middleware.RequireKind(middleware.ActorBand), privateHandler.ListRequests)
		protected.GET("/private-events/:id", privateHandler.Get)
		protected.PATCH("/private-events/:id/status", privateHandler.UpdateStatus)

		protected.POST("/private-events/:id/messages", messageHandler.Send)
		protected.GET("/private-events/:id/messages", messageHandler.List)

		protected.POST("/reviews", middleware.RequireKind(middleware.ActorUser), reviewHandler.Create)

		protected.GET("/notifications", notificationHandler.List)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	}

	// ---------- Admin routes ----------
	admin := api.Group("/admin")
	admin.Use(authMW, middleware.RequireKind(middleware.ActorAdmin))
	{
		admin.GET("/audit-logs", auditHandler.GetAuditLogs)
		admin.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)
		admin.GET("/reviews/pending", reviewHandler.ListPending)
		admin.PATCH("/reviews/:id", reviewHandler.Moderate)
		admin.DELETE("/reviews/:id", reviewHandler.Delete)
	}
}
