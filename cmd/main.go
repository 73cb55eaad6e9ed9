package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/config"
	"github.com/bandvibe/band-booking-backend/database"
	"github.com/bandvibe/band-booking-backend/internal/analytics"
	"github.com/bandvibe/band-booking-backend/internal/auditlog"
	"github.com/bandvibe/band-booking-backend/internal/auth"
	"github.com/bandvibe/band-booking-backend/internal/message"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/privateevent"
	"github.com/bandvibe/band-booking-backend/internal/publicevent"
	"github.com/bandvibe/band-booking-backend/internal/review"
	"github.com/bandvibe/band-booking-backend/routes"
	"github.com/bandvibe/band-booking-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		logrus.Warnf("⚠️ Redis init failed: %v", err)
		logrus.Info("ℹ️ Continuing without Redis (geocode cache and visit counters disabled)")
	}

	// Init Kafka
	producer := utils.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	defer producer.Close()

	// Auto-migrate models
	logrus.Info("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auth.Band{},
		&publicevent.PublicEvent{},
		&privateevent.PrivateEvent{},
		&message.Message{},
		&review.Review{},
		&auditlog.AuditLog{},
		&notification.InAppNotification{},
		&analytics.ProfileVisit{},
	); err != nil {
		logrus.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	logrus.Info("✅ Database migrations completed")

	// Slot uniqueness lives in the database so concurrent bookings cannot
	// both win the same (band, datetime) pair.
	logrus.Info("🔄 Checking slot uniqueness indexes...")
	if err := migrateSlotIndexes(db); err != nil {
		logrus.Fatalf("❌ Slot index migration failed: %v", err)
	}
	logrus.Info("✅ Slot uniqueness indexes verified")

	// Notification consumer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationRepo := notification.NewRepository(db)
	go notification.StartKafkaConsumer(ctx, cfg, notificationRepo)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, producer)

	logrus.Infof("🚀 Band booking API listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("❌ Server exited: %v", err)
	}
}

// migrateSlotIndexes creates the uniqueness indexes AutoMigrate cannot
// express. The private events index is partial: rejected requests release
// their slot.
func migrateSlotIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_public_events_band_slot
			ON public_events (band_id, event_datetime)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_private_events_band_slot
			ON private_events (band_id, event_datetime)
			WHERE status != 'rejected'`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create slot index: %w", err)
		}
	}
	return nil
}
