package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used for the geocode cache and
// profile-visit counters. Both consumers are best-effort, so a failed init
// only disables them.
func InitRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	logrus.Infof("✅ Redis connected at %s", cfg.RedisAddr)
	return nil
}

// Redis returns the shared client, or nil when InitRedis failed.
func Redis() *redis.Client {
	return redisClient
}
