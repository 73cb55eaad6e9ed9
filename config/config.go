package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTAccessSecret   string
	JWTAccessTTLHours int

	// Admin login comes from config, not a hardcoded credential pair
	AdminUsername string
	AdminPassword string

	// ✅ Redis Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config
	KafkaBrokers      string
	KafkaBookingTopic string

	// ✅ Geocoding Config (best-effort collaborator)
	GeocodeBaseURL    string
	GeocodeAPIKey     string
	GeocodeTimeoutSec int
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file, using environment variables")
	}

	accessTTL, _ := strconv.Atoi(os.Getenv("JWT_ACCESS_TTL_HOURS"))
	if accessTTL == 0 {
		accessTTL = 24
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	geocodeTimeout, _ := strconv.Atoi(os.Getenv("GEOCODE_TIMEOUT_SEC"))
	if geocodeTimeout == 0 {
		geocodeTimeout = 10
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTAccessSecret:   os.Getenv("JWT_ACCESS_SECRET"),
		JWTAccessTTLHours: accessTTL,

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaBookingTopic: getEnv("KAFKA_BOOKING_TOPIC", "booking-events"),

		GeocodeBaseURL:    getEnv("GEOCODE_BASE_URL", "https://geocode.maps.co"),
		GeocodeAPIKey:     os.Getenv("GEOCODE_API_KEY"),
		GeocodeTimeoutSec: geocodeTimeout,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
