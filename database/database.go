package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/config"
)

// DB is the shared connection pool handle, set once by Connect.
var DB *gorm.DB

// Connect opens the Postgres connection pool and stores the handle in DB.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("❌ Failed to connect to database: %v", err)
	}

	DB = db
	logrus.Infof("✅ Connected to Postgres database %q on %s:%s", cfg.DBName, cfg.DBHost, cfg.DBPort)
	return db
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The slot indexes on public_events and
// private_events surface double bookings through this path.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
