package db

import (
	"fmt"
	"time"

	"signature-builder/internal/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dsn(cfg config.Config) string {
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)
}

// Connect opens the Postgres connection. SQL is logged through zerolog:
// everything in development, errors only in production.
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := logger.Info
	if cfg.Environment == "production" {
		level = logger.Error
	}
	gormLogger := logger.New(
		&log.Logger,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.Environment == "development",
		},
	)

	db, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to db")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("failed to get db handle")
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close db")
		return
	}
	log.Info().Msg("db closed")
}
