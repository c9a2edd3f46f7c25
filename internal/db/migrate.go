package db

import (
	"context"
	"errors"

	"signature-builder/internal/domain"
	"signature-builder/internal/user"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SignatureDocument{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema migrated")
	return nil
}

// SeedData creates a test user (for development only)
func SeedData(ctx context.Context, db *gorm.DB) {
	userRepo := user.NewRepository(db)

	testUser := &domain.User{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		IsActive: true,
	}

	_, err := userRepo.FindByEmail(ctx, testUser.Email)
	switch {
	case err == nil:
		log.Debug().Str("email", testUser.Email).Msg("test user already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := user.NewService(userRepo).Register(ctx, testUser); err != nil {
			log.Error().Err(err).Msg("error creating test user")
			return
		}
		log.Info().Str("email", testUser.Email).Msg("created test user")
	default:
		log.Error().Err(err).Msg("error looking up test user")
	}
}
