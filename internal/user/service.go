package user

import (
	"context"
	defError "errors"

	"signature-builder/internal/domain"
	"signature-builder/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service defines the interface for user business logic
type Service interface {
	Register(ctx context.Context, user *domain.User) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint64) (*domain.User, error)
	IncreaseTokenVersion(ctx context.Context, id uint64) error
}

// DefaultService implements Service
type DefaultService struct {
	repository UserRepository
}

// NewService creates a new user service
func NewService(repository UserRepository) Service {
	return &DefaultService{repository: repository}
}

// Register registers a new user
func (s *DefaultService) Register(ctx context.Context, user *domain.User) error {
	_, err := s.repository.FindByEmail(ctx, user.Email)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		return errors.Conflict("User already registered", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.UnprocessableEntity("Invalid password", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.IsActive = true

	return s.repository.Create(ctx, user)
}

// Login authenticates a user. Unknown emails and wrong passwords produce
// the same error.
func (s *DefaultService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Unauthorized("Invalid email or password", err)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errors.Unauthorized("User is not active", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	return user, nil
}

// GetUserByID gets a user by ID
func (s *DefaultService) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("User not found", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *DefaultService) IncreaseTokenVersion(ctx context.Context, id uint64) error {
	return s.repository.IncrementTokenVersion(ctx, id)
}
