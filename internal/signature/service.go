package signature

import (
	"context"
	defError "errors"
	"fmt"
	"time"

	"signature-builder/internal/autosave"
	"signature-builder/internal/domain"
	"signature-builder/internal/errors"
	"signature-builder/internal/utils"
	"signature-builder/redis"

	"gorm.io/gorm"
)

const listCacheTTL = 24 * time.Hour

type Service interface {
	ListSignatures(ctx context.Context, userID uint64, page, pageSize int) (*PaginatedSignatures, error)
	GetSignature(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error)
	UpdateSignature(ctx context.Context, id, userID uint64, input UpdateInput) (*domain.SignatureDocument, error)
	DeleteSignature(ctx context.Context, id, userID uint64) error
	RemoteSink(userID uint64) autosave.RemoteSink
}

type DefaultService struct {
	repository SignatureRepository
	cache      *redis.Cache
}

func NewService(repository SignatureRepository, cache *redis.Cache) Service {
	return &DefaultService{repository: repository, cache: cache}
}

func listVersionKey(userID uint64) string {
	return fmt.Sprintf("user:%d:signatures:version", userID)
}

type PaginatedSignatures struct {
	Data []SignatureSummary `json:"data"`
	Meta utils.PageMeta     `json:"meta"`
}

func (s *DefaultService) ListSignatures(ctx context.Context, userID uint64, page, pageSize int) (*PaginatedSignatures, error) {
	v := s.cache.GetVersion(ctx, listVersionKey(userID))
	cacheKey := fmt.Sprintf("signatures:u:%d:v:%d:p:%d:ps:%d", userID, v, page, pageSize)

	var result PaginatedSignatures
	if found, _ := s.cache.Get(ctx, cacheKey, &result); found {
		return &result, nil
	}

	summaries, meta, err := s.repository.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	result = PaginatedSignatures{Data: summaries, Meta: meta}
	s.cache.Set(ctx, cacheKey, result, listCacheTTL)

	return &result, nil
}

func (s *DefaultService) GetSignature(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error) {
	doc, err := s.repository.FindByID(ctx, id, userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return doc, nil
}

// UpdateInput carries the editable details of a saved signature. Nil fields
// are left unchanged.
type UpdateInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsFavorite  *bool   `json:"is_favorite"`
}

func (s *DefaultService) UpdateSignature(ctx context.Context, id, userID uint64, input UpdateInput) (*domain.SignatureDocument, error) {
	doc, err := s.repository.FindByID(ctx, id, userID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if input.Name != nil {
		doc.Name = *input.Name
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if input.IsFavorite != nil {
		doc.IsFavorite = *input.IsFavorite
	}

	if err := s.repository.UpdateDetails(ctx, doc); err != nil {
		if defError.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Conflict("A signature with this name already exists", err)
		}
		return nil, err
	}
	s.cache.IncrementVersion(ctx, listVersionKey(userID))

	return doc, nil
}

func (s *DefaultService) DeleteSignature(ctx context.Context, id, userID uint64) error {
	n, err := s.repository.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Signature not found", nil)
	}
	s.cache.IncrementVersion(ctx, listVersionKey(userID))
	return nil
}

// RemoteSink returns the autosave target for userID's editor sessions.
func (s *DefaultService) RemoteSink(userID uint64) autosave.RemoteSink {
	return NewRemoteSink(s.repository, s.cache, userID)
}

func notFoundOr(err error) error {
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("Signature not found", err)
	}
	return err
}
