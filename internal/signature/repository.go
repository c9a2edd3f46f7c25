package signature

import (
	"context"
	"time"

	"signature-builder/internal/domain"
	"signature-builder/internal/utils"

	"gorm.io/gorm"
)

// SignatureRepository is the data access layer for saved signatures. Every
// query is scoped to the owning user.
type SignatureRepository interface {
	Create(ctx context.Context, doc *domain.SignatureDocument) error
	FindByID(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error)
	FindByOwnerAndName(ctx context.Context, userID uint64, name string) (*domain.SignatureDocument, error)
	ListByUserID(ctx context.Context, userID uint64, page, pageSize int) ([]SignatureSummary, utils.PageMeta, error)
	UpdateData(ctx context.Context, id, userID uint64, data []byte) (int64, error)
	UpdateDetails(ctx context.Context, doc *domain.SignatureDocument) error
	Delete(ctx context.Context, id, userID uint64) (int64, error)
}

type SignatureRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SignatureRepository {
	return &SignatureRepositoryImpl{db: db}
}

func (r *SignatureRepositoryImpl) Create(ctx context.Context, doc *domain.SignatureDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *SignatureRepositoryImpl) FindByID(ctx context.Context, id, userID uint64) (*domain.SignatureDocument, error) {
	var doc domain.SignatureDocument
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SignatureRepositoryImpl) FindByOwnerAndName(ctx context.Context, userID uint64, name string) (*domain.SignatureDocument, error) {
	var doc domain.SignatureDocument
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SignatureSummary is a listing row; it leaves out the snapshot payload.
type SignatureSummary struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *SignatureRepositoryImpl) ListByUserID(ctx context.Context, userID uint64, page, pageSize int) ([]SignatureSummary, utils.PageMeta, error) {
	summaries := []SignatureSummary{}
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&domain.SignatureDocument{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return summaries, utils.PageMeta{}, err
	}

	err := r.db.WithContext(ctx).
		Model(&domain.SignatureDocument{}).
		Where("user_id = ?", userID).
		Select("id, name, description, is_favorite, created_at, updated_at").
		Order("is_favorite DESC, updated_at DESC").
		Offset(utils.Offset(page, pageSize)).
		Limit(pageSize).
		Scan(&summaries).Error

	return summaries, utils.NewPageMeta(total, page, pageSize), err
}

// UpdateData replaces the snapshot payload and reports how many rows
// matched, so callers can detect a record deleted underneath them.
func (r *SignatureRepositoryImpl) UpdateData(ctx context.Context, id, userID uint64, data []byte) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.SignatureDocument{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"data":       data,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *SignatureRepositoryImpl) UpdateDetails(ctx context.Context, doc *domain.SignatureDocument) error {
	doc.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(doc).
		Where("user_id = ?", doc.UserID).
		Select("name", "description", "is_favorite", "updated_at").
		Updates(doc).Error
}

func (r *SignatureRepositoryImpl) Delete(ctx context.Context, id, userID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.SignatureDocument{})
	return res.RowsAffected, res.Error
}
