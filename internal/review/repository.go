package review

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	ListPublished(ctx context.Context, filter ListFilter) ([]Review, error)
	ListPending(ctx context.Context) ([]Review, error)
	UpdateStatus(ctx context.Context, id uint, status ReviewStatus) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *repository) ListPublished(ctx context.Context, filter ListFilter) ([]Review, error) {
	query := r.db.WithContext(ctx).
		Where("band_id = ? AND status = ?", filter.BandID, StatusPublished)
	if filter.RatingFrom > 0 {
		query = query.Where("rating >= ?", filter.RatingFrom)
	}
	if filter.RatingTo > 0 {
		query = query.Where("rating <= ?", filter.RatingTo)
	}
	var reviews []Review
	err := query.Order("created_at desc").Find(&reviews).Error
	return reviews, err
}

func (r *repository) ListPending(ctx context.Context) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at asc").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status ReviewStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Review{}, id).Error
}
