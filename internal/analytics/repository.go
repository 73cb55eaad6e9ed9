package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, visit *ProfileVisit) error
	CountForBand(ctx context.Context, bandID uint) (int64, error)
	CountForBandSince(ctx context.Context, bandID uint, since time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, visit *ProfileVisit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *repository) CountForBand(ctx context.Context, bandID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProfileVisit{}).
		Where("band_id = ?", bandID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountForBandSince(ctx context.Context, bandID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProfileVisit{}).
		Where("band_id = ? AND created_at >= ?", bandID, since).
		Count(&count).Error
	return count, err
}
