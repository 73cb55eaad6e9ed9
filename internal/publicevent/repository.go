package publicevent

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *PublicEvent) error
	// CreateTx inserts inside a transaction opened by the caller.
	CreateTx(tx *gorm.DB, event *PublicEvent) error
	FindByID(ctx context.Context, id uint) (*PublicEvent, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]PublicEvent, error)
	ListByBand(ctx context.Context, bandID uint) ([]PublicEvent, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *PublicEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) CreateTx(tx *gorm.DB, event *PublicEvent) error {
	return tx.Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*PublicEvent, error) {
	var event PublicEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]PublicEvent, error) {
	var events []PublicEvent
	err := r.db.WithContext(ctx).
		Where("event_datetime >= ?", now).
		Order("event_datetime asc").
		Find(&events).Error
	return events, err
}

func (r *repository) ListByBand(ctx context.Context, bandID uint) ([]PublicEvent, error) {
	var events []PublicEvent
	err := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("event_datetime asc").
		Find(&events).Error
	return events, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&PublicEvent{}, id).Error
}
