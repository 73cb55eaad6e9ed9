package privateevent

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, event *PrivateEvent) error
	// CreateTx inserts inside a transaction opened by the caller.
	CreateTx(tx *gorm.DB, event *PrivateEvent) error
	FindByID(ctx context.Context, id uint) (*PrivateEvent, error)
	ListByUser(ctx context.Context, userID uint) ([]PrivateEvent, error)
	ListByBand(ctx context.Context, bandID uint) ([]PrivateEvent, error)
	// UpdateLocked loads the row under a row lock, applies mutate and saves
	// the result in one transaction.
	UpdateLocked(ctx context.Context, id uint, mutate func(ev *PrivateEvent) error) (*PrivateEvent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *PrivateEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) CreateTx(tx *gorm.DB, event *PrivateEvent) error {
	return tx.Create(event).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*PrivateEvent, error) {
	var event PrivateEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]PrivateEvent, error) {
	var events []PrivateEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_datetime asc").
		Find(&events).Error
	return events, err
}

func (r *repository) ListByBand(ctx context.Context, bandID uint) ([]PrivateEvent, error) {
	var events []PrivateEvent
	err := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("event_datetime asc").
		Find(&events).Error
	return events, err
}

func (r *repository) UpdateLocked(ctx context.Context, id uint, mutate func(ev *PrivateEvent) error) (*PrivateEvent, error) {
	var event PrivateEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id).Error; err != nil {
			return err
		}
		if err := mutate(&event); err != nil {
			return err
		}
		return tx.Save(&event).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
