package message

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	ListByEvent(ctx context.Context, privateEventID uint) ([]Message, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) ListByEvent(ctx context.Context, privateEventID uint) ([]Message, error) {
	var messages []Message
	err := r.db.WithContext(ctx).
		Where("private_event_id = ?", privateEventID).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}
