package notification

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Save(ctx context.Context, n *InAppNotification) error
	ListForRecipient(ctx context.Context, kind string, id uint, unreadOnly bool) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uint, recipientKind string, recipientID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Save inserts a notification. Redelivered Kafka messages are dropped on the
// event_uid unique index.
func (r *repository) Save(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_uid"}}, DoNothing: true}).
		Create(n).Error
}

func (r *repository) ListForRecipient(ctx context.Context, kind string, id uint, unreadOnly bool) ([]InAppNotification, error) {
	query := r.db.WithContext(ctx).
		Where("recipient_kind = ? AND recipient_id = ?", kind, id)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var notifications []InAppNotification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, id uint, recipientKind string, recipientID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND recipient_kind = ? AND recipient_id = ?", id, recipientKind, recipientID).
		Update("read", true)
	return result.RowsAffected, result.Error
}
