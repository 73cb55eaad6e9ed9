package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrSlotTaken is returned by ClaimSlot when the slot is already occupied in
// either event table.
var ErrSlotTaken = errors.New("slot already taken")

// SlotEntry is a row from either event table, used for availability listings.
type SlotEntry struct {
	EventID       uint      `json:"event_id"`
	EventDatetime time.Time `json:"event_datetime"`
	Source        string    `json:"source"`
	Status        string    `json:"status,omitempty"`
	Title         string    `json:"title,omitempty"`
}

// Repository reads across both event tables. It works on raw table names so
// the event packages can depend on the conflict checker without a cycle.
type Repository interface {
	CountPublicAt(ctx context.Context, bandID uint, at time.Time) (int64, error)
	CountActivePrivateAt(ctx context.Context, bandID uint, at time.Time) (int64, error)
	FuturePublicSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error)
	FutureBookedPrivateSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error)
	BandExists(ctx context.Context, bandID uint) (bool, error)
	// ClaimSlot re-checks both tables and runs insert in one transaction,
	// serialized per (band, slot) by an advisory lock. Returns ErrSlotTaken
	// when the slot is occupied.
	ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountPublicAt(ctx context.Context, bandID uint, at time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("public_events").
		Where("band_id = ? AND event_datetime = ?", bandID, at).
		Count(&count).Error
	return count, err
}

func (r *repository) CountActivePrivateAt(ctx context.Context, bandID uint, at time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("private_events").
		Where("band_id = ? AND event_datetime = ? AND status != ?", bandID, at, "rejected").
		Count(&count).Error
	return count, err
}

func (r *repository) FuturePublicSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error) {
	var entries []SlotEntry
	err := r.db.WithContext(ctx).
		Table("public_events").
		Select("id as event_id, event_datetime, 'public' as source, event_name as title").
		Where("band_id = ? AND event_datetime >= ?", bandID, now).
		Order("event_datetime asc").
		Scan(&entries).Error
	return entries, err
}

func (r *repository) BandExists(ctx context.Context, bandID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bands").
		Where("id = ?", bandID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The per-table unique indexes only serialize writers within one
		// table. The advisory lock covers the public/private pair so two
		// writers racing for the same slot across tables cannot both pass
		// the occupancy check.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(bandID), int32(at.Unix())).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Table("public_events").
			Where("band_id = ? AND event_datetime = ?", bandID, at).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		if err := tx.Table("private_events").
			Where("band_id = ? AND event_datetime = ? AND status != ?", bandID, at, "rejected").
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return insert(tx)
	})
}

func (r *repository) FutureBookedPrivateSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error) {
	var entries []SlotEntry
	err := r.db.WithContext(ctx).
		Table("private_events").
		Select("id as event_id, event_datetime, 'private' as source, status, event_type as title").
		Where("band_id = ? AND event_datetime >= ? AND status = ?", bandID, now, "to_be_done").
		Order("event_datetime asc").
		Scan(&entries).Error
	return entries, err
}
