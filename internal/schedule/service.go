package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
)

type Service interface {
	// HasConflict reports whether the band already has a public event or a
	// non-rejected private event at the exact slot.
	HasConflict(ctx context.Context, bandID uint, at time.Time) (bool, error)
	// ClaimSlot atomically verifies the slot is free across both event
	// tables and runs insert inside the same transaction. Returns
	// ErrSlotTaken when the slot is occupied.
	ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error
	// Availability lists the band's upcoming committed slots.
	Availability(ctx context.Context, bandID uint) ([]SlotEntry, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) HasConflict(ctx context.Context, bandID uint, at time.Time) (bool, error) {
	publicCount, err := s.repo.CountPublicAt(ctx, bandID, at)
	if err != nil {
		return false, apperr.Storage(err)
	}
	if publicCount > 0 {
		logrus.Infof("📅 Slot conflict for band %d at %s: public event already scheduled", bandID, FormatSlotTime(at))
		return true, nil
	}
	privateCount, err := s.repo.CountActivePrivateAt(ctx, bandID, at)
	if err != nil {
		return false, apperr.Storage(err)
	}
	if privateCount > 0 {
		logrus.Infof("📅 Slot conflict for band %d at %s: private event already holds the slot", bandID, FormatSlotTime(at))
		return true, nil
	}
	return false, nil
}

func (s *service) ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error {
	return s.repo.ClaimSlot(ctx, bandID, at, insert)
}

func (s *service) Availability(ctx context.Context, bandID uint) ([]SlotEntry, error) {
	exists, err := s.repo.BandExists(ctx, bandID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if !exists {
		return nil, apperr.NotFound("band %d not found", bandID)
	}
	now := s.now().UTC()
	public, err := s.repo.FuturePublicSlots(ctx, bandID, now)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	private, err := s.repo.FutureBookedPrivateSlots(ctx, bandID, now)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	entries := make([]SlotEntry, 0, len(public)+len(private))
	entries = append(entries, public...)
	entries = append(entries, private...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EventDatetime.Before(entries[j].EventDatetime)
	})
	return entries, nil
}
