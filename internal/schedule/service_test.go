package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
)

type fakeRepo struct {
	publicCount  int64
	privateCount int64
	public       []SlotEntry
	private      []SlotEntry
	missingBand  bool
}

func (f *fakeRepo) CountPublicAt(ctx context.Context, bandID uint, at time.Time) (int64, error) {
	return f.publicCount, nil
}

func (f *fakeRepo) CountActivePrivateAt(ctx context.Context, bandID uint, at time.Time) (int64, error) {
	return f.privateCount, nil
}

func (f *fakeRepo) FuturePublicSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error) {
	return f.public, nil
}

func (f *fakeRepo) FutureBookedPrivateSlots(ctx context.Context, bandID uint, now time.Time) ([]SlotEntry, error) {
	return f.private, nil
}

func (f *fakeRepo) BandExists(ctx context.Context, bandID uint) (bool, error) {
	return !f.missingBand, nil
}

func (f *fakeRepo) ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error {
	if f.publicCount > 0 || f.privateCount > 0 {
		return ErrSlotTaken
	}
	return insert(nil)
}

func TestHasConflict(t *testing.T) {
	at := time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		publicCount  int64
		privateCount int64
		want         bool
	}{
		{name: "free slot", publicCount: 0, privateCount: 0, want: false},
		{name: "public event holds slot", publicCount: 1, privateCount: 0, want: true},
		{name: "private event holds slot", publicCount: 0, privateCount: 1, want: true},
		{name: "both tables occupied", publicCount: 1, privateCount: 1, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{publicCount: tt.publicCount, privateCount: tt.privateCount})
			got, err := svc.HasConflict(context.Background(), 7, at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailabilityMergesAndSorts(t *testing.T) {
	later := time.Date(2026, 10, 1, 21, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		public:  []SlotEntry{{EventID: 1, EventDatetime: later, Source: "public"}},
		private: []SlotEntry{{EventID: 2, EventDatetime: sooner, Source: "private", Status: "to_be_done"}},
	}
	svc := NewService(repo)
	entries, err := svc.Availability(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].EventID)
	assert.Equal(t, uint(1), entries[1].EventID)
}

func TestAvailabilityUnknownBand(t *testing.T) {
	svc := NewService(&fakeRepo{missingBand: true})
	entries, err := svc.Availability(context.Background(), 404)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestClaimSlotOccupied(t *testing.T) {
	at := time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)
	svc := NewService(&fakeRepo{privateCount: 1})
	inserted := false
	err := svc.ClaimSlot(context.Background(), 7, at, func(tx *gorm.DB) error {
		inserted = true
		return nil
	})
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.False(t, inserted)
}
