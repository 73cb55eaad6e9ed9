package publicevent

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/geocode"
	"github.com/bandvibe/band-booking-backend/internal/schedule"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type fakeRepo struct {
	created   []*PublicEvent
	createErr error
	byID      map[uint]*PublicEvent
	deleted   []uint
}

func (f *fakeRepo) Create(ctx context.Context, event *PublicEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = uint(len(f.created) + 1)
	f.created = append(f.created, event)
	return nil
}

func (f *fakeRepo) CreateTx(tx *gorm.DB, event *PublicEvent) error {
	return f.Create(context.Background(), event)
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*PublicEvent, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) ListUpcoming(ctx context.Context, now time.Time) ([]PublicEvent, error) {
	return nil, nil
}

func (f *fakeRepo) ListByBand(ctx context.Context, bandID uint) ([]PublicEvent, error) {
	return nil, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSchedule struct {
	busy bool
}

func (f *fakeSchedule) HasConflict(ctx context.Context, bandID uint, at time.Time) (bool, error) {
	return f.busy, nil
}

func (f *fakeSchedule) ClaimSlot(ctx context.Context, bandID uint, at time.Time, insert func(tx *gorm.DB) error) error {
	if f.busy {
		return schedule.ErrSlotTaken
	}
	return insert(nil)
}

func (f *fakeSchedule) Availability(ctx context.Context, bandID uint) ([]schedule.SlotEntry, error) {
	return nil, nil
}

type fakeGeocoder struct {
	coords *geocode.Coordinates
}

func (f *fakeGeocoder) Forward(ctx context.Context, address string) *geocode.Coordinates {
	return f.coords
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) LogAction(ctx context.Context, actor middleware.Actor, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	f.actions = append(f.actions, action)
	return nil
}

func ptr(v float64) *float64 { return &v }

func validRequest() CreateRequest {
	return CreateRequest{
		EventName:     "Summer Gig",
		EventType:     "concert",
		EventDatetime: "2026-09-15 20:00:00",
		City:          "Heraklion",
		VenueAddress:  "Central Square",
		TicketPrice:   ptr(15),
	}
}

func newTestService(repo *fakeRepo, sched *fakeSchedule, geo *fakeGeocoder, audit *fakeAudit) Service {
	return NewService(repo, sched, geo, audit)
}

func TestCreateRejectsNonBandActors(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSchedule{}, &fakeGeocoder{}, &fakeAudit{})
	_, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorUser, ID: 3}, validRequest(), "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestCreateValidatesDatetime(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSchedule{}, &fakeGeocoder{}, &fakeAudit{})
	req := validRequest()
	req.EventDatetime = "2026-09-15T20:00:00"
	_, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, req, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSchedule{}, &fakeGeocoder{}, &fakeAudit{})
	req := validRequest()
	req.TicketPrice = ptr(-1)
	_, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, req, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateRefusesBusySlot(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeSchedule{busy: true}, &fakeGeocoder{}, &fakeAudit{})
	_, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, validRequest(), "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	repo := &fakeRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newTestService(repo, &fakeSchedule{}, &fakeGeocoder{}, &fakeAudit{})
	_, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, validRequest(), "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateStoresEventWithCoordinates(t *testing.T) {
	repo := &fakeRepo{}
	audit := &fakeAudit{}
	geo := &fakeGeocoder{coords: &geocode.Coordinates{Latitude: 35.3, Longitude: 25.1}}
	svc := newTestService(repo, &fakeSchedule{}, geo, audit)

	event, err := svc.Create(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, validRequest(), "1.2.3.4")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, uint(7), event.BandID)
	require.NotNil(t, event.Latitude)
	assert.InDelta(t, 35.3, *event.Latitude, 0.001)
	assert.Contains(t, audit.actions, "public_event.create")
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := &fakeRepo{byID: map[uint]*PublicEvent{4: {ID: 4, BandID: 7}}}
	svc := newTestService(repo, &fakeSchedule{}, &fakeGeocoder{}, &fakeAudit{})

	err := svc.Delete(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 8}, 4, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	err = svc.Delete(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, 4, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, repo.deleted)
}
