package privateevent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/auth"
	"github.com/bandvibe/band-booking-backend/internal/geocode"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/schedule"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type fakeRepo struct {
	created []*PrivateEvent
	byID    map[uint]*PrivateEvent
}

func (f *fakeRepo) Create(ctx context.Context, event *PrivateEvent) error {
	event.ID = uint(len(f.created) + 1)
	f.created = append(f.created, event)
	return nil
}

func (f *fakeRepo) CreateTx(tx *gorm.DB, event *PrivateEvent) error {
	return f.Create(context.Background(), event)
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*PrivateEvent, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uint) ([]PrivateEvent, error) {
	return nil, nil
}

func (f *fakeRepo) ListByBand(ctx context.Context, bandID uint) ([]PrivateEvent, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateLocked(ctx context.Context, id uint, mutate func(ev *PrivateEvent) error) (*PrivateEvent, error) {
	ev, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if err := mutate(ev); err != nil {
		return nil, err
	}
	return ev, nil
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
	coords    *geocode.Coordinates
	addresses []string
}

func (f *fakeGeocoder) Forward(ctx context.Context, address string) *geocode.Coordinates {
	f.addresses = append(f.addresses, address)
	return f.coords
}

type fakeBands struct {
	known map[uint]bool
}

func (f *fakeBands) GetBand(id uint) (*auth.Band, error) {
	if f.known[id] {
		return &auth.Band{ID: id, BandName: "The Testers"}, nil
	}
	return nil, apperr.NotFound("band %d not found", id)
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) LogAction(ctx context.Context, actor middleware.Actor, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	f.actions = append(f.actions, action)
	return nil
}

type fakeNotifier struct {
	kinds []string
}

func (f *fakeNotifier) PublishBookingEvent(kind string, bookingID, bandID, userID uint, recipientKind string, recipientID uint, message string) {
	f.kinds = append(f.kinds, kind)
}

func (f *fakeNotifier) List(ctx context.Context, actor middleware.Actor, unreadOnly bool) ([]notification.InAppNotification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, actor middleware.Actor, id uint) error {
	return nil
}

type harness struct {
	repo     *fakeRepo
	geocoder *fakeGeocoder
	audit    *fakeAudit
	notifier *fakeNotifier
	svc      Service
}

func newHarness(busy bool) *harness {
	repo := &fakeRepo{byID: map[uint]*PrivateEvent{}}
	geocoder := &fakeGeocoder{}
	audit := &fakeAudit{}
	notifier := &fakeNotifier{}
	svc := NewService(repo, &fakeSchedule{busy: busy}, &fakeBands{known: map[uint]bool{7: true}}, geocoder, audit, notifier)
	return &harness{repo: repo, geocoder: geocoder, audit: audit, notifier: notifier, svc: svc}
}

func userActor() middleware.Actor { return middleware.Actor{Kind: middleware.ActorUser, ID: 3} }
func bandActor() middleware.Actor { return middleware.Actor{Kind: middleware.ActorBand, ID: 7} }

func validBooking() RequestBookingRequest {
	return RequestBookingRequest{
		BandID:        7,
		EventType:     "wedding",
		EventDatetime: "2026-09-15 20:00:00",
		City:          "Heraklion",
		Address:       "Knossos Avenue 12",
	}
}

func TestRequestCreatesBookingWithDerivedPrice(t *testing.T) {
	h := newHarness(false)
	event, err := h.svc.Request(context.Background(), userActor(), validBooking(), "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, StatusRequested, event.Status)
	assert.Equal(t, 1000.0, event.Price)
	assert.Equal(t, uint(3), event.UserID)
	assert.Contains(t, h.audit.actions, "private_event.request")
	assert.Contains(t, h.notifier.kinds, "booking_requested")
}

func TestRequestRejectsBandActors(t *testing.T) {
	h := newHarness(false)
	_, err := h.svc.Request(context.Background(), bandActor(), validBooking(), "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestRequestRejectsUnknownBand(t *testing.T) {
	h := newHarness(false)
	req := validBooking()
	req.BandID = 99
	_, err := h.svc.Request(context.Background(), userActor(), req, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRequestRejectsBusySlot(t *testing.T) {
	h := newHarness(true)
	_, err := h.svc.Request(context.Background(), userActor(), validBooking(), "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Empty(t, h.repo.created)
}

func TestRequestStoresVenueCoordinates(t *testing.T) {
	h := newHarness(false)
	h.geocoder.coords = &geocode.Coordinates{Latitude: 35.3387, Longitude: 25.1442}

	event, err := h.svc.Request(context.Background(), userActor(), validBooking(), "1.2.3.4")
	require.NoError(t, err)
	require.NotNil(t, event.Latitude)
	require.NotNil(t, event.Longitude)
	assert.Equal(t, 35.3387, *event.Latitude)
	assert.Equal(t, 25.1442, *event.Longitude)
	require.Len(t, h.geocoder.addresses, 1)
	assert.Equal(t, "Knossos Avenue 12, Heraklion", h.geocoder.addresses[0])
}

func TestRequestWithoutGeocoderMatch(t *testing.T) {
	h := newHarness(false)
	event, err := h.svc.Request(context.Background(), userActor(), validBooking(), "1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, event.Latitude)
	assert.Nil(t, event.Longitude)
}

func TestRequestRejectsUnknownEventType(t *testing.T) {
	h := newHarness(false)
	req := validBooking()
	req.EventType = "conference"
	_, err := h.svc.Request(context.Background(), userActor(), req, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateStatusAcceptFlow(t *testing.T) {
	h := newHarness(false)
	at := time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)
	h.repo.byID[5] = &PrivateEvent{ID: 5, UserID: 3, BandID: 7, EventDatetime: at, Status: StatusRequested}

	updated, err := h.svc.UpdateStatus(context.Background(), bandActor(), 5,
		UpdateStatusRequest{Status: StatusToBeDone, BandDecision: "Looking forward to it"}, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, StatusToBeDone, updated.Status)
	assert.Contains(t, h.notifier.kinds, "booking_accepted")
}

func TestUpdateStatusEnforcesOwnership(t *testing.T) {
	h := newHarness(false)
	at := time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC)
	h.repo.byID[5] = &PrivateEvent{ID: 5, UserID: 3, BandID: 8, EventDatetime: at, Status: StatusRequested}

	_, err := h.svc.UpdateStatus(context.Background(), bandActor(), 5,
		UpdateStatusRequest{Status: StatusToBeDone, BandDecision: "yes"}, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.Equal(t, StatusRequested, h.repo.byID[5].Status)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	h := newHarness(false)
	_, err := h.svc.UpdateStatus(context.Background(), bandActor(), 42,
		UpdateStatusRequest{Status: StatusRejected}, "1.2.3.4")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
