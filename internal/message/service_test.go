package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/privateevent"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type fakeRepo struct {
	stored []*Message
	byID   map[uint][]Message
}

func (f *fakeRepo) Create(ctx context.Context, msg *Message) error {
	msg.ID = uint(len(f.stored) + 1)
	f.stored = append(f.stored, msg)
	return nil
}

func (f *fakeRepo) ListByEvent(ctx context.Context, privateEventID uint) ([]Message, error) {
	return f.byID[privateEventID], nil
}

type fakeBookings struct {
	bookings map[uint]*privateevent.PrivateEvent
}

func (f *fakeBookings) Get(ctx context.Context, actor middleware.Actor, id uint) (*privateevent.PrivateEvent, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFound("private event %d not found", id)
	}
	if actor.IsUser() && actor.ID != booking.UserID {
		return nil, apperr.Forbidden("booking %d belongs to another user", id)
	}
	if actor.IsBand() && actor.ID != booking.BandID {
		return nil, apperr.Forbidden("booking %d belongs to another band", id)
	}
	return booking, nil
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

func acceptedBooking() *privateevent.PrivateEvent {
	return &privateevent.PrivateEvent{
		ID:            5,
		UserID:        3,
		BandID:        7,
		Status:        privateevent.StatusToBeDone,
		EventDatetime: time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC),
	}
}

func newService(booking *privateevent.PrivateEvent) (Service, *fakeRepo, *fakeNotifier) {
	repo := &fakeRepo{byID: map[uint][]Message{}}
	notifier := &fakeNotifier{}
	bookings := &fakeBookings{bookings: map[uint]*privateevent.PrivateEvent{}}
	if booking != nil {
		bookings.bookings[booking.ID] = booking
	}
	return NewService(repo, bookings, notifier), repo, notifier
}

func TestSendStoresMessageAndNotifiesOtherSide(t *testing.T) {
	svc, repo, notifier := newService(acceptedBooking())

	msg, err := svc.Send(context.Background(), middleware.Actor{Kind: middleware.ActorUser, ID: 3}, 5, SendRequest{Body: "What time do you arrive?"})
	require.NoError(t, err)
	assert.Equal(t, "user", msg.SenderKind)
	assert.Len(t, repo.stored, 1)
	assert.Contains(t, notifier.kinds, "message_received")
}

func TestSendRejectsOutsiders(t *testing.T) {
	svc, _, _ := newService(acceptedBooking())
	_, err := svc.Send(context.Background(), middleware.Actor{Kind: middleware.ActorUser, ID: 99}, 5, SendRequest{Body: "hello"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestSendRequiresAcceptedBooking(t *testing.T) {
	booking := acceptedBooking()
	booking.Status = privateevent.StatusRequested
	svc, _, _ := newService(booking)
	_, err := svc.Send(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, 5, SendRequest{Body: "hello"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSendRejectsEmptyBody(t *testing.T) {
	svc, _, _ := newService(acceptedBooking())
	_, err := svc.Send(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, 5, SendRequest{Body: "   "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestListReturnsThread(t *testing.T) {
	svc, repo, _ := newService(acceptedBooking())
	repo.byID[5] = []Message{{ID: 1, PrivateEventID: 5, SenderKind: "user", Body: "hi"}}

	messages, err := svc.List(context.Background(), middleware.Actor{Kind: middleware.ActorBand, ID: 7}, 5)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestListRejectsNonParticipants(t *testing.T) {
	svc, repo, _ := newService(acceptedBooking())
	repo.byID[5] = []Message{{ID: 1, PrivateEventID: 5, SenderKind: "user", Body: "hi"}}

	_, err := svc.List(context.Background(), middleware.Actor{Kind: middleware.ActorAdmin, Username: "admin"}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.List(context.Background(), middleware.Actor{Kind: middleware.ActorUser, ID: 99}, 5)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}
