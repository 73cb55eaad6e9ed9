package message

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/privateevent"
	"github.com/bandvibe/band-booking-backend/middleware"
)

// BookingLookup resolves a booking while enforcing that the actor is one of
// its participants.
type BookingLookup interface {
	Get(ctx context.Context, actor middleware.Actor, id uint) (*privateevent.PrivateEvent, error)
}

type Service interface {
	Send(ctx context.Context, actor middleware.Actor, privateEventID uint, req SendRequest) (*Message, error)
	List(ctx context.Context, actor middleware.Actor, privateEventID uint) ([]Message, error)
}

type service struct {
	repo     Repository
	bookings BookingLookup
	notifier notification.Service
}

func NewService(repo Repository, bookings BookingLookup, notifier notification.Service) Service {
	return &service{repo: repo, bookings: bookings, notifier: notifier}
}

// Send posts a message on an accepted booking. Only the booking's user and
// band may write, and only while the booking is to_be_done.
func (s *service) Send(ctx context.Context, actor middleware.Actor, privateEventID uint, req SendRequest) (*Message, error) {
	if !actor.IsUser() && !actor.IsBand() {
		return nil, apperr.Forbidden("only booking participants can send messages")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperr.Validation("message body must not be empty")
	}

	booking, err := s.bookings.Get(ctx, actor, privateEventID)
	if err != nil {
		return nil, err
	}
	if booking.Status != privateevent.StatusToBeDone {
		return nil, apperr.Validation("messages are only open while booking %d is accepted", privateEventID)
	}

	msg := &Message{
		PrivateEventID: privateEventID,
		SenderKind:     string(actor.Kind),
		SenderID:       actor.ID,
		Body:           req.Body,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		logrus.Errorf("❌ Failed to store message on booking %d: %v", privateEventID, err)
		return nil, apperr.Storage(err)
	}

	recipientKind, recipientID := "band", booking.BandID
	if actor.IsBand() {
		recipientKind, recipientID = "user", booking.UserID
	}
	s.notifier.PublishBookingEvent(notification.KindMessageReceived, booking.ID, booking.BandID, booking.UserID,
		recipientKind, recipientID, "New message on your booking")

	return msg, nil
}

// List returns the thread on an accepted booking, restricted to the same
// participants that may write to it.
func (s *service) List(ctx context.Context, actor middleware.Actor, privateEventID uint) ([]Message, error) {
	if !actor.IsUser() && !actor.IsBand() {
		return nil, apperr.Forbidden("only booking participants can read messages")
	}
	booking, err := s.bookings.Get(ctx, actor, privateEventID)
	if err != nil {
		return nil, err
	}
	if booking.Status != privateevent.StatusToBeDone {
		return nil, apperr.Validation("messages are only open while booking %d is accepted", privateEventID)
	}
	messages, err := s.repo.ListByEvent(ctx, privateEventID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return messages, nil
}
