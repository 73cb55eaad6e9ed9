package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
	"github.com/bandvibe/band-booking-backend/utils"
)

type Service interface {
	// PublishBookingEvent emits a booking lifecycle event. Failures are
	// logged, never surfaced to the caller.
	PublishBookingEvent(kind string, bookingID, bandID, userID uint, recipientKind string, recipientID uint, message string)
	List(ctx context.Context, actor middleware.Actor, unreadOnly bool) ([]InAppNotification, error)
	MarkRead(ctx context.Context, actor middleware.Actor, id uint) error
}

type service struct {
	repo     Repository
	producer utils.Producer
}

func NewService(repo Repository, producer utils.Producer) Service {
	return &service{repo: repo, producer: producer}
}

func (s *service) PublishBookingEvent(kind string, bookingID, bandID, userID uint, recipientKind string, recipientID uint, message string) {
	evt := BookingEvent{
		EventUID:      uuid.NewString(),
		Kind:          kind,
		BookingID:     bookingID,
		BandID:        bandID,
		UserID:        userID,
		RecipientKind: recipientKind,
		RecipientID:   recipientID,
		Message:       message,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.producer.SendMessage(evt); err != nil {
		logrus.Errorf("❌ Failed to publish %s for booking %d: %v", kind, bookingID, err)
		return
	}
	logrus.Infof("📨 Published %s for booking %d", kind, bookingID)
}

func (s *service) List(ctx context.Context, actor middleware.Actor, unreadOnly bool) ([]InAppNotification, error) {
	notifications, err := s.repo.ListForRecipient(ctx, string(actor.Kind), actor.ID, unreadOnly)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, actor middleware.Actor, id uint) error {
	affected, err := s.repo.MarkRead(ctx, id, string(actor.Kind), actor.ID)
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound("notification %d not found", id)
	}
	return nil
}
