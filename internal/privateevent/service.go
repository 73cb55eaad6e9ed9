package privateevent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/database"
	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/auth"
	"github.com/bandvibe/band-booking-backend/internal/geocode"
	"github.com/bandvibe/band-booking-backend/internal/notification"
	"github.com/bandvibe/band-booking-backend/internal/schedule"
	"github.com/bandvibe/band-booking-backend/middleware"
)

// BandDirectory is the slice of the account service bookings need.
type BandDirectory interface {
	GetBand(id uint) (*auth.Band, error)
}

// AuditLogger is the slice of the audit log service bookings need.
type AuditLogger interface {
	LogAction(ctx context.Context, actor middleware.Actor, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
}

type Service interface {
	Request(ctx context.Context, actor middleware.Actor, req RequestBookingRequest, ip string) (*PrivateEvent, error)
	UpdateStatus(ctx context.Context, actor middleware.Actor, id uint, req UpdateStatusRequest, ip string) (*PrivateEvent, error)
	ListMine(ctx context.Context, actor middleware.Actor) ([]PrivateEvent, error)
	ListRequests(ctx context.Context, actor middleware.Actor) ([]PrivateEvent, error)
	Get(ctx context.Context, actor middleware.Actor, id uint) (*PrivateEvent, error)
}

type service struct {
	repo     Repository
	schedule schedule.Service
	bands    BandDirectory
	geocoder geocode.Client
	audit    AuditLogger
	notifier notification.Service
	now      func() time.Time
}

func NewService(repo Repository, scheduleSvc schedule.Service, bands BandDirectory, geocoder geocode.Client, audit AuditLogger, notifier notification.Service) Service {
	return &service{
		repo:     repo,
		schedule: scheduleSvc,
		bands:    bands,
		geocoder: geocoder,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) Request(ctx context.Context, actor middleware.Actor, req RequestBookingRequest, ip string) (*PrivateEvent, error) {
	if !actor.IsUser() {
		return nil, apperr.Forbidden("only users can request private events")
	}

	at, err := schedule.ParseSlotTime(req.EventDatetime)
	if err != nil {
		return nil, err
	}
	price, err := DerivePrice(req.EventType)
	if err != nil {
		return nil, err
	}
	if _, err := s.bands.GetBand(req.BandID); err != nil {
		return nil, err
	}

	event := &PrivateEvent{
		UserID:        actor.ID,
		BandID:        req.BandID,
		EventType:     req.EventType,
		Description:   req.Description,
		EventDatetime: at,
		City:          req.City,
		Address:       req.Address,
		Status:        StatusRequested,
		Price:         price,
	}
	if coords := s.geocoder.Forward(ctx, req.Address+", "+req.City); coords != nil {
		event.Latitude = &coords.Latitude
		event.Longitude = &coords.Longitude
	}

	err = s.schedule.ClaimSlot(ctx, req.BandID, at, func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, event)
	})
	if err != nil {
		if errors.Is(err, schedule.ErrSlotTaken) || database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("band %d is already booked at %s", req.BandID, req.EventDatetime)
		}
		logrus.Errorf("❌ Failed to create booking for user %d: %v", actor.ID, err)
		return nil, apperr.Storage(err)
	}

	s.logAudit(ctx, actor, event.ID, "private_event.request", map[string]interface{}{
		"band_id":        req.BandID,
		"event_type":     req.EventType,
		"event_datetime": req.EventDatetime,
		"price":          price,
	}, ip)
	s.notifier.PublishBookingEvent(notification.KindBookingRequested, event.ID, event.BandID, event.UserID,
		"band", event.BandID,
		fmt.Sprintf("New %s request for %s", req.EventType, req.EventDatetime))

	logrus.Infof("🎸 User %d requested band %d for %s at %s (price %.0f)", actor.ID, req.BandID, req.EventType, req.EventDatetime, price)
	return event, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor middleware.Actor, id uint, req UpdateStatusRequest, ip string) (*PrivateEvent, error) {
	updated, err := s.repo.UpdateLocked(ctx, id, func(ev *PrivateEvent) error {
		if err := checkOwnership(actor, ev); err != nil {
			return err
		}
		return Apply(ev, req.Status, actor.Kind, req.BandDecision, s.now().UTC())
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("private event %d not found", id)
	}

	s.logAudit(ctx, actor, id, "private_event."+string(req.Status), map[string]interface{}{
		"band_decision": updated.BandDecision,
	}, ip)
	s.notifyTransition(updated)

	logrus.Infof("🎸 Booking %d moved to %s by %s %d", id, updated.Status, actor.Kind, actor.ID)
	return updated, nil
}

func checkOwnership(actor middleware.Actor, ev *PrivateEvent) error {
	switch {
	case actor.IsBand() && actor.ID != ev.BandID:
		return apperr.Forbidden("booking %d belongs to another band", ev.ID)
	case actor.IsUser() && actor.ID != ev.UserID:
		return apperr.Forbidden("booking %d belongs to another user", ev.ID)
	}
	return nil
}

func (s *service) notifyTransition(ev *PrivateEvent) {
	switch ev.Status {
	case StatusToBeDone:
		s.notifier.PublishBookingEvent(notification.KindBookingAccepted, ev.ID, ev.BandID, ev.UserID,
			"user", ev.UserID, "Your booking was accepted: "+ev.BandDecision)
	case StatusRejected:
		s.notifier.PublishBookingEvent(notification.KindBookingRejected, ev.ID, ev.BandID, ev.UserID,
			"user", ev.UserID, "Your booking was rejected: "+ev.BandDecision)
	case StatusDone:
		s.notifier.PublishBookingEvent(notification.KindBookingCompleted, ev.ID, ev.BandID, ev.UserID,
			"band", ev.BandID, fmt.Sprintf("Booking %d was marked as done", ev.ID))
	}
}

func (s *service) ListMine(ctx context.Context, actor middleware.Actor) ([]PrivateEvent, error) {
	if !actor.IsUser() {
		return nil, apperr.Forbidden("only users have booking requests of their own")
	}
	events, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return events, nil
}

func (s *service) ListRequests(ctx context.Context, actor middleware.Actor) ([]PrivateEvent, error) {
	if !actor.IsBand() {
		return nil, apperr.Forbidden("only bands receive booking requests")
	}
	events, err := s.repo.ListByBand(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return events, nil
}

func (s *service) Get(ctx context.Context, actor middleware.Actor, id uint) (*PrivateEvent, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if event == nil {
		return nil, apperr.NotFound("private event %d not found", id)
	}
	if !actor.IsAdmin() {
		if err := checkOwnership(actor, event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *service) logAudit(ctx context.Context, actor middleware.Actor, eventID uint, action string, details map[string]interface{}, ip string) {
	if err := s.audit.LogAction(ctx, actor, &eventID, action, details, ip, "success"); err != nil {
		logrus.Warnf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
