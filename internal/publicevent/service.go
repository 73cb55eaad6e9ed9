package publicevent

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bandvibe/band-booking-backend/database"
	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/geocode"
	"github.com/bandvibe/band-booking-backend/internal/schedule"
	"github.com/bandvibe/band-booking-backend/middleware"
)

// AuditLogger is the slice of the audit log service public events need.
type AuditLogger interface {
	LogAction(ctx context.Context, actor middleware.Actor, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
}

type Service interface {
	Create(ctx context.Context, actor middleware.Actor, req CreateRequest, ip string) (*PublicEvent, error)
	ListUpcoming(ctx context.Context) ([]PublicEvent, error)
	ListOwn(ctx context.Context, actor middleware.Actor) ([]PublicEvent, error)
	Delete(ctx context.Context, actor middleware.Actor, id uint, ip string) error
}

type service struct {
	repo     Repository
	schedule schedule.Service
	geocoder geocode.Client
	audit    AuditLogger
	now      func() time.Time
}

func NewService(repo Repository, scheduleSvc schedule.Service, geocoder geocode.Client, audit AuditLogger) Service {
	return &service{
		repo:     repo,
		schedule: scheduleSvc,
		geocoder: geocoder,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor middleware.Actor, req CreateRequest, ip string) (*PublicEvent, error) {
	if !actor.IsBand() {
		return nil, apperr.Forbidden("only bands can announce public events")
	}

	at, err := schedule.ParseSlotTime(req.EventDatetime)
	if err != nil {
		return nil, err
	}
	if req.TicketPrice == nil || *req.TicketPrice < 0 {
		return nil, apperr.Validation("ticket_price must be zero or positive")
	}

	event := &PublicEvent{
		BandID:        actor.ID,
		EventName:     req.EventName,
		EventType:     req.EventType,
		Description:   req.Description,
		EventDatetime: at,
		City:          req.City,
		VenueAddress:  req.VenueAddress,
		TicketPrice:   *req.TicketPrice,
	}
	if coords := s.geocoder.Forward(ctx, req.VenueAddress+", "+req.City); coords != nil {
		event.Latitude = &coords.Latitude
		event.Longitude = &coords.Longitude
	}
	if len(req.MediaURLs) > 0 {
		payload, err := json.Marshal(req.MediaURLs)
		if err != nil {
			return nil, apperr.Validation("media_urls could not be encoded")
		}
		event.Media = datatypes.JSON(payload)
	}

	err = s.schedule.ClaimSlot(ctx, actor.ID, at, func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, event)
	})
	if err != nil {
		if errors.Is(err, schedule.ErrSlotTaken) || database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("band %d already has an event at %s", actor.ID, req.EventDatetime)
		}
		logrus.Errorf("❌ Failed to create public event for band %d: %v", actor.ID, err)
		return nil, apperr.Storage(err)
	}

	s.logAudit(ctx, actor, event.ID, "public_event.create", map[string]interface{}{
		"event_name":     event.EventName,
		"event_datetime": req.EventDatetime,
	}, ip)

	logrus.Infof("🎤 Band %d announced %q at %s", actor.ID, event.EventName, req.EventDatetime)
	return event, nil
}

func (s *service) ListUpcoming(ctx context.Context) ([]PublicEvent, error) {
	events, err := s.repo.ListUpcoming(ctx, s.now().UTC())
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return events, nil
}

func (s *service) ListOwn(ctx context.Context, actor middleware.Actor) ([]PublicEvent, error) {
	if !actor.IsBand() {
		return nil, apperr.Forbidden("only bands have their own public events")
	}
	events, err := s.repo.ListByBand(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return events, nil
}

func (s *service) Delete(ctx context.Context, actor middleware.Actor, id uint, ip string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if event == nil {
		return apperr.NotFound("public event %d not found", id)
	}
	if !actor.IsAdmin() && !(actor.IsBand() && actor.ID == event.BandID) {
		return apperr.Forbidden("only the owning band can cancel this event")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Storage(err)
	}

	s.logAudit(ctx, actor, id, "public_event.delete", map[string]interface{}{
		"event_name": event.EventName,
	}, ip)

	logrus.Infof("🗑️ Public event %d cancelled by %s %d", id, actor.Kind, actor.ID)
	return nil
}

func (s *service) logAudit(ctx context.Context, actor middleware.Actor, eventID uint, action string, details map[string]interface{}, ip string) {
	if err := s.audit.LogAction(ctx, actor, &eventID, action, details, ip, "success"); err != nil {
		logrus.Warnf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
