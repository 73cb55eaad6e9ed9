package review

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/database"
	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/internal/privateevent"
	"github.com/bandvibe/band-booking-backend/middleware"
)

// BookingLookup fetches a booking on behalf of the reviewing user.
type BookingLookup interface {
	Get(ctx context.Context, actor middleware.Actor, id uint) (*privateevent.PrivateEvent, error)
}

// AuditLogger is the slice of the audit log service reviews need.
type AuditLogger interface {
	LogAction(ctx context.Context, actor middleware.Actor, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
}

type Service interface {
	Create(ctx context.Context, actor middleware.Actor, req CreateRequest, ip string) (*Review, error)
	ListPublished(ctx context.Context, filter ListFilter) ([]Review, error)
	ListPending(ctx context.Context, actor middleware.Actor) ([]Review, error)
	Moderate(ctx context.Context, actor middleware.Actor, id uint, req ModerateRequest, ip string) error
	Delete(ctx context.Context, actor middleware.Actor, id uint, ip string) error
}

type service struct {
	repo     Repository
	bookings BookingLookup
	audit    AuditLogger
}

func NewService(repo Repository, bookings BookingLookup, audit AuditLogger) Service {
	return &service{repo: repo, bookings: bookings, audit: audit}
}

// Create files a review for a completed booking. The review starts pending
// and becomes visible only once an admin publishes it.
func (s *service) Create(ctx context.Context, actor middleware.Actor, req CreateRequest, ip string) (*Review, error) {
	if !actor.IsUser() {
		return nil, apperr.Forbidden("only users can review bookings")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	booking, err := s.bookings.Get(ctx, actor, req.PrivateEventID)
	if err != nil {
		return nil, err
	}
	if booking.Status != privateevent.StatusDone {
		return nil, apperr.Validation("booking %d is not completed yet", req.PrivateEventID)
	}

	review := &Review{
		PrivateEventID: req.PrivateEventID,
		UserID:         actor.ID,
		BandID:         booking.BandID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("booking %d already has a review", req.PrivateEventID)
		}
		logrus.Errorf("❌ Failed to store review for booking %d: %v", req.PrivateEventID, err)
		return nil, apperr.Storage(err)
	}

	s.logAudit(ctx, actor, review.PrivateEventID, "review.create", map[string]interface{}{
		"rating": req.Rating,
	}, ip)

	logrus.Infof("⭐ User %d reviewed booking %d with rating %d", actor.ID, req.PrivateEventID, req.Rating)
	return review, nil
}

func (s *service) ListPublished(ctx context.Context, filter ListFilter) ([]Review, error) {
	if filter.RatingFrom < 0 || filter.RatingTo < 0 || filter.RatingFrom > 5 || filter.RatingTo > 5 {
		return nil, apperr.Validation("rating bounds must be between 1 and 5")
	}
	if filter.RatingFrom > 0 && filter.RatingTo > 0 && filter.RatingFrom > filter.RatingTo {
		return nil, apperr.Validation("rating_from must not exceed rating_to")
	}
	reviews, err := s.repo.ListPublished(ctx, filter)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return reviews, nil
}

func (s *service) ListPending(ctx context.Context, actor middleware.Actor) ([]Review, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can list pending reviews")
	}
	reviews, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return reviews, nil
}

func (s *service) Moderate(ctx context.Context, actor middleware.Actor, id uint, req ModerateRequest, ip string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can moderate reviews")
	}
	if req.Status != StatusPublished && req.Status != StatusRejected {
		return apperr.Validation("moderation status must be published or rejected")
	}
	affected, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound("review %d not found", id)
	}

	s.logAudit(ctx, actor, id, "review."+string(req.Status), nil, ip)
	logrus.Infof("⭐ Review %d moderated to %s", id, req.Status)
	return nil
}

func (s *service) Delete(ctx context.Context, actor middleware.Actor, id uint, ip string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can delete reviews")
	}
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if review == nil {
		return apperr.NotFound("review %d not found", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Storage(err)
	}
	s.logAudit(ctx, actor, id, "review.delete", nil, ip)
	return nil
}

func (s *service) logAudit(ctx context.Context, actor middleware.Actor, entityID uint, action string, details map[string]interface{}, ip string) {
	if err := s.audit.LogAction(ctx, actor, &entityID, action, details, ip, "success"); err != nil {
		logrus.Warnf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
