package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

type Service interface {
	// Track records a profile visit. It never fails the surrounding request.
	Track(ctx context.Context, bandID uint, visitor *middleware.Actor)
	Stats(ctx context.Context, actor middleware.Actor, bandID uint) (*VisitStats, error)
}

type service struct {
	repo  Repository
	cache *redis.Client
	now   func() time.Time
}

func NewService(repo Repository, cache *redis.Client) Service {
	return &service{repo: repo, cache: cache, now: time.Now}
}

func visitKey(bandID uint) string {
	return fmt.Sprintf("visits:band:%d", bandID)
}

func (s *service) Track(ctx context.Context, bandID uint, visitor *middleware.Actor) {
	visit := &ProfileVisit{BandID: bandID}
	if visitor != nil {
		visit.VisitorKind = string(visitor.Kind)
		visit.VisitorID = visitor.ID
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		logrus.Warnf("⚠️ Failed to record visit for band %d: %v", bandID, err)
		return
	}
	if s.cache != nil {
		if err := s.cache.Incr(ctx, visitKey(bandID)).Err(); err != nil {
			logrus.Warnf("⚠️ Failed to bump visit counter for band %d: %v", bandID, err)
		}
	}
}

// Stats is restricted to the band itself and admins.
func (s *service) Stats(ctx context.Context, actor middleware.Actor, bandID uint) (*VisitStats, error) {
	if !actor.IsAdmin() && !(actor.IsBand() && actor.ID == bandID) {
		return nil, apperr.Forbidden("only the band itself can read its visit analytics")
	}

	total, err := s.repo.CountForBand(ctx, bandID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	recent, err := s.repo.CountForBandSince(ctx, bandID, s.now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, apperr.Storage(err)
	}

	stats := &VisitStats{BandID: bandID, TotalVisits: total, Last30Days: recent}
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, visitKey(bandID)).Int64(); err == nil {
			stats.CachedCount = cached
			stats.CacheBacked = true
		}
	}
	return stats, nil
}
