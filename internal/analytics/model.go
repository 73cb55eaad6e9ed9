package analytics

import (
	"time"
)

// ProfileVisit represents the profile_visits table, one row per viewed band
// profile.
type ProfileVisit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BandID      uint      `gorm:"not null;index" json:"band_id"`
	VisitorKind string    `gorm:"type:varchar(10)" json:"visitor_kind"` // user, band or empty for anonymous
	VisitorID   uint      `json:"visitor_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ProfileVisit) TableName() string { return "profile_visits" }

// VisitStats summarizes a band's profile traffic.
type VisitStats struct {
	BandID      uint  `json:"band_id"`
	TotalVisits int64 `json:"total_visits"`
	Last30Days  int64 `json:"last_30_days"`
	CachedCount int64 `json:"cached_count"`
	CacheBacked bool  `json:"cache_backed"`
}
