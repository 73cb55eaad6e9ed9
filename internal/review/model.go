package review

import (
	"time"
)

// ReviewStatus of a submitted review.
type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusPublished ReviewStatus = "published"
	StatusRejected  ReviewStatus = "rejected"
)

// Review represents the reviews table. One review per completed booking;
// reviews stay pending until an admin moderates them.
type Review struct {
	ID             uint         `gorm:"primaryKey" json:"review_id"`
	PrivateEventID uint         `gorm:"not null;uniqueIndex" json:"private_event_id"`
	UserID         uint         `gorm:"not null;index" json:"user_id"`
	BandID         uint         `gorm:"not null;index" json:"band_id"`
	Rating         int          `gorm:"not null" json:"rating"`
	Comment        string       `gorm:"type:text" json:"comment"`
	Status         ReviewStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

type CreateRequest struct {
	PrivateEventID uint   `json:"private_event_id" binding:"required"`
	Rating         int    `json:"rating" binding:"required"`
	Comment        string `json:"comment"`
}

type ModerateRequest struct {
	Status ReviewStatus `json:"status" binding:"required"`
}

// ListFilter narrows the published reviews of a band.
type ListFilter struct {
	BandID     uint
	RatingFrom int
	RatingTo   int
}
