package privateevent

import (
	"time"
)

// Status of a private event booking.
type Status string

const (
	StatusRequested Status = "requested"
	StatusToBeDone  Status = "to_be_done"
	StatusRejected  Status = "rejected"
	StatusDone      Status = "done"
)

// DefaultRejectionMessage is stored when a band rejects without giving a
// reason.
const DefaultRejectionMessage = "The band is not available for this event."

// PrivateEvent represents the private_events table. A partial unique index on
// (band_id, event_datetime) over non-rejected rows keeps one active booking
// per slot.
type PrivateEvent struct {
	ID            uint      `gorm:"primaryKey" json:"event_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	BandID        uint      `gorm:"not null;index" json:"band_id"`
	EventType     string    `gorm:"type:varchar(100);not null" json:"event_type"`
	Description   string    `gorm:"type:text" json:"description"`
	EventDatetime time.Time `gorm:"not null;index" json:"event_datetime"`
	City          string    `gorm:"type:varchar(100);not null" json:"city"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Status        Status    `gorm:"type:varchar(20);not null;default:requested;index" json:"status"`
	BandDecision  string    `gorm:"type:text" json:"band_decision"`
	Price         float64   `gorm:"not null" json:"price"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PrivateEvent) TableName() string { return "private_events" }

type RequestBookingRequest struct {
	BandID        uint   `json:"band_id" binding:"required"`
	EventType     string `json:"event_type" binding:"required"`
	Description   string `json:"description"`
	EventDatetime string `json:"event_datetime" binding:"required"`
	City          string `json:"city" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

type UpdateStatusRequest struct {
	Status       Status `json:"status" binding:"required"`
	BandDecision string `json:"band_decision"`
}
