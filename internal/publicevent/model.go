package publicevent

import (
	"time"

	"gorm.io/datatypes"
)

// PublicEvent represents the public_events table. A band owns each row and a
// slot (band_id, event_datetime) can hold at most one public event.
type PublicEvent struct {
	ID            uint           `gorm:"primaryKey" json:"event_id"`
	BandID        uint           `gorm:"not null;index" json:"band_id"`
	EventName     string         `gorm:"type:varchar(255);not null" json:"event_name"`
	EventType     string         `gorm:"type:varchar(100);not null" json:"event_type"`
	Description   string         `gorm:"type:text" json:"description"`
	EventDatetime time.Time      `gorm:"not null;index" json:"event_datetime"`
	City          string         `gorm:"type:varchar(100);not null" json:"city"`
	VenueAddress  string         `gorm:"type:text;not null" json:"venue_address"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	TicketPrice   float64        `gorm:"not null" json:"ticket_price"`
	Media         datatypes.JSON `gorm:"type:jsonb" json:"media,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PublicEvent) TableName() string { return "public_events" }

type CreateRequest struct {
	EventName     string   `json:"event_name" binding:"required"`
	EventType     string   `json:"event_type" binding:"required"`
	Description   string   `json:"description"`
	EventDatetime string   `json:"event_datetime" binding:"required"`
	City          string   `json:"city" binding:"required"`
	VenueAddress  string   `json:"venue_address" binding:"required"`
	TicketPrice   *float64 `json:"ticket_price" binding:"required"`
	MediaURLs     []string `json:"media_urls"`
}
