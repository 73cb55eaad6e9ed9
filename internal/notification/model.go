package notification

import (
	"time"
)

// BookingEvent is the message published to Kafka whenever a booking changes.
type BookingEvent struct {
	EventUID      string    `json:"event_uid"`
	Kind          string    `json:"kind"` // booking_requested, booking_accepted, ...
	BookingID     uint      `json:"booking_id"`
	BandID        uint      `json:"band_id"`
	UserID        uint      `json:"user_id"`
	RecipientKind string    `json:"recipient_kind"` // user or band
	RecipientID   uint      `json:"recipient_id"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Booking event kinds.
const (
	KindBookingRequested = "booking_requested"
	KindBookingAccepted  = "booking_accepted"
	KindBookingRejected  = "booking_rejected"
	KindBookingCompleted = "booking_completed"
	KindMessageReceived  = "message_received"
)

// InAppNotification represents the notifications table.
type InAppNotification struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventUID      string    `gorm:"size:64;uniqueIndex" json:"event_uid"`
	Kind          string    `gorm:"size:50;not null;index" json:"kind"`
	BookingID     uint      `gorm:"index" json:"booking_id"`
	RecipientKind string    `gorm:"size:10;not null;index:idx_notifications_recipient" json:"recipient_kind"`
	RecipientID   uint      `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Read          bool      `gorm:"default:false" json:"read"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (InAppNotification) TableName() string {
	return "notifications"
}
