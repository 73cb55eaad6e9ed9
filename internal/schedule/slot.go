package schedule

import (
	"regexp"
	"time"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
)

// SlotLayout is the canonical wire format for event slots.
const SlotLayout = "2006-01-02 15:04:05"

var slotPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// ParseSlotTime validates and parses a "YYYY-MM-DD HH:MM:SS" slot string.
// Slots are interpreted as UTC.
func ParseSlotTime(value string) (time.Time, error) {
	if !slotPattern.MatchString(value) {
		return time.Time{}, apperr.Validation("event_datetime must match YYYY-MM-DD HH:MM:SS, got %q", value)
	}
	t, err := time.ParseInLocation(SlotLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("event_datetime is not a valid timestamp: %q", value)
	}
	return t, nil
}

// FormatSlotTime renders a slot back into its wire format.
func FormatSlotTime(t time.Time) string {
	return t.UTC().Format(SlotLayout)
}
