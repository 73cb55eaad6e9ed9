package notification

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bandvibe/band-booking-backend/config"
	"github.com/bandvibe/band-booking-backend/utils"
)

// StartKafkaConsumer drains the booking events topic and persists each event
// as an in-app notification. It blocks until ctx is cancelled, so run it in
// its own goroutine.
func StartKafkaConsumer(ctx context.Context, cfg *config.Config, repo Repository) {
	reader := utils.NewReader(cfg.KafkaBrokers, cfg.KafkaBookingTopic, "notification-writer")
	defer reader.Close()

	logrus.Infof("🔔 Notification consumer started on topic %s", cfg.KafkaBookingTopic)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logrus.Info("🔔 Notification consumer stopped")
				return
			}
			logrus.Errorf("❌ Error reading booking event: %v", err)
			continue
		}

		var evt BookingEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logrus.Errorf("❌ Skipping malformed booking event at offset %d: %v", msg.Offset, err)
			continue
		}

		n := &InAppNotification{
			EventUID:      evt.EventUID,
			Kind:          evt.Kind,
			BookingID:     evt.BookingID,
			RecipientKind: evt.RecipientKind,
			RecipientID:   evt.RecipientID,
			Message:       evt.Message,
		}
		if err := repo.Save(ctx, n); err != nil {
			logrus.Errorf("❌ Failed to store notification for booking %d: %v", evt.BookingID, err)
			continue
		}
		logrus.Infof("🔔 Stored %s notification for %s %d", evt.Kind, evt.RecipientKind, evt.RecipientID)
	}
}
