package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/mailer"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
)

// NotificationWorker turns account events into outbound emails. It runs
// in its own process so mail delivery never sits on a request path.
type NotificationWorker struct {
	consumer *queue.KafkaConsumer
	mailer   *mailer.Mailer
	logger   *logger.Logger
}

func NewNotificationWorker(consumer *queue.KafkaConsumer, mailer *mailer.Mailer, logger *logger.Logger) *NotificationWorker {
	return &NotificationWorker{
		consumer: consumer,
		mailer:   mailer,
		logger:   logger,
	}
}

// event mirrors queue.Event with the payload left raw so it can be
// decoded per type.
type event struct {
	Type queue.EventType `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Notification worker started")

	return w.consumer.Subscribe(ctx, w.handle, func(err error) {
		w.logger.WithError(err).Error("Failed to process notification event")
	})
}

func (w *NotificationWorker) Stop() error {
	return w.consumer.Close()
}

func (w *NotificationWorker) handle(key string, value []byte) error {
	var evt event
	if err := json.Unmarshal(value, &evt); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}

	switch evt.Type {
	case queue.EventVerificationEmailRequested:
		var data queue.VerificationEmailData
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return fmt.Errorf("failed to decode verification email data: %w", err)
		}
		if err := w.mailer.SendVerificationEmail(data.Email, data.Username, data.Token); err != nil {
			return err
		}
		w.logger.WithField("user_id", data.UserID).Info("Verification email sent")

	case queue.EventAccountVerified:
		var data queue.AccountVerifiedData
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return fmt.Errorf("failed to decode account verified data: %w", err)
		}
		if err := w.mailer.SendWelcomeEmail(data.Email, data.Username); err != nil {
			return err
		}
		w.logger.WithField("user_id", data.UserID).Info("Welcome email sent")

	default:
		w.logger.WithField("type", string(evt.Type)).Warn("Skipping unknown event type")
	}

	return nil
}
