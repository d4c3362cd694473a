package notifications

import (
	"context"
	"fmt"

	"hotelbook/pkg/kafka"
	"hotelbook/pkg/model"
)

const (
	notificationSchemaVersion = "1"
	notificationSource        = "hotelbook-reservations"
)

// Publisher is the part of *kafka.Producer the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaNotifier publishes notifications for the notifier service to deliver.
// Messages are keyed by recipient so one guest's mail stays ordered.
type KafkaNotifier struct {
	publisher Publisher
}

func NewKafkaNotifier(publisher Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher}
}

func (n *KafkaNotifier) Notify(ctx context.Context, msg model.Notification) error {
	km, err := kafka.NewMessage().
		WithKey(msg.Recipient).
		WithValue(msg).
		WithEventType(string(msg.Event)).
		WithCorrelationID(msg.ConfirmationCode).
		WithSchemaVersion(notificationSchemaVersion).
		WithSource(notificationSource).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build notification message: %w", err)
	}

	if err := n.publisher.Publish(ctx, km); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
