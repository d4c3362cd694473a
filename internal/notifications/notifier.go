package notifications

import (
	"context"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
)

// Notifier hands a guest notification to the delivery channel. Callers treat
// errors as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// LogNotifier only records notifications. Used when no broker is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg model.Notification) error {
	n.log.Info("Notification not delivered, no channel configured",
		"event", msg.Event,
		"confirmation_number", msg.ConfirmationCode,
		"recipient", msg.Recipient,
		"subject", msg.Subject,
	)
	return nil
}
