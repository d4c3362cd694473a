package notifications

import (
	"context"

	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
)

// Sender delivers one notification to the guest.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// Dispatcher consumes published notifications and delivers them.
type Dispatcher struct {
	sender Sender
	log    *logger.Logger
}

func NewDispatcher(sender Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

// Handle is a kafka.MessageHandler. Messages that cannot be decoded are
// permanent failures and go straight to the DLQ; delivery failures are
// retried by the consumer.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	var n model.Notification
	if err := msg.DecodeValue(&n); err != nil {
		return kafka.NewPermanentError("undecodable notification", err)
	}
	if n.Recipient == "" {
		return kafka.NewPermanentError("notification has no recipient", kafka.ErrInvalidMessage)
	}

	if err := d.sender.Send(ctx, n); err != nil {
		return kafka.NewTransientError("notification delivery failed", err)
	}

	d.log.Info("Notification delivered",
		"event", n.Event,
		"confirmation_number", n.ConfirmationCode,
		"recipient", n.Recipient,
	)
	return nil
}
