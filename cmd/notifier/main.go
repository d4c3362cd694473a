package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotelbook/internal/notifications"
	"hotelbook/pkg/config"
	"hotelbook/pkg/kafka"
	kafkamw "hotelbook/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	defer cfg.GracefulShutdown()

	if cfg.SMTPHost == "" {
		cfg.Log.Fatal("SMTP_HOST must be set for the notifier")
	}

	sender := notifications.NewSMTPSender(notifications.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	dispatcher := notifications.NewDispatcher(sender, cfg.Log)

	kafkaCfg := kafka.DefaultConfig(cfg.KafkaBrokers)
	kafkaCfg.ConsumerMaxRetries = cfg.KafkaMaxRetries

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		cfg.NotificationsTopic,
		cfg.NotifierGroupID,
		cfg.NotificationsDLQ,
		dispatcher.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamw.LoggingConsumerMiddleware(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier",
		"topic", cfg.NotificationsTopic,
		"group_id", cfg.NotifierGroupID,
		"dlq", cfg.NotificationsDLQ,
		"smtp_host", cfg.SMTPHost,
	)

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Notifier stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
